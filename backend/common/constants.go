package common

import (
	"flag"
	"fmt"
	"os"
)

var Version = "v0.3.1"
var SystemName = "StudyShare"

var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	LogMode       = flag.String("log-mode", "dev", "log mode: dev or prod")
)

// Runtime configuration, filled from the config file and environment
// by InitConfig.
var (
	SQLitePath    = "data/studyshare.db"
	UploadPath    = "data/uploads"
	SessionSecret = ""
	JWTSecret     = ""

	// MaxUploadBytes caps a single uploaded file.
	MaxUploadBytes int64 = 50 * 1024 * 1024
)

const (
	HomeFeedSize = 12
	APIFeedSize  = 20
	ItemsPerPage = 10
)

func PrintHelp() {
	fmt.Println(SystemName + " " + Version)
	fmt.Println("Usage: studyshare [--port <port>] [--log-mode <dev|prod>]")
	flag.PrintDefaults()
	fmt.Println("Environment: SQL_DSN (MySQL), REDIS_CONN_STRING, SESSION_SECRET, JWT_SECRET")
}

// EnvOrDefault reads an environment variable with a fallback.
func EnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
