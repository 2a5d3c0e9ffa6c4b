package common

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var sugar *zap.SugaredLogger

func init() {
	// Tests and early startup get a usable logger before SetupLog runs.
	l, _ := zap.NewDevelopment()
	sugar = l.Sugar()
}

// SetupLog replaces the default logger according to the --log-mode flag.
func SetupLog(mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	sugar = logger.Sugar()
	return nil
}

func SysLog(s string) {
	sugar.Info(s)
}

func SysError(s string) {
	sugar.Error(s)
}

func SysDebug(s string) {
	sugar.Debug(s)
}

func FatalLog(v any) {
	sugar.Fatal(fmt.Sprintf("%v", v))
}
