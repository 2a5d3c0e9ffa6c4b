package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"studyshare/backend/api/middleware"
	"studyshare/backend/api/route"
	"studyshare/backend/common"
	"studyshare/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}

	if err := common.SetupLog(*common.LogMode); err != nil {
		log.Fatal("failed to set up logging: " + err.Error())
	}
	common.SysLog(common.SystemName + " " + common.Version + " started")

	if err := common.InitConfig(); err != nil {
		common.FatalLog(err)
	}
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}

	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.SysError("failed to close database: " + err.Error())
		}
	}()

	if err := os.MkdirAll(common.UploadPath, 0o755); err != nil {
		common.FatalLog("failed to create upload directory: " + err.Error())
	}

	server := gin.Default()
	server.MaxMultipartMemory = common.MaxUploadBytes
	server.Use(middleware.CORS())

	// Session store: cookie by default, redis when configured so sessions
	// survive across processes.
	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		size := opt.MinIdleConns
		if size <= 0 {
			size = 10
		}
		store, err := redis.NewStore(size, opt.Network, opt.Addr, opt.Password, []byte(common.SessionSecret))
		if err != nil {
			common.FatalLog("failed to create redis session store: " + err.Error())
		}
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	route.SetRouter(server)
	server.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, common.APIResponse{
				Success: false,
				Message: "API route not found",
			})
		} else {
			c.File("./web/dist/index.html")
		}
	})

	setupGracefulShutdown()

	port := strconv.Itoa(*common.Port)
	common.SysLog("server listening on port: " + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown closes the database cleanly on SIGINT/SIGTERM.
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysError("error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
