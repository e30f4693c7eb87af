package main

import (
	"context"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"planboard/cmd"
	httpadapter "planboard/internal/adapters/in/http"
	"planboard/internal/adapters/out/postgres/auditrepo"
	"planboard/internal/adapters/out/postgres/orderrepo"
	"planboard/internal/adapters/out/postgres/workcentrerepo"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go root.Hub().Run(hubCtx)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(stdhttp.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.CreateStartMoveCommandHandler(),
		root.CreateCommitMoveCommandHandler(),
		root.CreateEndMoveCommandHandler(),
		root.CreateChangeStatusCommandHandler(),
		root.CreateReorderQueueCommandHandler(),
		root.CreateCreateOrderCommandHandler(),
		root.CreateDeleteOrderCommandHandler(),
		root.CreateCreateWorkCentreCommandHandler(),
		root.CreateDeleteWorkCentreCommandHandler(),
		root.CreateGetBoardQueryHandler(),
		root.CreateGetWorkCentresQueryHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.Hub(),
		configs.IntegrationToken,
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != stdhttp.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		IntegrationToken: goDotEnvVariable("INTEGRATION_TOKEN"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError maps constraint violations onto gorm's sentinel errors
	// so the repositories can classify them
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&workcentrerepo.WorkCentreDTO{},
		&auditrepo.AuditEntryDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}
