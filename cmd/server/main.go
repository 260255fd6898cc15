package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hostwell/shiftengine/internal/config"
	"github.com/hostwell/shiftengine/pkg/core/applier"
	"github.com/hostwell/shiftengine/pkg/handlers"
	"github.com/hostwell/shiftengine/pkg/postgres"
	"github.com/hostwell/shiftengine/pkg/utils/logging"
)

func main() {
	// Load .env if present; real config lives in the YAML file.
	_ = godotenv.Load()

	env := os.Getenv("SHIFTENGINE_ENV")
	if env == "" {
		env = "prod"
	}

	logger, err := logging.New(env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config: " + err.Error())
	}

	ctx := context.Background()
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database: " + err.Error())
	}
	defer database.Close()

	if err := database.RunMigrations(ctx); err != nil {
		logger.Fatal("failed to run migrations: " + err.Error())
	}

	mode := applier.ModeProduction
	if env != "prod" {
		mode = applier.ModeDevelopment
	}

	h := &handlers.Handler{
		Scenarios: database,
		Sessions:  database,
		Applied:   database,
		Logger:    logger,
		Mode:      mode,
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Shift scheduling assistant engine"})
	})
	h.Register(r)

	addr := os.Getenv("SHIFTENGINE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped: " + err.Error())
	}
}
