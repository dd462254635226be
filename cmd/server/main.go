package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"lostfound.dev/device-finder-service/pkg/auth"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/db"
	"lostfound.dev/device-finder-service/pkg/finder"
	finderHttp "lostfound.dev/device-finder-service/pkg/http"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	finderDbType := os.Getenv(common.EnvKeyFinderDBType)
	switch finderDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FINDER_DB_TYPE: " + finderDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyFinderHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyFinderDefaultRate), 64); err != nil {
		log.Fatal("Invalid FINDER_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyFinderDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid FINDER_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	jwtSecret := strings.TrimSpace(os.Getenv(common.EnvKeyFinderJwtSecret))
	if jwtSecret == "" {
		log.Fatal("FINDER_JWT_SECRET not set in .env")
	}

	tokenTTL := 24 * time.Hour
	if hours, err := strconv.Atoi(os.Getenv(common.EnvKeyFinderJwtTTLHours)); err == nil && hours > 0 {
		tokenTTL = time.Duration(hours) * time.Hour
	}

	logger := common.GetLogger()

	core := finder.Finder{
		Db:   *dbInstance,
		Feed: finder.NewFeed(),
	}
	core.WithServices(finder.ServiceOpts{
		Device:   core.GetIDevice(),
		Command:  core.GetICommand(),
		Activity: core.GetIActivity(),
	})

	authService := auth.NewService(*dbInstance, []byte(jwtSecret), tokenTTL)
	authService.Mailer = auth.MailerFromEnv()

	sweeper, err := core.StartStatusSweeper(finder.DefaultSweepSpec)
	if err != nil {
		log.Fatalf("failed to start status sweeper: %v", err)
	}
	defer sweeper.Stop()

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &finderHttp.RestfulServer{
		Server:           gin.Default(),
		Core:             &core,
		Auth:             authService,
		RateLimiterStore: finder.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.Float64("default_rate", defaultRate),
		zap.Int64("default_burst", defaultBurst),
	)

	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
