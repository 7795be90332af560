package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/auth"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/common"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/db"
	dashHttp "github.com/chetansierra/temperature-dashboard-sub001/pkg/http"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/monitor"
	"github.com/chetansierra/temperature-dashboard-sub001/pkg/store"
)

func envInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return parsed
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	dbType := os.Getenv(common.EnvKeyDBType)
	switch dbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown " + common.EnvKeyDBType + ": " + dbType)
	}

	jwtSecret := strings.TrimSpace(os.Getenv(common.EnvKeyJWTSecret))
	if jwtSecret == "" {
		log.Fatal(common.EnvKeyJWTSecret + " must be set")
	}

	logger := common.GetLogger()

	var kv store.KV
	if redisAddr := strings.TrimSpace(os.Getenv(common.EnvKeyRedisAddr)); redisAddr != "" {
		kv = store.NewRedisKV(redis.NewClient(&redis.Options{Addr: redisAddr}))
		logger.Info("Using redis backed counters", zap.String("addr", redisAddr))
	} else {
		kv = store.NewMemoryKV()
		logger.Info("Using in-process counters, rate limits and idempotency will not survive restarts")
	}

	window := time.Duration(envInt64(common.EnvKeyRateWindowSeconds, 60)) * time.Second
	budgets := map[monitor.EndpointClass]int64{
		monitor.ClassRead:   envInt64(common.EnvKeyRateBudgetRead, 600),
		monitor.ClassWrite:  envInt64(common.EnvKeyRateBudgetWrite, 120),
		monitor.ClassIngest: envInt64(common.EnvKeyRateBudgetIngest, 240),
		monitor.ClassQuery:  envInt64(common.EnvKeyRateBudgetQuery, 60),
	}
	tolerance := time.Duration(envInt64(common.EnvKeySignatureToleranceSeconds, 300)) * time.Second
	idempotencyTTL := time.Duration(envInt64(common.EnvKeyIdempotencyTTLHours, 24)) * time.Hour

	mon := &monitor.Monitor{
		Db: *dbInstance,
	}
	mon.WithServices(monitor.ServiceOpts{
		Ingest:    mon.GetIIngest(),
		Alert:     mon.GetIAlert(),
		Threshold: mon.GetIThreshold(),
	})

	rs := &dashHttp.RestfulServer{
		Server:   gin.Default(),
		Mon:      mon,
		Limiter:  monitor.NewWindowLimiter(kv, window, budgets),
		Idem:     monitor.NewIdempotencyCache(kv, idempotencyTTL),
		Verifier: monitor.NewSignatureVerifier(tolerance),
		Tokens:   auth.NewTokenManager(jwtSecret, ""),
	}
	rs.Setup()

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyHttpHostPort))
	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("HTTP server created with:",
		zap.Duration("rate_window", window),
		zap.Duration("signature_tolerance", tolerance),
		zap.Duration("idempotency_ttl", idempotencyTTL))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
