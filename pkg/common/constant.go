package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyDBType string = "TEMPDASH_DB_TYPE"
	EnvKeyDbPath string = "TEMPDASH_DB_PATH"

	EnvKeyHttpHostPort string = "TEMPDASH_HTTP_HOST_PORT"

	EnvKeyLogDir string = "TEMPDASH_LOG_DIR"

	EnvKeyRedisAddr string = "TEMPDASH_REDIS_ADDR"

	EnvKeyJWTSecret string = "TEMPDASH_JWT_SECRET"

	EnvKeyRateWindowSeconds string = "TEMPDASH_RATE_WINDOW_SECONDS"
	EnvKeyRateBudgetRead    string = "TEMPDASH_RATE_BUDGET_READ"
	EnvKeyRateBudgetWrite   string = "TEMPDASH_RATE_BUDGET_WRITE"
	EnvKeyRateBudgetIngest  string = "TEMPDASH_RATE_BUDGET_INGEST"
	EnvKeyRateBudgetQuery   string = "TEMPDASH_RATE_BUDGET_QUERY"

	EnvKeySignatureToleranceSeconds string = "TEMPDASH_SIGNATURE_TOLERANCE_SECONDS"
	EnvKeyIdempotencyTTLHours       string = "TEMPDASH_IDEMPOTENCY_TTL_HOURS"

	LoggerNameMonitorCore   string = "monitor_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerFieldCategory     string = "category"
	LoggerCategoryIngest    string = "ingest"
	LoggerCategoryAlert     string = "alert"
	LoggerCategoryThreshold string = "threshold"
	LoggerCategoryAuthz     string = "authz"
)
