package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFinderDBType string = "FINDER_DB_TYPE"
	EnvKeyFinderDbPath string = "FINDER_DB_PATH"

	EnvKeyFinderHttpHostPort string = "FINDER_HTTP_HOST_PORT"

	EnvKeyFinderDefaultRate  string = "FINDER_DEFAULT_RATE"
	EnvKeyFinderDefaultBurst string = "FINDER_DEFAULT_BURST"

	EnvKeyFinderJwtSecret   string = "FINDER_JWT_SECRET"
	EnvKeyFinderJwtTTLHours string = "FINDER_JWT_TTL_HOURS"

	EnvKeyFinderSmtpHost string = "FINDER_SMTP_HOST"
	EnvKeyFinderSmtpPort string = "FINDER_SMTP_PORT"
	EnvKeyFinderSmtpUser string = "FINDER_SMTP_USER"
	EnvKeyFinderSmtpPass string = "FINDER_SMTP_PASS"
	EnvKeyFinderSmtpFrom string = "FINDER_SMTP_FROM"

	LoggerNameFinderCore    string = "finder_core"
	LoggerNameDeviceAgent   string = "device_agent"
	LoggerNameDispatcher    string = "dispatcher"
	LoggerNameAuth          string = "auth"
	LoggerNameRestfulServer string = "restful_server"

	LoggerFieldFinderCategory     string = "category"
	LoggerCategoryFinderDevice    string = "device"
	LoggerCategoryFinderCommand   string = "command"
	LoggerCategoryFinderActivity  string = "activity"
	LoggerCategoryFinderHeartbeat string = "heartbeat"
	LoggerCategoryFinderFeed      string = "feed"
	LoggerCategoryFinderSweeper   string = "sweeper"
)
