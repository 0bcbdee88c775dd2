package config

// EnvPrefix is the envconfig prefix applied to every variable.
const EnvPrefix = "STOCKROOM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv = "STOCKROOM_APP_ENV"
	EnvPort   = "STOCKROOM_APP_PORT"
	EnvDBDSN  = "STOCKROOM_DB_DSN"
	EnvDBHost = "STOCKROOM_DB_HOST"
	EnvDBUser = "STOCKROOM_DB_USER"
	EnvDBName = "STOCKROOM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
