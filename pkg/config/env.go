package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort        = "PORT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvEnvironment = "ENVIRONMENT"

	EnvTokenSecret      = "TOKEN_SECRET"
	EnvTokenTTL         = "TOKEN_TTL"
	EnvCredentialCookie = "CREDENTIAL_COOKIE"

	EnvKafkaBrokers       = "KAFKA_BROKERS"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
