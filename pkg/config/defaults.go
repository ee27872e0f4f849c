package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "homestay"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultEnvironment = "development"

	DefaultTokenTTL         = 7 * 24 * time.Hour
	DefaultCredentialCookie = "homestay_session"

	DefaultKafkaBrokers       = "localhost:9092"
	DefaultBookingEventsTopic = "homestay.booking.events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// SlotLockTTL bounds how long a booking advisory lock can survive a
	// crashed request before expiring on its own.
	SlotLockTTL = 10 * time.Second
)
