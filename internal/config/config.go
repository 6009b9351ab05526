package config

import (
	"fmt"
	"time"

	"github.com/eskrenkovic/product-catalog-go/internal/env"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	PortEnv     = "PORT"
	LogLevelEnv = "LOG_LEVEL"

	MongoURIEnv                   = "MONGO_URI"
	MongoDatabaseEnv              = "MONGO_DATABASE"
	MongoCollectionEnv            = "MONGO_COLLECTION"
	MongoConnectTimeoutSecondsEnv = "MONGO_CONNECT_TIMEOUT_SECONDS"
	MongoUniqueNameIndexEnv       = "MONGO_UNIQUE_NAME_INDEX"
)

const (
	defaultPort                = 5000
	defaultLogLevel            = "info"
	defaultMongoURI            = "mongodb://localhost:27017"
	defaultMongoDatabase       = "products"
	defaultMongoCollection     = "products"
	defaultMongoConnectTimeout = 10
)

type MongoConfiguration struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration

	// UniqueNameIndex makes the store reject duplicate product names
	// in addition to the check done on create.
	UniqueNameIndex bool
}

type Config struct {
	Logger *zap.Logger

	Port  int
	Mongo MongoConfiguration
}

func Load() (Config, error) {
	level, err := zapcore.ParseLevel(env.GetStringOrDefault(LogLevelEnv, defaultLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", LogLevelEnv, err)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := loggerConfig.Build()
	if err != nil {
		return Config{}, err
	}

	port, err := env.GetIntOrDefault(PortEnv, defaultPort)
	if err != nil {
		return Config{}, err
	}

	connectTimeoutSeconds, err := env.GetIntOrDefault(MongoConnectTimeoutSecondsEnv, defaultMongoConnectTimeout)
	if err != nil {
		return Config{}, err
	}

	uniqueNameIndex, err := env.GetBoolOrDefault(MongoUniqueNameIndexEnv, false)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Logger: logger,
		Port:   port,
		Mongo: MongoConfiguration{
			URI:             env.GetStringOrDefault(MongoURIEnv, defaultMongoURI),
			Database:        env.GetStringOrDefault(MongoDatabaseEnv, defaultMongoDatabase),
			Collection:      env.GetStringOrDefault(MongoCollectionEnv, defaultMongoCollection),
			ConnectTimeout:  time.Duration(connectTimeoutSeconds) * time.Second,
			UniqueNameIndex: uniqueNameIndex,
		},
	}, nil
}
