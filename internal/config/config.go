// Package config reads the process configuration from the environment.
package config

import "os"

// Store drivers selectable via STORE_DRIVER.
const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
	DriverRedis = "redis"
)

type Config struct {
	Port    string
	RunMode string

	StoreDriver string
	MongoURI    string
	MongoDB     string
	MySQLDSN    string
	RedisAddr   string
}

// Load builds the configuration from environment variables. RUN_MODE selects
// the defaults profile: "dev" points at local backends, "prod" supplies no
// connection strings so an unconfigured deployment degrades to the in-process
// store instead of talking to a surprise localhost.
func Load() Config {
	mode := getenv("RUN_MODE", "dev")

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		RunMode:     mode,
		StoreDriver: getenv("STORE_DRIVER", DriverMongo),
		MongoDB:     getenv("MONGO_DB", "inventory"),
	}

	if mode == "dev" {
		cfg.MongoURI = getenv("MONGO_URI", "mongodb://localhost:27017")
		cfg.MySQLDSN = getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/inventory?parseTime=true")
		cfg.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	} else {
		cfg.MongoURI = os.Getenv("MONGO_URI")
		cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}

	return cfg
}

// ConnString returns the connection string for the configured driver; empty
// means no primary store is configured.
func (c Config) ConnString() string {
	switch c.StoreDriver {
	case DriverMySQL:
		return c.MySQLDSN
	case DriverRedis:
		return c.RedisAddr
	default:
		return c.MongoURI
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
