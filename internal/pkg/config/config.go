package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=8090"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT, default=5m"`

	Services ServicesConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

// ServicesConfig holds the base URLs of the Credexa backend services the
// gateway fronts.
type ServicesConfig struct {
	LoginURL      string `env:"LOGIN_SERVICE_URL,      default=http://localhost:8081"`
	CustomerURL   string `env:"CUSTOMER_SERVICE_URL,   default=http://localhost:8083"`
	ProductURL    string `env:"PRODUCT_SERVICE_URL,    default=http://localhost:8084"`
	FDAccountURL  string `env:"FD_ACCOUNT_SERVICE_URL, default=http://localhost:8086"`
	CalculatorURL string `env:"CALCULATOR_SERVICE_URL, default=http://localhost:8087"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=credexa_gateway"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
