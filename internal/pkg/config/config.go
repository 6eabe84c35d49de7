package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Session backends accepted by SESSION_BACKEND.
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMySQL  = "mysql"
	BackendFile   = "file"
	BackendMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development" validate:"oneof=development production test"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	SessionBackend  string        `env:"SESSION_BACKEND,  default=redis"       validate:"oneof=redis mongo mysql file memory"`
	CookieSecure    bool          `env:"COOKIE_SECURE,    default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"         validate:"gt=0"`

	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	MySQL   MySQLConfig
	File    FileConfig
}

// BackendConfig points at the billing API the console fronts.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:5000/api" validate:"required,url"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"                       validate:"gt=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=traders_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN, default=console:console@tcp(localhost:3306)/traders_console"`
}

// FileConfig is used by the file session backend. An empty path means the
// per-user default location.
type FileConfig struct {
	Path string `env:"CONSOLE_SESSION_FILE"`
}

// Development reports whether human-friendly logging should be used.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &cfg, nil
}
