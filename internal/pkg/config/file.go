package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// FileSettings is the optional YAML file read by consolectl. Values there
// sit below the environment: a variable that is set always wins.
type FileSettings struct {
	BackendURL     string `yaml:"backend_url"`
	BackendTimeout string `yaml:"backend_timeout"`
	SessionBackend string `yaml:"session_backend"`
	SessionFile    string `yaml:"session_file"`
	LogLevel       string `yaml:"log_level"`
	RedisAddr      string `yaml:"redis_addr"`
	MongoURI       string `yaml:"mongo_uri"`
	MySQLDSN       string `yaml:"mysql_dsn"`
}

// ReadFile parses path. A missing file yields empty settings.
func ReadFile(path string) (*FileSettings, error) {
	var fs FileSettings
	if path == "" {
		return &fs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fs, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &fs, nil
}

// vars maps the file settings onto the variable names Config reads.
func (fs *FileSettings) vars() map[string]string {
	m := make(map[string]string)
	set := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	set("BACKEND_URL", fs.BackendURL)
	set("BACKEND_TIMEOUT", fs.BackendTimeout)
	set("SESSION_BACKEND", fs.SessionBackend)
	set("CONSOLE_SESSION_FILE", fs.SessionFile)
	set("LOG_LEVEL", fs.LogLevel)
	set("REDIS_ADDR", fs.RedisAddr)
	set("MONGO_URI", fs.MongoURI)
	set("MYSQL_DSN", fs.MySQLDSN)
	return m
}

// LoadCLI reads the environment, falling back to the YAML file at path for
// unset variables. The CLI defaults to the file session backend.
func LoadCLI(ctx context.Context, path string, env envconfig.Lookuper) (*Config, error) {
	fs, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	vars := fs.vars()
	if _, ok := vars["SESSION_BACKEND"]; !ok {
		vars["SESSION_BACKEND"] = BackendFile
	}
	return LoadWith(ctx, envconfig.MultiLookuper(env, envconfig.MapLookuper(vars)))
}
