package node

import (
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	gatewayURLEnv = "MT5_GATEWAY_URL"
	logLevelEnv   = "MT5_LOG_LEVEL"
	mongoURIEnv   = "MONGO_URI"

	defaultTimeout  = 10 * time.Second
	defaultLogLevel = "info"
	defaultDatabase = "mt5bridge"
)

var validate = validator.New()

type GatewayConf struct {
	URL     string `json:"url" validate:"required,url"`
	Timeout string `json:"timeout"`
}

func (g GatewayConf) TimeoutDuration() time.Duration {
	if g.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(g.Timeout)
	if err != nil {
		return defaultTimeout
	}
	return d
}

type LogConf struct {
	Level string `json:"level"`
}

// MongoConf enables the trade journal when URI is set.
type MongoConf struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
	AppName  string `json:"appName"`
}

type Config struct {
	Gateway GatewayConf `json:"gateway"`
	Log     LogConf     `json:"log"`
	Mongo   MongoConf   `json:"mongo"`
}

func ParseConfig(filename string) (c Config, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return c, errors.Wrapf(err, "read config %s", filename)
	}
	if err = sonic.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "decode config %s", filename)
	}
	if v := os.Getenv(gatewayURLEnv); v != "" {
		c.Gateway.URL = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(mongoURIEnv); v != "" {
		c.Mongo.URI = v
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = defaultDatabase
	}
	if err = validate.Struct(c); err != nil {
		return c, errors.Wrap(err, "invalid config")
	}
	return c, nil
}
