package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Environment holds the settings read from environment variables.
type Environment struct {
	Development bool
	LogLevel    string
	LogFile     string
	HTTPAddr    string
	BindHost    string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("development", false)
	v.SetDefault("log_level", "")
	v.SetDefault("log_file", "")
	v.SetDefault("http_addr", "")
	v.SetDefault("bind_host", "")
	v.AutomaticEnv()
	return v
}

// LoadEnvironment reads DEVELOPMENT, LOG_LEVEL, LOG_FILE, HTTP_ADDR and
// BIND_HOST.
func LoadEnvironment() Environment {
	v := newViper()
	return Environment{
		Development: v.GetBool("development"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
		HTTPAddr:    v.GetString("http_addr"),
		BindHost:    v.GetString("bind_host"),
	}
}

func (e Environment) Fields() logrus.Fields {
	return map[string]any{
		"development": e.Development,
		"log_level":   e.LogLevel,
		"log_file":    e.LogFile,
		"http_addr":   e.HTTPAddr,
		"bind_host":   e.BindHost,
	}
}

func (o Options) Fields() logrus.Fields {
	return map[string]any{
		"debug": o.Debug,
		"port":  o.Port,
		"size":  o.Size,
		"file":  o.File,
	}
}
