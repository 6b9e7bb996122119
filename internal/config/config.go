package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/tgcart/internal/common/constants"
	"github.com/Alturino/tgcart/internal/log"
)

type Application struct {
	Env     string `mapstructure:"env"      json:"env"`
	Host    string `mapstructure:"host"     json:"host"`
	LogPath string `mapstructure:"log_path" json:"log_path"`
	Port    int    `mapstructure:"port"     json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

// Bridge configures the server host's stand-in for Telegram.WebApp.sendData.
type Bridge struct {
	WebhookURL          string `mapstructure:"webhook_url"            json:"webhook_url"`
	MainButtonText      string `mapstructure:"main_button_text"       json:"main_button_text"`
	MainButtonColor     string `mapstructure:"main_button_color"      json:"main_button_color"`
	MainButtonTextColor string `mapstructure:"main_button_text_color" json:"main_button_text_color"`
	TimeoutSeconds      int    `mapstructure:"timeout_seconds"        json:"timeout_seconds"`
}

type Cart struct {
	KeyPrefix string `mapstructure:"key_prefix" json:"key_prefix"`
}

type Config struct {
	Application `mapstructure:"application" json:"application"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Bridge      `mapstructure:"bridge"      json:"bridge"`
	Cart        `mapstructure:"cart"        json:"cart"`
}

var (
	once   sync.Once
	config *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", constants.EnvProduction)
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8080)
	v.SetDefault("application.log_path", constants.DefaultLogPath)
	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("otel.host", "otel-collector")
	v.SetDefault("otel.port", 4317)
	v.SetDefault("bridge.timeout_seconds", 10)
	v.SetDefault("bridge.main_button_text", "Order")
	v.SetDefault("bridge.main_button_color", "#008000")
	v.SetDefault("bridge.main_button_text_color", "#FFFFFF")
	v.SetDefault("cart.key_prefix", constants.DefaultCartPath)
}

// Load reads <filename>.yaml from path and the environment. A missing file
// is fine as long as defaults and environment cover the rest.
func Load(c context.Context, path string, filename string) (*Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "config Load").
		Str("filename", filename).
		Logger()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.AddConfigPath(path)
	v.SetConfigType(constants.DefaultEnvType)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
	logger.Info().Msg("reading config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("failed reading config with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Warn().Err(err).Msg("config file not found, using defaults and environment")
	}
	logger.Info().Msg("read config")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
	logger.Info().Msg("unmarshaling config")
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		err = fmt.Errorf("failed unmarshaling config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Any(log.KeyConfig, cfg).Msg("unmarshaled config")
	return &cfg, nil
}

// InitConfig loads the process config once and exits on failure.
func InitConfig(c context.Context, filename string) *Config {
	once.Do(func() {
		cfg, err := Load(c, constants.DefaultEnvPath, filename)
		if err != nil {
			zerolog.Ctx(c).Fatal().Err(err).Msg(err.Error())
		}
		config = cfg
	})
	return config
}
