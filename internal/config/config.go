package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultBaseURL is where a locally run KlicStudio service listens.
const DefaultBaseURL = "http://127.0.0.1:8888"

// Supported MCP transports.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

type Config struct {
	KlicStudioURL string `mapstructure:"klicstudio_url"`
	Transport     string `mapstructure:"transport"`
	ClientTimeout string `mapstructure:"client_timeout"` // Go duration string like "120s", "2m", etc.
	FetchTimeout  string `mapstructure:"fetch_timeout"`  // Go duration string for artifact downloads
	Server        struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
	LogLevel string `mapstructure:"log_level"`
	Cache    struct {
		Size int    `mapstructure:"size"` // Maximum number of entries in the artifact LRU cache
		TTL  string `mapstructure:"ttl"`  // Go duration string like "10m", "1h", etc.
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output.
	// Logs go to stderr: with the stdio transport, stdout belongs to the
	// protocol stream.
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("klicstudio_url", DefaultBaseURL)
	viper.SetDefault("transport", TransportStdio)
	viper.SetDefault("client_timeout", "120s")
	viper.SetDefault("fetch_timeout", "60s")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8001)
	viper.SetDefault("cache.size", 32)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("metrics.port", 9090)

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("KLICBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Environment variables honored without the prefix
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("klicstudio_url", "KLICSTUDIO_URL")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetLogger() zerolog.Logger {
	return logger
}
