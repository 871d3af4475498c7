package config

import (
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	DatabaseCacheReset   int    `mapstructure:"DB_CACHE_RESET"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`

	JWTSecret           string        `mapstructure:"JWT_SECRET"`
	JWTExpiresIn        time.Duration `mapstructure:"JWT_EXPIRES_IN"`
	JWTRefreshExpiresIn time.Duration `mapstructure:"JWT_REFRESH_EXPIRES_IN"`

	AppTimezone      string `mapstructure:"APP_TIMEZONE"`
	SchedulerEnabled bool   `mapstructure:"SCHEDULER_ENABLED"`

	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	GoogleMapsAPIKey       string `mapstructure:"GOOGLE_MAPS_API_KEY"`
	DistanceTimeoutSeconds int    `mapstructure:"DISTANCE_TIMEOUT_SECONDS"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	SupportEmail string `mapstructure:"SUPPORT_EMAIL"`
}

var ConfigInstance Config

func New() (Config, error) {
	log := logger.New("config").Function("New")
	log.Info("Initializing config")

	viper.AutomaticEnv()
	setDefaults()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT", "DB_CACHE_RESET",
		"CORS_ALLOW_ORIGINS",
		"JWT_SECRET", "JWT_EXPIRES_IN", "JWT_REFRESH_EXPIRES_IN",
		"APP_TIMEZONE", "SCHEDULER_ENABLED",
		"FIREBASE_CREDENTIALS_FILE",
		"GOOGLE_MAPS_API_KEY", "DISTANCE_TIMEOUT_SECONDS",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM", "SUPPORT_EMAIL",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")

	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")

		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	log.Info(
		"Successfully initialized config",
		"environment", config.Environment,
		"port", config.ServerPort,
		"schedulerEnabled", config.SchedulerEnabled,
	)
	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func setDefaults() {
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_CACHE_RESET", -1)
	viper.SetDefault("JWT_EXPIRES_IN", 24*time.Hour)
	viper.SetDefault("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour)
	viper.SetDefault("APP_TIMEZONE", "Africa/Lagos")
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("DISTANCE_TIMEOUT_SECONDS", 5)
	viper.SetDefault("MINIO_BUCKET", "property-images")
	viper.SetDefault("SMTP_PORT", 587)
}

// Location resolves AppTimezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.AppTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.JWTSecret == "" {
		return log.ErrMsg("Fatal error: JWT_SECRET is required")
	}

	if config.JWTExpiresIn <= 0 || config.JWTRefreshExpiresIn <= 0 {
		return log.Error(
			"Fatal error: token lifetimes must be positive",
			"accessTTL", config.JWTExpiresIn,
			"refreshTTL", config.JWTRefreshExpiresIn,
		)
	}

	if _, err := time.LoadLocation(config.AppTimezone); err != nil {
		return log.Err("Fatal error: invalid APP_TIMEZONE", err, "timezone", config.AppTimezone)
	}

	if config.MinioEndpoint != "" && (config.MinioAccessKey == "" || config.MinioSecretKey == "") {
		return log.ErrMsg("Fatal error: MINIO_ACCESS_KEY and MINIO_SECRET_KEY required when MINIO_ENDPOINT is set")
	}

	if config.SMTPHost != "" && config.SupportEmail == "" {
		return log.ErrMsg("Fatal error: SUPPORT_EMAIL required when SMTP_HOST is set")
	}

	ConfigInstance = config
	return nil
}
