package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Firebase FirebaseConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Reset    ResetConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	WebAPIKey       string
}

// StoreConfig selects the document store backend. Driver is
// "firestore" or "postgres".
type StoreConfig struct {
	Driver string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

type ResetConfig struct {
	CodeTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	codeTTL, err := time.ParseDuration(viper.GetString("RESET_CODE_TTL"))
	if err != nil {
		codeTTL = 10 * time.Minute
	}

	storeDriver := viper.GetString("STORE_DRIVER")
	if storeDriver == "" {
		storeDriver = "firestore"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       viper.GetString("FIREBASE_PROJECT_ID"),
			CredentialsFile: viper.GetString("FIREBASE_CREDENTIALS_FILE"),
			WebAPIKey:       viper.GetString("FIREBASE_WEB_API_KEY"),
		},
		Store: StoreConfig{
			Driver: storeDriver,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Storage: StorageConfig{
			Bucket:        viper.GetString("S3_BUCKET"),
			Region:        viper.GetString("S3_REGION"),
			Endpoint:      viper.GetString("S3_ENDPOINT"),
			PublicBaseURL: viper.GetString("S3_PUBLIC_BASE_URL"),
		},
		Reset: ResetConfig{
			CodeTTL: codeTTL,
		},
	}

	return config, nil
}
