package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Facebook  Facebook  `mapstructure:",squash"`
	AdSense   AdSense   `mapstructure:",squash"`
	DailySync DailySync `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Facebook struct {
	BaseURL string `mapstructure:"facebook_base_url"`
	Version string `mapstructure:"facebook_api_version"`
}

type AdSense struct {
	BaseURL string `mapstructure:"adsense_base_url"`
	// TokenURL é o endpoint OAuth do Google usado para renovar access tokens
	TokenURL string `mapstructure:"adsense_token_url"`
	// DefaultTokenLifetimeSeconds é assumido quando a resposta de refresh
	// não informa expires_in
	DefaultTokenLifetimeSeconds int `mapstructure:"adsense_default_token_lifetime_seconds"`
}

type DailySync struct {
	HourUTC            int  `mapstructure:"daily_sync_hour_utc"`
	MinuteUTC          int  `mapstructure:"daily_sync_minute_utc"`
	MaxConcurrentUsers int  `mapstructure:"daily_sync_max_concurrent_users"`
	Enabled            bool `mapstructure:"daily_sync_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dash")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("FACEBOOK_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("FACEBOOK_API_VERSION", "v18.0")

	viper.SetDefault("ADSENSE_BASE_URL", "https://adsense.googleapis.com/v2")
	viper.SetDefault("ADSENSE_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("ADSENSE_DEFAULT_TOKEN_LIFETIME_SECONDS", 3600)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Defaults da sincronização diária de métricas
	viper.SetDefault("DAILY_SYNC_HOUR_UTC", 3)          // Todos os dias às 3h UTC
	viper.SetDefault("DAILY_SYNC_MINUTE_UTC", 0)
	viper.SetDefault("DAILY_SYNC_MAX_CONCURRENT_USERS", 4) // Usuários processados em paralelo
	viper.SetDefault("DAILY_SYNC_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
