package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Data          Data          `mapstructure:",squash"`
	Cache         Cache         `mapstructure:",squash"`
	LLM           LLM           `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	InsightWarmup InsightWarmup `mapstructure:",squash"`
	ProfileLimit  int           `mapstructure:"profile_limit"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Data aponta para o diretório com os arquivos JSON (orders.json, feedbacks.json, ...)
type Data struct {
	Dir string `mapstructure:"data_dir"`
}

type Cache struct {
	Backend string        `mapstructure:"cache_backend"`
	TTL     time.Duration `mapstructure:"cache_ttl"`
	Redis   Redis         `mapstructure:",squash"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type LLM struct {
	Enabled           bool          `mapstructure:"llm_enabled"`
	URL               string        `mapstructure:"llm_url"`
	APIKey            string        `mapstructure:"llm_api_key"`
	Model             string        `mapstructure:"llm_model"`
	Timeout           time.Duration `mapstructure:"llm_timeout"`
	MaxElapsedSeconds int           `mapstructure:"llm_max_elapsed_seconds"`
}

type Database struct {
	Enabled  bool   `mapstructure:"database_enabled"`
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type InsightWarmup struct {
	CronSchedule string `mapstructure:"insight_warmup_cron"`
	Enabled      bool   `mapstructure:"insight_warmup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("PROFILE_LIMIT", 180)

	viper.SetDefault("CACHE_BACKEND", "memory")
	viper.SetDefault("CACHE_TTL", "15m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LLM_ENABLED", false)
	viper.SetDefault("LLM_URL", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("LLM_API_KEY", "")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("LLM_TIMEOUT", "20s")
	viper.SetDefault("LLM_MAX_ELAPSED_SECONDS", 30)

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insights?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("INSIGHT_WARMUP_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("INSIGHT_WARMUP_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

const (
	DefaultLLMTimeout    = 20 * time.Second
	DefaultLLMMaxElapsed = 30 * time.Second
)

// LLMTimeout é o timeout de cada tentativa de chamada ao modelo
func (c *Config) LLMTimeout() time.Duration {
	if c.LLM.Timeout <= 0 {
		return DefaultLLMTimeout
	}
	return c.LLM.Timeout
}

// LLMMaxElapsed é o tempo total permitido para as tentativas de chamada ao modelo.
// Valores não positivos usam o padrão, nunca "tentar para sempre".
func (c *Config) LLMMaxElapsed() time.Duration {
	if c.LLM.MaxElapsedSeconds <= 0 {
		return DefaultLLMMaxElapsed
	}
	return time.Duration(c.LLM.MaxElapsedSeconds) * time.Second
}

// LLMDeadline limita uma chamada ao modelo do início ao fim, somando as tentativas e a última requisição
func (c *Config) LLMDeadline() time.Duration {
	return c.LLMTimeout() + c.LLMMaxElapsed()
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
