package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App       `mapstructure:"app"`
	Postgres  `mapstructure:"postgres"`
	Redis     `mapstructure:"redis"`
	Generator `mapstructure:"generator"`
	Relay     `mapstructure:"relay"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Redis struct
type Redis struct {
	URL string `mapstructure:"url"`
}

// Generator struct - reply generator (OpenAI-compatible API) settings.
// An empty api_key disables automated replies; the relay still stores
// visitor messages.
type Generator struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	Timeout        int    `mapstructure:"timeout"`
	DefaultContext string `mapstructure:"default_context"`
}

// Relay struct - session store backend and discovery policy settings.
// Store selects the backend: memory (default), postgres or redis.
// StrictDiscovery makes staff writes to never-seen session ids fail
// instead of creating the session implicitly.
type Relay struct {
	Store           string `mapstructure:"store"`
	StrictDiscovery bool   `mapstructure:"strict_discovery"`
	PreviewLength   int    `mapstructure:"preview_length"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
