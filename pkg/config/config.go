package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// La comparten el backend de referencia (cmd/api) y la consola (cmd/storefront).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	API      APIConfig
	Storage  StorageConfig
	Redirect RedirectConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL para el backend de referencia.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Backend     string // memory | postgres
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// APIConfig configuración del cliente HTTP de la consola.
// BaseURL "embedded" levanta el backend de referencia en el mismo proceso.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Embedded indica si la consola debe usar el backend en proceso.
func (c APIConfig) Embedded() bool {
	return strings.EqualFold(c.BaseURL, "embedded")
}

// StorageConfig configuración del almacenamiento persistente del cliente.
type StorageConfig struct {
	Driver     string // file | sqlite | redis | memory
	Path       string // archivo JSON o base SQLite
	RedisAddr  string
	RedisDB    int
	Prefix     string // prefijo de claves en Redis
	SessionKey string
	CartKey    string
}

// RedirectConfig parámetros de la cuenta regresiva antes de redirigir al login.
type RedirectConfig struct {
	Seconds  int
	Interval time.Duration
	Path     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, STORAGE_DRIVER, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := fromViper(v)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "storefront"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Backend:     getString(v, "BACKEND_STORE", "memory"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "storefront"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*7),
			Issuer:     getString(v, "JWT_ISSUER", "storefront"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		API: APIConfig{
			BaseURL: getString(v, "API_BASE_URL", "http://localhost:8080/api/v1"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Storage: StorageConfig{
			Driver:     getString(v, "STORAGE_DRIVER", "file"),
			Path:       getString(v, "STORAGE_PATH", ".storefront.json"),
			RedisAddr:  getString(v, "REDIS_ADDR", "localhost:6379"),
			RedisDB:    getInt(v, "REDIS_DB", 0),
			Prefix:     getString(v, "STORAGE_PREFIX", "storefront:"),
			SessionKey: getString(v, "SESSION_KEY", "auth"),
			CartKey:    getString(v, "CART_KEY", "cart"),
		},
		Redirect: RedirectConfig{
			Seconds:  getInt(v, "REDIRECT_SECONDS", 3),
			Interval: time.Duration(getInt(v, "REDIRECT_INTERVAL_MS", 1000)) * time.Millisecond,
			Path:     getString(v, "REDIRECT_PATH", "login"),
		},
	}
}

func (c *Config) validate() error {
	if c.Storage.SessionKey == c.Storage.CartKey {
		return fmt.Errorf("config: SESSION_KEY y CART_KEY deben ser distintas (%q)", c.Storage.SessionKey)
	}
	switch c.Storage.Driver {
	case "file", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
	}
	if c.Redirect.Seconds <= 0 {
		c.Redirect.Seconds = 3
	}
	if c.Redirect.Interval <= 0 {
		c.Redirect.Interval = time.Second
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
