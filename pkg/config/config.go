package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Redis    RedisConfig
	Session  SessionConfig
	Recovery RecoveryConfig
	SMTP     SMTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
	// PublicURL base pública para armar enlaces salientes (ej. el de
	// recuperación de contraseña del email).
	PublicURL string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuración del session store.
type RedisConfig struct {
	URL string // redis://[:password@]host:port/db
}

// SessionConfig parámetros de la sesión server-side.
type SessionConfig struct {
	TTLHours   int
	CookieName string
}

// RecoveryConfig parámetros del token de recuperación de contraseña.
type RecoveryConfig struct {
	Secret     string
	TTLMinutes int
}

// SMTPConfig transporte de correo saliente.
type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	Encryption string // ssl, starttls, none
}

// Addr devuelve host:port del servidor SMTP.
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SMTP_HOST, etc.
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
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "tienda-api"),
			PublicURL: getString(v, "APP_PUBLIC_URL", "http://localhost:8080"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", "redis://localhost:6379/0"),
		},
		Session: SessionConfig{
			TTLHours:   getInt(v, "SESSION_TTL_HOURS", 24),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "sid"),
		},
		Recovery: RecoveryConfig{
			Secret:     getString(v, "RECOVERY_SECRET", ""),
			TTLMinutes: getInt(v, "RECOVERY_TTL_MINUTES", 60),
		},
		SMTP: SMTPConfig{
			Host:       getString(v, "SMTP_HOST", "smtp.gmail.com"),
			Port:       getInt(v, "SMTP_PORT", 465),
			User:       getString(v, "SMTP_USER", ""),
			Password:   getString(v, "SMTP_PASSWORD", ""),
			From:       getString(v, "SMTP_FROM", ""),
			Encryption: getString(v, "SMTP_ENCRYPTION", "ssl"),
		},
	}

	if cfg.Recovery.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: RECOVERY_SECRET es obligatorio en producción")
	}

	return cfg, nil
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
		case string:
			// Un valor no numérico cae al default en vez de colarse como 0.
			if n, err := strconv.Atoi(v.GetString(key)); err == nil {
				return n
			}
			return def
		default:
			return v.GetInt(key)
		}
	}
	return def
}
