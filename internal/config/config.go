package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is everything the API process reads from the environment.
type Config struct {
	Port             string
	AppEnv           string
	DatabaseURL      string
	TaxConfigPath    string // empty means the embedded tables
	PublishEnabled   bool
	CORSAllowOrigins []string
}

// Load reads configs/.env when present, then the environment. It reports
// whether the .env file was found so the caller can log it.
func Load() (Config, bool) {
	loaded := godotenv.Load("configs/.env") == nil
	return FromEnv(), loaded
}

func FromEnv() Config {
	publish, _ := strconv.ParseBool(os.Getenv("TAX_YEAR_PUBLISH_ENABLED"))
	return Config{
		Port:             getenvDefault("PORT", "8080"),
		AppEnv:           getenvDefault("APP_ENV", "production"),
		DatabaseURL:      dsnFromEnv(),
		TaxConfigPath:    os.Getenv("TAX_CONFIG_PATH"),
		PublishEnabled:   publish,
		CORSAllowOrigins: splitList(getenvDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
	}
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func dsnFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getenvDefault("DB_USER", "postgres"), getenvDefault("DB_PASSWORD", "postgres")),
		Host:   getenvDefault("DB_HOST", "localhost") + ":" + getenvDefault("DB_PORT", "5432"),
		Path:   "/" + getenvDefault("DB_NAME", "officebot"),
	}
	q := u.Query()
	q.Set("sslmode", getenvDefault("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
