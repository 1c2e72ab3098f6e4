package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"moviehub/backend/internal/logging"
)

// Config is built once at startup and treated as read-only afterwards.
type Config struct {
	Port        int
	DatabaseURL string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	OMDbAPIKey  string
	OMDbBaseURL string
	OMDbTimeout time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads the process environment, after merging any of the given
// dotenv files that exist (".env" when none are given). Variables already
// set in the environment win over dotenv values. Missing dotenv files are
// ignored; unreadable or malformed ones are an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", 5000)
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("OMDB_BASE_URL", "http://www.omdbapi.com/")
	v.SetDefault("OMDB_TIMEOUT", "10s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", logging.FormatConsole)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")

	cfg := Config{
		Port:               5000,
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             time.Hour,
		BcryptCost:         10,
		OMDbAPIKey:         v.GetString("OMDB_API_KEY"),
		OMDbBaseURL:        v.GetString("OMDB_BASE_URL"),
		OMDbTimeout:        10 * time.Second,
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = databaseURLFromParts(v)
	}

	if p, err := strconv.Atoi(v.GetString("PORT")); err == nil && p > 0 && p < 65536 {
		cfg.Port = p
	}
	if d, err := time.ParseDuration(v.GetString("JWT_TTL")); err == nil && d > 0 {
		cfg.JWTTTL = d
	}
	if n, err := strconv.Atoi(v.GetString("BCRYPT_COST")); err == nil && n >= 4 && n <= 31 {
		cfg.BcryptCost = n
	}
	if d, err := time.ParseDuration(v.GetString("OMDB_TIMEOUT")); err == nil && d > 0 {
		cfg.OMDbTimeout = d
	}

	return cfg, nil
}

// databaseURLFromParts assembles a postgres URL from DB_* variables.
// It returns "" when DB_HOST is unset.
func databaseURLFromParts(v *viper.Viper) string {
	host := strings.TrimSpace(v.GetString("DB_HOST"))
	if host == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, v.GetString("DB_PORT")),
		Path:   "/" + v.GetString("DB_NAME"),
	}
	if user := v.GetString("DB_USER"); user != "" {
		if pw := v.GetString("DB_PASSWORD"); pw != "" {
			u.User = url.UserPassword(user, pw)
		} else {
			u.User = url.User(user)
		}
	}
	q := url.Values{}
	q.Set("sslmode", v.GetString("DB_SSLMODE"))
	u.RawQuery = q.Encode()
	return u.String()
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

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}
