package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr = ":8080"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
	defaultListID     = 1
)

// Config holds everything the service reads from the environment. Missing
// integration credentials are not an error at startup: the respective gateway
// reports a config failure when it is actually used.
type Config struct {
	ListenAddr     string
	LogLevel       string
	LogFormat      string
	DatabaseURL    string
	AllowedOrigins []string

	Microsoft Microsoft
	Listmonk  Listmonk
	Recaptcha Recaptcha
	SMTP      SMTP
	RabbitMQ  RabbitMQ
}

// Microsoft holds the Graph client-credentials configuration for Bookings.
type Microsoft struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	BusinessID   string
}

// Complete reports whether the credential exchange can be attempted at all.
func (m Microsoft) Complete() bool {
	return m.ClientID != "" && m.ClientSecret != "" && m.TenantID != ""
}

type Listmonk struct {
	URL           string
	Username      string
	Password      string
	DefaultListID int
}

func (l Listmonk) Complete() bool {
	return l.URL != "" && l.Username != "" && l.Password != ""
}

type Recaptcha struct {
	SecretKey string
	MinScore  float64
}

func (r Recaptcha) Complete() bool {
	return r.SecretKey != ""
}

type SMTP struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string
}

func (s SMTP) Complete() bool {
	return s.Host != "" && s.From != "" && s.AdminEmail != ""
}

type RabbitMQ struct {
	URL string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		ListenAddr:  getenv("LISTEN_ADDR", defaultListenAddr),
		LogLevel:    getenv("LOG_LEVEL", defaultLogLevel),
		LogFormat:   getenv("LOG_FORMAT", defaultLogFormat),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		Microsoft: Microsoft{
			ClientID:     os.Getenv("MICROSOFT_CLIENT_ID"),
			ClientSecret: os.Getenv("MICROSOFT_CLIENT_SECRET"),
			TenantID:     os.Getenv("MICROSOFT_TENANT_ID"),
			BusinessID:   os.Getenv("MICROSOFT_BOOKINGS_BUSINESS_ID"),
		},
		Listmonk: Listmonk{
			URL:           strings.TrimRight(os.Getenv("LISTMONK_URL"), "/"),
			Username:      os.Getenv("LISTMONK_USERNAME"),
			Password:      os.Getenv("LISTMONK_PASSWORD"),
			DefaultListID: getenvInt("LISTMONK_DEFAULT_LIST_ID", defaultListID),
		},
		Recaptcha: Recaptcha{
			SecretKey: os.Getenv("RECAPTCHA_SECRET_KEY"),
			MinScore:  getenvFloat("RECAPTCHA_MIN_SCORE", 0.5),
		},
		SMTP: SMTP{
			Host:       os.Getenv("MAIL_HOST"),
			Port:       getenvInt("MAIL_PORT", 587),
			User:       os.Getenv("MAIL_USER"),
			Password:   os.Getenv("MAIL_PASS"),
			From:       os.Getenv("MAIL_FROM"),
			AdminEmail: os.Getenv("MAIL_ADMIN"),
		},
		RabbitMQ: RabbitMQ{
			URL: os.Getenv("RABBITMQ_URL"),
		},
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowedOrigins = []string{"*"}
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
