package config

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type GilasAI struct {
	ApiKey string `env:"GILAS_API_KEY,required"`
	ApiUrl string `env:"GILAS_API_URL" envDefault:"https://api.gilas.io/v1/chat/completions"`
	Model  string `env:"GILAS_GPT_MODEL" envDefault:"gpt-3.5-turbo"`
}

type Firebase struct {
	Type                    string        `env:"FIREBASE_TYPE,required" json:"type"`
	ProjectId               string        `env:"FIREBASE_PROJECT_ID,required" json:"project_id"`
	PrivateKeyId            string        `env:"FIREBASE_PRIVATE_KEY_ID,required" json:"private_key_id"`
	PrivateKey              string        `env:"FIREBASE_PRIVATE_KEY,required" json:"private_key"`
	ClientEmail             string        `env:"FIREBASE_CLIENT_EMAIL,required" json:"client_email"`
	ClientId                string        `env:"FIREBASE_CLIENT_ID,required" json:"client_id"`
	AuthUri                 string        `env:"FIREBASE_AUTH_URI,required" json:"auth_uri"`
	TokenUri                string        `env:"FIREBASE_TOKEN_URI,required" json:"token_uri"`
	AuthProviderX509CertUrl string        `env:"FIREBASE_AUTH_PROVIDER_X509_CERT_URL,required" json:"auth_provider_x509_cert_url"`
	ClientX509CertUrl       string        `env:"FIREBASE_CLIENT_X509_CERT_URL,required" json:"client_x509_cert_url"`
	WriteTimeoutSecond      time.Duration `env:"FIREBASE_WRITE_TIMEOUT_SECOND" json:"-"`
}

type HTTP struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	JWTSecret    string        `env:"JWT_SECRET,required"`
	CookieName   string        `env:"AUTH_COOKIE_NAME" envDefault:"winespace_session"`
	TokenTTL     time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"168h"`
	SecureCookie bool          `env:"AUTH_SECURE_COOKIE" envDefault:"true"`
	BaseURL      string        `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// AllowedOrigins is empty to allow any origin.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type Mail struct {
	Driver       string `env:"MAIL_DRIVER" envDefault:"log"` // smtp | ses | log
	From         string `env:"MAIL_FROM" envDefault:"WineSpace <no-reply@winespace.co.za>"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SESRegion    string `env:"SES_AWS_REGION" envDefault:"af-south-1"`
}

type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	TTL      time.Duration `env:"PAGE_CACHE_TTL" envDefault:"5m"`
}

type Scraper struct {
	Driver    string        `env:"SCRAPER_DRIVER" envDefault:"http"` // http | rod
	Timeout   time.Duration `env:"SCRAPER_TIMEOUT" envDefault:"30s"`
	MaxTokens int           `env:"SCRAPER_MAX_TOKENS" envDefault:"6000"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY"`
}

type Config struct {
	GilasAI
	Firebase
	HTTP
	Mail
	Redis
	Scraper
	Log
}

// LoadConfigOrPanic reads an optional .env file and then the process environment.
func LoadConfigOrPanic() Config {
	_ = godotenv.Load()

	var config *Config = new(Config)
	if err := env.Parse(config); err != nil {
		panic(err)
	}

	config.normalize()
	return *config
}

// Operator holds the sections the operator CLI needs; it reads no API or
// session secrets.
type Operator struct {
	Firebase
	Redis
	Log
}

// LoadOperatorConfigOrPanic is LoadConfigOrPanic for the operator CLI.
func LoadOperatorConfigOrPanic() Operator {
	_ = godotenv.Load()

	var config *Operator = new(Operator)
	if err := env.Parse(config); err != nil {
		panic(err)
	}

	config.Firebase.normalize()
	return *config
}

func (f *Firebase) normalize() {
	decodedBytes, err := base64.StdEncoding.DecodeString(f.PrivateKey)
	if err != nil {
		panic(err)
	}
	f.PrivateKey = string(decodedBytes)
	f.PrivateKey = strings.ReplaceAll(f.PrivateKey, "\\n", "\n")

	if f.WriteTimeoutSecond == 0 {
		f.WriteTimeoutSecond = time.Second * 30
	}
}

func (c *Config) normalize() {
	c.Firebase.normalize()

	c.Mail.Driver = strings.ToLower(strings.TrimSpace(c.Mail.Driver))
	c.Scraper.Driver = strings.ToLower(strings.TrimSpace(c.Scraper.Driver))

	if c.Scraper.MaxTokens <= 0 {
		c.Scraper.MaxTokens = 6000
	}
}
