package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	App      *App
	ZaloPay  *ZaloPay
	Sweeper  *Sweeper
	Kafka    *Kafka
	Auth     *Auth
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type ZaloPay struct {
	AppID       string `env:"ZALOPAY_APP_ID"`
	Key1        string `env:"ZALOPAY_KEY1"`
	Key2        string `env:"ZALOPAY_KEY2"`
	CreateURL   string `env:"ZALOPAY_CREATE_URL"`
	QueryURL    string `env:"ZALOPAY_QUERY_URL"`
	CallbackURL string `env:"ZALOPAY_CALLBACK_URL"`
	SuccessURL  string `env:"PAYMENT_SUCCESS_URL"`
	FailureURL  string `env:"PAYMENT_FAILURE_URL"`
}

type Sweeper struct {
	Interval       time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	PendingTimeout time.Duration `env:"PENDING_TIMEOUT" envDefault:"15m"`
}

type Kafka struct {
	Brokers string `env:"KAFKA_BROKERS"`
	Topic   string `env:"KAFKA_ORDER_TOPIC" envDefault:"order-events"`
}

type Auth struct {
	// Key is the hex-encoded PASETO V4 symmetric key shared with the
	// identity service that issues tokens.
	Key string `env:"AUTH_TOKEN_KEY"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var app App
	var zalopay ZaloPay
	var sweeper Sweeper
	var kafka Kafka
	var auth Auth

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	err = env.Parse(&zalopay)
	if err != nil {
		return nil, fmt.Errorf("error parsing zalopay config: %w", err)
	}
	err = env.Parse(&sweeper)
	if err != nil {
		return nil, fmt.Errorf("error parsing sweeper config: %w", err)
	}
	err = env.Parse(&kafka)
	if err != nil {
		return nil, fmt.Errorf("error parsing kafka config: %w", err)
	}
	err = env.Parse(&auth)
	if err != nil {
		return nil, fmt.Errorf("error parsing auth config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		App:      &app,
		ZaloPay:  &zalopay,
		Sweeper:  &sweeper,
		Kafka:    &kafka,
		Auth:     &auth,
	}

	return &config, nil
}
