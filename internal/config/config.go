package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/molnpaket/checkout/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig   `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
	Stripe   StripeConfig   `validate:"required"`
	Email    EmailConfig    `validate:"required"`
	Checkout CheckoutConfig `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// StripeConfig holds the payment provider credentials
type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key" validate:"required"`
}

// EmailConfig holds the Resend credentials and sender identity.
// When disabled the checkout flow still completes; confirmation mail
// is skipped with a warning.
type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
	ReplyTo     string `mapstructure:"reply_to"`
}

// CheckoutConfig carries the static product catalog and the front end location
type CheckoutConfig struct {
	StaticDir string                   `mapstructure:"static_dir"`
	Products  map[string]ProductConfig `mapstructure:"products" validate:"required"`
}

// ProductConfig is one catalog entry as configured. MonthlyPrice is the
// SEK unit price in currency decimal, parsed by the catalog at startup.
type ProductConfig struct {
	PriceID      string `mapstructure:"price_id" validate:"required"`
	EURPriceID   string `mapstructure:"eur_price_id"`
	Name         string `mapstructure:"name" validate:"required"`
	MonthlyPrice string `mapstructure:"monthly_price" validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/checkout")

	v.SetEnvPrefix("CHECKOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests. No provider credentials are set.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:  ServerConfig{Address: ":3000"},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
		Checkout: CheckoutConfig{
			Products: map[string]ProductConfig{},
		},
	}
}
