package config

import (
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/vladima-ai/payment-service/internal/domain"
	"github.com/vladima-ai/payment-service/internal/robokassa"
)

type PaymentConfig struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	PaymentsDB `yaml:"payments_db"`
	Robokassa  `yaml:"robokassa"`
	Telegram   `yaml:"telegram"`
	Kafka      `yaml:"kafka"`
	Products   `yaml:"products"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type PaymentsDB struct {
	Dsn            string `yaml:"dsn" env:"PAYMENTS_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"PAYMENTS_DB_MIGRATIONS_PATH"`
}

type Robokassa struct {
	MerchantLogin string `yaml:"merchant_login" env:"ROBOKASSA_MERCHANT_LOGIN"`
	Password1     string `yaml:"password1" env:"ROBOKASSA_PASSWORD1"`
	Password2     string `yaml:"password2" env:"ROBOKASSA_PASSWORD2"`
	// Test passwords come from the gateway's technical settings and are valid
	// only with IsTest=1. The live and test pairs are configured independently:
	// live passwords under IsTest=1 cause a silent gateway-side rejection.
	TestPassword1 string `yaml:"test_password1" env:"ROBOKASSA_TEST_PASSWORD1"`
	TestPassword2 string `yaml:"test_password2" env:"ROBOKASSA_TEST_PASSWORD2"`
	MerchantURL   string `yaml:"merchant_url" env:"ROBOKASSA_MERCHANT_URL" env-default:"https://auth.robokassa.ru/Merchant/Index.aspx"`
	IsTest        bool   `yaml:"is_test" env:"ROBOKASSA_IS_TEST" env-default:"false"`
}

type Telegram struct {
	BotToken         string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	BotUsername      string `yaml:"bot_username" env:"TELEGRAM_BOT_USERNAME"`
	WebinarAccessURL string `yaml:"webinar_access_url" env:"WEBINAR_ACCESS_URL"`
	ProBotURL        string `yaml:"pro_bot_url" env:"PRO_BOT_URL"`
}

type Kafka struct {
	Brokers string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	Topic   string `yaml:"topic" env:"KAFKA_PAYMENT_TOPIC" env-default:"payment-events"`
}

type Products struct {
	Webinar       Product `yaml:"webinar" env-prefix:"WEBINAR_"`
	GroupStandard Product `yaml:"group_standard" env-prefix:"GROUP_STANDARD_"`
	GroupVIP      Product `yaml:"group_vip" env-prefix:"GROUP_VIP_"`
	Pro           Product `yaml:"pro" env-prefix:"PRO_"`
}

type Product struct {
	Price       string `yaml:"price" env:"PRICE_RUB"`
	Description string `yaml:"description" env:"DESCRIPTION"`
}

func MustLoad() *PaymentConfig {
	var cfg PaymentConfig

	configPath := os.Getenv("PAYMENT_CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			log.Fatalf("failed to find config file: %v\n", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("failed to read config file: %v", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("failed to read config from env: %v", err)
		}
	}

	applyPriceDefaults(&cfg.Products)
	return &cfg
}

// Default price table (RUB).
func applyPriceDefaults(p *Products) {
	defaults := []struct {
		product     *Product
		price       string
		description string
	}{
		{&p.Webinar, "2990", "Вебинар"},
		{&p.GroupStandard, "24990", "Групповые занятия — Стандарт"},
		{&p.GroupVIP, "45990", "Групповые занятия — VIP"},
		{&p.Pro, "990", "Доступ к ИИ-психологу"},
	}
	for _, d := range defaults {
		if d.product.Price == "" {
			d.product.Price = d.price
		}
		if d.product.Description == "" {
			d.product.Description = d.description
		}
	}
}

// Validate checks the secrets every entry point needs. Missing values are
// fatal at startup, never silently skipped.
func (c *PaymentConfig) Validate() error {
	required := map[string]string{
		"ROBOKASSA_MERCHANT_LOGIN": c.Robokassa.MerchantLogin,
		"PAYMENTS_DB_DSN":          c.PaymentsDB.Dsn,
	}
	if c.Robokassa.IsTest {
		required["ROBOKASSA_TEST_PASSWORD1"] = c.Robokassa.TestPassword1
		required["ROBOKASSA_TEST_PASSWORD2"] = c.Robokassa.TestPassword2
	} else {
		required["ROBOKASSA_PASSWORD1"] = c.Robokassa.Password1
		required["ROBOKASSA_PASSWORD2"] = c.Robokassa.Password2
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingConfiguration, name)
		}
	}
	return nil
}

// Gateway returns the outbound-URL settings with the password pair matching
// the configured mode.
func (c *PaymentConfig) Gateway() robokassa.Gateway {
	return robokassa.Gateway{
		MerchantURL: c.Robokassa.MerchantURL,
		IsTest:      c.Robokassa.IsTest,
		Creds:       c.Credentials(),
	}
}

func (c *PaymentConfig) Credentials() robokassa.Credentials {
	creds := robokassa.Credentials{
		MerchantLogin: c.Robokassa.MerchantLogin,
		Password1:     c.Robokassa.Password1,
		Password2:     c.Robokassa.Password2,
	}
	if c.Robokassa.IsTest {
		creds.Password1 = c.Robokassa.TestPassword1
		creds.Password2 = c.Robokassa.TestPassword2
	}
	return creds
}

// ProductByCode resolves the configured price and description for a product.
func (c *PaymentConfig) ProductByCode(code string) (Product, error) {
	switch code {
	case domain.ProductWebinar:
		return c.Products.Webinar, nil
	case domain.ProductGroupStandard:
		return c.Products.GroupStandard, nil
	case domain.ProductGroupVIP:
		return c.Products.GroupVIP, nil
	case domain.ProductPro:
		return c.Products.Pro, nil
	default:
		return Product{}, fmt.Errorf("%w: %q", domain.ErrUnknownProduct, code)
	}
}
