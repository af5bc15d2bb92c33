package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_SECRET", "jwtsecret")
		t.Setenv("FRONTEND_URL", "http://shop.test")
		t.Setenv("STRIPE_SECRET_KEY", "sk_test_stripe")
		t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_paystack")
		t.Setenv("MAIL_PORT", "2525")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "jwtsecret", cfg.AppSecret)
		assert.Equal(t, "http://shop.test", cfg.FrontendURL)
		assert.Equal(t, "sk_test_stripe", cfg.StripeSecretKey)
		assert.Equal(t, "sk_test_paystack", cfg.PaystackSecretKey)
		assert.Equal(t, 2525, cfg.MailPort)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_SECRET", "jwtsecret")
		t.Setenv("APP_PORT", "")
		t.Setenv("CURRENCY", "")
		t.Setenv("MAIL_PORT", "not-a-number")
		t.Setenv("MAIL_FROM", "")
		t.Setenv("KAFKA_BROKERS", "")

		cfg := LoadConfig()

		assert.Equal(t, "4444", cfg.AppPort)
		assert.Equal(t, "NGN", cfg.Currency)
		assert.Equal(t, 587, cfg.MailPort)
		assert.Equal(t, "hello@brytashop.com", cfg.MailFrom)
		assert.Nil(t, cfg.KafkaBrokers)
	})
}
