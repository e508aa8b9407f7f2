package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutConfig struct {
	TaxRate decimal.Decimal
	Timeout time.Duration
}

type AfricaTalkingConfig struct {
	Username string
	APIKey   string
	SMSURL   string
	SenderID string
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

// LoadCheckoutConfig resolves the tax rate and transaction deadline once;
// every line of a single order settles against the same rate.
func LoadCheckoutConfig() CheckoutConfig {
	rate, err := decimal.NewFromString(getEnvOrDefault("TAX_RATE", "0.08"))
	if err != nil {
		log.Printf("Invalid TAX_RATE, falling back to 0.08: %v", err)
		rate = decimal.NewFromFloat(0.08)
	}

	seconds, err := strconv.Atoi(getEnvOrDefault("CHECKOUT_TIMEOUT_SECONDS", "5"))
	if err != nil || seconds <= 0 {
		seconds = 5
	}

	return CheckoutConfig{
		TaxRate: rate,
		Timeout: time.Duration(seconds) * time.Second,
	}
}

func LoadAfricaTalkingConfig() AfricaTalkingConfig {
	return AfricaTalkingConfig{
		Username: os.Getenv("AT_USERNAME"),
		APIKey:   os.Getenv("AT_API_KEY"),
		SMSURL:   getEnvOrDefault("AT_SMS_URL", "https://api.sandbox.africastalking.com/version1/messaging"), // Sandbox URL
		SenderID: getEnvOrDefault("AT_SENDER_ID", "AFRICASTKNG"),
	}
}

func LoadEmailConfig() EmailConfig {
	return EmailConfig{
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
		SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
