package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`
	DataBackend string `validate:"oneof=postgres memory"`

	PostgresAddress  string `validate:"required_if=DataBackend postgres"`
	PostgresPort     string `validate:"required_if=DataBackend postgres"`
	PostgresDB       string `validate:"required_if=DataBackend postgres"`
	PostgresUsername string
	PostgresPassword string
	MigrateOnStart   bool

	OperatorWorkers int `validate:"min=1,max=64"`

	// Receipt images
	ReceiptStore          string `validate:"oneof=none file drive"`
	ReceiptDir            string `validate:"required_if=ReceiptStore file"`
	DriveFolderID         string `validate:"required_if=ReceiptStore drive"`
	GoogleCredentialsFile string

	// OCR
	OCRProvider  string `validate:"oneof=none vision"`
	OCRCacheSize int    `validate:"min=1"`
	OCRCacheTTL  time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Ledger events
	AMQPURL      string `validate:"omitempty,url"`
	AMQPExchange string `validate:"required_with=AMQPURL"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]any{
	"PORT":                    "9446",
	"LOG_LEVEL":               "info",
	"DATA_BACKEND":            "postgres",
	"POSTGRES_ADDRESS":        "localhost",
	"POSTGRES_PORT":           "5433",
	"POSTGRES_DB":             "postgres",
	"POSTGRES_USERNAME":       "postgres",
	"POSTGRES_PASSWORD":       "testpassword",
	"MIGRATE_ON_START":        false,
	"OPERATOR_WORKERS":        1,
	"RECEIPT_STORE":           "file",
	"RECEIPT_DIR":             "./data/receipts",
	"DRIVE_FOLDER_ID":         "",
	"GOOGLE_CREDENTIALS_FILE": "",
	"OCR_PROVIDER":            "none",
	"OCR_CACHE_SIZE":          256,
	"OCR_CACHE_TTL":           24 * time.Hour,
	"REDIS_ADDRESS":           "",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"AMQP_URL":                "",
	"AMQP_EXCHANGE":           "club-ledger",
}

func ProcessEnvironmentVariables() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	env := Config{
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		DataBackend: v.GetString("DATA_BACKEND"),

		PostgresAddress:  v.GetString("POSTGRES_ADDRESS"),
		PostgresPort:     v.GetString("POSTGRES_PORT"),
		PostgresDB:       v.GetString("POSTGRES_DB"),
		PostgresUsername: v.GetString("POSTGRES_USERNAME"),
		PostgresPassword: v.GetString("POSTGRES_PASSWORD"),
		MigrateOnStart:   v.GetBool("MIGRATE_ON_START"),

		OperatorWorkers: v.GetInt("OPERATOR_WORKERS"),

		ReceiptStore:          v.GetString("RECEIPT_STORE"),
		ReceiptDir:            v.GetString("RECEIPT_DIR"),
		DriveFolderID:         v.GetString("DRIVE_FOLDER_ID"),
		GoogleCredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),

		OCRProvider:  v.GetString("OCR_PROVIDER"),
		OCRCacheSize: v.GetInt("OCR_CACHE_SIZE"),
		OCRCacheTTL:  v.GetDuration("OCR_CACHE_TTL"),

		RedisAddress:  v.GetString("REDIS_ADDRESS"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		AMQPURL:      v.GetString("AMQP_URL"),
		AMQPExchange: v.GetString("AMQP_EXCHANGE"),
	}

	if err := validator.New().Struct(&env); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &env, nil
}

// PostgresDSN builds a lib/pq URL. Credentials and the database name are
// escaped, so they may contain URL delimiters.
func (c *Config) PostgresDSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresAddress, c.PostgresPort),
		Path:     "/" + c.PostgresDB,
		RawQuery: url.Values{"sslmode": []string{"disable"}}.Encode(),
	}
	return dsn.String()
}
