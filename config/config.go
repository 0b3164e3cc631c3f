package config

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Config struct {
	Env      string
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost string
	RedisPort string

	KafkaBroker        string
	NotificationsTopic string
	NotifyGroupID      string

	CookieName     string
	CookieSecure   bool
	SessionTTL     time.Duration
	FrontendOrigin string

	TaxRate              decimal.Decimal
	DuplicateOrderPolicy string
	BcryptCost           int
	ReceiptBaseURL       string

	SMTPAddr     string
	SMTPFrom     string
	SMTPUser     string
	SMTPPassword string

	GatewayAddr string
	PosSvcURL   string
	StaticDir   string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":4000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "pos"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		KafkaBroker:        getEnv("KAFKA_BROKER", "localhost:9092"),
		NotificationsTopic: getEnv("NOTIFICATIONS_TOPIC", "notifications"),
		NotifyGroupID:      getEnv("NOTIFY_GROUP_ID", "notify-svc"),

		CookieName:     getEnv("COOKIE_NAME", "qid"),
		CookieSecure:   getBool("COOKIE_SECURE", false),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour*365),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),

		TaxRate:              getDecimal("TAX_RATE", decimal.RequireFromString("0.05")),
		DuplicateOrderPolicy: strings.ToLower(getEnv("DUPLICATE_ORDER_POLICY", "reject")),
		BcryptCost:           getInt("BCRYPT_COST", 12),
		ReceiptBaseURL:       getEnv("RECEIPT_BASE_URL", "http://localhost:3000"),

		SMTPAddr:     getEnv("SMTP_ADDR", "localhost:1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@overcooked.local"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		GatewayAddr: getEnv("GATEWAY_ADDR", ":8080"),
		PosSvcURL:   getEnv("POS_SVC_URL", "http://localhost:4000"),
		StaticDir:   getEnv("STATIC_DIR", "./frontend"),
	}
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=disable"
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func NewLogger(cfg Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func MustInitPostgres(cfg Config, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(cfg Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if d, err := decimal.NewFromString(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
