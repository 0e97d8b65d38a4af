package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	GrpcServicePort  string
	MongoDBConfig    MongoDBConfig
	PostgreSQLConfig PostgreSQLConfig
	KafkaConfig      KafkaConfig
	JWTSecret        string
	MidtransConfig   MidtransConfig
	TracingConfig    TracingConfig
	SMTPConfig       SMTPConfig
	OutboxConfig     OutboxConfig
}

type MongoDBConfig struct {
	DBHost string
	DBPort string
	DBName string
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	ConsumerGroupID string
	WriteTimeout    time.Duration
}

type MidtransConfig struct {
	ServerKey  string
	Production bool
}

type TracingConfig struct {
	CollectorHost string
	CollectorPort string
	Insecure      bool
	// SampleRatio is the share of root traces kept, between 0 and 1.
	SampleRatio float64
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// OutboxConfig controls the relay job that moves recorded order events to the broker.
type OutboxConfig struct {
	RelayInterval time.Duration
	BatchSize     int
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:     getEnv("SERVICE_PORT", "3000"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		GrpcServicePort: getEnv("GRPC_SERVICE_PORT", "50051"),
		MongoDBConfig: MongoDBConfig{
			DBHost: os.Getenv("MONGO_HOST"),
			DBPort: os.Getenv("MONGO_PORT"),
			DBName: getEnv("MONGO_DB_NAME", "swapify"),
		},
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     getEnv("BROKER_TOPIC", "swapify-orders"),
			ConsumerGroupID: getEnv("BROKER_GROUP_ID", "swapify-order-history"),
			WriteTimeout:    10 * time.Second,
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		MidtransConfig: MidtransConfig{
			ServerKey:  os.Getenv("MIDTRANS_SERVER_KEY"),
			Production: os.Getenv("MIDTRANS_ENVIRONMENT") == "production",
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
			CollectorPort: getEnv("COLLECTOR_PORT", "4318"),
			Insecure:      os.Getenv("COLLECTOR_INSECURE") != "false",
			SampleRatio:   1,
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		OutboxConfig: OutboxConfig{
			RelayInterval: 10 * time.Second,
			BatchSize:     50,
		},
	}

	writeTimeout, err := time.ParseDuration(os.Getenv("BROKER_WRITE_TIMEOUT"))
	if err == nil && writeTimeout > 0 {
		conf.KafkaConfig.WriteTimeout = writeTimeout
	}

	sampleRatio, err := strconv.ParseFloat(os.Getenv("TRACING_SAMPLE_RATIO"), 64)
	if err == nil && sampleRatio >= 0 && sampleRatio <= 1 {
		conf.TracingConfig.SampleRatio = sampleRatio
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	relayInterval, err := time.ParseDuration(os.Getenv("OUTBOX_RELAY_INTERVAL"))
	if err == nil && relayInterval > 0 {
		conf.OutboxConfig.RelayInterval = relayInterval
	}

	batchSize, err := strconv.Atoi(os.Getenv("OUTBOX_BATCH_SIZE"))
	if err == nil && batchSize > 0 {
		conf.OutboxConfig.BatchSize = batchSize
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
