package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverS3    = "s3"
	StorageDriverMinio = "minio"

	defaultMaxFileBytes = 5 << 20 // 5 MiB per side
	defaultStepTimeout  = 10 * time.Second
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		Driver          string
		Region          string
		Endpoint        string
		AccessKeyID     string
		SecretAccessKey string
		UseSSL          bool
		BucketDocuments string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Upload struct {
		MaxFileBytes int64
		StepTimeout  time.Duration
	}
	Cognito struct {
		Region     string
		UserPoolID string
	}
	Tracing struct {
		Enabled        bool
		OTLPEndpoint   string
		SampleRate     float64
		ServiceVersion string
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		MQ      MQ
		Upload  Upload
		Cognito Cognito
		Tracing Tracing
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return b
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if n, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil && n > 0 {
		return n
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return def
}

func Load() Config {
	app := APP{
		Name:      getEnv("SERVICE_NAME", "docvaultapi"),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", "8080"),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	storage := Storage{
		Driver:          strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverS3)),
		Region:          getEnv("S3_REGION", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		UseSSL:          getEnvBool("S3_USE_SSL", true),
		BucketDocuments: getEnv("S3_BUCKET_DOCUMENTS", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}
	upload := Upload{
		MaxFileBytes: getEnvInt64("UPLOAD_MAX_FILE_BYTES", defaultMaxFileBytes),
		StepTimeout:  getEnvDuration("UPLOAD_STEP_TIMEOUT", defaultStepTimeout),
	}
	cognito := Cognito{
		Region:     getEnv("COGNITO_REGION", storage.Region),
		UserPoolID: getEnv("COGNITO_USER_POOL", ""),
	}
	tracing := Tracing{
		Enabled:        getEnvBool("OTEL_TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		SampleRate:     getEnvFloat("OTEL_SAMPLE_RATE", 1.0),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		MQ:      mq,
		Upload:  upload,
		Cognito: cognito,
		Tracing: tracing,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) ValidateStorage() error {
	if c.Storage.BucketDocuments == "" {
		return fmt.Errorf("invalid storage config: bucket is required")
	}
	switch c.Storage.Driver {
	case StorageDriverS3:
		return nil
	case StorageDriverMinio:
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("invalid storage config: minio requires an endpoint")
		}
		return nil
	}
	return fmt.Errorf("invalid storage config: unknown driver %q", c.Storage.Driver)
}
