package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type ServerCfg struct {
	Host string
	Port int
}

type DocumentCfg struct {
	MongoURI      string
	MongoDatabase string
}

type CacheCfg struct {
	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

type PubsubCfg struct {
	KafkaAddress string
	TaskTopic    string
}

type BlobCfg struct {
	ArchiveBucket string
}

type IngestCfg struct {
	UploadDir      string
	BatchSize      int
	MaxUploadBytes int64
	PoolSize       int
}

type AppCfg struct {
	Name        string
	Environment string
}

type Config struct {
	ServerCfg
	DocumentCfg
	CacheCfg
	PubsubCfg
	BlobCfg
	IngestCfg
	AppCfg
}

type In struct {
	ServerHost string `env:"HOST, default=0.0.0.0"`
	ServerPort int    `env:"PORT, default=8080"`

	MongoURI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE, default=movie_uploads"`

	RedisAddress  string `env:"REDIS_ADDRESS, default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD, default=secret"`
	RedisDB       int    `env:"REDIS_DB, default=0"`

	KafkaAddress string `env:"KAFKA_ADDRESS"`
	TaskTopic    string `env:"TASK_TOPIC, default=upload-tasks"`

	ArchiveBucket string `env:"ARCHIVE_BUCKET"`

	UploadDir      string `env:"UPLOAD_DIR, default=uploads"`
	BatchSize      int    `env:"BATCH_SIZE, default=10000"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES, default=10737418240"`
	PoolSize       int    `env:"POOL_SIZE, default=50"`

	AppName        string `env:"APP_NAME, default=upload-apis"`
	AppEnvironment string `env:"ENVIRONMENT, default=development"`
}

func LoadCfg(ctx context.Context) (Config, error) {
	var input In

	c, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := envconfig.Process(c, &input); err != nil {
		return Config{}, err
	}

	if err := validateConfig(input); err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServerCfg: ServerCfg{
			Host: input.ServerHost,
			Port: input.ServerPort,
		},
		DocumentCfg: DocumentCfg{
			MongoURI:      input.MongoURI,
			MongoDatabase: input.MongoDatabase,
		},
		CacheCfg: CacheCfg{
			RedisAddress:  input.RedisAddress,
			RedisPassword: input.RedisPassword,
			RedisDB:       input.RedisDB,
		},
		PubsubCfg: PubsubCfg{
			KafkaAddress: input.KafkaAddress,
			TaskTopic:    input.TaskTopic,
		},
		BlobCfg: BlobCfg{
			ArchiveBucket: input.ArchiveBucket,
		},
		IngestCfg: IngestCfg{
			UploadDir:      input.UploadDir,
			BatchSize:      input.BatchSize,
			MaxUploadBytes: input.MaxUploadBytes,
			PoolSize:       input.PoolSize,
		},
		AppCfg: AppCfg{
			Name:        input.AppName,
			Environment: input.AppEnvironment,
		},
	}

	return cfg, nil
}

func validateConfig(cfg In) error {
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return fmt.Errorf("expected port to be between 1 and 65535 but received: %d", cfg.ServerPort)
	}

	hostIP := net.ParseIP(cfg.ServerHost)
	if hostIP == nil {
		return fmt.Errorf("expected valid IPv4 address but received: %v", hostIP)
	}

	if cfg.BatchSize < 1 {
		return fmt.Errorf("expected batch size to be positive but received: %d", cfg.BatchSize)
	}

	if cfg.MaxUploadBytes < 1 {
		return fmt.Errorf("expected max upload bytes to be positive but received: %d", cfg.MaxUploadBytes)
	}

	return nil
}
