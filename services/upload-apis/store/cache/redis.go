package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/errors"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/internal/models"
	"github.com/YatharthSamant/Imdb-Movie-Upload-Serivce/services/upload-apis/config"
)

type redisCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisCache(cfg config.CacheCfg) (StatusStore, error) {
	redis := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := redis.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisCache{redisClient: redis, ttl: 24 * time.Hour}, nil
}

func (r *redisCache) SetStatus(ctx context.Context, taskId string, status models.TaskStatus, progress int) error {
	k := taskKey(taskId)

	pipe := r.redisClient.Pipeline()
	pipe.HSet(ctx, k,
		"status", string(status),
		"progress", strconv.Itoa(progress),
	)
	pipe.Expire(ctx, k, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.New(apperrors.ErrCodeInternal, "failed to write task status", err)
	}

	return nil
}

func (r *redisCache) GetStatus(ctx context.Context, taskId string) (models.StatusSnapshot, error) {
	m, err := r.redisClient.HGetAll(ctx, taskKey(taskId)).Result()
	if err != nil {
		return models.StatusSnapshot{}, apperrors.New(apperrors.ErrCodeInternal, "failed to read task status", err)
	}
	if len(m) == 0 {
		return models.StatusSnapshot{}, apperrors.New(apperrors.ErrCodeNotFound, "task not found", nil)
	}

	progress, _ := strconv.Atoi(m["progress"])

	return models.StatusSnapshot{
		Status:   models.TaskStatus(m["status"]),
		Progress: progress,
	}, nil
}

func (r *redisCache) Shutdown(ctx context.Context) error {
	return r.redisClient.Close()
}

func taskKey(taskId string) string { return fmt.Sprintf("task:%s", taskId) }
