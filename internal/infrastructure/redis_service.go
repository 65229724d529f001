package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"auth-service/internal/config"
	"auth-service/internal/domain/entities"
)

// RedisService caches public profile lookups. It is optional: when no Redis
// address is configured (or the connection fails) the client stays nil and
// every operation is a no-op, so the service keeps working without a cache.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(cfg *config.Config) *RedisService {
	if cfg.RedisURL != "" {
		if opt, err := redis.ParseURL(cfg.RedisURL); err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(context.Background()).Err(); err == nil {
				log.Printf("Connected to Redis using REDIS_URL")
				return &RedisService{client: client}
			}
			log.Printf("Warning: Redis connection failed with REDIS_URL: %v", err)
		}
	}

	if cfg.RedisHost == "" {
		return &RedisService{client: nil}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Printf("Redis disabled, profile lookups go straight to the store")
		return &RedisService{client: nil}
	}

	log.Printf("Connected to Redis at %s:%s", cfg.RedisHost, cfg.RedisPort)
	return &RedisService{client: client}
}

func (r *RedisService) SetProfile(ctx context.Context, userID string, user *entities.User, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "profile:"+userID, userData, ttl).Err()
}

func (r *RedisService) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	if r.client == nil {
		return nil, redis.Nil
	}
	userData, err := r.client.Get(ctx, "profile:"+userID).Result()
	if err != nil {
		return nil, err
	}

	var user entities.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *RedisService) DeleteProfile(ctx context.Context, userID string) error {
	if r.client == nil {
		return nil
	}
	return r.client.Del(ctx, "profile:"+userID).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
