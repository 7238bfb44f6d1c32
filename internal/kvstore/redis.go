// Package kvstore реализует локальное персистентное key-value хранилище
// на основе Redis. Значения сериализуются в JSON. Хранилище служит
// источником истины для локальных признаков подписки, когда реляционное
// хранилище недоступно или не сконфигурировано.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitpulse/fitpulse/internal/config"
)

// Store инкапсулирует клиент Redis.
type Store struct {
	Db *redis.Client
}

// InitServer подключается к Redis по настройкам из конфига и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "kvstore.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db}, nil
}

// Get читает значение по ключу и декодирует его в result.
// Возвращает false без ошибки, если ключ отсутствует.
func (s *Store) Get(key string, result any) (bool, error) {
	const op = "kvstore.Get"
	val, err := s.Db.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение по ключу. Нулевое expiration означает хранение без срока.
func (s *Store) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Db.Set(context.Background(), key, jsonData, expiration).Err()
}

// Delete удаляет значение по ключу.
func (s *Store) Delete(key string) error {
	return s.Db.Del(context.Background(), key).Err()
}
