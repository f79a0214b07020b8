package draft

import (
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

const defaultRedisKeyPrefix = "arroyo:draft:"

type RedisRepository struct {
	db        redis.UniversalClient
	keyPrefix string
}

func NewRedisRepository(db redis.UniversalClient, keyPrefix string) *RedisRepository {
	if keyPrefix == "" {
		keyPrefix = defaultRedisKeyPrefix
	}
	return &RedisRepository{db: db, keyPrefix: keyPrefix}
}

func (r *RedisRepository) Get(key string) (string, bool, error) {
	val, err := r.db.Get(r.keyPrefix + key).Result()
	if err == redis.Nil {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.WithStack(err)
	}
	return val, true, nil
}

func (r *RedisRepository) Set(key string, text string) error {
	if err := r.db.Set(r.keyPrefix+key, text, 0).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (r *RedisRepository) Clear(key string) error {
	if err := r.db.Del(r.keyPrefix + key).Err(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
