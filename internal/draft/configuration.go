package draft

import (
	"fmt"
	"path/filepath"

	"github.com/go-redis/redis"
	"github.com/mitchellh/go-homedir"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type Configuration struct {
	// Type of store - must be one of 'file', 'memory' or 'redis'
	Backend string
	// Draft file location, only read by the file backend.
	// Defaults to ~/.arroyoctl/drafts.yaml
	Path  string
	Redis RedisConfig
}

// NewRepository builds the Repository selected by config.
func NewRepository(config Configuration) (Repository, error) {
	switch config.Backend {
	case "", BackendFile:
		path := config.Path
		if path == "" {
			home, err := homedir.Dir()
			if err != nil {
				return nil, fmt.Errorf("[NewRepository] error getting user home directory: %s", err)
			}
			path = filepath.Join(home, ".arroyoctl", "drafts.yaml")
		}
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("[NewRepository] error expanding draft path %s: %s", path, err)
		}
		return NewFileRepository(expanded), nil
	case BackendMemory:
		return NewInMemoryRepository(), nil
	case BackendRedis:
		db := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		return NewRedisRepository(db, config.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown draft backend %q", config.Backend)
	}
}
