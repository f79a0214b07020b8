package draft

import (
	"github.com/patrickmn/go-cache"
)

type InMemoryRepository struct {
	entries *cache.Cache
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{entries: cache.New(cache.NoExpiration, 0)}
}

func (r *InMemoryRepository) Get(key string) (string, bool, error) {
	value, ok := r.entries.Get(key)
	if !ok {
		return "", false, nil
	}
	return value.(string), true, nil
}

func (r *InMemoryRepository) Set(key string, text string) error {
	r.entries.Set(key, text, cache.NoExpiration)
	return nil
}

func (r *InMemoryRepository) Clear(key string) error {
	r.entries.Delete(key)
	return nil
}
