package app

import (
	"context"
	"sync"

	"autotag/internal/domain/port"
)

// ModelCache держит одну загруженную модель на весь процесс.
// Неудачная загрузка не запоминается: следующий вызов попробует снова.
type ModelCache struct {
	loader port.ModelLoader
	mu     sync.Mutex
	model  port.Model
}

// NewModelCache создаёт кэш поверх загрузчика.
func NewModelCache(loader port.ModelLoader) *ModelCache {
	return &ModelCache{loader: loader}
}

// Get возвращает модель, загружая её при первом обращении.
func (c *ModelCache) Get(ctx context.Context) (port.Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != nil {
		return c.model, nil
	}

	model, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.model = model

	return model, nil
}

// Close освобождает модель, если она была загружена.
func (c *ModelCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		return nil
	}
	err := c.model.Close()
	c.model = nil
	return err
}
