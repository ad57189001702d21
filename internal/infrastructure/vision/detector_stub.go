//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"autotag/internal/domain/port"
)

// GoCVLoader загрузчик-заглушка (без OpenCV).
type GoCVLoader struct {
	opts Options
}

// NewGoCVLoader создаёт загрузчик-заглушку.
func NewGoCVLoader(opts Options) *GoCVLoader {
	return &GoCVLoader{opts: opts}
}

// Load возвращает ошибку, если сборка без тега gocv.
func (l *GoCVLoader) Load(ctx context.Context) (port.Model, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.ModelLoader = (*GoCVLoader)(nil)
