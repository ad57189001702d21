package port

import (
	"context"

	"autotag/internal/domain/entity"
)

// ModelLoader загружает предобученную модель детектора
type ModelLoader interface {
	// Load читает артефакт модели с диска и готовит её к работе
	Load(ctx context.Context) (Model, error)
}

// Model загруженная модель детектора объектов
type Model interface {
	// Infer запускает детекцию на файле изображения
	Infer(ctx context.Context, imagePath string) ([]entity.Detection, error)

	// ClassNames возвращает словарь индекс -> имя класса
	ClassNames() map[int]string

	// Close освобождает ресурсы модели
	Close() error
}
