package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"autotag/internal/domain/entity"
	"autotag/internal/domain/port"
)

// TaggingService размечает изображения именами найденных объектов.
type TaggingService struct {
	models *ModelCache
}

// NewTaggingService создаёт сервис разметки.
func NewTaggingService(models *ModelCache) *TaggingService {
	return &TaggingService{models: models}
}

// Tag запускает детектор и возвращает множество меток.
// Множество всегда пригодно к выводу: при ошибке оно пустое,
// а ошибка оборачивает одну из entity.Err*.
func (s *TaggingService) Tag(ctx context.Context, req entity.DetectionRequest) (entity.LabelSet, error) {
	if req.ImagePath == "" {
		return entity.LabelSet{}, entity.ErrMissingArgument
	}

	info, err := os.Stat(req.ImagePath)
	if err != nil {
		return entity.LabelSet{}, fmt.Errorf("%w: %s", entity.ErrFileNotFound, req.ImagePath)
	}
	if info.IsDir() {
		return entity.LabelSet{}, fmt.Errorf("%w: %s is a directory", entity.ErrFileNotFound, req.ImagePath)
	}

	if s.models == nil {
		return entity.LabelSet{}, fmt.Errorf("%w: detector is not configured", entity.ErrModelLoad)
	}

	model, err := s.models.Get(ctx)
	if err != nil {
		return entity.LabelSet{}, fmt.Errorf("%w: %v", entity.ErrModelLoad, err)
	}

	detections, err := infer(ctx, model, req.ImagePath)
	if err != nil {
		// Модель в отдельном процессе может не подняться заново
		if errors.Is(err, entity.ErrModelLoad) {
			return entity.LabelSet{}, err
		}
		return entity.LabelSet{}, fmt.Errorf("%w: %v", entity.ErrInference, err)
	}

	return entity.ResolveLabels(detections, model.ClassNames()), nil
}

// infer вызывает модель, превращая панику детектора в ошибку.
func infer(ctx context.Context, model port.Model, imagePath string) (detections []entity.Detection, err error) {
	defer func() {
		if r := recover(); r != nil {
			detections = nil
			err = fmt.Errorf("detector panic: %v", r)
		}
	}()

	return model.Infer(ctx, imagePath)
}
