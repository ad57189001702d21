// Package cli реализует одноразовый запуск разметки из командной строки.
//
// Вызов: autotag <путь к изображению>. В stdout всегда печатается ровно
// одна строка в настроенном формате, код выхода всегда 0. Любая ошибка
// (нет аргумента, нет файла, не загрузилась модель, сбой детектора)
// пишется в лог и превращается в пустой результат.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"autotag/internal/domain/entity"
)

// Tagger размечает одно изображение
type Tagger interface {
	Tag(ctx context.Context, req entity.DetectionRequest) (entity.LabelSet, error)
}

// Run выполняет разметку по аргументам командной строки и возвращает код выхода.
func Run(ctx context.Context, args []string, stdout io.Writer, tagger Tagger, format entity.OutputFormat) int {
	set, err := tag(ctx, args, tagger)
	if err != nil {
		log.Printf("autotag: %v", err)
		set = entity.LabelSet{}
	}

	if _, err := fmt.Fprintln(stdout, format.Format(set)); err != nil {
		log.Printf("autotag: write result: %v", err)
	}

	return 0
}

func tag(ctx context.Context, args []string, tagger Tagger) (entity.LabelSet, error) {
	req, err := entity.NewDetectionRequest(args)
	if err != nil {
		return entity.LabelSet{}, err
	}
	return tagger.Tag(ctx, req)
}
