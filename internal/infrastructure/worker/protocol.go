// Package worker выносит детектор в дочерний процесс.
//
// OpenCV бросает C++ исключения, которые через cgo завершают весь процесс.
// Поэтому сеть живёт в отдельном процессе (тот же бинарник, запущенный с
// AUTOTAG_WORKER=1), а родитель видит его падение как обычную ошибку.
//
// Обмен идёт JSON-строками: после загрузки модели воркер пишет
// {"ready":true}, затем на каждый {"image":"..."} отвечает
// {"detections":[...]} или {"error":"..."}.
package worker

import (
	"os"

	"autotag/internal/domain/entity"
)

// WorkerEnv переменная окружения, включающая режим воркера
const WorkerEnv = "AUTOTAG_WORKER"

// IsWorker сообщает, запущен ли процесс как воркер
func IsWorker() bool {
	return os.Getenv(WorkerEnv) == "1"
}

type request struct {
	Image string `json:"image"`
}

type detection struct {
	Class      int     `json:"class"`
	Confidence float32 `json:"confidence"`
}

type response struct {
	Ready      bool        `json:"ready,omitempty"`
	Detections []detection `json:"detections,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func toWire(detections []entity.Detection) []detection {
	out := make([]detection, 0, len(detections))
	for _, d := range detections {
		out = append(out, detection{Class: d.ClassIndex, Confidence: d.Confidence})
	}
	return out
}

func fromWire(detections []detection) []entity.Detection {
	out := make([]entity.Detection, 0, len(detections))
	for _, d := range detections {
		out = append(out, entity.Detection{ClassIndex: d.Class, Confidence: d.Confidence})
	}
	return out
}
