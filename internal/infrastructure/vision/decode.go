package vision

import (
	"fmt"

	"autotag/internal/domain/entity"
)

// decodeOutput выбирает разбор выхода сети по его форме:
//
//	[1, 4+nc, anchors]  YOLOv8 (ONNX)
//	[N, 5+nc]           Darknet YOLO, один выходной слой
//	[1, 1, N, 7]        SSD (TensorFlow, Caffe)
func decodeOutput(data []float32, shape []int, confidence float32) ([]entity.Detection, error) {
	switch {
	case len(shape) == 4 && shape[3] == 7:
		return decodeSSD(data, shape, confidence)
	case len(shape) == 2:
		return decodeDarknet(data, shape, confidence)
	default:
		return decodeYOLOv8(data, shape, confidence)
	}
}

// decodeYOLOv8 разбирает выход YOLOv8 формы [1, 4+nc, anchors].
// Первые четыре строки это рамка (cx, cy, w, h), дальше оценки классов.
// Для каждого якоря берётся класс с максимальной оценкой.
func decodeYOLOv8(data []float32, shape []int, confidence float32) ([]entity.Detection, error) {
	if len(shape) != 3 || shape[0] != 1 || shape[1] < 5 || shape[2] < 1 {
		return nil, fmt.Errorf("unexpected yolov8 output shape %v", shape)
	}
	rows, cols := shape[1], shape[2]
	if len(data) < rows*cols {
		return nil, fmt.Errorf("yolov8 output too short: %d < %d", len(data), rows*cols)
	}

	detections := make([]entity.Detection, 0)
	for anchor := 0; anchor < cols; anchor++ {
		bestClass := -1
		bestScore := float32(0)
		for row := 4; row < rows; row++ {
			score := data[row*cols+anchor]
			if score > bestScore {
				bestScore = score
				bestClass = row - 4
			}
		}
		if bestClass < 0 || bestScore < confidence {
			continue
		}
		detections = append(detections, entity.Detection{
			ClassIndex: bestClass,
			Confidence: bestScore,
		})
	}

	return detections, nil
}

// decodeDarknet разбирает слой Darknet YOLO формы [N, 5+nc]:
// cx, cy, w, h, objectness, оценки классов. Итоговая уверенность
// это objectness, умноженная на лучшую оценку класса.
func decodeDarknet(data []float32, shape []int, confidence float32) ([]entity.Detection, error) {
	if len(shape) != 2 || shape[0] < 0 || shape[1] < 6 {
		return nil, fmt.Errorf("unexpected darknet output shape %v", shape)
	}
	rows, cols := shape[0], shape[1]
	if len(data) < rows*cols {
		return nil, fmt.Errorf("darknet output too short: %d < %d", len(data), rows*cols)
	}

	detections := make([]entity.Detection, 0)
	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		objectness := row[4]
		if objectness < confidence {
			continue
		}

		bestClass := -1
		bestScore := float32(0)
		for j := 5; j < cols; j++ {
			if row[j] > bestScore {
				bestScore = row[j]
				bestClass = j - 5
			}
		}

		score := objectness * bestScore
		if bestClass < 0 || score < confidence {
			continue
		}
		detections = append(detections, entity.Detection{
			ClassIndex: bestClass,
			Confidence: score,
		})
	}

	return detections, nil
}

// decodeSSD разбирает выход DetectionOutput формы [1, 1, N, 7]:
// batch, класс, уверенность, left, top, right, bottom.
// Индекс класса берётся как есть, словарь должен совпадать с моделью.
func decodeSSD(data []float32, shape []int, confidence float32) ([]entity.Detection, error) {
	if len(shape) != 4 || shape[3] != 7 {
		return nil, fmt.Errorf("unexpected ssd output shape %v", shape)
	}
	rows := shape[0] * shape[1] * shape[2]
	if len(data) < rows*7 {
		return nil, fmt.Errorf("ssd output too short: %d < %d", len(data), rows*7)
	}

	detections := make([]entity.Detection, 0)
	for i := 0; i < rows; i++ {
		score := data[i*7+2]
		if score < confidence {
			continue
		}
		detections = append(detections, entity.Detection{
			ClassIndex: int(data[i*7+1]),
			Confidence: score,
		})
	}

	return detections, nil
}
