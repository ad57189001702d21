//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"autotag/internal/domain/entity"
	"autotag/internal/domain/port"
)

// GoCVLoader загружает модель через OpenCV DNN.
type GoCVLoader struct {
	opts Options
}

// NewGoCVLoader создаёт загрузчик модели.
func NewGoCVLoader(opts Options) *GoCVLoader {
	return &GoCVLoader{opts: opts}
}

// Load читает сеть с диска. Файл модели должен уже лежать локально.
func (l *GoCVLoader) Load(ctx context.Context) (port.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(l.opts.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s: %w", l.opts.ModelPath, err)
	}
	if l.opts.ConfigPath != "" {
		if _, err := os.Stat(l.opts.ConfigPath); err != nil {
			return nil, fmt.Errorf("model config not found: %s: %w", l.opts.ConfigPath, err)
		}
	}
	if len(l.opts.ClassNames) == 0 {
		return nil, errors.New("class names are empty")
	}

	net := gocv.ReadNet(l.opts.ModelPath, l.opts.ConfigPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", l.opts.ModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	log.Printf("Detection network loaded from %s", l.opts.ModelPath)

	return &GoCVModel{
		net:        net,
		classNames: l.opts.ClassNames,
		confidence: l.opts.Confidence,
		inputSize:  l.opts.InputSize,
		ssd:        strings.EqualFold(filepath.Ext(l.opts.ConfigPath), ".pbtxt"),
	}, nil
}

// GoCVModel загруженная сеть детектора.
type GoCVModel struct {
	mu         sync.Mutex // gocv.Net не допускает параллельный Forward
	net        gocv.Net
	classNames map[int]string
	confidence float32
	inputSize  int
	ssd        bool
}

// Infer запускает детекцию на файле изображения.
func (m *GoCVModel) Infer(ctx context.Context, imagePath string) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := gocv.IMRead(imagePath, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return nil, fmt.Errorf("failed to decode image %s", imagePath)
	}

	scale, mean := m.preprocess()
	blob := gocv.BlobFromImage(
		img,
		scale,
		image.Pt(m.inputSize, m.inputSize),
		mean,
		true,  // swapRB
		false, // crop
	)
	defer blob.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.net.SetInput(blob, "")
	outputs := m.net.ForwardLayers(outputLayers(m.net))
	defer func() {
		for i := range outputs {
			outputs[i].Close()
		}
	}()

	if len(outputs) == 0 {
		return nil, errors.New("network returned no outputs")
	}

	var detections []entity.Detection
	for i := range outputs {
		if outputs[i].Empty() {
			return nil, errors.New("network returned empty output")
		}

		data, err := outputs[i].DataPtrFloat32()
		if err != nil {
			return nil, fmt.Errorf("read network output: %w", err)
		}

		found, err := decodeOutput(data, outputs[i].Size(), m.confidence)
		if err != nil {
			return nil, err
		}
		detections = append(detections, found...)
	}

	return detections, nil
}

// preprocess возвращает масштаб и среднее для blob.
// SSD из TensorFlow обучены на [-1, 1], остальные модели на [0, 1].
func (m *GoCVModel) preprocess() (float64, gocv.Scalar) {
	if m.ssd {
		return 1.0 / 127.5, gocv.NewScalar(127.5, 127.5, 127.5, 0)
	}
	return 1.0 / 255.0, gocv.NewScalar(0, 0, 0, 0)
}

// outputLayers возвращает имена всех выходных слоёв сети.
// У Darknet YOLO их несколько, у YOLOv8 и SSD один.
func outputLayers(net gocv.Net) []string {
	layerNames := net.GetLayerNames()

	var names []string
	for _, id := range net.GetUnconnectedOutLayers() {
		if id-1 >= 0 && id-1 < len(layerNames) {
			names = append(names, layerNames[id-1])
		}
	}

	return names
}

// ClassNames возвращает словарь индекс -> имя класса.
func (m *GoCVModel) ClassNames() map[int]string {
	return m.classNames
}

// Close освобождает сеть.
func (m *GoCVModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.net.Empty() {
		return nil
	}
	return m.net.Close()
}

// Проверка реализации интерфейсов
var (
	_ port.ModelLoader = (*GoCVLoader)(nil)
	_ port.Model       = (*GoCVModel)(nil)
)
