package vision

// Options параметры загрузки модели детектора.
type Options struct {
	ModelPath  string         // артефакт модели (.onnx, .weights, .pb)
	ConfigPath string         // конфиг фреймворка, для ONNX не нужен
	ClassNames map[int]string // словарь индекс -> имя класса
	Confidence float32        // минимальная уверенность класса
	InputSize  int            // сторона квадратного входа сети
}

// DefaultOptions значения по умолчанию для YOLOv8, экспортированной в ONNX.
func DefaultOptions() Options {
	return Options{
		ModelPath:  "yolov8n.onnx",
		Confidence: 0.25,
		InputSize:  640,
	}
}
