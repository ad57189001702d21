package entity

// DetectionRequest запрос на разметку одного изображения
type DetectionRequest struct {
	ImagePath string // путь к файлу изображения
}

// NewDetectionRequest собирает запрос из аргументов командной строки.
// Первый аргумент после имени программы считается путём к изображению.
func NewDetectionRequest(args []string) (DetectionRequest, error) {
	if len(args) < 2 || args[1] == "" {
		return DetectionRequest{}, ErrMissingArgument
	}
	return DetectionRequest{ImagePath: args[1]}, nil
}

// Detection одно срабатывание детектора
type Detection struct {
	ClassIndex int     // индекс класса в словаре модели
	Confidence float32 // уверенность модели
}
