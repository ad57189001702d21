package entity

import "errors"

// Ошибки разметки. Все они на границе превращаются в пустой результат.
var (
	ErrMissingArgument = errors.New("image path is not provided")
	ErrFileNotFound    = errors.New("image file not found")
	ErrModelLoad       = errors.New("failed to load detection model")
	ErrInference       = errors.New("detection failed")
)
