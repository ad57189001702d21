package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"autotag/internal/domain/entity"
	"autotag/internal/infrastructure/vision"
)

type Config struct {
	TelegramToken string

	ModelPath       string
	ModelConfigPath string
	LabelsPath      string
	Format          entity.OutputFormat
	Confidence      float32
	InputSize       int
}

// Load читает настройки из окружения и .env.
// Некорректные значения заменяются значениями по умолчанию,
// а описание ошибок возвращается вместе с конфигом.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	defaults := vision.DefaultOptions()
	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		ModelPath:       getEnv("AUTOTAG_MODEL", defaults.ModelPath),
		ModelConfigPath: os.Getenv("AUTOTAG_MODEL_CONFIG"),
		LabelsPath:      os.Getenv("AUTOTAG_LABELS"),
		Format:          entity.FormatJSON,
		Confidence:      defaults.Confidence,
		InputSize:       defaults.InputSize,
	}

	var errs []error

	if v := os.Getenv("AUTOTAG_FORMAT"); v != "" {
		format, err := entity.ParseOutputFormat(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("AUTOTAG_FORMAT: %w", err))
		} else {
			cfg.Format = format
		}
	}

	if v := os.Getenv("AUTOTAG_CONFIDENCE"); v != "" {
		conf, err := strconv.ParseFloat(v, 32)
		if err != nil || conf < 0 || conf > 1 {
			errs = append(errs, fmt.Errorf("AUTOTAG_CONFIDENCE: invalid value %q", v))
		} else {
			cfg.Confidence = float32(conf)
		}
	}

	if v := os.Getenv("AUTOTAG_INPUT_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 || size%32 != 0 {
			errs = append(errs, fmt.Errorf("AUTOTAG_INPUT_SIZE: invalid value %q", v))
		} else {
			cfg.InputSize = size
		}
	}

	return cfg, errors.Join(errs...)
}

// VisionOptions собирает параметры детектора со словарём классов.
func (c *Config) VisionOptions(classNames map[int]string) vision.Options {
	return vision.Options{
		ModelPath:  c.ModelPath,
		ConfigPath: c.ModelConfigPath,
		ClassNames: classNames,
		Confidence: c.Confidence,
		InputSize:  c.InputSize,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
