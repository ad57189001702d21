package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat формат вывода результата
type OutputFormat string

const (
	FormatText OutputFormat = "text" // person,car
	FormatJSON OutputFormat = "json" // ["car","person"]
)

// ParseOutputFormat разбирает название формата без учёта регистра.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

// Format сериализует множество меток в строку без перевода строки.
// Пустое множество даёт "" для text и "[]" для json.
func (f OutputFormat) Format(set LabelSet) string {
	labels := set.Sorted()
	if f == FormatText {
		return strings.Join(labels, ",")
	}

	// Маршалинг среза строк не может завершиться ошибкой.
	data, _ := json.Marshal(labels)
	return string(data)
}

// Empty возвращает представление пустого результата.
func (f OutputFormat) Empty() string {
	return f.Format(LabelSet{})
}
