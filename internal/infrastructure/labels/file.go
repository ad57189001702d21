package labels

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// dataset часть YAML-описания датасета Ultralytics, нужная для словаря.
type dataset struct {
	Names yaml.Node `yaml:"names"`
}

// Load возвращает словарь классов: из файла, если путь задан, иначе COCO.
func Load(path string) (map[int]string, error) {
	if path == "" {
		return COCO(), nil
	}
	return LoadFile(path)
}

// LoadFile читает словарь классов из файла.
// Файлы .yaml/.yml разбираются как датасет Ultralytics (ключ names),
// остальные как текст с одним именем на строку.
func LoadFile(path string) (map[int]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadText(path)
	}
}

func loadYAML(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}

	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse labels %s: %w", path, err)
	}

	switch ds.Names.Kind {
	case yaml.MappingNode:
		// names: {0: person, 1: bicycle}
		var names map[int]string
		if err := ds.Names.Decode(&names); err != nil {
			return nil, fmt.Errorf("decode names in %s: %w", path, err)
		}
		return names, nil
	case yaml.SequenceNode:
		// names: [person, bicycle]
		var names []string
		if err := ds.Names.Decode(&names); err != nil {
			return nil, fmt.Errorf("decode names in %s: %w", path, err)
		}
		return fromList(names), nil
	default:
		return nil, errors.New("labels file has no names section: " + path)
	}
}

func loadText(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}

	return fromList(names), nil
}
