package entity

import (
	"sort"
	"strings"
)

// LabelSet множество имён классов, найденных на изображении.
// Пустые имена в множество не попадают.
type LabelSet struct {
	items map[string]struct{}
}

// NewLabelSet создаёт множество из переданных имён.
func NewLabelSet(names ...string) LabelSet {
	s := LabelSet{items: make(map[string]struct{}, len(names))}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add добавляет имя класса, приводя его к нижнему регистру.
func (s *LabelSet) Add(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	s.items[name] = struct{}{}
}

// Contains сообщает, есть ли имя в множестве.
func (s LabelSet) Contains(name string) bool {
	_, ok := s.items[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Len возвращает количество уникальных имён.
func (s LabelSet) Len() int {
	return len(s.items)
}

// Sorted возвращает имена по алфавиту. Никогда не возвращает nil.
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s.items))
	for name := range s.items {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ResolveLabels переводит индексы классов в имена по словарю модели.
// Индексы без имени пропускаются.
func ResolveLabels(detections []Detection, classNames map[int]string) LabelSet {
	set := NewLabelSet()
	for _, d := range detections {
		name, ok := classNames[d.ClassIndex]
		if !ok {
			continue
		}
		set.Add(name)
	}
	return set
}
