package app

import (
	"context"
	"errors"

	"autotag/internal/domain/entity"
	"autotag/internal/domain/port"
)

type fakeModel struct {
	detections []entity.Detection
	names      map[int]string
	err        error
	panicWith  any
	calls      int
	closed     bool
}

func (m *fakeModel) Infer(ctx context.Context, imagePath string) ([]entity.Detection, error) {
	m.calls++
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	return m.detections, m.err
}

func (m *fakeModel) ClassNames() map[int]string { return m.names }

func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}

type fakeLoader struct {
	model *fakeModel
	err   error
	loads int
}

func (l *fakeLoader) Load(ctx context.Context) (port.Model, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return l.model, nil
}

var errBoom = errors.New("boom")
