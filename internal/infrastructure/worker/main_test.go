package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"autotag/internal/domain/entity"
	"autotag/internal/domain/port"
)

// fakeWorkerEnv задаёт поведение тестового бинарника, запущенного как воркер
const fakeWorkerEnv = "AUTOTAG_FAKE_WORKER"

func TestMain(m *testing.M) {
	switch os.Getenv(fakeWorkerEnv) {
	case "":
		os.Exit(m.Run())
	case "ok":
		os.Exit(serveFake(fakeLoader{model: &fakeModel{}}))
	case "load-abort":
		abort()
	case "infer-abort":
		os.Exit(serveFake(fakeLoader{model: &fakeModel{abortOnInfer: true}}))
	case "load-error":
		os.Exit(serveFake(fakeLoader{err: errors.New("corrupt artifact")}))
	case "garbage":
		fmt.Println("not json")
		time.Sleep(time.Minute)
	}
	os.Exit(3)
}

func serveFake(loader port.ModelLoader) int {
	if err := Serve(context.Background(), loader, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

type fakeModel struct {
	abortOnInfer bool
}

func (m *fakeModel) Infer(ctx context.Context, imagePath string) ([]entity.Detection, error) {
	if m.abortOnInfer {
		abort()
	}
	if imagePath == "broken.jpg" {
		return nil, errors.New("failed to decode image broken.jpg")
	}
	return []entity.Detection{{ClassIndex: 0, Confidence: 0.9}, {ClassIndex: 0, Confidence: 0.8}, {ClassIndex: 2, Confidence: 0.7}}, nil
}

func (m *fakeModel) ClassNames() map[int]string { return nil }

func (m *fakeModel) Close() error { return nil }

type fakeLoader struct {
	model port.Model
	err   error
}

func (l fakeLoader) Load(ctx context.Context) (port.Model, error) {
	return l.model, l.err
}
