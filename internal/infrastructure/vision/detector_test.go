//go:build gocv
// +build gocv

package vision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"autotag/internal/infrastructure/labels"
)

func TestGoCVLoader_MissingModel(t *testing.T) {
	opts := DefaultOptions()
	opts.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")
	opts.ClassNames = labels.COCO()

	model, err := NewGoCVLoader(opts).Load(context.Background())
	require.Error(t, err)
	require.Nil(t, model)
}

func TestGoCVLoader_MissingConfig(t *testing.T) {
	opts := DefaultOptions()
	opts.ModelPath = filepath.Join(t.TempDir(), "yolov3.weights")
	require.NoError(t, os.WriteFile(opts.ModelPath, []byte("weights"), 0o644))
	opts.ConfigPath = filepath.Join(t.TempDir(), "yolov3.cfg")
	opts.ClassNames = labels.COCO()

	_, err := NewGoCVLoader(opts).Load(context.Background())
	require.Error(t, err)
}

func TestGoCVLoader_EmptyClassNames(t *testing.T) {
	opts := DefaultOptions()
	opts.ModelPath = filepath.Join(t.TempDir(), "model.onnx")
	require.NoError(t, os.WriteFile(opts.ModelPath, []byte("not read before the check"), 0o644))

	_, err := NewGoCVLoader(opts).Load(context.Background())
	require.Error(t, err)
}

// Реальная модель подключается через AUTOTAG_TEST_MODEL (например yolov8n.onnx).
func loadTestModel(t *testing.T) *GoCVModel {
	t.Helper()
	path := os.Getenv("AUTOTAG_TEST_MODEL")
	if path == "" {
		t.Skip("AUTOTAG_TEST_MODEL is not set")
	}

	opts := DefaultOptions()
	opts.ModelPath = path
	opts.ClassNames = labels.COCO()

	model, err := NewGoCVLoader(opts).Load(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { model.Close() })

	return model.(*GoCVModel)
}

func TestGoCVModel_UndecodableImage(t *testing.T) {
	model := loadTestModel(t)

	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("this is not a jpeg"), 0o644))

	detections, err := model.Infer(context.Background(), path)
	require.Error(t, err)
	require.Nil(t, detections)
}

func TestGoCVModel_BlankImage(t *testing.T) {
	model := loadTestModel(t)
	require.Len(t, model.ClassNames(), 80)

	img := gocv.NewMatWithSize(64, 64, gocv.MatTypeCV8UC3)
	defer img.Close()
	path := filepath.Join(t.TempDir(), "blank.png")
	require.True(t, gocv.IMWrite(path, img))

	// Чёрный кадр проходит весь путь до разбора выхода без ошибок
	_, err := model.Infer(context.Background(), path)
	require.NoError(t, err)
}
