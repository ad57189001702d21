package worker

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	app "autotag/internal/application"
	"autotag/internal/cli"
	"autotag/internal/domain/entity"
)

var streetNames = map[int]string{0: "person", 2: "car"}

func newLoader(mode string) *ProcessLoader {
	return NewProcessLoader(os.Args[0], []string{"-test.run=^$"}, []string{fakeWorkerEnv + "=" + mode}, streetNames)
}

func TestProcessLoader_Infer(t *testing.T) {
	model, err := newLoader("ok").Load(context.Background())
	require.NoError(t, err)
	defer model.Close()

	detections, err := model.Infer(context.Background(), "street.jpg")
	require.NoError(t, err)
	require.Len(t, detections, 3)
	require.Equal(t, 2, detections[2].ClassIndex)
	require.Equal(t, streetNames, model.ClassNames())

	// Ошибка детектора не останавливает воркер
	_, err = model.Infer(context.Background(), "broken.jpg")
	require.Error(t, err)

	detections, err = model.Infer(context.Background(), "street.jpg")
	require.NoError(t, err)
	require.Len(t, detections, 3)
}

func TestProcessLoader_LoadFailures(t *testing.T) {
	for _, mode := range []string{"load-abort", "load-error", "garbage"} {
		t.Run(mode, func(t *testing.T) {
			model, err := newLoader(mode).Load(context.Background())
			require.Error(t, err)
			require.Nil(t, model)
		})
	}
}

func TestProcessLoader_WorkerAbortsDuringInference(t *testing.T) {
	model, err := newLoader("infer-abort").Load(context.Background())
	require.NoError(t, err)
	defer model.Close()

	_, err = model.Infer(context.Background(), "street.jpg")
	require.Error(t, err)

	// Воркер перезапускается и снова падает
	_, err = model.Infer(context.Background(), "street.jpg")
	require.Error(t, err)
}

func TestProcessLoader_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newLoader("garbage").Load(ctx)
	require.Error(t, err)
}

func TestProcessLoader_CrashYieldsEmptyResult(t *testing.T) {
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	path := filepath.Join(t.TempDir(), "street.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o644))

	cases := []struct {
		mode    string
		wantErr error
	}{
		{"load-abort", entity.ErrModelLoad},
		{"infer-abort", entity.ErrInference},
	}

	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			models := app.NewModelCache(newLoader(tc.mode))
			defer models.Close()
			svc := app.NewTaggingService(models)

			_, err := svc.Tag(context.Background(), entity.DetectionRequest{ImagePath: path})
			require.ErrorIs(t, err, tc.wantErr)

			var out bytes.Buffer
			code := cli.Run(context.Background(), []string{"autotag", path}, &out, svc, entity.FormatJSON)
			require.Equal(t, 0, code)
			require.Equal(t, "[]\n", out.String())
		})
	}
}

func TestProcessLoader_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "street.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o644))

	models := app.NewModelCache(newLoader("ok"))
	defer models.Close()

	var out bytes.Buffer
	code := cli.Run(context.Background(), []string{"autotag", path}, &out, app.NewTaggingService(models), entity.FormatText)
	require.Equal(t, 0, code)
	require.Equal(t, "car,person\n", out.String())
}
