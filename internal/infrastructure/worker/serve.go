package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"autotag/internal/domain/port"
)

// Serve загружает модель и отвечает на запросы из r, пока r не закроется.
// Ошибка загрузки возвращается до рукопожатия, процесс должен завершиться
// с ненулевым кодом.
func Serve(ctx context.Context, loader port.ModelLoader, r io.Reader, w io.Writer) error {
	model, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	defer model.Close()

	enc := json.NewEncoder(w)
	if err := enc.Encode(response{Ready: true}); err != nil {
		return fmt.Errorf("write handshake: %w", err)
	}

	dec := json.NewDecoder(r)
	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}

		var resp response
		detections, err := model.Infer(ctx, req.Image)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Detections = toWire(detections)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}
