package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"autotag/internal/domain/entity"
	"autotag/internal/domain/port"
)

// ProcessLoader запускает воркер и ждёт, пока он загрузит модель.
type ProcessLoader struct {
	path       string
	args       []string
	env        []string
	classNames map[int]string
}

// NewProcessLoader создаёт загрузчик. env добавляется к окружению родителя.
func NewProcessLoader(path string, args, env []string, classNames map[int]string) *ProcessLoader {
	return &ProcessLoader{
		path:       path,
		args:       args,
		env:        env,
		classNames: classNames,
	}
}

// Load запускает воркер. Падение до рукопожатия считается ошибкой загрузки.
func (l *ProcessLoader) Load(ctx context.Context) (port.Model, error) {
	m := &ProcessModel{loader: l}
	if err := m.start(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// ProcessModel модель, работающая в дочернем процессе.
// Если воркер упал, следующий Infer запускает его заново.
type ProcessModel struct {
	loader *ProcessLoader

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	enc   *json.Encoder
	dec   *json.Decoder
}

// Infer отправляет путь к изображению воркеру и ждёт ответа.
func (m *ProcessModel) Infer(ctx context.Context, imagePath string) ([]entity.Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil {
		if err := m.start(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrModelLoad, err)
		}
	}

	if err := m.enc.Encode(request{Image: imagePath}); err != nil {
		return nil, m.fail(err)
	}

	var resp response
	if err := m.receive(ctx, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}

	return fromWire(resp.Detections), nil
}

// ClassNames возвращает словарь индекс -> имя класса.
func (m *ProcessModel) ClassNames() map[int]string {
	return m.loader.classNames
}

// Close закрывает stdin воркера и ждёт его завершения.
func (m *ProcessModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd == nil {
		return nil
	}

	m.stdin.Close()
	err := m.cmd.Wait()
	m.cmd = nil
	return err
}

func (m *ProcessModel) start(ctx context.Context) error {
	cmd := exec.Command(m.loader.path, m.loader.args...)
	cmd.Env = append(os.Environ(), m.loader.env...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("worker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("worker stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}

	m.cmd = cmd
	m.stdin = stdin
	m.enc = json.NewEncoder(stdin)
	m.dec = json.NewDecoder(stdout)

	var resp response
	if err := m.receive(ctx, &resp); err != nil {
		return err
	}
	if !resp.Ready {
		return m.fail(errors.New("unexpected handshake"))
	}

	return nil
}

// receive читает один ответ; при отмене ctx воркер убивается.
func (m *ProcessModel) receive(ctx context.Context, v *response) error {
	done := make(chan error, 1)
	go func() {
		done <- m.dec.Decode(v)
	}()

	select {
	case err := <-done:
		if err != nil {
			return m.fail(err)
		}
		return nil
	case <-ctx.Done():
		_ = m.cmd.Process.Kill()
		<-done
		_ = m.fail(ctx.Err())
		return ctx.Err()
	}
}

// fail останавливает воркер и возвращает причину вместе с его статусом.
func (m *ProcessModel) fail(cause error) error {
	m.stdin.Close()
	_ = m.cmd.Process.Kill()
	waitErr := m.cmd.Wait()
	m.cmd = nil

	if waitErr != nil {
		return fmt.Errorf("worker exited (%v): %w", waitErr, cause)
	}
	return fmt.Errorf("worker stopped: %w", cause)
}

var (
	_ port.ModelLoader = (*ProcessLoader)(nil)
	_ port.Model       = (*ProcessModel)(nil)
)
