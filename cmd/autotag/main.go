package main

import (
	"context"
	"log"
	"os"

	"autotag/config"
	"autotag/internal/cli"
	"autotag/internal/container"
	"autotag/internal/infrastructure/labels"
	"autotag/internal/infrastructure/vision"
	"autotag/internal/infrastructure/worker"
)

func main() {
	os.Exit(run())
}

func run() int {
	// stdout занят результатом, всё остальное идёт в stderr
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Config: %v", err)
	}

	// Без словаря загрузчик вернёт ошибку, и результат будет пустым
	classNames, err := labels.Load(cfg.LabelsPath)
	if err != nil {
		log.Printf("Failed to load labels: %v", err)
	}

	if worker.IsWorker() {
		return serveWorker(cfg.VisionOptions(classNames))
	}

	// Сеть работает в дочернем процессе: падение OpenCV не ломает вывод
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	loader := worker.NewProcessLoader(exe, nil, []string{worker.WorkerEnv + "=1"}, classNames)

	appContainer := container.NewTagging(loader)
	defer func() {
		if err := appContainer.Close(); err != nil {
			log.Printf("Failed to stop detector: %v", err)
		}
	}()

	return cli.Run(context.Background(), os.Args, os.Stdout, appContainer.TaggingService, cfg.Format)
}

func serveWorker(opts vision.Options) int {
	if err := worker.Serve(context.Background(), vision.NewGoCVLoader(opts), os.Stdin, os.Stdout); err != nil {
		log.Printf("Worker: %v", err)
		return 1
	}
	return 0
}
