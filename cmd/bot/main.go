package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"autotag/config"
	telegram "autotag/internal/api"
	"autotag/internal/container"
	"autotag/internal/infrastructure/labels"
	"autotag/internal/infrastructure/storage"
	"autotag/internal/infrastructure/vision"
	"autotag/internal/infrastructure/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	classNames, err := labels.Load(cfg.LabelsPath)
	if err != nil {
		log.Fatalf("Failed to load labels: %v", err)
	}

	// Дочерний процесс с сетью
	if worker.IsWorker() {
		if err := worker.Serve(context.Background(), vision.NewGoCVLoader(cfg.VisionOptions(classNames)), os.Stdin, os.Stdout); err != nil {
			log.Fatalf("Worker: %v", err)
		}
		return
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository(cfg.Format)

	// Воркер с моделью поднимается при первом фото и переиспользуется
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("Failed to locate executable: %v", err)
	}
	loader := worker.NewProcessLoader(exe, nil, []string{worker.WorkerEnv + "=1"}, classNames)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, loader)
	defer appContainer.Close()

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}
