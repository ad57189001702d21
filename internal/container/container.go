package container

import (
	app "autotag/internal/application"
	"autotag/internal/domain/port"
)

type Container struct {
	UserService    *app.UserService
	TaggingService *app.TaggingService
	Models         *app.ModelCache
}

func New(userRepo port.UserRepository, loader port.ModelLoader) *Container {
	models := app.NewModelCache(loader)
	userService := app.NewUserService(userRepo)
	taggingService := app.NewTaggingService(models)

	return &Container{
		UserService:    userService,
		TaggingService: taggingService,
		Models:         models,
	}
}

// NewTagging собирает только разметку, без пользователей бота
func NewTagging(loader port.ModelLoader) *Container {
	models := app.NewModelCache(loader)

	return &Container{
		TaggingService: app.NewTaggingService(models),
		Models:         models,
	}
}

// Close освобождает загруженную модель
func (c *Container) Close() error {
	return c.Models.Close()
}
