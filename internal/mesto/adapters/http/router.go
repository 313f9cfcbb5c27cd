// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"

	"mesto/internal/mesto/adapters/http/auth"
	"mesto/internal/mesto/adapters/http/cards"
	"mesto/internal/mesto/adapters/http/errorhandler"
	"mesto/internal/mesto/adapters/http/middleware"
	"mesto/internal/mesto/adapters/http/pipeline"
	"mesto/internal/mesto/adapters/http/users"
	"mesto/internal/mesto/adapters/http/validation"
	"mesto/internal/mesto/app"
	"mesto/internal/mesto/config"
	"mesto/internal/mesto/domain/failure"
	"mesto/internal/mesto/ports/api"
	"mesto/internal/mesto/ports/services"
	"mesto/pkg/logger"
)

// MsgPageNotFound - ответ на запрос к несуществующему маршруту.
const MsgPageNotFound = "page not found"

// Dependencies - прикладные сервисы, которые обслуживает HTTP слой.
// Throttle может быть nil: тогда ограничение запросов отключено.
type Dependencies struct {
	Auth     api.AuthUseCase
	Users    api.UserUseCase
	Cards    api.CardUseCase
	Guard    *app.OwnershipGuard
	Tokens   services.TokenService
	Throttle services.Throttle
	Logger   *logger.Logger
}

// NewApp создает fiber приложение с обработчиком ошибок и всеми маршрутами.
func NewApp(cfg *config.HTTPConfig, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorhandler.New(),
	})

	SetupRouter(app, deps)
	return app
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.Auth)
	usersHandler := users.NewHandler(deps.Users)
	cardsHandler := cards.NewHandler(deps.Cards)

	base := deps.Logger
	if base == nil {
		base = logger.NewNop()
	}

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware(base))
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New())
	app.Use(helmet.New())
	if deps.Throttle != nil {
		app.Use(middleware.NewThrottleMiddleware(deps.Throttle))
	}

	// Публичные маршруты.
	app.Post("/signup", pipeline.New(validation.SignupRules.Stage()).Handle(authHandler.Signup))
	app.Post("/signin", pipeline.New(validation.SigninRules.Stage()).Handle(authHandler.Signin))

	// Защищенные маршруты: сначала токен, затем схема запроса.
	protected := pipeline.New(middleware.Authenticate(deps.Tokens))
	authorized := protected.With(validation.AuthorizedRules.Stage())
	byCard := protected.With(validation.CardByIDRules.Stage())

	userRoutes := app.Group("/users")
	userRoutes.Get("/", authorized.Handle(usersHandler.List))
	userRoutes.Get("/me", authorized.Handle(usersHandler.Me))
	userRoutes.Patch("/me", protected.With(validation.UpdateProfileRules.Stage()).Handle(usersHandler.UpdateProfile))
	userRoutes.Patch("/me/avatar", protected.With(validation.UpdateAvatarRules.Stage()).Handle(usersHandler.UpdateAvatar))
	userRoutes.Get("/:"+users.ParamUserID, protected.With(validation.UserByIDRules.Stage()).Handle(usersHandler.ByID))

	cardRoutes := app.Group("/cards")
	cardRoutes.Get("/", authorized.Handle(cardsHandler.List))
	cardRoutes.Post("/", protected.With(validation.CreateCardRules.Stage()).Handle(cardsHandler.Create))
	cardRoutes.Delete("/:"+cards.ParamCardID, byCard.With(cards.OwnershipStage(deps.Guard)).Handle(cardsHandler.Delete))
	cardRoutes.Put("/:"+cards.ParamCardID+"/likes", byCard.Handle(cardsHandler.Like))
	cardRoutes.Delete("/:"+cards.ParamCardID+"/likes", byCard.Handle(cardsHandler.Unlike))

	// Обработчик для несуществующих маршрутов.
	app.Use(func(fiber.Ctx) error {
		return failure.NewNotFound(MsgPageNotFound)
	})
}
