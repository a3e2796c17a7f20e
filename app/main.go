package main

import (
	"context"

	"atolye-takip/internal/controllers"
	"atolye-takip/internal/events"
	"atolye-takip/internal/repositories"
	"atolye-takip/internal/routes"
	"atolye-takip/internal/services"
	"atolye-takip/migrations"
	"atolye-takip/pkg/config"
	"atolye-takip/pkg/customvalidator"
	"atolye-takip/pkg/database/postgresql"
	"atolye-takip/pkg/eventbus"
	"atolye-takip/pkg/logger"
	appmiddleware "atolye-takip/pkg/middleware"
	"atolye-takip/pkg/service"
	"atolye-takip/pkg/utils"
	ws "atolye-takip/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()

	if err := migrations.Run(cfg.Postgres.DSN); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// Rate caching degrades gracefully without redis.
		log.Warn("redis unavailable, rate cache disabled", zap.Error(err))
		redisClient = nil
	}

	jwtService := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	bus := eventbus.New(log)

	hub := ws.NewHub()
	go hub.Run()

	// Repositories.
	firmRepo := repositories.NewFirmRepository(pool)
	modelRepo := repositories.NewModelRepository(pool)
	workshopRepo := repositories.NewWorkshopRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	technicRepo := repositories.NewTechnicRepository(pool)
	costItemRepo := repositories.NewCostItemRepository(pool)
	workshopCostItemRepo := repositories.NewWorkshopCostItemRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	modelCostRepo := repositories.NewModelCostRepository(pool)
	rateRepo := repositories.NewExchangeRateRepository(pool)

	// Services.
	authService := services.NewAuthService(userRepo, jwtService, log.Named("auth"))
	firmService := services.NewFirmService(firmRepo, log.Named("firm"))
	modelService := services.NewModelService(modelRepo, cfg.Upload.Dir, log.Named("model"))
	workshopService := services.NewWorkshopService(workshopRepo, log.Named("workshop"))
	userService := services.NewUserService(userRepo, log.Named("user"))
	technicService := services.NewTechnicService(technicRepo, log.Named("technic"))
	costItemService := services.NewCostItemService(costItemRepo, log.Named("cost_item"))
	workshopCostItemService := services.NewWorkshopCostItemService(workshopCostItemRepo, log.Named("workshop_cost_item"))
	orderService := services.NewOrderService(orderRepo, modelCostRepo, workshopRepo, bus, cfg.Upload.Dir, log.Named("order"))
	rateService := services.NewExchangeRateService(rateRepo, redisClient, cfg.Board.RateCacheTTL, log.Named("rates"))
	transferService := services.NewTransferService(orderRepo, workshopRepo, workshopCostItemRepo, userRepo,
		modelCostRepo, bus, log.Named("transfer"))
	kanbanService := services.NewKanbanService(orderRepo, workshopRepo, rateService, transferService, bus,
		cfg.Board.BaseCurrency, log.Named("kanban"))
	reportService := services.NewReportService(modelCostRepo, log.Named("report"))
	modelCostService := services.NewModelCostService(modelCostRepo, orderRepo, log.Named("model_cost"))

	subscribeBoardEvents(bus, hub)

	if err := kanbanService.Reload(context.Background()); err != nil {
		log.Warn("initial board load failed, boards load lazily", zap.Error(err))
	}

	// HTTP wiring.
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		log.Fatal("validator setup failed", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	e.Static("/uploads", cfg.Upload.Dir)

	authMiddleware := appmiddleware.NewAuthMiddleware(jwtService, log.Named("auth_mw"))

	routes.InitRouter(e, &routes.Controllers{
		Auth:         controllers.NewAuthController(authService, log.Named("auth_ctrl")),
		Firm:         controllers.NewFirmController(firmService, log.Named("firm_ctrl")),
		Model:        controllers.NewModelController(modelService, log.Named("model_ctrl")),
		Workshop:     controllers.NewWorkshopController(workshopService, log.Named("workshop_ctrl")),
		User:         controllers.NewUserController(userService, log.Named("user_ctrl")),
		Technic:      controllers.NewTechnicController(technicService, log.Named("technic_ctrl")),
		CostItem:     controllers.NewCostItemController(costItemService, workshopCostItemService, log.Named("cost_item_ctrl")),
		Order:        controllers.NewOrderController(orderService, log.Named("order_ctrl")),
		ModelCost:    controllers.NewModelCostController(modelCostService, log.Named("model_cost_ctrl")),
		Board:        controllers.NewBoardController(kanbanService, log.Named("board_ctrl")),
		Transfer:     controllers.NewTransferController(transferService, log.Named("transfer_ctrl")),
		ExchangeRate: controllers.NewExchangeRateController(rateService, log.Named("rate_ctrl")),
		Report:       controllers.NewReportController(reportService, log.Named("report_ctrl")),
		Ws:           controllers.NewWsController(hub, log.Named("ws_ctrl")),
	}, authMiddleware)

	log.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// subscribeBoardEvents bridges domain events onto the websocket stream so
// every open board view refreshes after a mutation.
func subscribeBoardEvents(bus *eventbus.Bus, hub *ws.Hub) {
	bus.Subscribe(events.BoardChangedName, func(ctx context.Context, event eventbus.Event) error {
		changed, _ := event.(events.BoardChanged)
		return hub.Broadcast(ws.MessageBoardRefresh, map[string]string{"reason": changed.Reason})
	})
	bus.Subscribe(events.OrderMovedName, func(ctx context.Context, event eventbus.Event) error {
		return hub.Broadcast(ws.MessageOrderMoved, event)
	})
	bus.Subscribe(events.OrderTransferredName, func(ctx context.Context, event eventbus.Event) error {
		return hub.Broadcast(ws.MessageOrderTransfer, event)
	})
}
