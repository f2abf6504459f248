package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"bizmatch/internal/adapter/api"
	"bizmatch/internal/adapter/api/handler"
	apimiddleware "bizmatch/internal/adapter/api/middleware"
	"bizmatch/internal/adapter/api/router"
	"bizmatch/internal/adapter/repository"
	"bizmatch/internal/domain/entity"
	"bizmatch/internal/infrastructure/eventbus"
	"bizmatch/internal/infrastructure/ratelimit"
	"bizmatch/internal/infrastructure/websocket"
	"bizmatch/internal/usecase"
	"bizmatch/pkg/config"
	"bizmatch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Configure(cfg.Environment, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open %s store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}
	defer closeStores()

	bus := eventbus.New(cfg.EventWriteTimeout, cfg.EventFailureThreshold)
	wsManager := websocket.NewManager()

	settings := usecase.SettingsFromConfig(cfg)

	engagementUseCase := usecase.NewEngagementUseCase(stores.Engagements, bus, settings)
	chatUseCase := usecase.NewChatUseCase(stores.Conversations, engagementUseCase, bus, settings)
	ratingUseCase := usecase.NewRatingUseCase(stores.Ratings, stores.Engagements, stores.Providers, bus, settings)
	profileUseCase := usecase.NewProfileUseCase(stores.Requesters, stores.Providers, stores.Offerings, settings)
	searchUseCase := usecase.NewSearchUseCase(stores.Offerings, stores.Providers)
	matchingUseCase := usecase.NewMatchingUseCase(stores.Requesters, stores.Providers, stores.Matches, searchUseCase)

	handler.Setup(profileUseCase, searchUseCase, matchingUseCase, chatUseCase, engagementUseCase, ratingUseCase)

	limiter := ratelimit.NewRateLimiter(cfg.RateLimitPerMinute)
	limiter.StartCleanupRoutine(10*time.Minute, ctx.Done())

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e,
		apimiddleware.NewAuthMiddleware(),
		apimiddleware.NewRateLimitMiddleware(limiter),
		handler.NewWebSocketHandler(wsManager),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bus.Start(gctx)
	})

	g.Go(func() error {
		return wsManager.Run(gctx, func(events chan<- entity.Event) {
			bus.Subscribe(events)
		})
	})

	g.Go(func() error {
		logger.Info("Starting server on port %s (%s store)...", cfg.ServerPort, cfg.StoreBackend)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// openStores returns the configured record store and a func releasing it.
func openStores(ctx context.Context, cfg *config.Config) (repository.Stores, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return repository.NewMemoryStores(), func() {}, nil
	case "firestore":
		client, err := newFirestoreClient(ctx, cfg)
		if err != nil {
			return repository.Stores{}, nil, err
		}
		return repository.NewFirestoreStores(client), func() { client.Close() }, nil
	default:
		return repository.Stores{}, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newFirestoreClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)))
	} else if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
			return nil, fmt.Errorf("service account file: %w", err)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return client, nil
}
