package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/juniper-commerce/marketplace-backend/internal/eventengine"
	"github.com/juniper-commerce/marketplace-backend/internal/features/account"
	"github.com/juniper-commerce/marketplace-backend/internal/features/catalog"
	"github.com/juniper-commerce/marketplace-backend/internal/features/inventory"
	"github.com/juniper-commerce/marketplace-backend/internal/features/order"
	"github.com/juniper-commerce/marketplace-backend/internal/middlewares"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr   string
	Logger *zap.Logger
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // signals internal go routines to shut down
	internalSrvWG *sync.WaitGroup // waits for all internal go routines to finish before the server exits

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /orders/1/ -> /orders/1
	router.Use(chimiddleware.StripSlashes)

	s.prep()

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to gracefully shut
	// the server down.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			s.Logger.Info(
				"server started and is listening",
				zap.String("port", s.Addr),
			)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen for shutdown signals
			s.Logger.Info("hold and wait, server is gracefully shutting down")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			s.Logger.Info("waiting for all pending requests to finish")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed to shut down gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		s.Logger.Fatal("server error", zap.Error(err))
	}
	s.Logger.Info("all pending requests completed")

	s.Logger.Info("waiting for all internal pending go routines")
	close(s.doneCh)
	s.internalSrvWG.Wait()

	s.Logger.Info("server has been gracefully shut down")
}

// prep prepares server dependencies needed for the server to function.
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			Logger:        s.Logger,
		},
	)
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// middleware
	middleware := middlewares.NewMiddleware()

	// inventory feature: the stock ledger every other feature leans on
	inventoryStore := inventory.NewStore()
	inventoryService := inventory.NewService(
		inventoryStore,
		s.eventEngine,
	)
	inventoryHandler := inventory.NewHandler(
		inventoryService,
		middleware,
	)
	inventoryHandler.RegisterRoutes(r)

	// catalog feature
	catalogStore := catalog.NewStore()
	catalogService := catalog.NewService(
		catalogStore,
		inventoryService,
	)
	catalogHandler := catalog.NewHandler(catalogService)
	catalogHandler.RegisterRoutes(r)

	// order feature
	orderStore := order.NewStore()
	orderService := order.NewService(
		orderStore,
		inventoryService,
		catalogService,
		s.eventEngine,
	)
	orderHandler := order.NewHandler(
		orderService,
		middleware,
	)
	orderHandler.RegisterRoutes(r)

	// account feature
	accountStore := account.NewStore()
	accountService := account.NewService(accountStore)
	accountHandler := account.NewHandler(
		accountService,
		middleware,
	)
	accountHandler.RegisterRoutes(r)

	// vendor alerts sink; must come after the services that register the
	// events it subscribes to
	inventory.NewHandlerEvents(
		&inventory.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Logger:        s.Logger,
		},
	)

	return r
}
