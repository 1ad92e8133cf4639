package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/eventengine"
	"github.com/menna-17/backend-craftora/internal/features/admin"
	"github.com/menna-17/backend-craftora/internal/features/cart"
	"github.com/menna-17/backend-craftora/internal/features/contact"
	"github.com/menna-17/backend-craftora/internal/features/notification"
	"github.com/menna-17/backend-craftora/internal/features/order"
	"github.com/menna-17/backend-craftora/internal/features/payment"
	"github.com/menna-17/backend-craftora/internal/features/product"
	"github.com/menna-17/backend-craftora/internal/features/user"
	"github.com/menna-17/backend-craftora/internal/handlerutils"
	"github.com/menna-17/backend-craftora/internal/mailer"
	"github.com/menna-17/backend-craftora/internal/middlewares"
	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr             string
	DB               *sql.DB
	TokenManager     *auth.TokenService
	Mailer           *mailer.Mailer
	AllowedOrigins   []string
	ContactRecipient string
	Payment          *payment.ServiceConfig
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines within individual routes to finish before shutting down the server.

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
	// e.g. /products/1/ -> /products/1
	router.Use(chimiddleware.StripSlashes)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	s.prep()

	// liveness
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		handlerutils.WriteJSON(w, http.StatusOK, map[string]string{
			"status":    "success",
			"message":   "E-commerce API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlerutils.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	router.Mount("/api", s.apiRouter())

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
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
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("server has stopped receiving new requests")
			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.DB.Close(); err != nil {
		log.Println("server failed to close db for shutdown")
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) apiRouter() *chi.Mux {
	r := chi.NewRouter()

	// middleware
	middleware := middlewares.NewMiddleware(
		s.TokenManager,
	)

	// user feature
	userStore := user.NewStore(s.DB)
	userService := user.NewService(
		userStore,
		s.TokenManager,
		s.Mailer,
	)
	userHandler := user.NewHandler(userService, middleware)
	userHandler.RegisterRoutes(r)

	// admin feature
	adminStore := admin.NewStore(s.DB)
	adminService := admin.NewService(adminStore)
	adminHandler := admin.NewHandler(adminService, middleware)
	adminHandler.RegisterRoutes(r)

	// products feature
	productStore := product.NewStore(s.DB)
	productService := product.NewService(productStore)
	productHandler := product.NewHandler(
		productService,
		middleware,
	)
	productHandler.RegisterRoutes(r)

	// cart feature
	cartStore := cart.NewStore(s.DB)
	cartService := cart.NewService(
		cartStore,
		productService,
	)
	cartHandler := cart.NewHandler(cartService, middleware)
	cartHandler.RegisterRoutes(r)

	// orders feature
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(
		orderStore,
		productService,
		s.eventEngine,
	)
	orderHandler := order.NewHandler(orderService, middleware)
	orderHandler.RegisterRoutes(r)

	// order confirmation mails ride on the order placed event
	notification.NewHandlerEvents(
		&notification.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Mailer:        s.Mailer,
		},
	)

	// payment feature
	paymentService := payment.NewService(s.Payment)
	paymentHandler := payment.NewHandler(paymentService)
	paymentHandler.RegisterRoutes(r)

	// contact feature
	contactHandler := contact.NewHandler(
		s.Mailer,
		s.ContactRecipient,
	)
	contactHandler.RegisterRoutes(r)

	return r
}
