package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/booking"
	"salonbook/internal/modules/notification"
	"salonbook/internal/modules/rating"
	"salonbook/internal/modules/stylist"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/pkg/logger"
	"salonbook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger not up yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	defer log.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	stylistRepo := repository.NewStylistRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	hub := notification.NewHub(log)
	defer hub.Close()

	stylistService := stylist.NewService(stylistRepo)
	stylistHandler := stylist.NewHandler(stylistService)

	bookingService := booking.NewService(bookingRepo, stylistRepo, hub)
	bookingHandler := booking.NewHandler(bookingService)

	ratingService := rating.NewService(ratingRepo, stylistRepo, log)
	ratingHandler := rating.NewHandler(ratingService)

	wsHandler := notification.NewWSHandler(hub, j, log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Guests may book and rate; OptionalAuth attaches the identity when
		// a token is present so those rows carry the real customer id.
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))

		authed := v1.Group("/")
		authed.Use(middleware.Auth(j))

		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())

		stylistHandler.RegisterRoutes(public, authed, admin)
		bookingHandler.RegisterRoutes(public, authed, admin)
		ratingHandler.RegisterRoutes(public, authed, admin)

		// The ws handler authenticates via ?token= itself: browsers cannot
		// set an Authorization header on websocket dials.
		v1.GET("/ws/bookings", wsHandler.HandleWebSocket)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
