package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"socialdash/cmd/app"
	"socialdash/internal/config"
	handlers "socialdash/internal/handler"
	"socialdash/internal/logger"
	"socialdash/internal/middleware"
)

func main() {
	// setting up config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	logg := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("не удалось запустить приложение", zap.Error(err))
	}
	defer application.Close()

	handler := handlers.NewHandlers(application.Services, cfg, logger.WithComponent(logg, "http"))

	router := mux.NewRouter()
	middleware.InstrumentRouter(router)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	handler.RegisterRoutes(router, middleware.AuthMiddleware(application.Services.Auth))

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware(logger.WithComponent(logg, "http")),
		middleware.CORSMiddleware(cfg.FrontendURL),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logg.Info("сервер запущен", zap.String("addr", server.Addr), zap.String("database", cfg.DB.DbNAME))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("ошибка запуска сервера", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("ошибка остановки сервера", zap.Error(err))
	}
	logg.Info("сервер остановлен")
}
