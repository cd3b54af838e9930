package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nidoapp/nido/internal/appointment"
	"github.com/nidoapp/nido/internal/auth"
	"github.com/nidoapp/nido/internal/config"
	"github.com/nidoapp/nido/internal/document"
	"github.com/nidoapp/nido/internal/logger"
	"github.com/nidoapp/nido/internal/metrics"
	"github.com/nidoapp/nido/internal/note"
	"github.com/nidoapp/nido/internal/pregnancy"
	"github.com/nidoapp/nido/internal/server"
	"github.com/nidoapp/nido/internal/storage"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		logg.Fatal("run migrations", zap.Error(err))
	}

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		logg.Fatal("connect minio", zap.Error(err))
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		logg.Fatal("ensure bucket", zap.Error(err))
	}

	metrics.InitMetrics()

	authRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(authRepo, cfg.Auth)

	documentRepo := document.NewRepository(dbPool)
	documentStore := document.NewMinIOStore(minioClient, cfg.MinIO.Bucket)
	documentService := document.NewService(documentRepo, documentStore, cfg.MinIO.Bucket, logg)

	noteService := note.NewService(note.NewRepository(dbPool))
	appointmentService := appointment.NewService(appointment.NewRepository(dbPool))
	pregnancyService := pregnancy.NewService(pregnancy.NewRepository(dbPool))

	router := server.NewRouter(server.Dependencies{
		Config:             cfg,
		DB:                 dbPool,
		ObjectStore:        minioClient,
		Logger:             logg,
		AuthService:        authService,
		DocumentService:    documentService,
		NoteService:        noteService,
		AppointmentService: appointmentService,
		PregnancyService:   pregnancyService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("nido api listening", zap.String("addr", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown", zap.Error(err))
	}
}
