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

	"aansluitintake/internal/config"
	"aansluitintake/internal/email/noop"
	"aansluitintake/internal/email/ses"
	"aansluitintake/internal/handler"
	"aansluitintake/internal/kvk"
	"aansluitintake/internal/ocr"
	"aansluitintake/internal/parser"
	"aansluitintake/internal/parser/groq"
	"aansluitintake/internal/parser/openai"
	"aansluitintake/internal/pdok"
	"aansluitintake/internal/port"
	"aansluitintake/internal/repository/postgres"
	"aansluitintake/internal/router"
	"aansluitintake/internal/service"
	s3storage "aansluitintake/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	connRepo := postgres.NewConnectionRepo(db)
	jobRepo := postgres.NewIntakeJobRepo(db)

	// Storage and email
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// AI extraction providers
	parser.RegisterProvider("openai", func(c *config.ParserProviderConfig) (port.ConnectionExtractor, error) {
		return openai.NewExtractor(c), nil
	})
	parser.RegisterProvider("groq", func(c *config.ParserProviderConfig) (port.ConnectionExtractor, error) {
		return groq.NewExtractor(c), nil
	})
	extractors, err := buildExtractors(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize extraction providers: %w", err)
	}

	// Enrichment clients and OCR
	kvkClient := kvk.NewClient(&cfg.KVK)
	pdokClient := pdok.NewClient(&cfg.PDOK)
	recognizer := ocr.NewTesseractRecognizer(&cfg.OCR)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	connSvc := service.NewConnectionService(connRepo, kvkClient, pdokClient)
	intakeSvc := service.NewIntakeService(jobRepo, connRepo, s3Client, recognizer, extractors, &cfg.S3)
	exportSvc := service.NewExportService(connRepo, s3Client, emailSender, &cfg.S3)

	// Queue worker
	worker := service.NewIntakeQueueWorker(jobRepo, intakeSvc, service.IntakeQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	// HTTP surface
	h := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		User:       handler.NewUserHandler(userSvc),
		Connection: handler.NewConnectionHandler(connSvc),
		Intake:     handler.NewIntakeHandler(intakeSvc),
		Export:     handler.NewExportHandler(exportSvc),
		Kvk:        handler.NewKvkHandler(kvkClient),
		Address:    handler.NewAddressHandler(pdokClient),
		Health:     handler.NewHealthHandler(db),
	}
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, h)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	// The worker finishes in-flight jobs and skips the queued remainder.
	<-workerDone
	log.Printf("shutdown complete")
	return nil
}

// buildExtractors maps provider names to extractors. "ai" is the fallback
// chain of primary then secondary.
func buildExtractors(cfg *config.ParserConfig) (map[string]port.ConnectionExtractor, error) {
	extractors := make(map[string]port.ConnectionExtractor)

	var chain []port.ConnectionExtractor
	var names []string
	for _, pc := range []*config.ParserProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig()} {
		if pc == nil || pc.APIKey == "" {
			continue
		}
		ex, err := parser.NewExtractor(pc)
		if err != nil {
			return nil, err
		}
		extractors[pc.Provider] = ex
		chain = append(chain, ex)
		names = append(names, pc.Provider)
	}
	if len(chain) > 0 {
		extractors["ai"] = parser.NewFallbackExtractor(chain, names)
	}
	return extractors, nil
}
