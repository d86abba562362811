package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mira-realty/transaction-copilot/internal/common"
	"github.com/mira-realty/transaction-copilot/internal/contract"
	"github.com/mira-realty/transaction-copilot/internal/export"
	"github.com/mira-realty/transaction-copilot/internal/extract"
	"github.com/mira-realty/transaction-copilot/internal/ingest"
	"github.com/mira-realty/transaction-copilot/internal/pipeline"
	"github.com/mira-realty/transaction-copilot/internal/realist"
	"github.com/mira-realty/transaction-copilot/internal/repository"
	"github.com/mira-realty/transaction-copilot/internal/server"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// Env
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.Default()

	// DB
	db, err := repository.Open(ctx, cfg.Database, slogger)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer db.Close(slogger)
	if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK")

	leads := repository.NewLeadRepository(db.SQL, slogger)

	// Core components
	textExtractor := extract.NewPdftotextExtractor(extract.Config{
		Pdftotext: cfg.Extract.Pdftotext,
		MaxPages:  cfg.Extract.MaxPages,
	}, slogger)
	propertyExtractor := realist.NewExtractor(textExtractor, slogger)
	realistStage := pipeline.NewRealistStage(leads, propertyExtractor, slogger)

	slots := contract.PurchaseAgreementSlots()
	if cfg.Documents.SlotRegistry != "" {
		slots, err = contract.LoadSlotRegistry(cfg.Documents.SlotRegistry)
		if err != nil {
			log.Fatalf("slot registry: %v", err)
		}
	}
	engine := contract.NewOverlayEngine(slots, contract.NewPDFStamper(), slogger)
	assembler := contract.NewAssembler(
		cfg.Documents.TemplateDir,
		cfg.Documents.TemplateFile,
		cfg.Documents.OutputDir,
		engine,
		contract.NewDocxFallback(),
		slogger,
	)
	draftStage := pipeline.NewDraftStage(leads, assembler, slogger)
	exporter := export.NewService(leads, slogger)

	// Realist inbox watcher (optional)
	if cfg.Ingest.InboxDir != "" {
		events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Root:        cfg.Ingest.InboxDir,
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
		})
		if err != nil {
			log.Fatalf("starting inbox watcher: %v", err)
		}
		inbox := ingest.NewInbox(realistStage, slogger)
		go inbox.Consume(ctx, events)
		go func() {
			for err := range watchErrs {
				log.Warnw("inbox watcher error", "error", err)
			}
		}()
		log.Infow("realist inbox watching", "dir", cfg.Ingest.InboxDir)
	}

	// HTTP server
	svc := server.New(cfg, db.SQL, leads, realistStage, draftStage, assembler, exporter, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
}
