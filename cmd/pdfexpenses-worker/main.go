// Command pdfexpenses-worker consumes document jobs and writes expense
// records for them.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"pdfexpenses/internal/amqp"
	"pdfexpenses/internal/cache"
	"pdfexpenses/internal/cli"
	"pdfexpenses/internal/log"
	"pdfexpenses/internal/recognition"
	"pdfexpenses/internal/worker"
)

const (
	recentJobs = 10000
	// Template locations kept in memory; only their count is reported.
	recentTemplates = 1000
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg, log.ComponentWorker)

	logger.Info("Starting pdfexpenses-worker", log.FieldOperation, log.OpStartup)
	if err := cfg.RequireAMQP(); err != nil {
		logger.Error("Configuration validation failed", log.Err(err))
		os.Exit(1)
	}

	registry, err := cli.Registry(cfg)
	if err != nil {
		logger.Error("Failed to load recognizers", log.Err(err), "path", cfg.RecognizersFile)
		os.Exit(1)
	}
	writer, closeWriter, err := cli.RecordWriter(cfg)
	if err != nil {
		logger.Error("Failed to open record storage", log.Err(err), "ledger", cfg.LedgerPath)
		os.Exit(1)
	}
	defer closeWriter()
	converter, err := cli.Converter(cfg)
	if err != nil {
		logger.Error("Failed to create text converter", log.Err(err))
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.Err(err))
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	recent := cache.NewRecentSet(recentJobs, cfg.DedupeWindow)
	go cache.Sweep(ctx, time.Minute, recent)

	extractor := recognition.NewExtractor(registry, writer, recognition.WithTemplateLimit(recentTemplates))
	w := worker.NewExtractionWorker(converter, extractor, recent)

	logger.Info("Consuming document jobs",
		"queue", cfg.AMQPQueue,
		"recognizers", registry.Len(),
		"backend", cfg.TextBackend)

	err = amqpClient.ConsumeDocumentJobs(ctx, w.HandleJob)
	handled, duplicates := w.Stats()
	logger.Info("Worker stopped",
		log.FieldOperation, log.OpShutdown,
		"handled", handled,
		"duplicates", duplicates,
		"templates", extractor.TemplateCount())
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.Err(err))
		os.Exit(1)
	}
}
