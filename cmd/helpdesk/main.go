// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/helpdesk"
	"github.com/poiesic/helpdesk/ai"
	"github.com/poiesic/helpdesk/assist"
	"github.com/poiesic/helpdesk/ingestion"
	"github.com/poiesic/helpdesk/report"
	"github.com/poiesic/helpdesk/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "helpdesk",
		Usage: "Employee support assistant over the internal document base",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "HTTP listen address",
						Value: ":8000",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible host URL for both embedding and completion",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
					},
					&cli.StringFlag{
						Name:  "completion-host",
						Usage: "Completion service host URL",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.StringFlag{
						Name:  "completion-model",
						Usage: "Completion model name",
					},
					&cli.StringFlag{
						Name:  "query-log",
						Usage: "Path to the unanswered-query log",
						Value: "unanswered_queries.log",
					},
					&cli.StringFlag{
						Name:  "upload-dir",
						Usage: "Directory for uploaded documents before ingestion",
					},
					&cli.DurationFlag{
						Name:  "call-timeout",
						Usage: "Per-call timeout for embedding and completion requests",
						Value: 30 * time.Second,
					},
				},
			},
			{
				Name:   "load",
				Usage:  "Bulk-load a directory of source documents",
				Action: loadCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "Root directory of source documents",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible host URL for both embedding and completion",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				},
			},
			{
				Name:   "report",
				Usage:  "Render the unanswered-query log as a PDF",
				Action: reportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "query-log",
						Usage: "Path to the unanswered-query log",
						Value: "unanswered_queries.log",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output PDF path",
						Value:   "unanswered_queries.pdf",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	assistant, err := helpdesk.NewAssistant(c.String("db"),
		helpdesk.WithAIConfig(aiConfigFromFlags(c)),
		helpdesk.WithQueryLogPath(c.String("query-log")),
	)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	responder, err := assistant.NewResponder(
		assist.WithCallTimeout(c.Duration("call-timeout")),
	)
	if err != nil {
		return fmt.Errorf("failed to create responder: %w", err)
	}

	pipeline, err := assistant.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	srv, err := server.NewServer(responder, pipeline,
		server.WithUploadDir(c.String("upload-dir")),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:    c.String("listen"),
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	assistant, err := helpdesk.NewAssistant(c.String("db"),
		helpdesk.WithAIConfig(aiConfigFromFlags(c)),
	)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	var opts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	pipeline, err := assistant.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	stats, err := pipeline.LoadDirectory(ctx, c.String("source"))
	if err != nil {
		return fmt.Errorf("failed to load directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processed %d files (%d skipped), stored %d chunks\n",
		stats.FilesProcessed, stats.FilesSkipped, stats.ChunksStored)
	return nil
}

func reportCommand(c *cli.Context) error {
	out := c.String("out")
	if err := report.Generate(c.String("query-log"), out); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Report written to %s\n", out)
	return nil
}

// aiConfigFromFlags builds an AI config, letting --host set both
// endpoints and the specific flags override it.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	var opts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("completion-host"); host != "" {
		opts = append(opts, ai.WithCompletionHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("completion-model"); model != "" {
		opts = append(opts, ai.WithCompletionModel(model))
	}
	return ai.NewConfig(opts...)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
