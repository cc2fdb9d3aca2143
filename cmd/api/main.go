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

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"task-analyzer-backend/internal/ai"
	"task-analyzer-backend/internal/config"
	"task-analyzer-backend/internal/logging"
	"task-analyzer-backend/internal/server"
	"task-analyzer-backend/internal/tasks"
)

var rootCmd = &cobra.Command{
	Use:           "task-analyzer",
	Short:         "HTTP relay that turns a task list into an AI productivity analysis",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.Int("port", config.DefaultPort, "port to listen on (env PORT)")
	flags.String("model", config.DefaultModel, "completion model (env OPENAI_MODEL)")
	flags.String("log-level", config.DefaultLogLevel, "DEBUG, INFO, WARN or ERROR (env LOG_LEVEL)")

	bindFlag(flags, config.KeyPort, "port")
	bindFlag(flags, config.KeyOpenAIModel, "model")
	bindFlag(flags, config.KeyLogLevel, "log-level")
}

func bindFlag(flags *pflag.FlagSet, key, name string) {
	if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; analysis requests will fail")
	}

	client := ai.New(cfg.OpenAIKey, ai.WithBaseURL(cfg.OpenAIBase))
	svc := tasks.NewService(client, cfg.OpenAIModel)
	srv := server.New(cfg, server.NewHandler(cfg, svc, logger), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "model", cfg.OpenAIModel)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
