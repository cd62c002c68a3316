package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/engine"
	"github.com/abhisek/intervue/internal/evaluator"
	"github.com/abhisek/intervue/internal/httpapi"
	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/notify"
	"github.com/abhisek/intervue/internal/store"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

func init() {
	serveCmd.Flags().StringP("listen", "l", "", "HTTP listen address (default :8080)")
	cobra.CheckErr(viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen")))
}

func serve(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	eval := buildEvaluator(ctx, cfg, st, log)
	hub := notify.NewHub(log)
	eng := engine.New(st.Sessions(), eval, log, engine.WithNotifier(hub))
	server := httpapi.New(eng, hub, log)

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

// buildEvaluator selects the evaluation strategy once at startup: a live
// provider when one is configured and valid, otherwise the deterministic
// fallback. The choice never changes for the life of the process.
func buildEvaluator(ctx context.Context, cfg *config.Config, st *store.Store, log *zap.Logger) evaluator.Evaluator {
	llmCfg, ok := cfg.LLMProviderConfig()
	if !ok {
		log.Info("no evaluation backend configured, using deterministic fallback")
		return evaluator.NewFallback()
	}
	if err := llmCfg.Validate(); err != nil {
		log.Warn("invalid evaluation backend config, using deterministic fallback", zap.Error(err))
		return evaluator.NewFallback()
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.CallLog(), log)
	if err != nil {
		log.Warn("evaluation backend unavailable, using deterministic fallback", zap.Error(err))
		return evaluator.NewFallback()
	}
	log.Info("evaluation backend ready",
		zap.String("provider", llmCfg.Provider),
		zap.Strings("models", llmCfg.ModelCandidates()))
	return evaluator.NewLLMEvaluator(provider, llmCfg.Timeout, log)
}
