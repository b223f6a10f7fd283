package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/callgear/pkg/ai"
	"github.com/haivivi/callgear/pkg/bridge"
	"github.com/haivivi/callgear/pkg/cli"
	"github.com/haivivi/callgear/pkg/notify"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the call bridge server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runServe(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg *cli.Config) error {
	logger := newLogger()

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	var dispatcher notify.Dispatcher
	if cfg.DispatchEnabled() {
		dispatcher = notify.NewTwilio(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	} else {
		logger.Warn("follow-up dispatch disabled: scheduling link, contact, or telephony credentials missing")
	}

	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}

	gateway := bridge.NewGateway(bridge.GatewayParams{
		Config: &bridge.Config{
			SystemPrompt:      cfg.SystemPrompt,
			Greeting:          cfg.Greeting,
			AfterHoursMessage: cfg.AfterHoursMessage,
			SchedulingLink:    cfg.SchedulingLink,
			NotifyContact:     cfg.NotifyContact,
			TranscribeName:    cfg.Transcribe,
			CompleteName:      cfg.Complete,
			SynthesizeName:    cfg.Synthesize,
			Hours:             schedule,
		},
		Engine:     engine,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: gateway.Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr,
			"transcribe", cfg.Transcribe, "complete", cfg.Complete, "synthesize", cfg.Synthesize)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}

// buildEngine registers the configured capability backends on a mux.
func buildEngine(ctx context.Context, cfg *cli.Config) (bridge.Engine, error) {
	mux := ai.NewMux()

	openAI := ai.NewOpenAI(cfg.OpenAIAPIKey)
	mux.HandleTranscriber("openai", openAI)
	mux.HandleCompleter("openai", openAI)
	mux.HandleSynthesizer("openai", openAI)

	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("serve: gemini backend: %w", err)
		}
		mux.HandleCompleter("gemini", gemini)
	}

	return mux, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
