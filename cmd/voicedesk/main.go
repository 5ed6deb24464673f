package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/voicedesk/voicedesk/internal/agent"
	"github.com/voicedesk/voicedesk/internal/assistant"
	"github.com/voicedesk/voicedesk/internal/config"
	"github.com/voicedesk/voicedesk/internal/dashboard"
	"github.com/voicedesk/voicedesk/internal/handler"
	"github.com/voicedesk/voicedesk/internal/handler/session"
	"github.com/voicedesk/voicedesk/internal/handler/widgets"
	"github.com/voicedesk/voicedesk/internal/input"
	"github.com/voicedesk/voicedesk/internal/speech"
	"github.com/voicedesk/voicedesk/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	conversation := store.NewConversation()
	buffer := input.NewController()

	// The browser shell carries the actual speech engines; the bridge
	// relays capability commands over the active UI session.
	bridge := session.NewBridge()
	capture := speech.NewCapture(bridge, buffer)
	speaker := speech.NewSpeaker(bridge, cfg.Assistant.Volume)

	responder, err := buildResponder(ctx, cfg, conversation)
	if err != nil {
		log.Fatalf("failed to initialize agent backend: %v", err)
	}

	orchestrator := assistant.New(conversation, buffer, capture, speaker, responder)
	orchestrator.Begin(ctx)

	sessionHandler := session.New(orchestrator, conversation, buffer, capture, bridge)
	widgetsHandler := widgets.New(dashboard.NewClient(cfg.Dashboard.BaseURL, nil))

	router := handler.NewRouter(sessionHandler, widgetsHandler)

	startServer(ctx, cfg.Server, router)

	capture.Close()
	orchestrator.Wait()
}

// buildResponder prefers the remote agent endpoint; without one it falls
// back to the locally hosted model when credentials allow.
func buildResponder(ctx context.Context, cfg *config.Config, conversation *store.Conversation) (agent.Responder, error) {
	if cfg.Agent.Enabled() {
		log.Printf("using remote agent at %s", cfg.Agent.BaseURL)
		return agent.NewClient(cfg.Agent.BaseURL, nil), nil
	}

	if !cfg.AI.Enabled() {
		return nil, errors.New("no agent backend configured: set AGENT_BASE_URL or the ARK_* credentials")
	}

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("using local model %s", cfg.AI.Model)
	return agent.NewLocalResponder(ctx, chatModel, conversation)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("voicedesk gateway listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
