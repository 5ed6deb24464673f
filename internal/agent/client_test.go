package agent_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/voicedesk/voicedesk/internal/agent"
)

func TestAskPostsMessageAndDecodesResponse(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"response": "You have 3 events"})
	}))
	defer server.Close()

	client := agent.NewClient(server.URL, server.Client())
	reply, err := client.Ask(context.Background(), "What's on my calendar?")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}

	if gotPath != "/agent/ask" {
		t.Fatalf("posted to %s", gotPath)
	}
	if gotBody["message"] != "What's on my calendar?" {
		t.Fatalf("body: %v", gotBody)
	}
	if reply != "You have 3 events" {
		t.Fatalf("reply: %q", reply)
	}
}

func TestAskNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := agent.NewClient(server.URL, server.Client())
	if _, err := client.Ask(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 502")
	}
}

func TestAskMalformedPayloadIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := agent.NewClient(server.URL, server.Client())
	if _, err := client.Ask(context.Background(), "hello"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAskHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := agent.NewClient(server.URL, server.Client())

	errCh := make(chan error, 1)
	go func() {
		_, err := client.Ask(ctx, "slow")
		errCh <- err
	}()

	<-started
	cancel()

	if err := <-errCh; err == nil {
		t.Fatal("expected error after cancellation")
	}
}
