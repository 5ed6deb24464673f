package config_test

import (
	"testing"

	"github.com/voicedesk/voicedesk/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr: %q", cfg.Server.Addr)
	}
	if cfg.Assistant.Volume != 0.7 {
		t.Fatalf("default volume: %v", cfg.Assistant.Volume)
	}
	if cfg.Dashboard.BaseURL != "http://127.0.0.1:8000" {
		t.Fatalf("default dashboard url: %q", cfg.Dashboard.BaseURL)
	}
	if cfg.Agent.Enabled() {
		t.Fatal("agent must be disabled without AGENT_BASE_URL")
	}
	if cfg.AI.Enabled() {
		t.Fatal("local model must be disabled without credentials")
	}
}

func TestLoadPortVariants(t *testing.T) {
	cases := []struct {
		name    string
		port    string
		want    string
		wantErr bool
	}{
		{name: "bare port", port: "9090", want: ":9090"},
		{name: "full addr", port: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "garbage", port: "90 90", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", tc.port)
			cfg, err := config.Load()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load err: %v", err)
			}
			if cfg.Server.Addr != tc.want {
				t.Fatalf("addr: got %q want %q", cfg.Server.Addr, tc.want)
			}
		})
	}
}

func TestLoadVolumeValidation(t *testing.T) {
	t.Setenv("ASSISTANT_VOLUME", "1.5")
	if _, err := config.Load(); err == nil {
		t.Fatal("out-of-range volume must be rejected")
	}

	t.Setenv("ASSISTANT_VOLUME", "0")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Assistant.Volume != 0 {
		t.Fatalf("muted start not honored: %v", cfg.Assistant.Volume)
	}
}

func TestAIEnabledRequiresModelAndKey(t *testing.T) {
	t.Setenv("ARK_MODEL", "doubao-pro")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.Enabled() {
		t.Fatal("model without key must stay disabled")
	}

	t.Setenv("ARK_API_KEY", "test-key")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !cfg.AI.Enabled() {
		t.Fatal("model plus key must enable the local responder")
	}
}
