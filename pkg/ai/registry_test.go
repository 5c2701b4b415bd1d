package ai

import (
	"context"
	"testing"

	"folio_chat/pkg/config"
)

type nopProvider struct{}

func (nopProvider) CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	return ChatResponse{}, nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	info := ProviderInfo{
		Type:        "test-provider",
		Name:        "Test Provider",
		Description: "A test provider",
		EnvKey:      "TEST_KEY",
	}

	r.Register(info, func(cfg ProviderConfig) (Provider, error) {
		return nopProvider{}, nil
	})

	if !r.IsRegistered("test-provider") {
		t.Fatal("expected provider to be registered")
	}

	gotInfo, ok := r.GetProviderInfo("test-provider")
	if !ok {
		t.Fatal("expected to find provider info")
	}
	if gotInfo.Name != "Test Provider" {
		t.Fatalf("expected name 'Test Provider', got %q", gotInfo.Name)
	}

	p, err := r.GetProvider(ProviderConfig{Type: "test-provider"})
	if err != nil {
		t.Fatalf("GetProvider() error: %v", err)
	}
	if _, ok := p.(nopProvider); !ok {
		t.Fatalf("expected nopProvider, got %T", p)
	}
}

func TestRegistry_GetProvider_UnknownType(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetProvider(ProviderConfig{Type: "unknown"})
	if err == nil {
		t.Fatal("expected error for unknown provider type")
	}
}

func TestRegistry_ListProvidersSorted(t *testing.T) {
	r := NewRegistry()

	r.Register(ProviderInfo{Type: "zeta", Name: "Zeta"}, func(cfg ProviderConfig) (Provider, error) { return nil, nil })
	r.Register(ProviderInfo{Type: "alpha", Name: "Alpha"}, func(cfg ProviderConfig) (Provider, error) { return nil, nil })

	providers := r.ListProviders()
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0].Type != "alpha" || providers[1].Type != "zeta" {
		t.Fatalf("expected sorted providers, got %v", providers)
	}
}

func TestValidateProviderType(t *testing.T) {
	tests := []struct {
		input    string
		wantType ProviderType
		wantOK   bool
	}{
		{"groq", ProviderGroq, true},
		{"openai", ProviderOpenAI, true},
		{"google", ProviderGoogle, true},
		{" GROQ ", ProviderGroq, true},
		{"openrouter", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gotType, gotOK := ValidateProviderType(tt.input)
			if gotType != tt.wantType {
				t.Errorf("ValidateProviderType(%q) type = %q, want %q", tt.input, gotType, tt.wantType)
			}
			if gotOK != tt.wantOK {
				t.Errorf("ValidateProviderType(%q) ok = %v, want %v", tt.input, gotOK, tt.wantOK)
			}
		})
	}
}

func TestProviderConfig_Settings(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.OpenAI.Model = "gpt-test"

	pc := ProviderConfig{Type: ProviderOpenAI, Config: cfg}
	if got := pc.Settings().Model; got != "gpt-test" {
		t.Fatalf("Settings().Model = %q, want 'gpt-test'", got)
	}
}

func TestGetProviderFromConfig_Unsupported(t *testing.T) {
	cfg := config.Default()
	cfg.LLMProvider = "copilot"

	if _, err := GetProviderFromConfig(cfg); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 401, Message: "Invalid API Key"}
	if got := err.Error(); got != "api error (status 401): Invalid API Key" {
		t.Fatalf("unexpected error string %q", got)
	}

	bare := &APIError{StatusCode: 500}
	if got := bare.Error(); got != "api error (status 500)" {
		t.Fatalf("unexpected error string %q", got)
	}
}
