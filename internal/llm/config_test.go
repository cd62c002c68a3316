package llm

import "testing"

func TestDiscoverConfig_ProbeOrder(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("no keys set, expected no config")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" {
		t.Fatalf("got %+v ok=%v, want anthropic", cfg, ok)
	}

	// Gemini outranks the others when several keys are present.
	t.Setenv("OPENAI_API_KEY", "sk-oai")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Fatalf("got %+v ok=%v, want gemini", cfg, ok)
	}
	if len(cfg.Models) == 0 {
		t.Error("discovered config should carry a default model chain")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	if err := cfg.Validate(); err == nil {
		t.Error("openai without key should fail validation")
	}
	cfg.APIKey = "sk"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.Provider = "punchcard"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail validation")
	}

	mock := DefaultConfig()
	mock.Provider = "mock"
	if err := mock.Validate(); err != nil {
		t.Errorf("mock provider needs no key: %v", err)
	}
}

func TestParseModelList(t *testing.T) {
	got := ParseModelList(" gemini-flash, gemini-pro ,,")
	if len(got) != 2 || got[0] != "gemini-flash" || got[1] != "gemini-pro" {
		t.Errorf("got %v", got)
	}
	if ParseModelList("") != nil {
		t.Error("empty input should yield nil")
	}
}

func TestModelCandidates_FallsBackToDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "anthropic"
	if len(cfg.ModelCandidates()) == 0 {
		t.Error("expected default candidates for anthropic")
	}

	cfg.Models = []string{"custom-model"}
	got := cfg.ModelCandidates()
	if len(got) != 1 || got[0] != "custom-model" {
		t.Errorf("got %v, want explicit list", got)
	}
}
