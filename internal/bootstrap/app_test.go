package bootstrap

import (
	"context"
	"testing"

	"pfas-demo/internal/app"
	"pfas-demo/internal/config"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("CONFIG_FILE", t.TempDir()+"/missing.toml")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestNewWithConfigSeedsMemoryStores(t *testing.T) {
	a, err := NewWithConfig(context.Background(), memoryConfig(t))
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	defer a.Close()

	if len(a.Checks) != 0 {
		t.Fatalf("memory mode should have no dependency checks, got %d", len(a.Checks))
	}

	page, err := a.Services.Documents.Search(app.DocumentQuery{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Total == 0 {
		t.Fatal("documents were not seeded")
	}

	if _, err := a.Services.Auth.Login(app.LoginInput{Username: "demo", Password: "demo-password"}); err != nil {
		t.Fatalf("seeded user cannot log in: %v", err)
	}
}

func TestNewWithConfigIsRepeatable(t *testing.T) {
	cfg := memoryConfig(t)
	for i := 0; i < 2; i++ {
		a, err := NewWithConfig(context.Background(), cfg)
		if err != nil {
			t.Fatalf("run %d: NewWithConfig() error = %v", i, err)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("run %d: Close() error = %v", i, err)
		}
	}
}
