package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %v", cfg.TokenTTL)
	}
	if !cfg.RBACEnabled {
		t.Fatal("expected RBAC enabled by default")
	}
	if cfg.Mongo.Database != "inventory" || cfg.Mongo.Timeout != 10*time.Second {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Redis.Enabled {
		t.Fatal("expected redis disabled by default")
	}
	if cfg.Login.MaxAttempts != 5 || cfg.Login.Window != 15*time.Minute {
		t.Fatalf("unexpected login defaults: %+v", cfg.Login)
	}
	if cfg.IsProduction() {
		t.Fatal("development config reported as production")
	}
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"RBAC_ENABLED":       "false",
		"TOKEN_TTL":          "1h",
		"REDIS_ENABLED":      "true",
		"REDIS_DB":           "2",
		"LOGIN_MAX_ATTEMPTS": "3",
		"ADMIN_USERNAME":     "root",
		"ADMIN_PASSWORD":     "pw",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsProduction() || cfg.RBACEnabled || cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.Redis.Enabled || cfg.Redis.DB != 2 || cfg.Login.MaxAttempts != 3 {
		t.Fatalf("unexpected nested overrides: %+v", cfg)
	}
	if cfg.Admin.Username != "root" || cfg.Admin.Password != "pw" {
		t.Fatalf("unexpected admin config: %+v", cfg.Admin)
	}
}

func TestProcess_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"empty secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"blank secret", map[string]string{"JWT_SECRET": "   "}, "JWT_SECRET"},
		{"bad duration", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "soon"}, "TOKEN_TTL"},
		{"non-positive ttl", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}, "TOKEN_TTL"},
		{"half admin", map[string]string{"JWT_SECRET": "s", "ADMIN_USERNAME": "root"}, "ADMIN_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := process(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
