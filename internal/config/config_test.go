package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name        string
		configData  string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "Valid config file",
			configData: `
apiPort: 8080
database:
  type: sqlite
  path: /tmp/test.db
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.APIPort != 8080 {
					t.Errorf("Expected APIPort 8080, got %d", cfg.APIPort)
				}
				if cfg.Database.Path != "/tmp/test.db" {
					t.Errorf("Expected database path /tmp/test.db, got %s", cfg.Database.Path)
				}
			},
		},
		{
			name:       "Defaults applied",
			configData: `{}`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.APIPort != 8081 {
					t.Errorf("Expected default APIPort 8081, got %d", cfg.APIPort)
				}
				if cfg.Database.Type != "sqlite" {
					t.Errorf("Expected default database type sqlite, got %s", cfg.Database.Type)
				}
				if cfg.Database.Path == "" {
					t.Error("Expected a default database path")
				}
			},
		},
		{
			name: "Postgres defaults",
			configData: `
database:
  type: postgres
  name: staffdesk
  user: staffdesk
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Database.Host != "localhost" {
					t.Errorf("Expected default host localhost, got %s", cfg.Database.Host)
				}
				if cfg.Database.Port != "5432" {
					t.Errorf("Expected default port 5432, got %s", cfg.Database.Port)
				}
				if cfg.Database.SSLMode != "disable" {
					t.Errorf("Expected default sslmode disable, got %s", cfg.Database.SSLMode)
				}
			},
		},
		{
			name:        "Invalid config file",
			configData:  "apiPort: [not a number",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tempDir, "app.yml")
			if err := os.WriteFile(configPath, []byte(tt.configData), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Missing config file should fall back to defaults, got error: %v", err)
	}
	if cfg.APIPort != 8081 {
		t.Errorf("Expected default APIPort 8081, got %d", cfg.APIPort)
	}
}
