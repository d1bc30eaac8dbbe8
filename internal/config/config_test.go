package config

import (
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	// Test DB config
	if cfg.DB.Engine == "" {
		t.Error("DB.Engine should not be empty")
	}

	if cfg.Firebase.ProjectID == "" {
		t.Error("Firebase.ProjectID should not be empty")
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	t.Setenv(ConfigJSONEnv, `{"Webserver":{"Port":9999,"URL":"http://localhost:9999"},"DB":{"Engine":"sqlite"}}`)

	cfg, err := ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Webserver.Port != 9999 {
		t.Errorf("Webserver.Port = %d, want 9999 from env override", cfg.Webserver.Port)
	}

	if cfg.DB.Engine != "sqlite" {
		t.Errorf("DB.Engine = %q, want sqlite from env override", cfg.DB.Engine)
	}
}

func TestReadConfigShutDownTimeDefault(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	// zero out the drain window from the sample config
	t.Setenv(ConfigJSONEnv, `{"Webserver":{"ShutDownTime":0}}`)

	cfg, err := ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Webserver.ShutDownTime != 5 {
		t.Errorf("Webserver.ShutDownTime = %d, want the default of 5", cfg.Webserver.ShutDownTime)
	}
}

func TestReadConfigBadEnvJSON(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	t.Setenv(ConfigJSONEnv, `{not json`)

	if _, err := ReadConfig(configPath); err == nil {
		t.Error("ReadConfig() should fail on malformed env JSON")
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title: "test",
		Webserver: Webserver{
			Port: 4000,
			URL:  "http://localhost:4000",
		},
		DB: DB{Engine: "sqlite", Storage: ":memory:"},
	}

	out, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if out == "" {
		t.Error("DumpConfig() returned empty output")
	}

	jsonOut, err := DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if jsonOut == "" {
		t.Error("DumpConfigJSON() returned empty output")
	}
}
