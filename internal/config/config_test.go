package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Weld.AngleDeg != 1.0 {
		t.Errorf("expected weld angle 1.0, got %f", cfg.Weld.AngleDeg)
	}
	if cfg.Weld.Precision != 4 {
		t.Errorf("expected weld precision 4, got %d", cfg.Weld.Precision)
	}
	if cfg.Surfaces.AngleDeg != 1.0 {
		t.Errorf("expected surfaces angle 1.0, got %f", cfg.Surfaces.AngleDeg)
	}
	if cfg.Surfaces.FirstID != 0 {
		t.Errorf("expected first_id 0, got %d", cfg.Surfaces.FirstID)
	}
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
weld:
  angle_deg: 2.5
  precision: 5

surfaces:
  angle_deg: 10
  first_id: 1

viewer:
  width: 1920
  height: 1080
  vsync: false

logging:
  level: debug
  log_file: meshprep.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Weld.AngleDeg != 2.5 {
		t.Errorf("expected weld angle 2.5, got %f", cfg.Weld.AngleDeg)
	}
	if cfg.Weld.Precision != 5 {
		t.Errorf("expected weld precision 5, got %d", cfg.Weld.Precision)
	}
	if cfg.Surfaces.AngleDeg != 10 {
		t.Errorf("expected surfaces angle 10, got %f", cfg.Surfaces.AngleDeg)
	}
	if cfg.Surfaces.FirstID != 1 {
		t.Errorf("expected first_id 1, got %d", cfg.Surfaces.FirstID)
	}
	if cfg.Viewer.Width != 1920 || cfg.Viewer.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Viewer.Width, cfg.Viewer.Height)
	}
	if cfg.Viewer.VSync {
		t.Error("expected vsync false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshprep.log" {
		t.Errorf("expected log file 'meshprep.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// A partial file only overrides the keys it names.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("weld:\n  angle_deg: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Weld.AngleDeg != 3 {
		t.Errorf("expected weld angle 3, got %f", cfg.Weld.AngleDeg)
	}
	if cfg.Weld.Precision != 4 {
		t.Errorf("expected default precision to survive, got %d", cfg.Weld.Precision)
	}
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected default width to survive, got %d", cfg.Viewer.Width)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Weld.AngleDeg = 7.5
	cfg.Surfaces.FirstID = 3

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.Weld.AngleDeg != 7.5 {
		t.Errorf("expected weld angle 7.5, got %f", loaded.Weld.AngleDeg)
	}
	if loaded.Surfaces.FirstID != 3 {
		t.Errorf("expected first_id 3, got %d", loaded.Surfaces.FirstID)
	}
}
