package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Port != 7860 {
		t.Errorf("Expected port 7860, got %d", cfg.Port)
	}
	if cfg.InputSize != 640 {
		t.Errorf("Expected input size 640, got %d", cfg.InputSize)
	}
	if cfg.ConfidenceThreshold != 0.25 {
		t.Errorf("Expected confidence threshold 0.25, got %v", cfg.ConfidenceThreshold)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected shutdown timeout 10s, got %v", cfg.ShutdownTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("Expected allowed origins [*], got %v", cfg.AllowedOrigins)
	}
	if cfg.Addr() != ":7860" {
		t.Errorf("Expected addr :7860, got %s", cfg.Addr())
	}
}

func TestLoadFile_Environment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MODEL_PATH", "/opt/models/yolo.onnx")
	t.Setenv("INFERENCE_WORKERS", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Port)
	}
	if cfg.ModelPath != "/opt/models/yolo.onnx" {
		t.Errorf("Expected model path from env, got %s", cfg.ModelPath)
	}
	if cfg.InferenceWorkers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.InferenceWorkers)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 allowed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadFile_DotenvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("NAMES_PATH=/tmp/coco.yaml\n"), 0644); err != nil {
		t.Fatalf("Failed to write dotenv file: %v", err)
	}
	t.Setenv("NAMES_PATH", "")
	os.Unsetenv("NAMES_PATH")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.NamesPath != "/tmp/coco.yaml" {
		t.Errorf("Expected names path from dotenv, got %s", cfg.NamesPath)
	}
}

func TestLoadFile_MissingDotenvIsIgnored(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("Expected missing dotenv to be ignored, got %v", err)
	}
}

func TestLoadFile_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "abc"},
		{"PORT", "0"},
		{"INPUT_SIZE", "-1"},
		{"INFERENCE_WORKERS", "0"},
		{"CONF_THRESHOLD", "1.5"},
		{"IOU_THRESHOLD", "-0.1"},
		{"MAX_UPLOAD_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFile(""); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
