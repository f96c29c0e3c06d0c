package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLogger_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := InitLogger(dir, true)
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	logger.Info("bookings board ready")
	_ = logger.Sync()

	info, err := os.Stat(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to have content")
	}
}
