package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func fileOnly(t *testing.T, level string, f FileConfig) {
	t.Helper()
	if err := Setup(Options{Level: level, File: f}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	t.Cleanup(func() { Log = zap.NewNop() })
}

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "room.log")

	// 1MB is the smallest size lumberjack rotates at.
	fileOnly(t, "debug", FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1})

	long := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Info("placement moved", zap.Int("i", i), zap.String("pad", long))
	}
	Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var rotated []string
	for _, e := range entries {
		if e.Name() != "room.log" && strings.HasPrefix(e.Name(), "room-") {
			rotated = append(rotated, e.Name())
		}
	}
	if len(rotated) == 0 {
		t.Fatalf("no rotated files in %v", entries)
	}
	for _, name := range rotated {
		// room-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") || !strings.HasSuffix(name, ".log") {
			t.Errorf("rotated file %s lacks a timestamp", name)
		}
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			fileOnly(t, tt.level, FileConfig{Path: logFile, MaxSizeMB: 10})

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			for _, want := range tt.expected {
				if !strings.Contains(string(content), want) {
					t.Errorf("expected %s in log output", want)
				}
			}
			for _, skip := range tt.excluded {
				if strings.Contains(string(content), skip) {
					t.Errorf("unexpected %s in output at level %s", skip, tt.level)
				}
			}
		})
	}
}

func TestJSONFileFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "room.json")
	fileOnly(t, "info", FileConfig{Path: logFile, Format: FormatJSON, MaxSizeMB: 1})

	Named("export").Info("layout exported", zap.Int("models", 3))
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "layout exported" || entry["component"] != "export" || entry["models"] != float64(3) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Setup(Options{Level: "info", Console: &buf}); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { Log = zap.NewNop() })

	Named("picking").Info("ray cast")
	Debug("hidden")
	Sync()

	out := buf.String()
	if !strings.Contains(out, "ray cast") || !strings.Contains(out, `"component": "picking"`) {
		t.Errorf("console output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("room.log")
	want := FileConfig{Path: "room.log", Format: FormatConsole, MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", cfg, want)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	OrNop(nil).Info("dropped")

	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop replaced a real logger")
	}
}
