package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "WiresAccess.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("NODE%d%%E5abc%%CALL%d%%2024/01/%02d 10:00:00%%Net%%%%", i, i, i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestReadAll_ReplacesInvalidBytes(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "WiresAccess.log")
	raw := []byte("JA1YOE\xff\xfeROOM%12345%\n")
	if err := os.WriteFile(logPath, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadAll(logPath)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !strings.HasPrefix(got, "JA1YOE�") {
		t.Fatalf("ReadAll() = %q, want replacement marker after JA1YOE", got)
	}
	if !strings.HasSuffix(got, "ROOM%12345%\n") {
		t.Fatalf("ReadAll() = %q, want tail preserved", got)
	}
}

func TestReadAll_MissingFileErrors(t *testing.T) {
	if _, err := ReadAll(filepath.Join(t.TempDir(), "absent.log")); err == nil {
		t.Fatalf("ReadAll() returned nil error for missing file")
	}
}

func TestModTime(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")

	_, exists, err := ModTime(logPath)
	if err != nil || exists {
		t.Fatalf("ModTime(missing) = exists %v, err %v; want false, nil", exists, err)
	}

	if err := os.WriteFile(logPath, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(logPath, stamp, stamp); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	mod, exists, err := ModTime(logPath)
	if err != nil || !exists {
		t.Fatalf("ModTime() = exists %v, err %v; want true, nil", exists, err)
	}
	if !mod.Equal(stamp) {
		t.Fatalf("ModTime() = %v, want %v", mod, stamp)
	}
}
