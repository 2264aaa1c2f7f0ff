package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
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
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
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

func TestRead_MissingFileIsEmpty(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "plain text passes through",
			input:    "not a record",
			contains: []string{"not a record"},
		},
		{
			name:     "info record",
			input:    `{"level":"info","service":"marquee","widget":"hero","time":"2025-10-08T21:01:05Z","message":"widget started"}`,
			contains: []string{"INF", "widget started", "widget=hero"},
			absent:   []string{"service=", "{"},
		},
		{
			name:     "debug record",
			input:    `{"level":"debug","from":0,"to":1,"message":"transition"}`,
			contains: []string{"DBG", "transition", "from=0", "to=1"},
		},
		{
			name:     "broken json passes through",
			input:    `{"level":`,
			contains: []string{`{"level":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatLine(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatLine() = %q, want it to contain %q", got, want)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("FormatLine() = %q, want it without %q", got, bad)
				}
			}
			if strings.HasSuffix(got, "\n") {
				t.Errorf("FormatLine() = %q, want no trailing newline", got)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	input := []string{
		`{"level":"warn","message":"deck reload failed"}`,
		"raw",
	}
	got := FormatLines(input)
	if len(got) != len(input) {
		t.Fatalf("FormatLines() returned %d lines, want %d", len(got), len(input))
	}
	if !strings.Contains(got[0], "WRN") {
		t.Errorf("FormatLines()[0] = %q, want level WRN", got[0])
	}
	if got[1] != "raw" {
		t.Errorf("FormatLines()[1] = %q, want %q", got[1], "raw")
	}
}
