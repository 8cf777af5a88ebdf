package ui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{234 * time.Millisecond, "234ms"},
		{1200 * time.Millisecond, "1.2s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{890, "890B"},
		{200000, "195.3KB"},
		{1572864, "1.5MB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	for n, want := range map[int]string{0: "0 options", 1: "1 option", 4: "4 options"} {
		if got := Count(n, "option"); got != want {
			t.Errorf("Count(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestMessagesUseOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Step(1, 4, "Parsing command line")
	ErrorMsg("Invalid options", errors.New("--fastq: required"), "pass --fastq")
	SetVerbose(false)
	Verbosef("hidden %d", 1)

	got := buf.String()
	for _, want := range []string{"[1/4] Parsing command line", "Invalid options", "--fastq: required", "Hint: pass --fastq"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Error("verbose message printed while verbose is off")
	}
}
