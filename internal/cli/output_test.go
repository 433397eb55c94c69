package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable("ID", "NAME")
	table.writer = &buf
	table.AddRow("1", "Fran")
	table.AddRow("22", "Grace")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "--") {
		t.Errorf("separator line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "Grace") {
		t.Errorf("last row = %q", lines[3])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a much longer name", 10, "a much ..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatAccess(t *testing.T) {
	if got := formatAccess(true, ""); got != "[+] granted" {
		t.Errorf("granted = %q", got)
	}
	if got := formatAccess(false, "Subscription is not active"); got != "[-] Subscription is not active" {
		t.Errorf("denied = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(nil); got != "-" {
		t.Errorf("nil = %q", got)
	}
	ts := time.Date(2026, 3, 9, 10, 30, 0, 0, time.Local)
	if got := formatTime(&ts); got != "2026-03-09 10:30" {
		t.Errorf("formatTime = %q", got)
	}
}

func TestReadWorkoutFile(t *testing.T) {
	path := t.TempDir() + "/catalog.yaml"
	content := `workouts:
  - slug: fran
    name: Fran
    format: For Time
    exercises: ["Thrusters", "Pull-ups"]
    attempts_male: 120
`
	if err := writeFile(path, content); err != nil {
		t.Fatal(err)
	}

	got, err := readWorkoutFile(path)
	if err != nil {
		t.Fatalf("readWorkoutFile() error = %v", err)
	}
	if len(got) != 1 || got[0].Slug != "fran" || len(got[0].Exercises) != 2 || got[0].AttemptsMale != 120 {
		t.Errorf("workouts = %+v", got)
	}

	empty := t.TempDir() + "/empty.json"
	if err := writeFile(empty, `{"workouts": []}`); err != nil {
		t.Fatal(err)
	}
	if _, err := readWorkoutFile(empty); err == nil {
		t.Error("expected error for empty catalog")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
