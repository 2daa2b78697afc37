package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Name?") {
		t.Fatalf("prompt was not printed: %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Stubbed(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("  s3cret  "), nil
	}
	var out bytes.Buffer
	got, err := GetPassword("Password", &out)
	if err != nil || got != "s3cret" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	if _, err := GetPassword("Password", &out); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := Confirm(rdr(tt.input), "Sure?", &out); got != tt.want {
			t.Errorf("Confirm(%q) = %t, want %t", tt.input, got, tt.want)
		}
	}
}

func TestMenuChoice_RetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	got, ok := MenuChoice(rdr("abc\n9\n2\n"), "Pick", 1, 5, &out)
	if !ok || got != 2 {
		t.Fatalf("got %d ok=%t, want 2 true", got, ok)
	}
	if n := strings.Count(out.String(), "Invalid option"); n != 2 {
		t.Fatalf("expected 2 rejections, saw %d in %q", n, out.String())
	}
}

func TestMenuChoice_EOF(t *testing.T) {
	var out bytes.Buffer
	if _, ok := MenuChoice(rdr(""), "Pick", 1, 3, &out); ok {
		t.Fatal("expected ok=false on EOF")
	}
}
