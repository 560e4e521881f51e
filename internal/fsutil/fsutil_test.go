package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "untitled"},
		{"dQw4w9WgXcQ (en)", "dQw4w9WgXcQ (en)"},
		{"a:b", "a-b"},
		{`a/b\c?d*e`, "a b c d e"},
		{"  many   spaces  ", "many spaces"},
		{"trailing...", "trailing"},
		{"...", "untitled"},
		{"<>|", "untitled"},
	}
	for _, tc := range tests {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}

	long := SanitizeFilename(strings.Repeat("é", 150))
	if len(long) > max || !strings.HasPrefix(long, "é") {
		t.Fatalf("long name not truncated cleanly: %d bytes", len(long))
	}
	if strings.ContainsRune(long, '�') {
		t.Fatal("truncation split a rune")
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{"": "", "english": "English", "été": "Été", "X": "X"}
	for in, want := range tests {
		if got := CapitalizeFirst(in); got != want {
			t.Errorf("CapitalizeFirst(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "out.txt")

	if err := WriteFileAtomic(dest, []byte("one"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(dest, []byte("two"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic (overwrite): %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil || string(got) != "two" {
		t.Fatalf("content = %q, err = %v", got, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(dest))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSaveUniqueAtomic(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveUniqueAtomic(dir, "abc (en).txt", []byte("1"), false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := SaveUniqueAtomic(dir, "abc (en).txt", []byte("2"), false)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(first) != "abc (en).txt" || filepath.Base(second) != "abc (en)_1.txt" {
		t.Fatalf("paths = %q, %q", first, second)
	}

	third, err := SaveUniqueAtomic(dir, "abc (en).txt", []byte("3"), true)
	if err != nil {
		t.Fatal(err)
	}
	if third != first {
		t.Fatalf("overwrite path = %q; want %q", third, first)
	}
	if b, _ := os.ReadFile(first); string(b) != "3" {
		t.Fatalf("overwrite content = %q", b)
	}

	if _, err := SaveUniqueAtomic(dir, "", nil, true); err == nil {
		t.Fatal("expected an error for an empty filename")
	}
}

func TestIsDirEmpty(t *testing.T) {
	dir := t.TempDir()
	empty, err := IsDirEmpty(dir)
	if err != nil || !empty {
		t.Fatalf("fresh dir: empty=%v err=%v", empty, err)
	}
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if empty, _ := IsDirEmpty(dir); empty {
		t.Fatal("dir with a file reported empty")
	}
	if _, err := IsDirEmpty(file); err == nil {
		t.Fatal("expected an error for a regular file")
	}
}
