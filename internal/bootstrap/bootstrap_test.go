package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

var testFS = fstest.MapFS{
	"app.example.yaml":     {Data: []byte("a: 1\n")},
	"templates/note.tmpl":  {Data: []byte("note v1")},
	"templates/other.tmpl": {Data: []byte("other v1")},
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestEnsureConfigPresent(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "sub", "app.yaml")

	created, err := EnsureConfigPresent(dst, testFS, "app.example.yaml")
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	if readFile(t, dst) != "a: 1\n" {
		t.Fatal("content mismatch")
	}

	if err := os.WriteFile(dst, []byte("user edit"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = EnsureConfigPresent(dst, testFS, "app.example.yaml")
	if err != nil || created {
		t.Fatalf("second call: created=%v err=%v", created, err)
	}
	if readFile(t, dst) != "user edit" {
		t.Fatal("existing config overwritten")
	}

	if _, err := EnsureConfigPresent(filepath.Join(t.TempDir(), "x.yaml"), testFS, "missing.yaml"); err == nil {
		t.Fatal("missing asset accepted")
	}
}

func TestEnsureTemplatesPresent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")
	srcs := []string{"templates/note.tmpl", "templates/other.tmpl"}

	if err := EnsureTemplatesPresent(dir, testFS, srcs); err != nil {
		t.Fatal(err)
	}
	if readFile(t, filepath.Join(dir, "note.tmpl")) != "note v1" {
		t.Fatal("note.tmpl not copied")
	}

	// modification utilisateur + fichier supprimé
	if err := os.WriteFile(filepath.Join(dir, "note.tmpl"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "other.tmpl")); err != nil {
		t.Fatal(err)
	}
	if err := EnsureTemplatesPresent(dir, testFS, srcs); err != nil {
		t.Fatal(err)
	}
	if readFile(t, filepath.Join(dir, "note.tmpl")) != "mine" {
		t.Fatal("user template replaced")
	}
	if readFile(t, filepath.Join(dir, "other.tmpl")) != "other v1" {
		t.Fatal("missing template not restored")
	}

	if err := EnsureTemplatesPresent(filepath.Join(t.TempDir(), "no", "such", "templates"), testFS, srcs); err == nil {
		t.Fatal("missing parent accepted")
	}
}

func TestExportDefaults(t *testing.T) {
	dir := t.TempDir()

	status, err := ExportDefaults(testFS, "templates", dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if status["templates/note.tmpl"] != StatusWritten || readFile(t, filepath.Join(dir, "note.tmpl")) != "note v1" {
		t.Fatalf("status = %v", status)
	}

	if err := os.WriteFile(filepath.Join(dir, "note.tmpl"), []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	status, err = ExportDefaults(testFS, "templates", dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if status["templates/note.tmpl"] != StatusSkipped || status["templates/other.tmpl"] != StatusUnchanged {
		t.Fatalf("status = %v", status)
	}

	status, err = ExportDefaults(testFS, "templates", dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if status["templates/note.tmpl"] != StatusOverwritten || readFile(t, filepath.Join(dir, "note.tmpl")) != "note v1" {
		t.Fatalf("status = %v", status)
	}
	backups, _ := filepath.Glob(filepath.Join(dir, "note.tmpl.bak.*"))
	if len(backups) != 1 || readFile(t, backups[0]) != "mine" {
		t.Fatalf("backups = %v", backups)
	}
}
