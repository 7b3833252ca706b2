package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/kamusis/tagsheet/internal/export"
)

func readFile(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// isolateUser points the per-user cache and home dirs at a temp dir so the
// default export lock never touches the real ones.
func isolateUser(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	return home
}

func TestWrite_NewIdenticalAndConflict(t *testing.T) {
	isolateUser(t)
	dir := filepath.Join(t.TempDir(), "out")
	name := "transactions_business_export.csv"

	r1, err := export.Write(dir, name, []byte("a\r\n"), export.Options{})
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	if r1.Path != filepath.Join(dir, name) || r1.Unchanged || r1.Renamed {
		t.Fatalf("first write result: %+v", r1)
	}

	r2, err := export.Write(dir, name, []byte("a\r\n"), export.Options{})
	if err != nil {
		t.Fatalf("identical write: %v", err)
	}
	if !r2.Unchanged || r2.Path != r1.Path {
		t.Fatalf("identical content should be left alone: %+v", r2)
	}

	r3, err := export.Write(dir, name, []byte("b\r\n"), export.Options{})
	if err != nil {
		t.Fatalf("conflicting write: %v", err)
	}
	want := filepath.Join(dir, "transactions_business_export (1).csv")
	if r3.Path != want || !r3.Renamed {
		t.Fatalf("conflict: got %+v, want path %s", r3, want)
	}
	if got := readFile(t, r1.Path); got != "a\r\n" {
		t.Errorf("original export was overwritten: %q", got)
	}

	r4, err := export.Write(dir, name, []byte("c\r\n"), export.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(r4.Path, "export (2).csv") {
		t.Errorf("second conflict path: %s", r4.Path)
	}
}

func TestWrite_Overwrite(t *testing.T) {
	isolateUser(t)
	dir := t.TempDir()
	if _, err := export.Write(dir, "x.csv", []byte("old"), export.Options{}); err != nil {
		t.Fatal(err)
	}
	r, err := export.Write(dir, "x.csv", []byte("new"), export.Options{Overwrite: true})
	if err != nil {
		t.Fatal(err)
	}
	if r.Renamed || readFile(t, r.Path) != "new" {
		t.Fatalf("overwrite: %+v %q", r, readFile(t, r.Path))
	}
}

func TestWrite_LockHeld(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(t.TempDir(), export.LockName)
	l := flock.New(lockPath)
	locked, err := l.TryLock()
	if err != nil || !locked {
		t.Fatalf("TryLock: %v %v", locked, err)
	}
	defer l.Unlock()

	_, err = export.Write(dir, "x.csv", []byte("data"), export.Options{
		LockPath:    lockPath,
		LockTimeout: 150 * time.Millisecond,
	})
	if err == nil || !strings.Contains(err.Error(), "another export is in progress") {
		t.Fatalf("want lock timeout, got %v", err)
	}
}

func TestWrite_LockStaysOutOfExportDir(t *testing.T) {
	home := isolateUser(t)
	dir := t.TempDir()

	if _, err := export.Write(dir, "x.csv", []byte("data"), export.Options{}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "x.csv" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("export dir should hold only the export, got %v", names)
	}

	lockPath, err := export.DefaultLockPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(lockPath, home) {
		t.Errorf("lock %s is outside the user's dirs", lockPath)
	}
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file not created: %v", err)
	}
}
