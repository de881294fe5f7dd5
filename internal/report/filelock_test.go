package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestLockAndWrite(t *testing.T) {
	t.Parallel()

	t.Run("replaces file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.xlsx")
		if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := lockAndWrite(path, []byte("new")); err != nil {
			t.Fatalf("lockAndWrite failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(got) != "new" {
			t.Errorf("expected new content, got %q", got)
		}

		matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 0 {
			t.Errorf("temp files left behind: %v", matches)
		}
	})

	t.Run("waits for a held lock", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		held := flock.New(path + LockSuffix)
		if err := held.Lock(); err != nil {
			t.Fatalf("failed to take lock: %v", err)
		}

		done := make(chan error, 1)
		go func() {
			done <- lockAndWrite(path, []byte("data"))
		}()

		select {
		case err := <-done:
			t.Fatalf("write finished while lock was held: %v", err)
		case <-time.After(100 * time.Millisecond):
		}

		if err := held.Unlock(); err != nil {
			t.Fatalf("failed to release lock: %v", err)
		}

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("lockAndWrite failed: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("write did not finish after the lock was released")
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output file: %v", err)
		}
	})

	t.Run("missing directory returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
		if err := lockAndWrite(path, []byte("data")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
