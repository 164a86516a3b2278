package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFilesWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "scene.json")
	other := filepath.Join(dir, "other.json")
	touch(t, watched)
	touch(t, other)

	fw, err := NewFilesWatcher(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFilesWatcher: %v", err)
	}
	defer fw.Close()
	fw.SetFiles([]string{watched})

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(watched, []byte("changed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-fw.Changed():
		want, _ := filepath.Abs(watched)
		if got != want {
			t.Errorf("changed = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
