package payloadsrc

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchDeliversNewFileContents(t *testing.T) {
	dir := t.TempDir()
	out := make(chan []byte, 1)

	w, err := Watch(dir, out)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	want := []byte("new payload")
	if err := os.WriteFile(filepath.Join(dir, "a.bin"), want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case got := <-out:
		if string(got) != string(want) {
			t.Errorf("delivered %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher to deliver the new file")
	}
}
