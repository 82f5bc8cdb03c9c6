package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRemoveRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	n, err := storage.Save(ctx, "abc.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	rc, err := storage.Open(ctx, "abc.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	raw, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "hello" {
		t.Fatalf("unexpected content %q", raw)
	}

	if err := storage.Remove(ctx, "abc.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := storage.Open(ctx, "abc.txt"); err == nil {
		t.Fatalf("expected open to fail after remove")
	}

	// Removing a missing key is not an error.
	if err := storage.Remove(ctx, "abc.txt"); err != nil {
		t.Fatalf("Remove() second call error = %v", err)
	}
}
