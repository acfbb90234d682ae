package session

import (
	"context"
	"testing"
	"time"

	"github.com/pagesmith/pagesmith/pkg/canvas"
)

func testDocument() canvas.Document {
	return canvas.Document{
		Name:         "landing",
		Canvas:       canvas.Rect{Width: canvas.DefaultCanvasWidth, Height: canvas.DefaultCanvasHeight},
		ActiveRegion: canvas.RegionHeader,
		Components: []canvas.DocumentComponent{
			{ID: 1, Type: "heading", Label: "Heading", Region: "header", X: 50, Y: 20},
		},
	}
}

func TestNew(t *testing.T) {
	sess := New(testDocument(), DefaultTTL)

	if sess.ID == "" {
		t.Error("New() should assign an ID")
	}
	if sess.Document.Name != "landing" {
		t.Errorf("Document.Name = %q, want %q", sess.Document.Name, "landing")
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Error("ExpiresAt should be after CreatedAt")
	}

	other := New(testDocument(), DefaultTTL)
	if other.ID == sess.ID {
		t.Error("session IDs should be unique")
	}
}

func TestSessionExpiry(t *testing.T) {
	sess := New(testDocument(), -time.Minute)
	if !sess.IsExpired() {
		t.Error("session with negative TTL should be expired")
	}
	if sess.TTL() != 0 {
		t.Errorf("TTL() = %v, want 0 for expired session", sess.TTL())
	}

	sess.Touch(time.Hour)
	if sess.IsExpired() {
		t.Error("Touch() should refresh expiry")
	}
	if sess.TTL() <= 0 {
		t.Errorf("TTL() = %v, want > 0 after Touch", sess.TTL())
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	sess := New(testDocument(), time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for stored session")
	}
	if got.ID != sess.ID {
		t.Errorf("ID = %q, want %q", got.ID, sess.ID)
	}
	if len(got.Document.Components) != 1 {
		t.Errorf("components = %d, want 1", len(got.Document.Components))
	}

	// Returned session is a copy; mutating it must not affect the store.
	got.Document.Name = "changed"
	again, _ := store.Get(ctx, sess.ID)
	if again.Document.Name != "landing" {
		t.Error("Get() should return a copy, not shared state")
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("Get() after delete = %v, %v; want nil, nil", got, err)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.Get(context.Background(), "no-such-session")
	if err != nil || got != nil {
		t.Errorf("Get() = %v, %v; want nil, nil", got, err)
	}
}

func TestMemoryStoreExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(testDocument(), -time.Minute)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("Get() = %v, %v; want nil, nil for expired session", got, err)
	}
	if store.Len() != 0 {
		t.Error("expired session should be removed on Get")
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	live := New(testDocument(), time.Hour)
	dead := New(testDocument(), -time.Minute)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after cleanup, want 1", store.Len())
	}
	got, _ := store.Get(ctx, live.ID)
	if got == nil {
		t.Error("Cleanup() removed a live session")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	defer store.Close()

	sess := New(testDocument(), time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for stored session")
	}
	if got.Document.ActiveRegion != canvas.RegionHeader {
		t.Errorf("ActiveRegion = %q, want %q", got.Document.ActiveRegion, canvas.RegionHeader)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("Get() after delete = %v, %v; want nil, nil", got, err)
	}

	// Deleting a missing session is not an error.
	if err := store.Delete(ctx, "no-such-session"); err != nil {
		t.Errorf("Delete() missing session error: %v", err)
	}
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	live := New(testDocument(), time.Hour)
	dead := New(testDocument(), -time.Minute)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}

	got, _ := store.Get(ctx, live.ID)
	if got == nil {
		t.Error("Cleanup() removed a live session")
	}
	// Expired file should be gone without going through Get.
	if _, err := store.Get(ctx, dead.ID); err != nil {
		t.Errorf("Get() expired session error: %v", err)
	}
}
