package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/heartmarshall/profilekit"
)

func sampleProfile() *profilekit.UserProfile {
	return profilekit.NewUserProfile("u1", "test@example.com")
}

func TestStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	p := sampleProfile()
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing profile")
	}
	if got.ID != "u1" || got.Email != "test@example.com" {
		t.Errorf("got %+v", got)
	}
}

func TestStore_GetAbsent(t *testing.T) {
	t.Parallel()
	store := New()

	got, err := store.GetByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("GetByID: absence must not be an error, got %v", err)
	}
	if got != nil {
		t.Errorf("GetByID = %+v, want nil", got)
	}
}

func TestStore_DuplicateCreate(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	first := sampleProfile()
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := profilekit.NewUserProfile("u1", "other@example.com")
	err := store.Create(ctx, second)
	if !errors.Is(err, profilekit.ErrAlreadyExists) {
		t.Fatalf("Create duplicate: err = %v, want ErrAlreadyExists", err)
	}

	// The first record must be unchanged.
	got, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "test@example.com" {
		t.Errorf("first record changed: Email = %q", got.Email)
	}
}

func TestStore_UpdateExisting(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	p := sampleProfile()
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	attrs := profilekit.NewUserAttributes()
	attrs.SetFirstName("Updated Name")
	p.SetAttributes(attrs)
	if err := store.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Attributes == nil || got.Attributes.FirstName == nil || *got.Attributes.FirstName != "Updated Name" {
		t.Errorf("update not applied: %+v", got.Attributes)
	}
}

func TestStore_UpdateMissing(t *testing.T) {
	t.Parallel()
	store := New()

	err := store.Update(context.Background(), profilekit.NewUserProfile("ghost", "g@example.com"))
	if !errors.Is(err, profilekit.ErrNotFound) {
		t.Fatalf("Update missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteThenGet(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	if err := store.Create(ctx, sampleProfile()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID after delete = %+v, want nil", got)
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	t.Parallel()
	store := New()

	err := store.Delete(context.Background(), "does_not_exist")
	if !errors.Is(err, profilekit.ErrNotFound) {
		t.Fatalf("Delete missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	p := sampleProfile()
	attrs := profilekit.NewUserAttributes()
	attrs.SetFirstName("Alice")
	p.SetAttributes(attrs)
	if err := store.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Mutating what the caller handed in, or what Get returned, must not
	// leak into stored state.
	*p.Attributes.FirstName = "Mallory"

	got, _ := store.GetByID(ctx, "u1")
	if *got.Attributes.FirstName != "Alice" {
		t.Fatalf("stored state aliased by caller input: %q", *got.Attributes.FirstName)
	}

	*got.Attributes.FirstName = "Eve"
	again, _ := store.GetByID(ctx, "u1")
	if *again.Attributes.FirstName != "Alice" {
		t.Fatalf("stored state aliased by Get result: %q", *again.Attributes.FirstName)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	t.Parallel()
	store := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.GetByID(ctx, "u1"); !errors.Is(err, context.Canceled) {
		t.Errorf("GetByID: err = %v, want context.Canceled", err)
	}
	if err := store.Create(ctx, sampleProfile()); !errors.Is(err, context.Canceled) {
		t.Errorf("Create: err = %v, want context.Canceled", err)
	}
}

func TestStore_ConcurrentCreateSameID(t *testing.T) {
	t.Parallel()
	store := New()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := profilekit.NewUserProfile("same", fmt.Sprintf("w%d@example.com", i))
			errs[i] = store.Create(ctx, p)
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, profilekit.ErrAlreadyExists):
		default:
			t.Errorf("worker %d: unexpected error %v", i, err)
		}
	}
	if successes != 1 {
		t.Fatalf("%d creates succeeded for one id, want exactly 1", successes)
	}
}
