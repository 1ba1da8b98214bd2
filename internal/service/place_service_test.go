package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
)

// newPlaceFixture wires both services over one shared memDB and pins
// "today" to a fixed date.
func newPlaceFixture() (*ListService, *PlaceService, *recordingPublisher) {
	db := newMemDB()
	lists := &stubListStore{db: db}
	places := &stubPlaceStore{db: db}
	pub := &recordingPublisher{}
	svc := NewPlaceService(lists, places, pub, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }
	return NewListService(lists), svc, pub
}

func TestPlaceServiceCreate(t *testing.T) {
	ctx := context.Background()
	listSvc, svc, _ := newPlaceFixture()

	living, _ := listSvc.Create(ctx, 1, "Living Room")
	bedroom, _ := listSvc.Create(ctx, 1, "Bedroom")

	t.Run("defaults due date to today", func(t *testing.T) {
		p, err := svc.Create(ctx, 1, living.ID, " Window ", 14)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if p.Name != "Window" {
			t.Errorf("Name = %q, want Window", p.Name)
		}
		if p.NextDueDate.String() != "2026-09-01" {
			t.Errorf("NextDueDate = %s, want 2026-09-01", p.NextDueDate)
		}
		if p.IntervalDays != 14 {
			t.Errorf("IntervalDays = %d, want 14", p.IntervalDays)
		}
	})

	t.Run("duplicate name in same list conflicts", func(t *testing.T) {
		if _, err := svc.Create(ctx, 1, living.ID, "Window", 7); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("same name in another list is fine", func(t *testing.T) {
		if _, err := svc.Create(ctx, 1, bedroom.ID, "Window", 7); err != nil {
			t.Errorf("create in sibling list failed: %v", err)
		}
	})

	t.Run("non-positive interval rejected", func(t *testing.T) {
		for _, iv := range []int{0, -3} {
			if _, err := svc.Create(ctx, 1, living.ID, "Sink", iv); !errors.Is(err, ErrValidation) {
				t.Errorf("interval %d: expected ErrValidation, got %v", iv, err)
			}
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		for _, name := range []string{"", "  ", "　　"} {
			if _, err := svc.Create(ctx, 1, living.ID, name, 7); !errors.Is(err, ErrValidation) {
				t.Errorf("name %q: expected ErrValidation, got %v", name, err)
			}
		}
	})

	t.Run("unknown or foreign list looks missing", func(t *testing.T) {
		if _, err := svc.Create(ctx, 1, 999, "Sink", 7); !errors.Is(err, ErrNotFound) {
			t.Errorf("unknown list: expected ErrNotFound, got %v", err)
		}
		if _, err := svc.Create(ctx, 2, living.ID, "Sink", 7); !errors.Is(err, ErrNotFound) {
			t.Errorf("foreign list: expected ErrNotFound, got %v", err)
		}
	})
}

func TestPlaceServiceListPlaces(t *testing.T) {
	ctx := context.Background()
	listSvc, svc, _ := newPlaceFixture()

	l, _ := listSvc.Create(ctx, 1, "Living Room")
	if _, err := svc.Create(ctx, 1, l.ID, "Window", 14); err != nil {
		t.Fatal(err)
	}

	got, err := svc.ListPlaces(ctx, 1, l.ID)
	if err != nil {
		t.Fatalf("ListPlaces failed: %v", err)
	}
	if len(got.Places) != 1 {
		t.Fatalf("expected 1 place, got %d", len(got.Places))
	}
	if got.Places[0].NextDueDate.String() != "2026-09-01" || got.Places[0].IntervalDays != 14 {
		t.Errorf("unexpected place: %+v", got.Places[0])
	}

	if _, err := svc.ListPlaces(ctx, 2, l.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign list: expected ErrNotFound, got %v", err)
	}
}

func TestPlaceServiceUpdate(t *testing.T) {
	ctx := context.Background()
	listSvc, svc, _ := newPlaceFixture()

	l, _ := listSvc.Create(ctx, 1, "Living Room")
	window, _ := svc.Create(ctx, 1, l.ID, "Window", 14)
	if _, err := svc.Create(ctx, 1, l.ID, "Sofa", 7); err != nil {
		t.Fatal(err)
	}

	t.Run("due date alone leaves name and interval untouched", func(t *testing.T) {
		due, _ := model.ParseDate("2026-09-15")
		p, err := svc.Update(ctx, 1, window.ID, PlacePatch{NextDueDate: &due})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if p.Name != "Window" || p.IntervalDays != 14 {
			t.Errorf("unrelated fields changed: %+v", p)
		}
		if p.NextDueDate.String() != "2026-09-15" {
			t.Errorf("NextDueDate = %s, want 2026-09-15", p.NextDueDate)
		}
	})

	t.Run("rename to sibling name conflicts", func(t *testing.T) {
		name := "Sofa"
		if _, err := svc.Update(ctx, 1, window.ID, PlacePatch{Name: &name}); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("rename to own name succeeds", func(t *testing.T) {
		name := "Window"
		if _, err := svc.Update(ctx, 1, window.ID, PlacePatch{Name: &name}); err != nil {
			t.Errorf("self-rename failed: %v", err)
		}
	})

	t.Run("bad interval rejected", func(t *testing.T) {
		iv := 0
		if _, err := svc.Update(ctx, 1, window.ID, PlacePatch{IntervalDays: &iv}); !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("foreign place looks missing", func(t *testing.T) {
		iv := 3
		if _, err := svc.Update(ctx, 2, window.ID, PlacePatch{IntervalDays: &iv}); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPlaceServiceComplete(t *testing.T) {
	ctx := context.Background()
	listSvc, svc, pub := newPlaceFixture()

	l, _ := listSvc.Create(ctx, 1, "Living Room")
	window, _ := svc.Create(ctx, 1, l.ID, "Window", 14)

	p, err := svc.Complete(ctx, 1, window.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if p.NextDueDate.String() != "2026-09-15" { // today + 14
		t.Errorf("NextDueDate = %s, want 2026-09-15", p.NextDueDate)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.PlaceID != window.ID || ev.CompletedOn != "2026-09-01" || ev.NextDueDate != "2026-09-15" {
		t.Errorf("unexpected event: %+v", ev)
	}

	if _, err := svc.Complete(ctx, 2, window.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign complete: expected ErrNotFound, got %v", err)
	}
}

func TestPlaceServiceDeleteAndCascade(t *testing.T) {
	ctx := context.Background()
	listSvc, svc, _ := newPlaceFixture()

	l, _ := listSvc.Create(ctx, 1, "Living Room")
	window, _ := svc.Create(ctx, 1, l.ID, "Window", 14)

	t.Run("delete place", func(t *testing.T) {
		if err := svc.Delete(ctx, 2, window.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("foreign delete: expected ErrNotFound, got %v", err)
		}
		if err := svc.Delete(ctx, 1, window.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := svc.Delete(ctx, 1, window.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("deleting the list removes its places", func(t *testing.T) {
		if _, err := svc.Create(ctx, 1, l.ID, "Sofa", 7); err != nil {
			t.Fatal(err)
		}
		if err := listSvc.Delete(ctx, 1, l.ID); err != nil {
			t.Fatalf("list delete failed: %v", err)
		}
		if _, err := svc.ListPlaces(ctx, 1, l.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("ListPlaces after cascade: expected ErrNotFound, got %v", err)
		}
	})
}
