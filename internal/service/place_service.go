package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
	"github.com/ymatsuda/cleaning-schedule/internal/queue"
	"github.com/ymatsuda/cleaning-schedule/internal/repository"
	"github.com/ymatsuda/cleaning-schedule/internal/validate"
)

// DefaultIntervalDays is the recurrence period used when a client
// creates a place without specifying one.
const DefaultIntervalDays = 7

// PlaceStore is the persistence capability the place service needs.
// *repository.PlaceRepo satisfies it.
type PlaceStore interface {
	Create(ctx context.Context, p *model.Place) error
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Place, error)
	NameExists(ctx context.Context, listID uint64, name string, excludeID uint64) (bool, error)
	Update(ctx context.Context, p *model.Place) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
}

// ActivityPublisher emits domain events for downstream consumers.
// Publishing is best-effort: failures are logged, never surfaced.
type ActivityPublisher interface {
	PublishPlaceCompleted(ctx context.Context, ev queue.PlaceCompletedEvent) error
}

// PlacePatch carries the optional fields of an update request. Nil
// fields are left untouched; each supplied field is validated and
// applied independently.
type PlacePatch struct {
	Name         *string
	IntervalDays *int
	NextDueDate  *model.Date
}

// PlaceService manages places within a list: per-list name
// uniqueness, the due-date/interval pair, and the completion action
// that advances the due date by the interval. Every operation
// re-checks that the parent list belongs to the caller.
type PlaceService struct {
	lists     ListStore
	places    PlaceStore
	publisher ActivityPublisher
	log       zerolog.Logger

	// now is swapped out in tests to pin "today".
	now func() time.Time
}

func NewPlaceService(lists ListStore, places PlaceStore, publisher ActivityPublisher, log zerolog.Logger) *PlaceService {
	return &PlaceService{
		lists:     lists,
		places:    places,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListPlaces returns an owned list together with its places.
func (s *PlaceService) ListPlaces(ctx context.Context, ownerID, listID uint64) (*model.List, error) {
	l, err := s.lists.GetWithPlaces(ctx, listID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, notFoundf("list %d", listID)
		}
		return nil, storage(err)
	}
	return l, nil
}

// Create adds a place to an owned list. The name must be non-blank
// after trimming and unique within the list; intervalDays must be at
// least 1. The due date starts at today so a fresh place is
// immediately actionable.
func (s *PlaceService) Create(ctx context.Context, ownerID, listID uint64, name string, intervalDays int) (*model.Place, error) {
	trimmed, err := validate.PlaceName(name)
	if err != nil {
		return nil, invalid(err)
	}
	if err := validate.IntervalDays(intervalDays); err != nil {
		return nil, invalid(err)
	}
	if _, err := s.lists.GetByIDAndOwner(ctx, listID, ownerID); err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, notFoundf("list %d", listID)
		}
		return nil, storage(err)
	}
	exists, err := s.places.NameExists(ctx, listID, trimmed, 0)
	if err != nil {
		return nil, storage(err)
	}
	if exists {
		return nil, conflictf("a place named %q already exists in this list", trimmed)
	}
	p := &model.Place{
		ListID:       listID,
		Name:         trimmed,
		NextDueDate:  model.NewDate(s.now()),
		IntervalDays: intervalDays,
	}
	if err := s.places.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictf("a place named %q already exists in this list", trimmed)
		}
		return nil, storage(err)
	}
	return p, nil
}

// Update applies a patch to an owned place. A supplied next_due_date
// overwrites the stored date as-is; the server does not recompute it
// from the interval here (Complete does that).
func (s *PlaceService) Update(ctx context.Context, ownerID, placeID uint64, patch PlacePatch) (*model.Place, error) {
	p, err := s.places.GetByIDAndOwner(ctx, placeID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, notFoundf("place %d", placeID)
		}
		return nil, storage(err)
	}
	if patch.Name != nil {
		trimmed, err := validate.PlaceName(*patch.Name)
		if err != nil {
			return nil, invalid(err)
		}
		if trimmed != p.Name {
			exists, err := s.places.NameExists(ctx, p.ListID, trimmed, placeID)
			if err != nil {
				return nil, storage(err)
			}
			if exists {
				return nil, conflictf("a place named %q already exists in this list", trimmed)
			}
		}
		p.Name = trimmed
	}
	if patch.IntervalDays != nil {
		if err := validate.IntervalDays(*patch.IntervalDays); err != nil {
			return nil, invalid(err)
		}
		p.IntervalDays = *patch.IntervalDays
	}
	if patch.NextDueDate != nil {
		p.NextDueDate = *patch.NextDueDate
	}
	if err := s.places.Update(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlaceNotFound):
			return nil, notFoundf("place %d", placeID)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, conflictf("a place named %q already exists in this list", p.Name)
		}
		return nil, storage(err)
	}
	return p, nil
}

// Complete marks a place as cleaned today: the next due date becomes
// today plus the place's interval, computed server-side. A
// place.completed event is published for the activity log.
func (s *PlaceService) Complete(ctx context.Context, ownerID, placeID uint64) (*model.Place, error) {
	p, err := s.places.GetByIDAndOwner(ctx, placeID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, notFoundf("place %d", placeID)
		}
		return nil, storage(err)
	}
	today := model.NewDate(s.now())
	p.NextDueDate = today.AddDays(p.IntervalDays)
	if err := s.places.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return nil, notFoundf("place %d", placeID)
		}
		return nil, storage(err)
	}
	if s.publisher != nil {
		ev := queue.PlaceCompletedEvent{
			PlaceID:      p.ID,
			ListID:       p.ListID,
			UserID:       ownerID,
			PlaceName:    p.Name,
			IntervalDays: p.IntervalDays,
			CompletedOn:  today.String(),
			NextDueDate:  p.NextDueDate.String(),
		}
		if err := s.publisher.PublishPlaceCompleted(ctx, ev); err != nil {
			s.log.Warn().Err(err).Uint64("place_id", p.ID).Msg("publish place.completed failed")
		}
	}
	return p, nil
}

// Delete removes an owned place.
func (s *PlaceService) Delete(ctx context.Context, ownerID, placeID uint64) error {
	if err := s.places.DeleteByIDAndOwner(ctx, placeID, ownerID); err != nil {
		if errors.Is(err, repository.ErrPlaceNotFound) {
			return notFoundf("place %d", placeID)
		}
		return storage(err)
	}
	return nil
}
