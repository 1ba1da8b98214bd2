package service

import (
	"context"
	"sort"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
	"github.com/ymatsuda/cleaning-schedule/internal/queue"
	"github.com/ymatsuda/cleaning-schedule/internal/repository"
)

// memDB is a tiny in-memory stand-in for the MySQL schema, shared by
// the list and place store stubs so ownership joins behave like the
// real queries.
type memDB struct {
	lists       map[uint64]*model.List
	places      map[uint64]*model.Place
	nextListID  uint64
	nextPlaceID uint64
}

func newMemDB() *memDB {
	return &memDB{
		lists:  make(map[uint64]*model.List),
		places: make(map[uint64]*model.Place),
	}
}

type stubListStore struct{ db *memDB }

func (s *stubListStore) Create(_ context.Context, l *model.List) error {
	for _, have := range s.db.lists {
		if have.UserID == l.UserID && have.Title == l.Title {
			return repository.ErrDuplicate
		}
	}
	s.db.nextListID++
	l.ID = s.db.nextListID
	clone := *l
	s.db.lists[l.ID] = &clone
	return nil
}

func (s *stubListStore) GetByIDAndOwner(_ context.Context, id, ownerID uint64) (*model.List, error) {
	l, ok := s.db.lists[id]
	if !ok || l.UserID != ownerID {
		return nil, repository.ErrListNotFound
	}
	clone := *l
	return &clone, nil
}

func (s *stubListStore) GetWithPlaces(ctx context.Context, id, ownerID uint64) (*model.List, error) {
	l, err := s.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	l.Places = s.db.placesOf(id)
	return l, nil
}

func (s *stubListStore) ListByOwnerWithPlaces(_ context.Context, ownerID uint64) ([]*model.List, error) {
	var out []*model.List
	for _, l := range s.db.lists {
		if l.UserID != ownerID {
			continue
		}
		clone := *l
		clone.Places = s.db.placesOf(l.ID)
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubListStore) TitleExists(_ context.Context, ownerID uint64, title string, excludeID uint64) (bool, error) {
	for _, l := range s.db.lists {
		if l.UserID == ownerID && l.Title == title && l.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubListStore) UpdateTitle(_ context.Context, id, ownerID uint64, title string) error {
	l, ok := s.db.lists[id]
	if !ok || l.UserID != ownerID {
		return repository.ErrListNotFound
	}
	l.Title = title
	return nil
}

func (s *stubListStore) DeleteByIDAndOwner(_ context.Context, id, ownerID uint64) error {
	l, ok := s.db.lists[id]
	if !ok || l.UserID != ownerID {
		return repository.ErrListNotFound
	}
	for pid, p := range s.db.places {
		if p.ListID == id {
			delete(s.db.places, pid)
		}
	}
	delete(s.db.lists, l.ID)
	return nil
}

func (db *memDB) placesOf(listID uint64) []model.Place {
	out := []model.Place{}
	for _, p := range db.places {
		if p.ListID == listID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type stubPlaceStore struct{ db *memDB }

func (s *stubPlaceStore) Create(_ context.Context, p *model.Place) error {
	for _, have := range s.db.places {
		if have.ListID == p.ListID && have.Name == p.Name {
			return repository.ErrDuplicate
		}
	}
	s.db.nextPlaceID++
	p.ID = s.db.nextPlaceID
	clone := *p
	s.db.places[p.ID] = &clone
	return nil
}

func (s *stubPlaceStore) GetByIDAndOwner(_ context.Context, id, ownerID uint64) (*model.Place, error) {
	p, ok := s.db.places[id]
	if !ok {
		return nil, repository.ErrPlaceNotFound
	}
	parent, ok := s.db.lists[p.ListID]
	if !ok || parent.UserID != ownerID {
		return nil, repository.ErrPlaceNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubPlaceStore) NameExists(_ context.Context, listID uint64, name string, excludeID uint64) (bool, error) {
	for _, p := range s.db.places {
		if p.ListID == listID && p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPlaceStore) Update(_ context.Context, p *model.Place) error {
	have, ok := s.db.places[p.ID]
	if !ok {
		return repository.ErrPlaceNotFound
	}
	for _, other := range s.db.places {
		if other.ListID == have.ListID && other.Name == p.Name && other.ID != p.ID {
			return repository.ErrDuplicate
		}
	}
	clone := *p
	s.db.places[p.ID] = &clone
	return nil
}

func (s *stubPlaceStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	if _, err := s.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		return err
	}
	delete(s.db.places, id)
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []queue.PlaceCompletedEvent
}

func (r *recordingPublisher) PublishPlaceCompleted(_ context.Context, ev queue.PlaceCompletedEvent) error {
	r.events = append(r.events, ev)
	return nil
}
