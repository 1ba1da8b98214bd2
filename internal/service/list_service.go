package service

import (
	"context"
	"errors"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
	"github.com/ymatsuda/cleaning-schedule/internal/repository"
	"github.com/ymatsuda/cleaning-schedule/internal/validate"
)

// ListStore is the persistence capability the list service needs.
// *repository.ListRepo satisfies it; tests supply an in-memory stub.
type ListStore interface {
	Create(ctx context.Context, l *model.List) error
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.List, error)
	GetWithPlaces(ctx context.Context, id, ownerID uint64) (*model.List, error)
	ListByOwnerWithPlaces(ctx context.Context, ownerID uint64) ([]*model.List, error)
	TitleExists(ctx context.Context, ownerID uint64, title string, excludeID uint64) (bool, error)
	UpdateTitle(ctx context.Context, id, ownerID uint64, title string) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
}

// ListService enforces the ownership and uniqueness rules for lists:
// titles are unique per owner, and every operation re-checks that the
// list belongs to the authenticated caller.
type ListService struct {
	lists ListStore
}

func NewListService(lists ListStore) *ListService {
	return &ListService{lists: lists}
}

// Create persists a new list for ownerID. The title must be non-blank
// after trimming (including U+3000) and unique among the owner's
// lists. A storage-level duplicate from a racing create maps to the
// same conflict error as the pre-check.
func (s *ListService) Create(ctx context.Context, ownerID uint64, title string) (*model.List, error) {
	trimmed, err := validate.ListTitle(title)
	if err != nil {
		return nil, invalid(err)
	}
	exists, err := s.lists.TitleExists(ctx, ownerID, trimmed, 0)
	if err != nil {
		return nil, storage(err)
	}
	if exists {
		return nil, conflictf("a list titled %q already exists", trimmed)
	}
	l := &model.List{UserID: ownerID, Title: trimmed, Places: []model.Place{}}
	if err := s.lists.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictf("a list titled %q already exists", trimmed)
		}
		return nil, storage(err)
	}
	return l, nil
}

// List returns every list owned by ownerID with places attached.
func (s *ListService) List(ctx context.Context, ownerID uint64) ([]*model.List, error) {
	out, err := s.lists.ListByOwnerWithPlaces(ctx, ownerID)
	if err != nil {
		return nil, storage(err)
	}
	return out, nil
}

// Rename changes the title of an owned list. The conflict check
// excludes the list itself, so renaming to the current title succeeds.
func (s *ListService) Rename(ctx context.Context, ownerID, listID uint64, title string) (*model.List, error) {
	trimmed, err := validate.ListTitle(title)
	if err != nil {
		return nil, invalid(err)
	}
	l, err := s.lists.GetByIDAndOwner(ctx, listID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, notFoundf("list %d", listID)
		}
		return nil, storage(err)
	}
	exists, err := s.lists.TitleExists(ctx, ownerID, trimmed, listID)
	if err != nil {
		return nil, storage(err)
	}
	if exists {
		return nil, conflictf("a list titled %q already exists", trimmed)
	}
	if err := s.lists.UpdateTitle(ctx, listID, ownerID, trimmed); err != nil {
		switch {
		case errors.Is(err, repository.ErrListNotFound):
			return nil, notFoundf("list %d", listID)
		case errors.Is(err, repository.ErrDuplicate):
			return nil, conflictf("a list titled %q already exists", trimmed)
		}
		return nil, storage(err)
	}
	l.Title = trimmed
	if l.Places == nil {
		l.Places = []model.Place{}
	}
	return l, nil
}

// Delete removes an owned list; its places go with it in the same
// transaction.
func (s *ListService) Delete(ctx context.Context, ownerID, listID uint64) error {
	if err := s.lists.DeleteByIDAndOwner(ctx, listID, ownerID); err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return notFoundf("list %d", listID)
		}
		return storage(err)
	}
	return nil
}
