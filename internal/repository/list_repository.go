package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
)

// ErrListNotFound is returned when a list does not exist or is owned
// by a different user. The two cases are deliberately not
// distinguished so that callers cannot probe other users' list ids.
var ErrListNotFound = errors.New("list not found")

// ListRepo encapsulates all database queries for lists. Every lookup
// that acts on behalf of a user filters by user_id in SQL, so
// ownership is re-checked on each call.
type ListRepo struct {
	db *sql.DB
}

func NewListRepo(db *sql.DB) *ListRepo { return &ListRepo{db: db} }

// Create inserts a new list and populates its ID. A unique key on
// (user_id, title) backs the per-owner title invariant; violations
// surface as ErrDuplicate.
func (r *ListRepo) Create(ctx context.Context, l *model.List) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO lists (user_id, title) VALUES (?, ?)",
		l.UserID, l.Title)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// GetByIDAndOwner fetches a list by id, but only when it belongs to
// ownerID. Missing or foreign lists both yield ErrListNotFound.
func (r *ListRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.List, error) {
	var l model.List
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, created_at, updated_at FROM lists WHERE id = ? AND user_id = ?",
		id, ownerID).Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &l, nil
}

// TitleExists reports whether the owner already has a list with the
// given title. excludeID is skipped so a rename to the current title
// does not conflict with itself; pass 0 when creating.
func (r *ListRepo) TitleExists(ctx context.Context, ownerID uint64, title string, excludeID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM lists WHERE user_id = ? AND title = ? AND id <> ? LIMIT 1",
		ownerID, title, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByOwnerWithPlaces returns all lists owned by ownerID, each with
// its places attached. Children are loaded with one explicit query
// joined through the parent table rather than per-list round trips.
func (r *ListRepo) ListByOwnerWithPlaces(ctx context.Context, ownerID uint64) ([]*model.List, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, title, created_at, updated_at FROM lists WHERE user_id = ? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.List
	byID := make(map[uint64]*model.List)
	for rows.Next() {
		l := new(model.List)
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		l.Places = []model.Place{}
		out = append(out, l)
		byID[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	prows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.list_id, p.name, p.next_due_date, p.interval_days, p.created_at, p.updated_at
		 FROM places p
		 JOIN lists l ON l.id = p.list_id
		 WHERE l.user_id = ? ORDER BY p.id`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var p model.Place
		if err := prows.Scan(&p.ID, &p.ListID, &p.Name, &p.NextDueDate, &p.IntervalDays, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if parent, ok := byID[p.ListID]; ok {
			parent.Places = append(parent.Places, p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWithPlaces fetches a single owned list together with its places.
func (r *ListRepo) GetWithPlaces(ctx context.Context, id, ownerID uint64) (*model.List, error) {
	l, err := r.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, list_id, name, next_due_date, interval_days, created_at, updated_at
		 FROM places WHERE list_id = ? ORDER BY id`,
		id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	l.Places = []model.Place{}
	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.ID, &p.ListID, &p.Name, &p.NextDueDate, &p.IntervalDays, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		l.Places = append(l.Places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateTitle renames an owned list. Zero affected rows means the
// list does not exist or belongs to someone else.
func (r *ListRepo) UpdateTitle(ctx context.Context, id, ownerID uint64, title string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lists SET title = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		title, id, ownerID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrListNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes an owned list and its places in one
// transaction: children first, then the parent row.
func (r *ListRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// No-op once the transaction has been committed.
	defer func() { _ = tx.Rollback() }()

	var dbOwnerID uint64
	if err := tx.QueryRowContext(ctx, "SELECT user_id FROM lists WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrListNotFound
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM places WHERE list_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}
