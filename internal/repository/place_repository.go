package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ymatsuda/cleaning-schedule/internal/model"
)

// ErrPlaceNotFound is returned when a place does not exist or sits in
// a list owned by a different user.
var ErrPlaceNotFound = errors.New("place not found")

// PlaceRepo encapsulates all database queries for places. Ownership
// checks join through the parent list's user_id, so a place id from
// another user's list behaves exactly like a missing place.
type PlaceRepo struct {
	db *sql.DB
}

func NewPlaceRepo(db *sql.DB) *PlaceRepo { return &PlaceRepo{db: db} }

// Create inserts a new place and populates its ID. The unique key on
// (list_id, name) backs the per-list name invariant.
func (r *PlaceRepo) Create(ctx context.Context, p *model.Place) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO places (list_id, name, next_due_date, interval_days) VALUES (?, ?, ?, ?)",
		p.ListID, p.Name, p.NextDueDate, p.IntervalDays)
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
	p.ID = uint64(id)
	return nil
}

// GetByIDAndOwner fetches a place by id when its parent list belongs
// to ownerID.
func (r *PlaceRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Place, error) {
	var p model.Place
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.list_id, p.name, p.next_due_date, p.interval_days, p.created_at, p.updated_at
		 FROM places p
		 JOIN lists l ON l.id = p.list_id
		 WHERE p.id = ? AND l.user_id = ?`,
		id, ownerID).Scan(&p.ID, &p.ListID, &p.Name, &p.NextDueDate, &p.IntervalDays, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return &p, nil
}

// NameExists reports whether the list already contains a place with
// the given name, ignoring excludeID (pass 0 when creating).
func (r *PlaceRepo) NameExists(ctx context.Context, listID uint64, name string, excludeID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM places WHERE list_id = ? AND name = ? AND id <> ? LIMIT 1",
		listID, name, excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update persists the place's name, interval and due date. Callers
// load the row first and apply their patch, so this is a full-field
// write of a record already known to exist and be owned.
func (r *PlaceRepo) Update(ctx context.Context, p *model.Place) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE places
		 SET name = ?, next_due_date = ?, interval_days = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Name, p.NextDueDate, p.IntervalDays, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// The row may match its previous values; confirm it still exists.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM places WHERE id = ?", p.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPlaceNotFound
			}
			return err
		}
	}
	return nil
}

// DeleteByIDAndOwner removes a place when its list belongs to ownerID.
func (r *PlaceRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE p FROM places p
		 JOIN lists l ON l.id = p.list_id
		 WHERE p.id = ? AND l.user_id = ?`,
		id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlaceNotFound
	}
	return nil
}
