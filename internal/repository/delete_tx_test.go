package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strconv"
	"testing"
)

// commitFailDriver is an in-memory sql driver whose statements all
// succeed but whose transaction commit always fails. It exists to
// check that the transactional deletes surface a failed commit instead
// of reporting success. The DSN carries the single int64 value that
// every one-column query returns.
type commitFailDriver struct{}

var errCommitFailed = errors.New("commit failed: connection lost")

func init() { sql.Register("commitfail", commitFailDriver{}) }

func (commitFailDriver) Open(dsn string) (driver.Conn, error) {
	v, err := strconv.ParseInt(dsn, 10, 64)
	if err != nil {
		return nil, err
	}
	return &commitFailConn{rowValue: v}, nil
}

type commitFailConn struct{ rowValue int64 }

func (c *commitFailConn) Prepare(string) (driver.Stmt, error) { return &commitFailStmt{conn: c}, nil }
func (c *commitFailConn) Close() error                        { return nil }
func (c *commitFailConn) Begin() (driver.Tx, error)           { return commitFailTx{}, nil }

type commitFailTx struct{}

func (commitFailTx) Commit() error   { return errCommitFailed }
func (commitFailTx) Rollback() error { return nil }

type commitFailStmt struct{ conn *commitFailConn }

func (s *commitFailStmt) Close() error  { return nil }
func (s *commitFailStmt) NumInput() int { return -1 }

func (s *commitFailStmt) Exec([]driver.Value) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}

func (s *commitFailStmt) Query([]driver.Value) (driver.Rows, error) {
	return &commitFailRows{val: s.conn.rowValue}, nil
}

type commitFailRows struct {
	val  int64
	done bool
}

func (r *commitFailRows) Columns() []string { return []string{"v"} }
func (r *commitFailRows) Close() error      { return nil }

func (r *commitFailRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.val
	return nil
}

func TestListDeleteSurfacesCommitFailure(t *testing.T) {
	db, err := sql.Open("commitfail", "7") // owner check reads user_id = 7
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer db.Close()

	err = NewListRepo(db).DeleteByIDAndOwner(context.Background(), 1, 7)
	if !errors.Is(err, errCommitFailed) {
		t.Fatalf("DeleteByIDAndOwner error = %v, want the commit failure", err)
	}
}

func TestUserDeleteSurfacesCommitFailure(t *testing.T) {
	db, err := sql.Open("commitfail", "1") // existence check reads 1
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer db.Close()

	err = NewUserRepo(db).DeleteByID(context.Background(), 1)
	if !errors.Is(err, errCommitFailed) {
		t.Fatalf("DeleteByID error = %v, want the commit failure", err)
	}
}
