// Package repository contains the data access layer: one repository
// per entity, each wrapping hand-written SQL over a shared *sql.DB.
// Sentinel errors defined here let the service layer distinguish
// failure modes without inspecting driver internals.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicate is returned when an insert or update violates a unique
// key: (user_id, title) on lists, (list_id, name) on places, username
// on users. Pre-checks usually catch these first; the constraint is
// the authority when two writes race.
var ErrDuplicate = errors.New("duplicate entry")

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL duplicate-key error.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
