// Package sqlite implements the RMS repositories on top of SQLite.
//
// An Engine owns the database file: it creates and removes it, loads the
// schema and seed scripts and purges rows. Engine.Connect returns a
// Connection, which pins exactly one SQLite session for its lifetime and
// hands out the entity repositories. A Connection is not safe for
// concurrent use and must be closed by the caller.
//
// Foreign key enforcement is per session in SQLite. Connections switch it on
// when they open and again before every mutating statement, so cascading
// deletes and reference checks always apply.
package sqlite

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// driverName is the database/sql driver registered by modernc.org/sqlite
const driverName = "sqlite"

func init() {
	// sqlx does not know the modernc driver name; it uses ? placeholders.
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// dsn builds the data source name for an existing database file.
// mode=rw makes opening a missing file fail instead of creating it.
// The path is percent-encoded so that '?', '#' and '%' in file names
// are not read as URI delimiters.
func dsn(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("file:%s?mode=rw&_pragma=busy_timeout(%d)",
		(&url.URL{Path: path}).EscapedPath(), busyTimeout.Milliseconds())
}

// isConstraintViolation reports whether err was raised by a SQLite
// constraint (foreign key, unique, not null, check).
func isConstraintViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}

	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
