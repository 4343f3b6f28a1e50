package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rms/internal/domain"
)

// errClosed is wrapped into the connection error returned after Close
var errClosed = errors.New("connection is closed")

// Connection is one SQLite session.
// It must be closed exactly once when it is no longer needed.
type Connection struct {
	db     *sqlx.DB
	conn   *sqlx.Conn
	path   string
	logger *zap.SugaredLogger
}

// Open establishes a session on the database file at path.
// The file must exist; see Engine.Create.
func Open(ctx context.Context, path string, busyTimeout time.Duration, logger *zap.SugaredLogger) (*Connection, error) {
	db, err := sqlx.Open(driverName, dsn(path, busyTimeout))
	if err != nil {
		return nil, domain.NewConnectionError("open "+path, err)
	}

	// One session only: pragma state lives on the SQLite connection.
	db.SetMaxOpenConns(1)

	conn, err := db.Connx(ctx)
	if err != nil {
		_ = db.Close()
		return nil, domain.NewConnectionError("open "+path, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, domain.NewConnectionError("open "+path, err)
	}

	c := &Connection{
		db:     db,
		conn:   conn,
		path:   path,
		logger: logger.With(zap.String("database", path)),
	}

	if !c.SetForeignKeysEnabled(ctx, true) {
		_ = c.Close()
		return nil, domain.NewConnectionError("open "+path, errors.New("can't enable foreign keys"))
	}

	c.logger.Debug("Opened database connection")

	return c, nil
}

// Path returns the database file of the session
func (c *Connection) Path() string {
	return c.path
}

// ForeignKeysEnabled reports whether foreign key enforcement is active.
// If the pragma can't be read the Connection is closed.
func (c *Connection) ForeignKeysEnabled(ctx context.Context) (bool, error) {
	if c.conn == nil {
		return false, domain.NewConnectionError("check foreign keys", errClosed)
	}

	var enabled int
	if err := c.conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		c.logger.Errorw("Can't read foreign key status, closing connection", zap.Error(err))
		_ = c.Close()

		return false, domain.NewConnectionError("check foreign keys", err)
	}

	c.logger.Debugw("Foreign key status", "enabled", enabled == 1)

	return enabled == 1, nil
}

// SetForeignKeysEnabled switches foreign key enforcement on or off.
// It reports success and never returns an error.
func (c *Connection) SetForeignKeysEnabled(ctx context.Context, on bool) bool {
	if c.conn == nil {
		return false
	}

	stmt := "PRAGMA foreign_keys = OFF"
	if on {
		stmt = "PRAGMA foreign_keys = ON"
	}

	if _, err := c.conn.ExecContext(ctx, stmt); err != nil {
		c.logger.Warnw("Can't set foreign key support", "enabled", on, zap.Error(err))
		return false
	}

	return true
}

// Close releases the session. SQLite runs in autocommit mode, so every
// statement issued through the Connection is already durable.
// Closing an already closed Connection does nothing.
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}

	connErr := c.conn.Close()
	dbErr := c.db.Close()
	c.conn = nil

	if connErr != nil && !errors.Is(connErr, sql.ErrConnDone) {
		return errors.Wrap(connErr, "can't close connection")
	}
	if dbErr != nil {
		return errors.Wrap(dbErr, "can't close database")
	}

	c.logger.Debug("Closed database connection")

	return nil
}

// Users returns the user repository of the session
func (c *Connection) Users() *UserRepository {
	return &UserRepository{c: c}
}

// Restaurants returns the restaurant repository of the session
func (c *Connection) Restaurants() *RestaurantRepository {
	return &RestaurantRepository{c: c}
}

// Staffing returns the staffing repository of the session
func (c *Connection) Staffing() *StaffingRepository {
	return &StaffingRepository{c: c}
}

// Vendors returns the vendor repository of the session
func (c *Connection) Vendors() *VendorRepository {
	return &VendorRepository{c: c}
}

// Items returns the item repository of the session
func (c *Connection) Items() *ItemRepository {
	return &ItemRepository{c: c}
}

// Stock returns the stock repository of the session
func (c *Connection) Stock() *StockRepository {
	return &StockRepository{c: c}
}

// Snapshot lists every table in its summary form
func (c *Connection) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	var (
		s   domain.Snapshot
		err error
	)

	if s.Users, err = c.Users().List(ctx); err != nil {
		return nil, err
	}
	if s.Restaurants, err = c.Restaurants().List(ctx); err != nil {
		return nil, err
	}
	if s.Staffing, err = c.Staffing().List(ctx); err != nil {
		return nil, err
	}
	if s.Vendors, err = c.Vendors().List(ctx); err != nil {
		return nil, err
	}
	if s.Items, err = c.Items().List(ctx); err != nil {
		return nil, err
	}
	if s.Stock, err = c.Stock().List(ctx); err != nil {
		return nil, err
	}

	return &s, nil
}

// fail classifies an error returned by SQLite during op.
// Constraint violations leave the session usable and are returned with
// context. Anything else closes the Connection.
func (c *Connection) fail(op string, err error) error {
	if isConstraintViolation(err) {
		return errors.Wrapf(err, "can't %s", op)
	}

	if c.conn != nil {
		c.logger.Errorw("Database error, closing connection", "op", op, zap.Error(err))
		_ = c.Close()
	}

	return domain.NewConnectionError(op, err)
}

// get scans a single row into dest and reports whether a row was found
func (c *Connection) get(ctx context.Context, op string, dest any, query string, args ...any) (bool, error) {
	if c.conn == nil {
		return false, domain.NewConnectionError(op, errClosed)
	}

	err := c.conn.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, c.fail(op, err)
	}

	return true, nil
}

// list scans all rows of query into dest, a pointer to a slice
func (c *Connection) list(ctx context.Context, op string, dest any, query string, args ...any) error {
	if c.conn == nil {
		return domain.NewConnectionError(op, errClosed)
	}

	if err := c.conn.SelectContext(ctx, dest, query, args...); err != nil {
		return c.fail(op, err)
	}

	return nil
}

// exists reports whether query returns at least one row
func (c *Connection) exists(ctx context.Context, op string, query string, args ...any) (bool, error) {
	var id int64
	return c.get(ctx, op, &id, query, args...)
}

// exec runs a mutating statement with foreign key enforcement switched on
// and returns the number of affected rows and the last inserted id.
func (c *Connection) exec(ctx context.Context, op string, query string, args ...any) (int64, int64, error) {
	if c.conn == nil {
		return 0, 0, domain.NewConnectionError(op, errClosed)
	}

	if !c.SetForeignKeysEnabled(ctx, true) {
		c.logger.Warnw("Running statement without foreign key enforcement", "op", op)
	}

	res, err := c.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, 0, c.fail(op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, 0, c.fail(op, err)
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, 0, c.fail(op, err)
	}

	return affected, lastID, nil
}
