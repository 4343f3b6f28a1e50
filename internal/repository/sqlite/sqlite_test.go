package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"rms/internal/config"
	"rms/internal/domain"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// ============================================================================
// Test Helpers
// ============================================================================

// newTestEngine creates an Engine for a database file in a temporary directory
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := config.DefaultConfig().Database
	cfg.Path = filepath.Join(t.TempDir(), "db", "rms.db")

	return NewEngine(cfg, zaptest.NewLogger(t).Sugar())
}

// newTestConn creates the schema and returns an open Connection to it.
// With seed set the embedded data script is loaded as well.
func newTestConn(t *testing.T, seed bool) *Connection {
	t.Helper()

	ctx := context.Background()
	e := newTestEngine(t)
	require.NoError(t, e.CreateTables(ctx, ""))
	if seed {
		require.NoError(t, e.Populate(ctx, ""))
	}

	c, err := e.Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

// count returns the number of rows in table
func count(t *testing.T, c *Connection, table string) int {
	t.Helper()

	var n int
	_, err := c.get(context.Background(), "count", &n, `SELECT COUNT(*) FROM "`+table+`"`)
	require.NoError(t, err)

	return n
}

// ============================================================================
// Null Type Conversion Helper Tests
// ============================================================================

func TestNullConversions(t *testing.T) {
	assert.Equal(t, "", nullToString(sql.NullString{}))
	assert.Equal(t, "x", nullToString(sql.NullString{String: "x", Valid: true}))

	assert.False(t, stringToNull("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, stringToNull("x"))
}

func TestDateRoundTrip(t *testing.T) {
	date := time.Date(2018, 2, 12, 9, 0, 0, 123456789, time.FixedZone("EET", 2*60*60))

	parsed, err := parseDate(formatDate(date))
	require.NoError(t, err)
	assert.True(t, date.Equal(parsed))
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = parseDate("12-02-2018")
	assert.Error(t, err)
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2018, 2, 12, 9, 0, 0, 0, time.UTC)

	for _, s := range []string{
		"2018-02-12T09:00:00Z",
		"2018-02-12T11:00:00+02:00",
		"2018-02-12 09:00:00",
		"2018-02-12 09:00:00.000",
		"2018-02-12 11:00:00+02:00",
		"2018-02-12T09:00:00",
		"2018-02-12 09:00",
	} {
		got, err := parseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	got, err := parseDate("2018-02-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 2, 12, 0, 0, 0, 0, time.UTC), got)
}

// ============================================================================
// Record Mapper Tests
// ============================================================================

func TestUserRowMapping(t *testing.T) {
	row := userRow{
		UserID:    1,
		Username:  "ali",
		Firstname: stringToNull("Ali"),
		Lastname:  stringToNull("Hassani"),
		Phone:     stringToNull("0475556633"),
	}

	want := &domain.User{UserID: 1, Username: "ali", Firstname: "Ali", Lastname: "Hassani", Phone: "0475556633"}
	if diff := cmp.Diff(want, row.toRecord()); diff != "" {
		t.Errorf("toRecord() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, domain.UserSummary{Username: "ali", Firstname: "Ali", Lastname: "Hassani"}, row.toSummary())
}

func TestRestaurantRowMapping(t *testing.T) {
	row := restaurantRow{RestaurantID: 2, Name: "Sheraz", Address: stringToNull("Tuira")}

	rec := row.toRecord()
	assert.Nil(t, rec.Owner)
	assert.Equal(t, "Tuira", rec.Address)
	assert.Empty(t, rec.Phone)

	row.OwnerUsername = stringToNull("ali")
	row.OwnerFirstname = stringToNull("Ali")
	rec = row.toRecord()
	require.NotNil(t, rec.Owner)
	assert.Equal(t, domain.UserSummary{Username: "ali", Firstname: "Ali"}, *rec.Owner)

	assert.Equal(t, domain.RestaurantSummary{Name: "Sheraz", Address: "Tuira"}, row.toSummary())
}

func TestPrefixedIdentifierMapping(t *testing.T) {
	v := vendorRow{VendorID: 3, Name: "Valio"}
	assert.Equal(t, "v-3", v.toRecord().ID.String())
	assert.Equal(t, "v-3", v.toSummary().ID.String())

	it := itemRow{ItemID: 4, Name: "Milk", VendorID: 3}
	assert.Equal(t, "it-4", it.toRecord().ID.String())
	assert.Equal(t, "v-3", it.toSummary().VendorID.String())

	st := stockRow{StockID: 5, ItemID: 4, VendorID: 3, Date: "2018-02-12T09:00:00Z"}
	rec, err := st.toRecord()
	require.NoError(t, err)
	assert.Equal(t, "st-5", rec.ID.String())
	assert.Equal(t, "it-4", rec.ItemID.String())
	assert.Empty(t, rec.ExpireDate)
	assert.Empty(t, rec.TransactionType)

	sum, err := st.toSummary()
	require.NoError(t, err)
	assert.Equal(t, "st-5", sum.ID.String())
	assert.Equal(t, time.Date(2018, 2, 12, 9, 0, 0, 0, time.UTC), sum.Date)

	st.Date = "yesterday"
	_, err = st.toRecord()
	assert.Error(t, err)
}

// ============================================================================
// Driver Tests
// ============================================================================

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"db/rms.db", "file:db/rms.db?mode=rw&_pragma=busy_timeout(5000)"},
		{"/var/lib/rms/rms.db", "file:/var/lib/rms/rms.db?mode=rw&_pragma=busy_timeout(5000)"},
		{"/tmp/kitchen#1.db", "file:/tmp/kitchen%231.db?mode=rw&_pragma=busy_timeout(5000)"},
		{"what?.db", "file:what%3F.db?mode=rw&_pragma=busy_timeout(5000)"},
		{"100%.db", "file:100%25.db?mode=rw&_pragma=busy_timeout(5000)"},
		{"my kitchen.db", "file:my%20kitchen.db?mode=rw&_pragma=busy_timeout(5000)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dsn(tt.path, 5*time.Second), tt.path)
	}
}

func TestIsConstraintViolation(t *testing.T) {
	c := newTestConn(t, true)

	_, _, err := c.exec(context.Background(), "insert",
		`INSERT INTO item (itemName, vendorId) VALUES ('Ghost', 999)`)
	require.Error(t, err)
	assert.True(t, isConstraintViolation(err))
	assert.False(t, errors.Is(err, domain.ErrConnection))

	var sqliteErr *sqlite.Error
	require.True(t, errors.As(err, &sqliteErr))
	assert.Equal(t, sqlite3.SQLITE_CONSTRAINT, sqliteErr.Code()&0xff)

	assert.False(t, isConstraintViolation(errors.New("boom")))
	assert.False(t, isConstraintViolation(nil))
}
