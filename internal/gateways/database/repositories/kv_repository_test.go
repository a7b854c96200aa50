package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/disgoorg/card-binder/internal/domain/collection"
)

// scriptedConn answers every query with the configured rows or error and
// records the SQL it was sent.
type scriptedConn struct {
	rows    [][]driver.Value
	err     error
	queries []string
}

func (c *scriptedConn) Connect(context.Context) (driver.Conn, error) { return c, nil }
func (c *scriptedConn) Driver() driver.Driver                        { return nil }

func (c *scriptedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}
func (c *scriptedConn) Close() error              { return nil }
func (c *scriptedConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions are not supported") }

func (c *scriptedConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	return &scriptedRows{rows: c.rows}, nil
}

func (c *scriptedConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	return driver.RowsAffected(1), nil
}

type scriptedRows struct {
	rows [][]driver.Value
}

func (r *scriptedRows) Columns() []string { return []string{"key", "value", "updated_at"} }
func (r *scriptedRows) Close() error      { return nil }

func (r *scriptedRows) Next(dest []driver.Value) error {
	if len(r.rows) == 0 {
		return io.EOF
	}
	copy(dest, r.rows[0])
	r.rows = r.rows[1:]
	return nil
}

func newScriptedRepository(t *testing.T, conn *scriptedConn) *KVRepository {
	sqldb := sql.OpenDB(conn)
	t.Cleanup(func() { _ = sqldb.Close() })
	return NewKVRepository(bun.NewDB(sqldb, pgdialect.New()))
}

func TestKVRepository_Get(t *testing.T) {
	errDown := errors.New("connection reset")
	tests := []struct {
		name    string
		conn    *scriptedConn
		want    string
		wantErr error
	}{
		{
			name:    "missing key",
			conn:    &scriptedConn{},
			wantErr: collection.ErrNotFound,
		},
		{
			name: "stored value",
			conn: &scriptedConn{rows: [][]driver.Value{
				{"tcg-collection", []byte(`{"MTG":[]}`), time.Unix(0, 0)},
			}},
			want: `{"MTG":[]}`,
		},
		{
			name:    "database failure",
			conn:    &scriptedConn{err: errDown},
			wantErr: errDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newScriptedRepository(t, tt.conn)
			got, err := repo.Get(context.Background(), "tcg-collection")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Get() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != collection.ErrNotFound && errors.Is(err, collection.ErrNotFound) {
				t.Errorf("Get() error = %v, should not be ErrNotFound", err)
			}
			if string(got) != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
			if len(tt.conn.queries) != 1 || !strings.Contains(tt.conn.queries[0], `"kv_entries"`) || !strings.Contains(tt.conn.queries[0], "'tcg-collection'") {
				t.Errorf("queries = %q", tt.conn.queries)
			}
		})
	}
}

func TestKVRepository_Put(t *testing.T) {
	conn := &scriptedConn{}
	repo := newScriptedRepository(t, conn)

	if err := repo.Put(context.Background(), "tcg-collection", []byte(`{"MTG":[]}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if len(conn.queries) != 1 {
		t.Fatalf("queries = %q", conn.queries)
	}
	q := conn.queries[0]
	for _, want := range []string{`INSERT INTO "kv_entries"`, "ON CONFLICT (key) DO UPDATE", "value = EXCLUDED.value", "updated_at = EXCLUDED.updated_at"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}

	conn.err = errors.New("disk full")
	if err := repo.Put(context.Background(), "tcg-collection", []byte(`{}`)); !errors.Is(err, conn.err) {
		t.Errorf("Put() error = %v", err)
	}
}
