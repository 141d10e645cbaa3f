package storage

import (
	"fmt"
	"iter"
	"strings"

	"github.com/anacrolix/log"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func OpenSqlite(path string) (*sqlite.Conn, error) {
	conn, err := sqlite.OpenConn(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite db %q", path)
	}
	logger.Levelf(log.Debug, "opened sqlite db %q", path)
	return conn, nil
}

// Records in a sqlite table, ordered by key and then by rowid, so values sharing a key come back
// in the order they were put.
type SqliteTable struct {
	conn  *sqlite.Conn
	name  string
	ident string
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func NewSqliteTable(conn *sqlite.Conn, name string) (*SqliteTable, error) {
	ident := quoteIdent(name)
	err := sqlitex.ExecuteScript(conn, fmt.Sprintf(`
		create table if not exists %[1]s (key blob not null, value blob);
		create index if not exists %[2]s on %[1]s (key);
	`, ident, quoteIdent(name+"_key")), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "creating table %q", name)
	}
	return &SqliteTable{conn: conn, name: name, ident: ident}, nil
}

func (me *SqliteTable) Put(key, value []byte) error {
	return me.PutRecords(func(yield func(Record) bool) {
		yield(Record{key, value})
	})
}

// Puts all the records in a single savepoint.
func (me *SqliteTable) PutRecords(records iter.Seq[Record]) (err error) {
	defer sqlitex.Save(me.conn)(&err)
	query := fmt.Sprintf(`insert into %s (key, value) values (?, ?)`, me.ident)
	for r := range records {
		if r.Key == nil {
			r.Key = []byte{}
		}
		err = sqlitex.Execute(me.conn, query, &sqlitex.ExecOptions{
			Args: []any{r.Key, r.Value},
		})
		if err != nil {
			return errors.Wrapf(err, "inserting into %q", me.name)
		}
	}
	return nil
}

func (me *SqliteTable) Len() (n int64, err error) {
	err = sqlitex.Execute(me.conn, fmt.Sprintf(`select count(*) from %s`, me.ident), &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt64(0)
			return nil
		},
	})
	return
}

func (me *SqliteTable) query(where string, args ...any) SqliteQuery[Record] {
	return SqliteQuery[Record]{
		Conn:  me.conn,
		Query: fmt.Sprintf(`select key, value from %s %s order by key, rowid`, me.ident, where),
		Args:  args,
		Scan: func(stmt *sqlite.Stmt) (Record, error) {
			return Record{
				Key:   columnBytes(stmt, 0),
				Value: columnBytes(stmt, 1),
			}, nil
		},
	}
}

func (me *SqliteTable) Elements() iter.Seq2[Record, error] {
	return me.query("").Elements()
}

func (me *SqliteTable) CompareKeys(a, b []byte) int {
	return CompareKeys(a, b)
}

func (me *SqliteTable) Group(key []byte) iter.Seq2[Record, error] {
	if key == nil {
		key = []byte{}
	}
	return me.query("where key = ?", key).Elements()
}

// Rows of an arbitrary query, scanned one at a time. The query must order rows by whatever key
// they'll be joined on. The statement is finalized when iteration ends.
type SqliteQuery[T any] struct {
	Conn  *sqlite.Conn
	Query string
	Args  []any
	Scan  func(stmt *sqlite.Stmt) (T, error)
}

func (me SqliteQuery[T]) Elements() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		// Transient so that two sequences over the same query, as in a self-join, don't share a
		// cached statement.
		err := sqlitex.ExecuteTransient(me.Conn, me.Query, &sqlitex.ExecOptions{
			Args: me.Args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				t, err := me.Scan(stmt)
				if err != nil {
					return errors.Wrap(err, "scanning row")
				}
				if !yield(t, nil) {
					return errStop
				}
				return nil
			},
		})
		if err != nil && !errors.Is(err, errStop) {
			var zero T
			yield(zero, err)
		}
	}
}

func columnBytes(stmt *sqlite.Stmt, col int) []byte {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	b := make([]byte, stmt.ColumnLen(col))
	stmt.ColumnBytes(col, b)
	return b
}
