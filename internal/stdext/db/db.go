// Package db is the "db" extension: guest-callable routines for working
// with SQLite databases. It exists both as a useful capability and as the
// reference implementation of the extension contract — a descriptor whose
// routines become dynamically callable the moment a context is created.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lumenlang/lumen/internal/extensions"
	"github.com/lumenlang/lumen/internal/values"
)

const Name = "db"

// Register adds the extension to the process-wide registry. Call once at
// startup.
func Register() bool {
	return extensions.Register(Descriptor())
}

// Descriptor builds the extension descriptor. Exposed separately so tests
// can register into a private registry.
func Descriptor() *extensions.Descriptor {
	return &extensions.Descriptor{
		Name: Name,
		Routines: map[string]values.BuiltinFunc{
			"dbOpen":  dbOpen,
			"dbExec":  dbExec,
			"dbQuery": dbQuery,
			"dbClose": dbClose,
		},
	}
}

// dbOpen(path) opens or creates a SQLite database and returns its handle.
func dbOpen(args ...values.Value) (values.Value, error) {
	path, err := stringArg("dbOpen", args, 0)
	if err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dbOpen: %w", err)
	}
	return &values.HostObject{Value: conn}, nil
}

// dbExec(db, query, params...) runs a statement and returns the number of
// affected rows.
func dbExec(args ...values.Value) (values.Value, error) {
	conn, query, params, err := statementArgs("dbExec", args)
	if err != nil {
		return nil, err
	}
	res, err := conn.Exec(query, params...)
	if err != nil {
		return nil, fmt.Errorf("dbExec: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("dbExec: %w", err)
	}
	return &values.Integer{Value: affected}, nil
}

// dbQuery(db, query, params...) runs a query and returns a list of
// records, one per row, keyed by column name.
func dbQuery(args ...values.Value) (values.Value, error) {
	conn, query, params, err := statementArgs("dbQuery", args)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}

	m := values.NewMarshaller()
	out := &values.List{}
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("dbQuery: %w", err)
		}

		fields := make(map[string]values.Value, len(cols))
		for i, col := range cols {
			v, err := m.ToValue(normalize(raw[i]))
			if err != nil {
				return nil, fmt.Errorf("dbQuery: column %s: %w", col, err)
			}
			fields[col] = v
		}
		out.Elements = append(out.Elements, &values.Record{Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dbQuery: %w", err)
	}
	return out, nil
}

// dbClose(db) closes a handle opened with dbOpen.
func dbClose(args ...values.Value) (values.Value, error) {
	conn, err := connArg("dbClose", args, 0)
	if err != nil {
		return nil, err
	}
	if err := conn.Close(); err != nil {
		return nil, fmt.Errorf("dbClose: %w", err)
	}
	return &values.Nil{}, nil
}

// normalize maps driver byte slices to strings so text columns come back
// as guest strings rather than opaque lists.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func statementArgs(routine string, args []values.Value) (*sql.DB, string, []interface{}, error) {
	conn, err := connArg(routine, args, 0)
	if err != nil {
		return nil, "", nil, err
	}
	query, err := stringArg(routine, args, 1)
	if err != nil {
		return nil, "", nil, err
	}

	m := values.NewMarshaller()
	params := make([]interface{}, 0, len(args)-2)
	for i, arg := range args[2:] {
		p, err := m.FromValue(arg, nil)
		if err != nil {
			return nil, "", nil, fmt.Errorf("%s: parameter %d: %w", routine, i, err)
		}
		params = append(params, p)
	}
	return conn, query, params, nil
}

func connArg(routine string, args []values.Value, idx int) (*sql.DB, error) {
	if idx >= len(args) {
		return nil, fmt.Errorf("%s: expected a database handle as argument %d", routine, idx+1)
	}
	host, ok := args[idx].(*values.HostObject)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d is not a database handle", routine, idx+1)
	}
	conn, ok := host.Value.(*sql.DB)
	if !ok {
		return nil, fmt.Errorf("%s: argument %d is not a database handle", routine, idx+1)
	}
	return conn, nil
}

func stringArg(routine string, args []values.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", fmt.Errorf("%s: expected a string as argument %d", routine, idx+1)
	}
	s, ok := args[idx].(*values.String)
	if !ok {
		return "", fmt.Errorf("%s: argument %d must be a string, got %s", routine, idx+1, args[idx].Type())
	}
	return s.Value, nil
}
