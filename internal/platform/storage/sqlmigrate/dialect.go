package sqlmigrate

import (
	"strconv"
	"strings"
)

// Dialect names the SQL flavor a database handle speaks.
type Dialect string

const (
	// DialectSQLite targets modernc.org/sqlite.
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres targets github.com/lib/pq.
	DialectPostgres Dialect = "postgres"
)

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind rewrites '?' placeholders into the dialect's positional form.
//
// Queries are written once with '?' and rebound for PostgreSQL ($1, $2, ...).
// Placeholders inside single-quoted literals are left untouched.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
