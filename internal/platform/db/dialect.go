package db

import (
	"strconv"
	"strings"
)

// Dialect adapts '?'-placeholder queries to the target driver.
type Dialect string

const (
	SQLite   Dialect = DriverSQLite
	Postgres Dialect = DriverPostgres
)

// Rebind rewrites '?' placeholders as $1, $2, ... for Postgres.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(q string) string {
	if d != Postgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Placeholders returns "?, ?, ..." with n markers, for IN clauses.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
