package database

import (
	"strconv"
	"strings"
)

// Rebind rewrites '?' placeholders to the $n form when the pool talks
// to Postgres. Queries are written once with '?' and rebound per
// driver; sqlite takes them as-is.
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
