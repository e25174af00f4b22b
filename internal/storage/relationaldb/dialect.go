package relationaldb

import (
	"strconv"
	"strings"
)

// dialect covers the differences between the supported SQL engines.
type dialect struct {
	name string

	// serial is the column type of the auto-incrementing row number
	serial string

	// numbered placeholders ($1, $2) instead of ?
	numbered bool
}

var dialects = map[string]dialect{
	DriverSQLite:   {name: DriverSQLite, serial: "INTEGER PRIMARY KEY AUTOINCREMENT"},
	DriverPostgres: {name: DriverPostgres, serial: "BIGSERIAL PRIMARY KEY", numbered: true},
}

// rebind rewrites ? placeholders for the dialect.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
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

func (d dialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			seq        ` + d.serial + `,
			id         TEXT NOT NULL UNIQUE,
			hash       TEXT NOT NULL UNIQUE,
			account    TEXT NOT NULL,
			sequence   BIGINT NOT NULL,
			tx_type    TEXT NOT NULL,
			result     TEXT NOT NULL,
			subject    TEXT NOT NULL,
			delivered  BIGINT,
			close_time BIGINT NOT NULL,
			memo       TEXT NOT NULL,
			raw        TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS transactions_account ON transactions (account, seq)`,
		`CREATE INDEX IF NOT EXISTS transactions_subject ON transactions (subject, seq)`,
	}
}
