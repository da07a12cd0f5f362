package database

import (
	"fmt"
	"regexp"
	"strings"
)

var dollarPlaceholder = regexp.MustCompile(`\$\d+`)

// ConvertPlaceholders converts SQL placeholders to the format required
// by the active driver. Queries are always written with ? placeholders:
// SQLite and MySQL take them as-is, PostgreSQL gets $1, $2, ...
//
// Only ? placeholders are allowed; a query containing $N panics so the
// mistake is caught in tests rather than producing a driver error in
// production.
//
// Example:
//
//	query := database.ConvertPlaceholders("SELECT id FROM tickets WHERE assigned_to = ?")
//	rows, err := db.Query(query, username)
func ConvertPlaceholders(query string) string {
	if dollarPlaceholder.MatchString(query) {
		panic(fmt.Sprintf("ConvertPlaceholders: $N placeholders are not allowed, use ?\nQuery: %s", query))
	}

	if !IsPostgreSQL() || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	n := 1
	for _, c := range query {
		if c == '?' {
			fmt.Fprintf(&b, "$%d", n)
			n++
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}
