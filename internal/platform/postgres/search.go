package postgres

import (
	"strings"
)

// searchColumns are matched by BuildSearchPredicate, in this order.
var searchColumns = []string{"id", "name", "phone", "address", "remark"}

// searchParam is the single placeholder shared by every searched column.
const searchParam = "pattern"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildSearchPredicate returns a WHERE fragment that matches rows where any
// searchable column contains token as a substring, plus its one binding.
//
// LIKE wildcards in token are escaped so they match literally. An empty token
// produces the pattern "%%", which matches every row. Case sensitivity is the
// store's: LIKE is case-sensitive in PostgreSQL.
func BuildSearchPredicate(token string) (string, Bindings) {
	clauses := make([]string, len(searchColumns))
	for i, column := range searchColumns {
		clauses[i] = column + " LIKE @" + searchParam
	}

	fragment := "(" + strings.Join(clauses, " OR ") + ")"
	binds := Bindings{
		searchParam: {Type: Text, Value: "%" + likeEscaper.Replace(token) + "%"},
	}
	return fragment, binds
}
