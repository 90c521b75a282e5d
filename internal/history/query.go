package history

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"librarian/internal/ledger"
)

const dialectPostgres = "postgres"

func buildSearchQuery(f Filter) (string, []any, error) {
	cols := make([]any, 0, len(ledger.EntryColumns))
	for _, c := range ledger.EntryColumns {
		cols = append(cols, goqu.I(c))
	}

	stmt := goqu.Dialect(dialectPostgres).
		From(goqu.T("book_transactions").As("t")).
		LeftJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("t.book_id")))).
		Select(cols...).
		Where(conditions(f)...).
		Order(goqu.I("t.borrowed_at").Asc(), goqu.I("t.id").Asc()).
		Prepared(true)

	return stmt.ToSQL()
}

func conditions(f Filter) []exp.Expression {
	conds := make([]exp.Expression, 0, 5)

	if f.UserID != nil {
		conds = append(conds, goqu.I("t.borrowed_by").Eq(*f.UserID))
	}
	if f.BookTitle != "" {
		conds = append(conds, goqu.I("b.title").Eq(f.BookTitle))
	}
	switch {
	case f.openOnly():
		conds = append(conds, goqu.I("t.borrowed").IsTrue(), goqu.I("t.returned").IsFalse())
	case f.returnedOnly():
		conds = append(conds, goqu.I("t.returned").IsTrue())
	}
	if f.Date != nil {
		start, end := dayRange(*f.Date)
		conds = append(conds, goqu.I("t.borrowed_at").Gte(start), goqu.I("t.borrowed_at").Lt(end))
	}
	return conds
}
