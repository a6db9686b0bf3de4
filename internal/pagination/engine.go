package pagination

import (
	sq "github.com/Masterminds/squirrel"
)

// Page — собранная страница с курсорами в обе стороны.
type Page[T any] struct {
	Items          []T    `json:"items"`
	HasNext        bool   `json:"has_next"`
	HasPrevious    bool   `json:"has_previous"`
	NextCursor     string `json:"next_cursor,omitempty"`
	PreviousCursor string `json:"previous_cursor,omitempty"`
	TotalCount     *int64 `json:"total_count,omitempty"`
}

// BuildQuery навешивает на базовый SELECT фильтры, предикат курсора,
// сортировку (ts, id) в запрошенном направлении и LIMIT limit+1 —
// лишняя строка нужна только чтобы определить has_next.
// Предикат и ORDER BY обязаны совпадать по направлению, иначе курсор
// перестаёт быть корректной точкой продолжения.
func BuildQuery(sb sq.SelectBuilder, p Params, filters Filters, tsCol, idCol string) (sq.SelectBuilder, *Cursor, error) {
	p = p.Normalize()
	sb = filters.Apply(sb)

	cur, err := p.CursorObj()
	if err != nil {
		return sb, nil, err
	}
	if cur != nil {
		if p.Order == OrderDesc {
			sb = sb.Where(sq.Or{
				sq.Lt{tsCol: cur.CreatedAt},
				sq.And{sq.Eq{tsCol: cur.CreatedAt}, sq.Lt{idCol: cur.ID}},
			})
		} else {
			sb = sb.Where(sq.Or{
				sq.Gt{tsCol: cur.CreatedAt},
				sq.And{sq.Eq{tsCol: cur.CreatedAt}, sq.Gt{idCol: cur.ID}},
			})
		}
	}

	if p.Order == OrderDesc {
		sb = sb.OrderBy(tsCol+" DESC", idCol+" DESC")
	} else {
		sb = sb.OrderBy(tsCol+" ASC", idCol+" ASC")
	}
	sb = sb.Limit(uint64(p.Limit) + 1)
	return sb, cur, nil
}

// BuildCountQuery — точный счётчик под теми же фильтрами, но без
// предиката курсора. Дороже самой страницы, поэтому только по запросу.
func BuildCountQuery(qb sq.StatementBuilderType, table string, filters Filters) sq.SelectBuilder {
	return filters.Apply(qb.Select("COUNT(*)").From(table))
}

// BuildPage собирает страницу из выборки limit+1.
// has_previous — эвристика по форме запроса (курсор был передан), а не
// настоящий обратный lookahead: previous_cursor корректен только для
// возврата на уже пройденные страницы. Пагинация фактически forward-only.
func BuildPage[T any](rows []T, p Params, cur *Cursor, key func(T) Cursor) Page[T] {
	p = p.Normalize()

	hasNext := len(rows) > p.Limit
	items := rows
	if hasNext {
		items = rows[:p.Limit]
	}

	page := Page[T]{
		Items:       items,
		HasNext:     hasNext,
		HasPrevious: cur != nil,
	}
	if hasNext && len(items) > 0 {
		page.NextCursor = key(items[len(items)-1]).Encode()
	}
	if page.HasPrevious && len(items) > 0 {
		page.PreviousCursor = key(items[0]).Encode()
	}
	return page
}
