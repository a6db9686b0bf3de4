package pagination

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

type filterOp int

const (
	opEq filterOp = iota
	opSearch
	opFrom
	opTo
)

// Filter — фильтр вызывающей стороны: равенство, диапазон или поиск
// по подстроке. Все фильтры соединяются через AND.
type Filter struct {
	field string
	op    filterOp
	value any
}

type Filters []Filter

func Eq(field string, v any) Filter { return Filter{field: field, op: opEq, value: v} }

// Search — регистронезависимый поиск подстроки (ILIKE %substr%)
func Search(field, substr string) Filter {
	return Filter{field: field, op: opSearch, value: substr}
}

// From/To — границы диапазона, обе включительно
func From(field string, t time.Time) Filter { return Filter{field: field, op: opFrom, value: t} }
func To(field string, t time.Time) Filter   { return Filter{field: field, op: opTo, value: t} }

// Apply транслирует фильтры в предикаты squirrel.
func (fs Filters) Apply(sb sq.SelectBuilder) sq.SelectBuilder {
	for _, f := range fs {
		switch f.op {
		case opEq:
			sb = sb.Where(sq.Eq{f.field: f.value})
		case opSearch:
			sb = sb.Where(sq.ILike{f.field: "%" + f.value.(string) + "%"})
		case opFrom:
			sb = sb.Where(sq.GtOrEq{f.field: f.value})
		case opTo:
			sb = sb.Where(sq.LtOrEq{f.field: f.value})
		}
	}
	return sb
}
