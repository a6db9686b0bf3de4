package pagination

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params — параметры пагинации запроса.
type Params struct {
	Limit  int
	Cursor string // пустая строка — первая страница
	Order  Order
}

// Normalize приводит лимит к границам 1..100 и направление к asc|desc.
func (p Params) Normalize() Params {
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = DefaultLimit
	}
	if p.Order != OrderAsc {
		p.Order = OrderDesc
	}
	return p
}

// CursorObj декодирует курсор, если он задан.
func (p Params) CursorObj() (*Cursor, error) {
	if p.Cursor == "" {
		return nil, nil
	}
	c, err := DecodeCursor(p.Cursor)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
