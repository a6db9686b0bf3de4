package pagination

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

func qb() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func TestBuildQueryFirstPageDesc(t *testing.T) {
	base := qb().Select("id").From("harvest_logs")
	sb, cur, err := BuildQuery(base, Params{Limit: 20}, nil, "created_at", "id")
	if err != nil {
		t.Fatal(err)
	}
	if cur != nil {
		t.Fatal("first page must have nil cursor")
	}

	sqlStr, _, err := sb.ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sqlStr, "ORDER BY created_at DESC, id DESC") {
		t.Fatalf("sql %q lacks desc ordering", sqlStr)
	}
	if !strings.Contains(sqlStr, "LIMIT 21") {
		t.Fatalf("sql %q must probe limit+1 rows", sqlStr)
	}
	if strings.Contains(sqlStr, "created_at <") {
		t.Fatalf("sql %q must not have a cursor predicate on first page", sqlStr)
	}
}

func TestBuildQueryCursorPredicateMatchesOrder(t *testing.T) {
	c := Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}

	base := qb().Select("id").From("harvest_logs")
	sb, cur, err := BuildQuery(base, Params{Limit: 10, Cursor: c.Encode()}, nil, "created_at", "id")
	if err != nil {
		t.Fatal(err)
	}
	if cur == nil || cur.ID != c.ID {
		t.Fatalf("decoded cursor %+v, want %+v", cur, c)
	}

	sqlStr, args, err := sb.ToSql()
	if err != nil {
		t.Fatal(err)
	}
	// предикат зеркалит ORDER BY: строго "меньше" по составному ключу
	if !strings.Contains(sqlStr, "created_at < $1 OR (created_at = $2 AND id < $3)") {
		t.Fatalf("sql %q lacks composite keyset predicate", sqlStr)
	}
	if !strings.Contains(sqlStr, "ORDER BY created_at DESC, id DESC") {
		t.Fatalf("sql %q lacks matching ordering", sqlStr)
	}
	if len(args) != 3 {
		t.Fatalf("args=%v, want ts, ts, id", args)
	}

	// asc — зеркальное направление
	sb, _, err = BuildQuery(qb().Select("id").From("harvest_logs"),
		Params{Limit: 10, Cursor: c.Encode(), Order: OrderAsc}, nil, "created_at", "id")
	if err != nil {
		t.Fatal(err)
	}
	sqlStr, _, _ = sb.ToSql()
	if !strings.Contains(sqlStr, "created_at > $1 OR (created_at = $2 AND id > $3)") {
		t.Fatalf("asc sql %q lacks mirrored predicate", sqlStr)
	}
	if !strings.Contains(sqlStr, "ORDER BY created_at ASC, id ASC") {
		t.Fatalf("asc sql %q lacks asc ordering", sqlStr)
	}
}

func TestBuildQueryBadCursor(t *testing.T) {
	base := qb().Select("id").From("harvest_logs")
	_, _, err := BuildQuery(base, Params{Limit: 10, Cursor: "garbage"}, nil, "created_at", "id")
	if !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("got %v, want ErrInvalidCursor", err)
	}
}

func TestFiltersApply(t *testing.T) {
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fs := Filters{
		Eq("crop_name", "tomato"),
		Search("notes", "frost"),
		From("harvest_date", from),
		To("harvest_date", to),
	}

	sqlStr, args, err := fs.Apply(qb().Select("id").From("harvest_logs")).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	for _, frag := range []string{
		"crop_name = $1",
		"notes ILIKE $2",
		"harvest_date >= $3",
		"harvest_date <= $4",
	} {
		if !strings.Contains(sqlStr, frag) {
			t.Errorf("sql %q lacks %q", sqlStr, frag)
		}
	}
	if args[1] != "%frost%" {
		t.Fatalf("search arg %v, want wrapped in %%", args[1])
	}
}

func TestBuildCountQueryHasNoCursorOrLimit(t *testing.T) {
	sqlStr, _, err := BuildCountQuery(qb(), "harvest_logs", Filters{Eq("crop_name", "kale")}).ToSql()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sqlStr, "SELECT COUNT(*) FROM harvest_logs") {
		t.Fatalf("sql %q", sqlStr)
	}
	if strings.Contains(sqlStr, "LIMIT") || strings.Contains(sqlStr, "created_at <") {
		t.Fatalf("count sql %q must not carry limit or cursor predicate", sqlStr)
	}
}

// ---- сборка страницы и сквозной проход по снапшоту ----

type row struct {
	ID        uuid.UUID
	CreatedAt time.Time
}

func rowKey(r row) Cursor { return Cursor{CreatedAt: r.CreatedAt, ID: r.ID} }

// makeRows строит снапшот из n строк; соседние строки частично делят
// один таймстемп, чтобы тай-брейк по id реально работал.
func makeRows(n int) []row {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{ID: uuid.New(), CreatedAt: base.Add(time.Duration(i/2) * time.Minute)}
	}
	sortDesc(rows)
	return rows
}

func sortDesc(rows []row) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID.String() > rows[j].ID.String()
	})
}

// selectAfter повторяет в памяти работу SQL-предиката курсора:
// строки строго "ниже" позиции курсора в порядке (created_at, id) DESC.
func selectAfter(rows []row, cur *Cursor, limit int) []row {
	var out []row
	for _, r := range rows {
		if cur != nil {
			before := r.CreatedAt.Before(cur.CreatedAt) ||
				(r.CreatedAt.Equal(cur.CreatedAt) && r.ID.String() < cur.ID.String())
			if !before {
				continue
			}
		}
		out = append(out, r)
		if len(out) == limit+1 {
			break
		}
	}
	return out
}

func TestBuildPageProbeRow(t *testing.T) {
	rows := makeRows(11) // limit 10 + probe
	p := Params{Limit: 10}

	page := BuildPage(rows, p, nil, rowKey)
	if len(page.Items) != 10 {
		t.Fatalf("items=%d, want probe row dropped", len(page.Items))
	}
	if !page.HasNext {
		t.Fatal("probe row present, has_next must be true")
	}
	if page.HasPrevious {
		t.Fatal("first page has no previous")
	}
	if page.NextCursor == "" {
		t.Fatal("next_cursor must point at the last included item")
	}

	want := rowKey(rows[9]).Encode()
	if page.NextCursor != want {
		t.Fatalf("next_cursor from row %v, want last included", page.NextCursor)
	}
}

func TestBuildPageLastPage(t *testing.T) {
	rows := makeRows(4)
	page := BuildPage(rows, Params{Limit: 10}, nil, rowKey)
	if page.HasNext || page.NextCursor != "" {
		t.Fatal("short page must not advertise a next page")
	}
	if len(page.Items) != 4 {
		t.Fatalf("items=%d, want all 4", len(page.Items))
	}
}

func TestWalkWholeSnapshot(t *testing.T) {
	const total, limit = 25, 10
	rows := makeRows(total)

	seen := make(map[uuid.UUID]bool)
	var cur *Cursor
	var pages int

	for {
		batch := selectAfter(rows, cur, limit)
		page := BuildPage(batch, Params{Limit: limit, Cursor: encodeOpt(cur)}, cur, rowKey)
		pages++

		for _, r := range page.Items {
			if seen[r.ID] {
				t.Fatalf("row %s delivered twice", r.ID)
			}
			seen[r.ID] = true
		}

		if pages > 1 && !page.HasPrevious {
			t.Fatal("pages reached via cursor must report has_previous")
		}
		if !page.HasNext {
			break
		}
		c, err := DecodeCursor(page.NextCursor)
		if err != nil {
			t.Fatal(err)
		}
		cur = &c
	}

	if pages != 3 {
		t.Fatalf("pages=%d, want 10+10+5", pages)
	}
	if len(seen) != total {
		t.Fatalf("delivered %d rows, want %d with no gaps", len(seen), total)
	}
}

// Вставка "свежей" строки между страницами не двигает и не дублирует
// уже выданные строки: курсор — позиция в порядке, не смещение.
func TestInsertBetweenPagesIsStable(t *testing.T) {
	const limit = 5
	rows := makeRows(12)

	first := selectAfter(rows, nil, limit)
	page1 := BuildPage(first, Params{Limit: limit}, nil, rowKey)

	// свежая строка с самым новым таймстемпом попадает в голову порядка
	fresh := row{ID: uuid.New(), CreatedAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
	rows = append(rows, fresh)
	sortDesc(rows)

	c, err := DecodeCursor(page1.NextCursor)
	if err != nil {
		t.Fatal(err)
	}
	second := selectAfter(rows, &c, limit)
	page2 := BuildPage(second, Params{Limit: limit, Cursor: page1.NextCursor}, &c, rowKey)

	got := make(map[uuid.UUID]bool)
	for _, r := range page1.Items {
		got[r.ID] = true
	}
	for _, r := range page2.Items {
		if got[r.ID] {
			t.Fatalf("row %s duplicated across pages after insert", r.ID)
		}
		if r.ID == fresh.ID {
			t.Fatal("row newer than the cursor must not appear on a later page")
		}
	}
}

func encodeOpt(c *Cursor) string {
	if c == nil {
		return ""
	}
	return c.Encode()
}
