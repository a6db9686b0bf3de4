package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/garden-log/internal/domain"
	"github.com/EgorLis/garden-log/internal/pagination"
)

const eventCols = "id, plant_id, event_type, event_date, description, notes, location, created_at, updated_at"

func scanEvent(row pgx.Row) (domain.PlantEvent, error) {
	var e domain.PlantEvent
	var typ string
	err := row.Scan(&e.ID, &e.PlantID, &typ, &e.EventDate,
		&e.Description, &e.Notes, &e.Location, &e.CreatedAt, &e.UpdatedAt)
	e.EventType = domain.EventType(typ)
	return e, err
}

func (r *PGRepo) CreateEvent(ctx context.Context, e domain.PlantEvent) (domain.PlantEvent, error) {
	q := r.qb().Insert(r.table("plant_events")).
		Columns("plant_id", "event_type", "event_date", "description", "notes", "location").
		Values(e.PlantID, string(e.EventType), e.EventDate, e.Description, e.Notes, e.Location).
		Suffix("RETURNING " + eventCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateEvent", sqlStr, args)

	start := time.Now()
	out, err := scanEvent(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateEvent scan error after %s: %v", time.Since(start), err)
		return domain.PlantEvent{}, err
	}
	r.logger.Printf("CreateEvent ok in %s id=%s type=%s", time.Since(start), out.ID, out.EventType)
	return out, nil
}

func (r *PGRepo) EventByID(ctx context.Context, id domain.EventID) (domain.PlantEvent, error) {
	q := r.qb().Select(eventCols).From(r.table("plant_events")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("EventByID", sqlStr, args)

	out, err := scanEvent(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlantEvent{}, domain.ErrNotFound
		}
		return domain.PlantEvent{}, err
	}
	return out, nil
}

func (r *PGRepo) UpdateEvent(ctx context.Context, id domain.EventID, p domain.PlantEventPatch) (domain.PlantEvent, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if p.PlantID != nil {
		set["plant_id"] = *p.PlantID
	}
	if p.EventDate != nil {
		set["event_date"] = *p.EventDate
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}

	q := r.qb().Update(r.table("plant_events")).SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + eventCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateEvent", sqlStr, args)

	out, err := scanEvent(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlantEvent{}, domain.ErrNotFound
		}
		return domain.PlantEvent{}, err
	}
	return out, nil
}

func (r *PGRepo) DeleteEvent(ctx context.Context, id domain.EventID) error {
	q := r.qb().Delete(r.table("plant_events")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteEvent", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func eventFilters(f domain.PlantEventFilter) pagination.Filters {
	var fs pagination.Filters
	if f.PlantID != nil {
		fs = append(fs, pagination.Eq("plant_id", *f.PlantID))
	}
	if f.EventType != "" {
		fs = append(fs, pagination.Eq("event_type", string(f.EventType)))
	}
	if f.Search != "" {
		fs = append(fs, pagination.Search("notes", f.Search))
	}
	if f.DateFrom != nil {
		fs = append(fs, pagination.From("event_date", *f.DateFrom))
	}
	if f.DateTo != nil {
		fs = append(fs, pagination.To("event_date", *f.DateTo))
	}
	return fs
}

func (r *PGRepo) EventsList(ctx context.Context, params pagination.Params, f domain.PlantEventFilter, withTotal bool) (pagination.Page[domain.PlantEvent], error) {
	filters := eventFilters(f)

	base := r.qb().Select(eventCols).From(r.table("plant_events"))
	sb, cur, err := pagination.BuildQuery(base, params, filters, "created_at", "id")
	if err != nil {
		return pagination.Page[domain.PlantEvent]{}, err
	}

	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return pagination.Page[domain.PlantEvent]{}, err
	}
	r.logSQL("EventsList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("EventsList query error after %s: %v", time.Since(start), err)
		return pagination.Page[domain.PlantEvent]{}, err
	}
	defer rows.Close()

	out := make([]domain.PlantEvent, 0, params.Limit+1)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return pagination.Page[domain.PlantEvent]{}, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[domain.PlantEvent]{}, err
	}
	r.logger.Printf("EventsList ok in %s count=%d", time.Since(start), len(out))

	page := pagination.BuildPage(out, params, cur, func(e domain.PlantEvent) pagination.Cursor {
		return pagination.Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
	})

	if withTotal {
		total, err := r.countRows(ctx, "EventsList.count", "plant_events", filters)
		if err != nil {
			return pagination.Page[domain.PlantEvent]{}, err
		}
		page.TotalCount = &total
	}
	return page, nil
}
