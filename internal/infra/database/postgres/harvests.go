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

const harvestCols = "id, crop_name, quantity, unit, harvest_date, location, notes, created_at, updated_at"

func scanHarvestLog(row pgx.Row) (domain.HarvestLog, error) {
	var h domain.HarvestLog
	err := row.Scan(&h.ID, &h.CropName, &h.Quantity, &h.Unit, &h.HarvestDate,
		&h.Location, &h.Notes, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

func (r *PGRepo) CreateHarvestLog(ctx context.Context, h domain.HarvestLog) (domain.HarvestLog, error) {
	q := r.qb().Insert(r.table("harvest_logs")).
		Columns("crop_name", "quantity", "unit", "harvest_date", "location", "notes").
		Values(h.CropName, h.Quantity, h.Unit, h.HarvestDate, h.Location, h.Notes).
		Suffix("RETURNING " + harvestCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateHarvestLog", sqlStr, args)

	start := time.Now()
	out, err := scanHarvestLog(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateHarvestLog scan error after %s: %v", time.Since(start), err)
		return domain.HarvestLog{}, err
	}
	r.logger.Printf("CreateHarvestLog ok in %s id=%s crop=%q", time.Since(start), out.ID, out.CropName)
	return out, nil
}

func (r *PGRepo) HarvestLogByID(ctx context.Context, id domain.HarvestLogID) (domain.HarvestLog, error) {
	q := r.qb().Select(harvestCols).From(r.table("harvest_logs")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("HarvestLogByID", sqlStr, args)

	start := time.Now()
	out, err := scanHarvestLog(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HarvestLog{}, domain.ErrNotFound
		}
		r.logger.Printf("HarvestLogByID scan error after %s: %v", time.Since(start), err)
		return domain.HarvestLog{}, err
	}
	return out, nil
}

func (r *PGRepo) UpdateHarvestLog(ctx context.Context, id domain.HarvestLogID, p domain.HarvestLogPatch) (domain.HarvestLog, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if p.CropName != nil {
		set["crop_name"] = *p.CropName
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Unit != nil {
		set["unit"] = *p.Unit
	}
	if p.HarvestDate != nil {
		set["harvest_date"] = *p.HarvestDate
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}

	q := r.qb().Update(r.table("harvest_logs")).SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + harvestCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UpdateHarvestLog", sqlStr, args)

	start := time.Now()
	out, err := scanHarvestLog(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HarvestLog{}, domain.ErrNotFound
		}
		r.logger.Printf("UpdateHarvestLog scan error after %s: %v", time.Since(start), err)
		return domain.HarvestLog{}, err
	}
	r.logger.Printf("UpdateHarvestLog ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) DeleteHarvestLog(ctx context.Context, id domain.HarvestLogID) error {
	q := r.qb().Delete(r.table("harvest_logs")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteHarvestLog", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteHarvestLog exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteHarvestLog ok in %s id=%s", time.Since(start), id)
	return nil
}

func harvestFilters(f domain.HarvestLogFilter) pagination.Filters {
	var fs pagination.Filters
	if f.CropName != "" {
		fs = append(fs, pagination.Eq("crop_name", f.CropName))
	}
	if f.Search != "" {
		fs = append(fs, pagination.Search("notes", f.Search))
	}
	if f.DateFrom != nil {
		fs = append(fs, pagination.From("harvest_date", *f.DateFrom))
	}
	if f.DateTo != nil {
		fs = append(fs, pagination.To("harvest_date", *f.DateTo))
	}
	return fs
}

// HarvestLogsList — кейсет-пагинация по (created_at, id).
// Ошибки построения/выполнения запроса уходят наверх как есть.
func (r *PGRepo) HarvestLogsList(ctx context.Context, params pagination.Params, f domain.HarvestLogFilter, withTotal bool) (pagination.Page[domain.HarvestLog], error) {
	filters := harvestFilters(f)

	base := r.qb().Select(harvestCols).From(r.table("harvest_logs"))
	sb, cur, err := pagination.BuildQuery(base, params, filters, "created_at", "id")
	if err != nil {
		return pagination.Page[domain.HarvestLog]{}, err
	}

	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return pagination.Page[domain.HarvestLog]{}, err
	}
	r.logSQL("HarvestLogsList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("HarvestLogsList query error after %s: %v", time.Since(start), err)
		return pagination.Page[domain.HarvestLog]{}, err
	}
	defer rows.Close()

	out := make([]domain.HarvestLog, 0, params.Limit+1)
	for rows.Next() {
		h, err := scanHarvestLog(rows)
		if err != nil {
			return pagination.Page[domain.HarvestLog]{}, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return pagination.Page[domain.HarvestLog]{}, err
	}
	r.logger.Printf("HarvestLogsList ok in %s count=%d", time.Since(start), len(out))

	page := pagination.BuildPage(out, params, cur, func(h domain.HarvestLog) pagination.Cursor {
		return pagination.Cursor{CreatedAt: h.CreatedAt, ID: h.ID}
	})

	if withTotal {
		total, err := r.countRows(ctx, "HarvestLogsList.count", "harvest_logs", filters)
		if err != nil {
			return pagination.Page[domain.HarvestLog]{}, err
		}
		page.TotalCount = &total
	}
	return page, nil
}

// точный счётчик под теми же фильтрами, без предиката курсора
func (r *PGRepo) countRows(ctx context.Context, op, table string, filters pagination.Filters) (int64, error) {
	q := pagination.BuildCountQuery(r.qb(), r.table(table), filters)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	r.logSQL(op, sqlStr, args)

	var total int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
