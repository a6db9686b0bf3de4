package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/garden-log/internal/domain"
)

const plantCols = "id, name, variety, planted_date, status, notes, created_at, updated_at"

func scanPlant(row pgx.Row) (domain.Plant, error) {
	var p domain.Plant
	err := row.Scan(&p.ID, &p.Name, &p.Variety, &p.PlantedDate,
		&p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGRepo) CreatePlant(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	if p.Status == "" {
		p.Status = "active"
	}
	q := r.qb().Insert(r.table("plants")).
		Columns("name", "variety", "planted_date", "status", "notes").
		Values(p.Name, p.Variety, p.PlantedDate, p.Status, p.Notes).
		Suffix("RETURNING " + plantCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreatePlant", sqlStr, args)

	start := time.Now()
	out, err := scanPlant(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreatePlant scan error after %s: %v", time.Since(start), err)
		return domain.Plant{}, err
	}
	r.logger.Printf("CreatePlant ok in %s id=%s name=%q", time.Since(start), out.ID, out.Name)
	return out, nil
}

func (r *PGRepo) PlantByID(ctx context.Context, id domain.PlantID) (domain.Plant, error) {
	q := r.qb().Select(plantCols).From(r.table("plants")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("PlantByID", sqlStr, args)

	out, err := scanPlant(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Plant{}, domain.ErrNotFound
		}
		return domain.Plant{}, err
	}
	return out, nil
}

// PlantsList без пагинации: растений в саду десятки, не тысячи
func (r *PGRepo) PlantsList(ctx context.Context) ([]domain.Plant, error) {
	q := r.qb().Select(plantCols).From(r.table("plants")).OrderBy("name ASC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("PlantsList", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeletePlant(ctx context.Context, id domain.PlantID) error {
	q := r.qb().Delete(r.table("plants")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeletePlant", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
