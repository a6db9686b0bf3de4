package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/EgorLis/garden-log/internal/domain"
)

// HarvestStats — три точных счётчика: всего, с начала месяца,
// с начала недели (понедельник).
func (r *PGRepo) HarvestStats(ctx context.Context, now time.Time) (domain.HarvestStats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -daysSinceMonday)

	var s domain.HarvestStats

	count := func(op string, where any) (int64, error) {
		q := r.qb().Select("COUNT(*)").From(r.table("harvest_logs"))
		if where != nil {
			q = q.Where(where)
		}
		sqlStr, args, _ := q.ToSql()
		r.logSQL(op, sqlStr, args)

		var n int64
		err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n)
		return n, err
	}

	var err error
	if s.TotalHarvests, err = count("HarvestStats.total", nil); err != nil {
		return domain.HarvestStats{}, err
	}
	if s.ThisMonth, err = count("HarvestStats.month", sq.GtOrEq{"harvest_date": monthStart}); err != nil {
		return domain.HarvestStats{}, err
	}
	if s.ThisWeek, err = count("HarvestStats.week", sq.GtOrEq{"harvest_date": weekStart}); err != nil {
		return domain.HarvestStats{}, err
	}
	return s, nil
}

// EventStats — общий счётчик плюс разбивка по типам событий.
func (r *PGRepo) EventStats(ctx context.Context) (domain.EventStats, error) {
	q := r.qb().Select("event_type", "COUNT(*)").
		From(r.table("plant_events")).
		GroupBy("event_type")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("EventStats", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return domain.EventStats{}, err
	}
	defer rows.Close()

	s := domain.EventStats{ByType: make(map[string]int64)}
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return domain.EventStats{}, err
		}
		s.ByType[typ] = n
		s.TotalEvents += n
	}
	if err := rows.Err(); err != nil {
		return domain.EventStats{}, err
	}
	return s, nil
}
