package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/garden-log/internal/domain"
)

const imageCols = "id, harvest_log_id, file_name, original_name, mime_type, size_bytes, public_url, storage_key, created_at"

func scanImage(row pgx.Row) (domain.HarvestImage, error) {
	var img domain.HarvestImage
	err := row.Scan(&img.ID, &img.HarvestLogID, &img.FileName, &img.OriginalName,
		&img.MIME, &img.SizeBytes, &img.PublicURL, &img.StorageKey, &img.CreatedAt)
	return img, err
}

func (r *PGRepo) CreateImage(ctx context.Context, img domain.HarvestImage) (domain.HarvestImage, error) {
	q := r.qb().Insert(r.table("harvest_images")).
		Columns("harvest_log_id", "file_name", "original_name", "mime_type", "size_bytes", "public_url", "storage_key").
		Values(img.HarvestLogID, img.FileName, img.OriginalName, img.MIME, img.SizeBytes, img.PublicURL, img.StorageKey).
		Suffix("RETURNING " + imageCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateImage", sqlStr, args)

	start := time.Now()
	out, err := scanImage(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateImage scan error after %s: %v", time.Since(start), err)
		return domain.HarvestImage{}, err
	}
	r.logger.Printf("CreateImage ok in %s id=%s log=%s", time.Since(start), out.ID, out.HarvestLogID)
	return out, nil
}

func (r *PGRepo) ImageByID(ctx context.Context, id domain.ImageID) (domain.HarvestImage, error) {
	q := r.qb().Select(imageCols).From(r.table("harvest_images")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ImageByID", sqlStr, args)

	out, err := scanImage(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HarvestImage{}, domain.ErrNotFound
		}
		return domain.HarvestImage{}, err
	}
	return out, nil
}

func (r *PGRepo) ImagesByHarvestLog(ctx context.Context, logID domain.HarvestLogID) ([]domain.HarvestImage, error) {
	q := r.qb().Select(imageCols).From(r.table("harvest_images")).
		Where(sq.Eq{"harvest_log_id": logID}).
		OrderBy("created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ImagesByHarvestLog", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HarvestImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteImage(ctx context.Context, id domain.ImageID) error {
	q := r.qb().Delete(r.table("harvest_images")).Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteImage", sqlStr, args)

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
