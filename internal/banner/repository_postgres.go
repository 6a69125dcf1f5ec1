package banner

import (
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bannerColumns = `id, title, image, COALESCE(target_url, ''), position, active, created_at`

func scanBanner(row interface{ Scan(...any) error }) (Banner, error) {
	var b Banner
	err := row.Scan(&b.ID, &b.Title, &b.Image, &b.TargetURL, &b.Position, &b.Active, &b.CreatedAt)
	return b, err
}

func (r *PostgresRepository) ListActive(limit int) ([]Banner, error) {
	return r.list(`SELECT `+bannerColumns+` FROM banners WHERE active ORDER BY position, id LIMIT $1`, limit)
}

func (r *PostgresRepository) ListAll() ([]Banner, error) {
	return r.list(`SELECT ` + bannerColumns + ` FROM banners ORDER BY position, id`)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Banner, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	out := make([]Banner, 0)
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(b Banner) (Banner, error) {
	created, err := scanBanner(r.db.QueryRow(
		`INSERT INTO banners (title, image, target_url, position, active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING `+bannerColumns,
		b.Title, b.Image, b.TargetURL, b.Position, b.Active))
	if err != nil {
		return Banner{}, fmt.Errorf("create banner: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(id int, b Banner) (Banner, error) {
	updated, err := scanBanner(r.db.QueryRow(
		`UPDATE banners SET title = $2, image = $3, target_url = $4, position = $5, active = $6
		 WHERE id = $1 RETURNING `+bannerColumns,
		id, b.Title, b.Image, b.TargetURL, b.Position, b.Active))
	if err == sql.ErrNoRows {
		return Banner{}, ErrNotFound
	}
	if err != nil {
		return Banner{}, fmt.Errorf("update banner: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete banner rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
