package review

import (
	"database/sql"

	"github.com/lifestylemart/storefront-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewColumns = `id, product_id, user_id, rating, review_text, status, created_at`

func scanReview(row interface{ Scan(...any) error }) (Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Text, &r.Status, &r.CreatedAt)
	return r, err
}

func (r *PostgresRepository) Create(rev Review) (Review, error) {
	// the (user_id, product_id) unique constraint is the authoritative
	// duplicate guard
	err := r.db.QueryRow(`INSERT INTO reviews (product_id, user_id, rating, review_text, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		rev.ProductID, rev.UserID, rev.Rating, rev.Text, rev.Status).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Review{}, ErrDuplicateReview
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) GetByID(id int) (Review, error) {
	rev, err := scanReview(r.db.QueryRow(`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	return rev, err
}

func (r *PostgresRepository) ListApproved(productID int) ([]Review, error) {
	return r.list(`SELECT `+reviewColumns+` FROM reviews
		WHERE product_id = $1 AND status = 'approved'
		ORDER BY created_at DESC`, productID)
}

func (r *PostgresRepository) ListByStatus(status string) ([]Review, error) {
	return r.list(`SELECT `+reviewColumns+` FROM reviews WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Review, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresRepository) SetStatus(id int, status string) (Review, error) {
	rev, err := scanReview(r.db.QueryRow(
		`UPDATE reviews SET status = $2 WHERE id = $1 RETURNING `+reviewColumns, id, status))
	if err == sql.ErrNoRows {
		return Review{}, ErrNotFound
	}
	return rev, err
}
