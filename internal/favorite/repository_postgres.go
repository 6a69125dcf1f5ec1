package favorite

import (
	"database/sql"
	"fmt"

	"github.com/lifestylemart/storefront-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	rows, err := r.db.Query(
		`SELECT product_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var pid int
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, pid)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(userID, productID int) ([]int, error) {
	_, err := r.db.Exec(
		`INSERT INTO favorites (user_id, product_id) VALUES ($1, $2)`, userID, productID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyFavorite
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return r.List(userID)
}

func (r *PostgresRepository) Remove(userID, productID int) ([]int, error) {
	result, err := r.db.Exec(
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("remove favorite rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFavorite
	}
	return r.List(userID)
}
