package address

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

const addressColumns = `id, user_id, label, recipient, COALESCE(phone, ''), line, city, created_at`

func scanAddress(row interface{ Scan(...any) error }) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.UserID, &a.Label, &a.Recipient, &a.Phone, &a.Line, &a.City, &a.CreatedAt)
	return a, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(`SELECT `+addressColumns+` FROM addresses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(userID, id int) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1 AND user_id = $2`, id, userID))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	created, err := scanAddress(r.db.QueryRow(
		`INSERT INTO addresses (user_id, label, recipient, phone, line, city)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+addressColumns,
		a.UserID, a.Label, a.Recipient, a.Phone, a.Line, a.City))
	if err != nil {
		return Address{}, fmt.Errorf("create address: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) Update(userID, id int, a Address) (Address, error) {
	updated, err := scanAddress(r.db.QueryRow(
		`UPDATE addresses SET label = $3, recipient = $4, phone = $5, line = $6, city = $7
		 WHERE id = $1 AND user_id = $2 RETURNING `+addressColumns,
		id, userID, a.Label, a.Recipient, a.Phone, a.Line, a.City))
	if err == sql.ErrNoRows {
		return Address{}, ErrNotFound
	}
	if err != nil {
		return Address{}, fmt.Errorf("update address: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(userID, id int) error {
	result, err := r.db.Exec(`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
