package category

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

const categoryColumns = `id, name, COALESCE(description, ''), COALESCE(image, ''), created_at`

func (r *PostgresRepository) List(limit int) ([]Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var c Category
	err := r.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	return c, err
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	err := r.db.QueryRow(`INSERT INTO categories (name, description, image)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		c.Name, c.Description, c.Image).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Update(id int, c Category) (Category, error) {
	row := r.db.QueryRow(`UPDATE categories SET name = $2, description = $3, image = $4
		WHERE id = $1 RETURNING `+categoryColumns, id, c.Name, c.Description, c.Image)
	var updated Category
	err := row.Scan(&updated.ID, &updated.Name, &updated.Description, &updated.Image, &updated.CreatedAt)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Delete(id int) error {
	// the products.category_id foreign key backs up the in-query guard
	result, err := r.db.Exec(`DELETE FROM categories
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrCategoryInUse
		}
		return ErrNotFound
	}
	return nil
}
