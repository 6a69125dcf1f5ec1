package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, COALESCE(description, ''), category_id, price, stock, COALESCE(image, ''), COALESCE(brand, ''), is_featured, status, created_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.Price, &p.Stock,
		&p.Image, &p.Brand, &p.Featured, &p.Status, &p.CreatedAt)
	return p, err
}

func (r *PostgresRepository) List(f ListFilter) (Page, error) {
	where := []string{`status = 'active'`}
	args := []any{}

	if f.CategoryID > 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf(`category_id = $%d`, len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(`(name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products WHERE `+whereClause, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("count products: %w", err)
	}

	orderBy := `name ASC`
	switch f.Sort {
	case SortPriceLow:
		orderBy = `price ASC`
	case SortPriceHigh:
		orderBy = `price DESC`
	case SortNewest:
		orderBy = `created_at DESC`
	}

	page, perPage := normalizePage(f.Page, f.PerPage)
	args = append(args, perPage, (page-1)*perPage)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return Page{}, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0, perPage)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return Page{}, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
	}, nil
}

func (r *PostgresRepository) Featured(limit int) ([]Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
		WHERE is_featured AND status = 'active'
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products
		WHERE id = ANY($1::int[])
		ORDER BY array_position($1::int[], id)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.Status == "" {
		p.Status = StatusActive
	}
	err := r.db.QueryRow(`INSERT INTO products (name, description, category_id, price, stock, image, brand, is_featured, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		p.Name, p.Description, p.CategoryID, p.Price, p.Stock, p.Image, p.Brand, p.Featured, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	row := r.db.QueryRow(`UPDATE products
		SET name = $2, description = $3, category_id = $4, price = $5, stock = $6,
		    image = $7, brand = $8, is_featured = $9, status = $10
		WHERE id = $1
		RETURNING `+productColumns,
		id, p.Name, p.Description, p.CategoryID, p.Price, p.Stock, p.Image, p.Brand, p.Featured, p.Status)
	updated, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	return updated, err
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
