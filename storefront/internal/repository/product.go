package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	Category    string
	Price       pgtype.Numeric
	RatingRate  pgtype.Numeric
	RatingCount int32
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

const findProducts = `
SELECT id, name, description, image, category, price, rating_rate, rating_count, created_at, updated_at
FROM products
ORDER BY created_at DESC
`

func (q *Queries) FindProducts(c context.Context) ([]Product, error) {
	rows, err := q.db.Query(c, findProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Image,
			&p.Category,
			&p.Price,
			&p.RatingRate,
			&p.RatingCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const findProductById = `
SELECT id, name, description, image, category, price, rating_rate, rating_count, created_at, updated_at
FROM products
WHERE id = $1
`

func (q *Queries) FindProductById(c context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(c, findProductById, id)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Image,
		&p.Category,
		&p.Price,
		&p.RatingRate,
		&p.RatingCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const countProducts = `
SELECT count(*) FROM products
`

func (q *Queries) CountProducts(c context.Context) (int64, error) {
	row := q.db.QueryRow(c, countProducts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const insertProduct = `
INSERT INTO products (id, name, description, image, category, price, rating_rate, rating_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, name, description, image, category, price, rating_rate, rating_count, created_at, updated_at
`

type InsertProductParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	Category    string
	Price       pgtype.Numeric
	RatingRate  pgtype.Numeric
	RatingCount int32
}

func (q *Queries) InsertProduct(c context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(c, insertProduct,
		arg.ID,
		arg.Name,
		arg.Description,
		arg.Image,
		arg.Category,
		arg.Price,
		arg.RatingRate,
		arg.RatingCount,
	)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Image,
		&p.Category,
		&p.Price,
		&p.RatingRate,
		&p.RatingCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
