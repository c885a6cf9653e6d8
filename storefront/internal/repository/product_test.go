package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"
)

func setup(
	t *testing.T,
	c context.Context,
) (*pgxpool.Pool, *postgres.PostgresContainer, *Queries) {
	t.Helper()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join("..", "..", "..", "migrations", "000001_create_table_products.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgconfig with error: %s", err)
	}
	pgConfig.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	return pool, pgContainer, New(pool)
}

func teardown(t *testing.T, pool *pgxpool.Pool, pgContainer *postgres.PostgresContainer) {
	t.Helper()
	pool.Close()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}

func numericFromString(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	d := decimal.RequireFromString(s)
	return pgtype.Numeric{
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		Int:              d.Coefficient(),
		Valid:            true,
	}
}

func TestInsertAndFindProductById(t *testing.T) {
	c := context.Background()
	pool, pgContainer, queries := setup(t, c)
	defer teardown(t, pool, pgContainer)

	inserted, err := queries.InsertProduct(c, InsertProductParams{
		ID:          uuid.New(),
		Name:        "desk lamp",
		Description: "adjustable arm",
		Image:       "https://cdn.example.com/lamp.png",
		Category:    "home",
		Price:       numericFromString(t, "19.99"),
		RatingRate:  numericFromString(t, "4.5"),
		RatingCount: 120,
	})
	assert.NoError(t, err)
	assert.True(t, inserted.CreatedAt.Valid, "created_at should be stamped by the database")

	found, err := queries.FindProductById(c, inserted.ID)
	assert.NoError(t, err)
	assert.Equal(t, inserted.ID, found.ID)
	assert.Equal(t, "desk lamp", found.Name)
	assert.EqualValues(t, 120, found.RatingCount)

	product := found.Response()
	assert.True(
		t,
		decimal.RequireFromString("19.99").Equal(product.Price),
		"price should round trip through numeric, got %s",
		product.Price,
	)
	assert.True(
		t,
		decimal.RequireFromString("4.5").Equal(product.Rating.Rate),
		"rating should round trip through numeric, got %s",
		product.Rating.Rate,
	)
}

func TestFindProductByIdUnknownIdReturnsNoRows(t *testing.T) {
	c := context.Background()
	pool, pgContainer, queries := setup(t, c)
	defer teardown(t, pool, pgContainer)

	_, err := queries.FindProductById(c, uuid.New())

	assert.ErrorIs(t, err, pgx.ErrNoRows, "unknown id should report no rows")
}

func TestFindProductsOrdersByRecency(t *testing.T) {
	c := context.Background()
	pool, pgContainer, queries := setup(t, c)
	defer teardown(t, pool, pgContainer)

	older, err := queries.InsertProduct(c, InsertProductParams{
		ID:    uuid.New(),
		Name:  "older",
		Price: numericFromString(t, "1.00"),
	})
	assert.NoError(t, err)
	newer, err := queries.InsertProduct(c, InsertProductParams{
		ID:    uuid.New(),
		Name:  "newer",
		Price: numericFromString(t, "2.00"),
	})
	assert.NoError(t, err)

	_, err = pool.Exec(
		c,
		"UPDATE products SET created_at = created_at - interval '1 hour' WHERE id = $1",
		older.ID,
	)
	assert.NoError(t, err)

	products, err := queries.FindProducts(c)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, newer.ID, products[0].ID, "newest product should come first")
	assert.Equal(t, older.ID, products[1].ID, "oldest product should come last")
}

func TestCountProducts(t *testing.T) {
	c := context.Background()
	pool, pgContainer, queries := setup(t, c)
	defer teardown(t, pool, pgContainer)

	count, err := queries.CountProducts(c)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, count, "fresh catalog should be empty")

	_, err = queries.InsertProduct(c, InsertProductParams{
		ID:    uuid.New(),
		Name:  "desk lamp",
		Price: numericFromString(t, "19.99"),
	})
	assert.NoError(t, err)

	count, err = queries.CountProducts(c)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count, "count should observe the insert")
}
