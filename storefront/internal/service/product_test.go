package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/storefront/internal/repository"
)

// stubQueries serves canned rows and counts how often the database was hit.
type stubQueries struct {
	rows      []repository.Product
	findCalls int
	byIdCalls int
}

func (s *stubQueries) FindProducts(context.Context) ([]repository.Product, error) {
	s.findCalls++
	return s.rows, nil
}

func (s *stubQueries) FindProductById(
	_ context.Context,
	id uuid.UUID,
) (repository.Product, error) {
	s.byIdCalls++
	for _, row := range s.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return repository.Product{}, pgx.ErrNoRows
}

func newTestRow(name string, price string) repository.Product {
	d := decimal.RequireFromString(price)
	return repository.Product{
		ID:   uuid.New(),
		Name: name,
		Price: pgtype.Numeric{
			Exp:              d.Exponent(),
			InfinityModifier: pgtype.Finite,
			Int:              d.Coefficient(),
			Valid:            true,
		},
		RatingRate: pgtype.Numeric{Int: decimal.Zero.Coefficient(), Valid: true},
	}
}

func setupCache(t *testing.T, c context.Context) (*redis.Client, *testRedis.RedisContainer) {
	t.Helper()

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	return redisClient, redisContainer
}

func teardownCache(
	t *testing.T,
	redisClient *redis.Client,
	redisContainer *testRedis.RedisContainer,
) {
	t.Helper()
	redisClient.Close()
	if err := testcontainers.TerminateContainer(redisContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}

func TestFindProductsServesSecondCallFromCache(t *testing.T) {
	c := context.Background()
	redisClient, redisContainer := setupCache(t, c)
	defer teardownCache(t, redisClient, redisContainer)

	queries := &stubQueries{rows: []repository.Product{
		newTestRow("desk lamp", "19.99"),
		newTestRow("camp mug", "5.00"),
	}}
	svc := NewProductService(queries, redisClient, time.Minute)

	first, err := svc.FindProducts(c)
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, queries.findCalls, "first listing should hit the database")

	second, err := svc.FindProducts(c)
	assert.NoError(t, err)
	assert.Equal(t, 1, queries.findCalls, "second listing should be served from cache")
	assert.Equal(t, first[0].ID, second[0].ID, "cached listing should match the database listing")
	assert.True(
		t,
		first[0].Price.Equal(second[0].Price),
		"cached price should match, got %s and %s",
		first[0].Price,
		second[0].Price,
	)
}

func TestFindProductByIdBypassesListingCache(t *testing.T) {
	c := context.Background()
	redisClient, redisContainer := setupCache(t, c)
	defer teardownCache(t, redisClient, redisContainer)

	queries := &stubQueries{rows: []repository.Product{newTestRow("desk lamp", "19.99")}}
	svc := NewProductService(queries, redisClient, time.Minute)

	_, err := svc.FindProducts(c)
	assert.NoError(t, err)

	for range 3 {
		product, err := svc.FindProductById(c, queries.rows[0].ID)
		assert.NoError(t, err)
		assert.Equal(t, queries.rows[0].ID, product.ID)
	}
	assert.Equal(t, 3, queries.byIdCalls, "by-id lookups should always hit the database")
}

func TestFindProductByIdWrapsNoRowsAsNotFound(t *testing.T) {
	c := context.Background()
	redisClient, redisContainer := setupCache(t, c)
	defer teardownCache(t, redisClient, redisContainer)

	queries := &stubQueries{}
	svc := NewProductService(queries, redisClient, time.Minute)

	_, err := svc.FindProductById(c, uuid.New())

	assert.ErrorIs(t, err, commonErrors.ErrProductNotFound, "missing row should surface as not found")
}
