package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddMergesLinesForSameProduct(t *testing.T) {
	store := New()
	productId := uuid.New()

	store.Add(productId, 2)
	store.Add(productId, 3)

	assert.Equal(t, 1, store.Len(), "same product should merge into one line")
	quantity, ok := store.Quantity(productId)
	assert.True(t, ok, "line should exist")
	assert.EqualValues(t, 5, quantity, "quantities should be summed")
}

func TestAddKeepsDistinctProductsOnDistinctLines(t *testing.T) {
	store := New()
	first, second, third := uuid.New(), uuid.New(), uuid.New()

	store.Add(first, 1)
	store.Add(second, 1)
	store.Add(third, 1)

	lines := store.Lines()
	assert.Len(t, lines, 3, "distinct products should keep distinct lines")
	assert.Equal(t, first, lines[0].ProductId, "insertion order should be preserved")
	assert.Equal(t, second, lines[1].ProductId, "insertion order should be preserved")
	assert.Equal(t, third, lines[2].ProductId, "insertion order should be preserved")
}

func TestReplaceSetsQuantityExactly(t *testing.T) {
	store := New()
	productId := uuid.New()
	store.Add(productId, 2)

	ok := store.Replace(productId, 7)

	assert.True(t, ok, "replace should report the line existed")
	quantity, _ := store.Quantity(productId)
	assert.EqualValues(t, 7, quantity, "quantity should be replaced, not merged")
}

func TestReplaceAbsentLineReportsFalse(t *testing.T) {
	store := New()
	store.Add(uuid.New(), 2)

	ok := store.Replace(uuid.New(), 7)

	assert.False(t, ok, "replace should report no matching line")
	assert.Equal(t, 1, store.Len(), "store should be unchanged")
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	store := New()
	productId := uuid.New()
	store.Add(productId, 2)

	store.Remove(uuid.New())

	assert.Equal(t, 1, store.Len(), "removing an absent line should leave the store unchanged")
	quantity, ok := store.Quantity(productId)
	assert.True(t, ok, "existing line should survive")
	assert.EqualValues(t, 2, quantity, "existing quantity should survive")
}

func TestRemoveDropsOnlyTheMatchingLine(t *testing.T) {
	store := New()
	first, second := uuid.New(), uuid.New()
	store.Add(first, 1)
	store.Add(second, 4)

	store.Remove(first)

	assert.Equal(t, 1, store.Len(), "only the matching line should be dropped")
	_, ok := store.Quantity(first)
	assert.False(t, ok, "removed line should be gone")
	quantity, _ := store.Quantity(second)
	assert.EqualValues(t, 4, quantity, "other line should be untouched")
}

func TestClearEmptiesTheStore(t *testing.T) {
	store := New()
	store.Add(uuid.New(), 1)
	store.Add(uuid.New(), 2)

	store.Clear()

	assert.Equal(t, 0, store.Len(), "clear should drop every line")
	assert.Empty(t, store.Lines(), "lines should be empty after clear")
}

func TestLinesReturnsACopy(t *testing.T) {
	store := New()
	productId := uuid.New()
	store.Add(productId, 2)

	lines := store.Lines()
	lines[0].Quantity = 99

	quantity, _ := store.Quantity(productId)
	assert.EqualValues(t, 2, quantity, "mutating the returned slice should not affect the store")
}
