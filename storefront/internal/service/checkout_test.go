package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	commonErrors "github.com/shahid0mer/Nexora/internal/errors"
	"github.com/shahid0mer/Nexora/storefront/internal/payment"
	"github.com/shahid0mer/Nexora/storefront/internal/store"
	"github.com/shahid0mer/Nexora/storefront/pkg/request"
	productResponse "github.com/shahid0mer/Nexora/storefront/pkg/response"
)

func TestCheckoutRejectsEmptySnapshot(t *testing.T) {
	c := context.Background()
	cartStore := store.New()
	cartStore.Add(uuid.New(), 1)
	svc := newTestCheckoutService(stubCatalog{}, cartStore, payment.NoOp{})

	_, err := svc.Checkout(c, request.Checkout{})

	assert.ErrorIs(t, err, commonErrors.ErrEmptyCart, "empty snapshot should be rejected")
	assert.Equal(t, 1, cartStore.Len(), "failed checkout should leave the cart untouched")
}

func TestCheckoutMintsReceiptAndClearsCart(t *testing.T) {
	c := context.Background()
	lamp := newTestProduct("desk lamp", "10.00")
	mug := newTestProduct("camp mug", "5.00")
	catalog := stubCatalog{
		products: map[uuid.UUID]productResponse.Product{
			lamp.ID: lamp,
			mug.ID:  mug,
		},
	}
	cartStore := store.New()
	cartStore.Add(lamp.ID, 2)
	cartStore.Add(mug.ID, 1)
	svc := newTestCheckoutService(catalog, cartStore, payment.NoOp{})
	customer := request.CustomerInfo{
		Name:       "Ada",
		Email:      "ada@example.com",
		Address:    "1 Analytical Way",
		City:       "London",
		ZipCode:    "10001",
		CardNumber: "4111111111111111",
		ExpiryDate: "12/30",
		Cvv:        "123",
	}

	before := time.Now().UTC()
	receipt, err := svc.Checkout(c, request.Checkout{
		CartItems: []request.CheckoutItem{
			{ProductId: lamp.ID, Quantity: 2},
			{ProductId: mug.ID, Quantity: 1},
		},
		CustomerInfo: customer,
	})
	after := time.Now().UTC()

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.OrderId, "ORD-"), "orderId should carry the ORD- prefix")
	assert.False(t, receipt.Timestamp.Before(before), "timestamp should be minted at checkout")
	assert.False(t, receipt.Timestamp.After(after), "timestamp should be minted at checkout")
	assert.Equal(t, customer, receipt.Customer, "customer info should be echoed verbatim")
	assert.Equal(t, StatusCompleted, receipt.Status)
	assert.Len(t, receipt.Items, 2)
	assert.NotNil(t, receipt.Items[0].Product)
	assert.NotNil(t, receipt.Items[1].Product)
	assert.True(t, decimal.RequireFromString("25.00").Equal(receipt.Subtotal), "subtotal should be 2*10.00 + 5.00, got %s", receipt.Subtotal)
	assert.True(t, decimal.RequireFromString("0.50").Equal(receipt.Tax), "tax should be 2%% of 25.00, got %s", receipt.Tax)
	assert.True(t, decimal.RequireFromString("25.50").Equal(receipt.Total), "total should be subtotal plus tax, got %s", receipt.Total)
	assert.Equal(t, 0, cartStore.Len(), "successful checkout should clear the whole cart")
}

func TestCheckoutRecordsUnresolvedLineWithoutProduct(t *testing.T) {
	c := context.Background()
	lamp := newTestProduct("desk lamp", "10.00")
	catalog := stubCatalog{
		products: map[uuid.UUID]productResponse.Product{lamp.ID: lamp},
	}
	svc := newTestCheckoutService(catalog, store.New(), payment.NoOp{})

	receipt, err := svc.Checkout(c, request.Checkout{
		CartItems: []request.CheckoutItem{
			{ProductId: lamp.ID, Quantity: 1},
			{ProductId: uuid.New(), Quantity: 3},
		},
	})

	assert.NoError(t, err, "an unresolved line should not abort the checkout")
	assert.Len(t, receipt.Items, 2, "unresolved line should still appear on the receipt")
	assert.NotNil(t, receipt.Items[0].Product)
	assert.Nil(t, receipt.Items[1].Product, "unresolved line should carry a nil product")
	assert.True(t, decimal.RequireFromString("10.00").Equal(receipt.Subtotal), "unresolved line should contribute nothing, got %s", receipt.Subtotal)
}

func TestCheckoutMintsDistinctOrderIds(t *testing.T) {
	c := context.Background()
	lamp := newTestProduct("desk lamp", "10.00")
	catalog := stubCatalog{
		products: map[uuid.UUID]productResponse.Product{lamp.ID: lamp},
	}
	svc := newTestCheckoutService(catalog, store.New(), payment.NoOp{})
	snapshot := request.Checkout{
		CartItems: []request.CheckoutItem{{ProductId: lamp.ID, Quantity: 1}},
	}

	seen := map[string]bool{}
	for range 10 {
		receipt, err := svc.Checkout(c, snapshot)
		assert.NoError(t, err)
		assert.False(t, seen[receipt.OrderId], "orderId=%s should be unique", receipt.OrderId)
		seen[receipt.OrderId] = true
	}
}

func TestCheckoutRejectedPaymentLeavesCartUntouched(t *testing.T) {
	c := context.Background()
	lamp := newTestProduct("desk lamp", "10.00")
	catalog := stubCatalog{
		products: map[uuid.UUID]productResponse.Product{lamp.ID: lamp},
	}
	cartStore := store.New()
	cartStore.Add(lamp.ID, 1)
	declined := errors.New("card declined")
	svc := newTestCheckoutService(catalog, cartStore, stubProcessor{err: declined})

	_, err := svc.Checkout(c, request.Checkout{
		CartItems: []request.CheckoutItem{{ProductId: lamp.ID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, declined, "declined authorization should fail the checkout")
	assert.Equal(t, 1, cartStore.Len(), "failed checkout should leave the cart untouched")
}
