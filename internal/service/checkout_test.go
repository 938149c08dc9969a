package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/magazin/internal/cart"
	"github.com/Skotchmaster/magazin/internal/models"
	"github.com/Skotchmaster/magazin/internal/transport"
)

func product(id uint, price string) models.Product {
	return models.Product{ID: id, Name: "p", Price: decimal.RequireFromString(price), SubcategoryID: 1}
}

func validOrderForm() transport.OrderForm {
	return transport.OrderForm{Name: "A", Phone: "1", Address: "X"}
}

func TestCheckoutService_ViewCart_EmptyCartSkipsStore(t *testing.T) {
	prices := new(MockPriceLookup)
	svc := &CheckoutService{Products: prices}

	view, err := svc.ViewCart(context.Background(), cart.New())
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
	prices.AssertNotCalled(t, "ProductsByIDs", mock.Anything, mock.Anything)
}

func TestCheckoutService_ViewCart_PricesLines(t *testing.T) {
	prices := new(MockPriceLookup)
	prices.On("ProductsByIDs", mock.Anything, []uint{3, 5}).
		Return([]models.Product{product(5, "4.50"), product(3, "10.00")}, nil)
	svc := &CheckoutService{Products: prices}

	crt := cart.New()
	crt.Add(5, 1)
	crt.Add(3, 2)

	view, err := svc.ViewCart(context.Background(), crt)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	assert.EqualValues(t, 3, view.Items[0].Product.ID)
	assert.Equal(t, 2, view.Items[0].Qty)
	assert.Equal(t, "20.00", view.Items[0].Sum.StringFixed(2))
	assert.EqualValues(t, 5, view.Items[1].Product.ID)
	assert.Equal(t, "4.50", view.Items[1].Sum.StringFixed(2))
	assert.Equal(t, "24.50", view.Total.StringFixed(2))
	assert.Empty(t, view.Missing)
}

func TestCheckoutService_ViewCart_TotalIsSumOfLines(t *testing.T) {
	catalog := []models.Product{product(1, "0.10"), product(2, "0.20"), product(3, "19.99"), product(4, "0")}
	carts := []map[uint]int{
		{1: 3},
		{1: 1, 2: 1},
		{2: 7, 3: 3, 4: 10},
		{1: 10, 2: 10, 3: 1, 9: 4},
	}

	for _, items := range carts {
		crt := cart.New()
		for id, q := range items {
			crt.Add(id, q)
		}

		prices := new(MockPriceLookup)
		prices.On("ProductsByIDs", mock.Anything, crt.IDs()).Return(catalog, nil)
		svc := &CheckoutService{Products: prices}

		view, err := svc.ViewCart(context.Background(), crt)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, line := range view.Items {
			assert.True(t, line.Sum.Equal(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Qty)))))
			sum = sum.Add(line.Sum)
		}
		assert.True(t, sum.Equal(view.Total), "total %s != %s", view.Total, sum)
	}
}

func TestCheckoutService_ViewCart_ReportsMissingProducts(t *testing.T) {
	prices := new(MockPriceLookup)
	prices.On("ProductsByIDs", mock.Anything, []uint{3, 42}).Return([]models.Product{product(3, "10")}, nil)
	svc := &CheckoutService{Products: prices}

	crt := cart.New()
	crt.Add(3, 1)
	crt.Add(42, 1)

	view, err := svc.ViewCart(context.Background(), crt)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, []uint{42}, view.Missing)
	assert.Equal(t, "10.00", view.Total.StringFixed(2))
}

func TestCheckoutService_PlaceOrder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		form    transport.OrderForm
		missing string
	}{
		{name: "no name", form: transport.OrderForm{Phone: "1", Address: "X"}, missing: "name"},
		{name: "blank phone", form: transport.OrderForm{Name: "A", Phone: "  ", Address: "X"}, missing: "phone"},
		{name: "no address", form: transport.OrderForm{Name: "A", Phone: "1"}, missing: "address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices := new(MockPriceLookup)
			orders := new(MockOrderWriter)
			svc := &CheckoutService{Products: prices, Orders: orders}

			crt := cart.New()
			crt.Add(3, 1)

			order, err := svc.PlaceOrder(context.Background(), crt, tt.form)
			require.Error(t, err)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.missing)
			assert.Equal(t, 1, crt.Quantity(3))
			orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_PlaceOrder_EmptyCart(t *testing.T) {
	svc := &CheckoutService{Products: new(MockPriceLookup), Orders: new(MockOrderWriter)}

	_, err := svc.PlaceOrder(context.Background(), cart.New(), validOrderForm())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckoutService_PlaceOrder_RejectsMissingProducts(t *testing.T) {
	prices := new(MockPriceLookup)
	prices.On("ProductsByIDs", mock.Anything, []uint{3, 42}).Return([]models.Product{product(3, "10")}, nil)
	orders := new(MockOrderWriter)
	svc := &CheckoutService{Products: prices, Orders: orders}

	crt := cart.New()
	crt.Add(3, 1)
	crt.Add(42, 2)

	_, err := svc.PlaceOrder(context.Background(), crt, validOrderForm())
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "42")
	assert.False(t, crt.IsEmpty())
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	prices := new(MockPriceLookup)
	prices.On("ProductsByIDs", mock.Anything, []uint{3, 5}).
		Return([]models.Product{product(3, "10.00"), product(5, "4.50")}, nil)
	orders := new(MockOrderWriter)
	orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Order).ID = 1
	})
	svc := &CheckoutService{Products: prices, Orders: orders}

	crt := cart.New()
	crt.Add(3, 2)
	crt.Add(5, 1)

	form := validOrderForm()
	form.Comment = "  ring twice "
	order, err := svc.PlaceOrder(context.Background(), crt, form)
	require.NoError(t, err)

	assert.EqualValues(t, 1, order.ID)
	assert.Equal(t, "24.50", order.TotalPrice.StringFixed(2))
	assert.Equal(t, "ring twice", order.Comment)
	require.Len(t, order.Lines, 2)
	assert.EqualValues(t, 3, order.Lines[0].ProductID)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, "10.00", order.Lines[0].UnitPrice.StringFixed(2))
	assert.True(t, crt.IsEmpty())
	orders.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_StoreFailureKeepsCart(t *testing.T) {
	prices := new(MockPriceLookup)
	prices.On("ProductsByIDs", mock.Anything, []uint{3}).Return([]models.Product{product(3, "10")}, nil)
	orders := new(MockOrderWriter)
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("disk I/O error"))
	svc := &CheckoutService{Products: prices, Orders: orders}

	crt := cart.New()
	crt.Add(3, 1)

	_, err := svc.PlaceOrder(context.Background(), crt, validOrderForm())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, crt.Quantity(3))
}
