package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/magazin/internal/cart"
	"github.com/Skotchmaster/magazin/internal/models"
	"github.com/Skotchmaster/magazin/internal/transport"
)

type PriceLookup interface {
	ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
}

type OrderWriter interface {
	// CreateOrder persists the order and its lines atomically.
	CreateOrder(ctx context.Context, order *models.Order) error
}

type CartLine struct {
	Product models.Product
	Qty     int
	Sum     decimal.Decimal
}

type CartView struct {
	Items []CartLine
	Total decimal.Decimal
	// Missing lists cart product ids that are no longer in the catalog.
	Missing []uint
}

func (v *CartView) IsEmpty() bool {
	return len(v.Items) == 0
}

type CheckoutService struct {
	Products PriceLookup
	Orders   OrderWriter
}

// ViewCart prices the cart with current catalog prices. Lines are ordered by
// product id.
func (s *CheckoutService) ViewCart(ctx context.Context, crt cart.Cart) (*CartView, error) {
	view := &CartView{Items: []CartLine{}, Total: decimal.Zero}
	if crt.IsEmpty() {
		return view, nil
	}

	ids := crt.IDs()
	products, err := s.Products.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			view.Missing = append(view.Missing, id)
			continue
		}
		qty := crt.Quantity(id)
		sum := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		view.Items = append(view.Items, CartLine{Product: p, Qty: qty, Sum: sum})
		view.Total = view.Total.Add(sum)
	}
	return view, nil
}

// PlaceOrder validates the customer form, prices the cart and writes the
// order in one transaction. The cart is cleared only after the write
// succeeds. Products that disappeared from the catalog reject the order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, crt cart.Cart, form transport.OrderForm) (*models.Order, error) {
	form.Normalize()
	if err := validateForm(&form); err != nil {
		return nil, err
	}
	if crt.IsEmpty() {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	view, err := s.ViewCart(ctx, crt)
	if err != nil {
		return nil, err
	}
	if len(view.Missing) > 0 {
		return nil, fmt.Errorf("%w: products no longer available: %s", ErrValidation, joinIDs(view.Missing))
	}

	order := &models.Order{
		Name:       form.Name,
		Phone:      form.Phone,
		Address:    form.Address,
		Comment:    form.Comment,
		TotalPrice: view.Total,
		Lines:      make([]models.OrderLine, 0, len(view.Items)),
	}
	for _, item := range view.Items {
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID: item.Product.ID,
			Quantity:  item.Qty,
			UnitPrice: item.Product.Price,
		})
	}

	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	crt.Clear()
	return order, nil
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}
