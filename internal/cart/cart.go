// Package cart holds the shopping cart value carried in the client session.
package cart

import (
	"errors"
	"math"
	"sort"
)

var ErrQuantityOverflow = errors.New("cart: quantity overflow")

// Cart maps a product id to a positive quantity. JSON encodes the keys as
// strings, which is the session wire format.
type Cart map[uint]int

func New() Cart {
	return Cart{}
}

// Add increments the quantity of productID by qty, creating the entry when
// absent. Non-positive quantities are ignored. An increment that would
// overflow leaves the cart unchanged and returns ErrQuantityOverflow.
func (c Cart) Add(productID uint, qty int) error {
	if qty <= 0 {
		return nil
	}
	if c[productID] > math.MaxInt-qty {
		return ErrQuantityOverflow
	}
	c[productID] += qty
	return nil
}

func (c Cart) Remove(productID uint) {
	delete(c, productID)
}

// Clear empties the cart in place so every holder of the map sees it.
func (c Cart) Clear() {
	clear(c)
}

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

func (c Cart) Quantity(productID uint) int {
	return c[productID]
}

// Count is the total number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, q := range c {
		n += q
	}
	return n
}

// IDs returns the product ids in ascending order.
func (c Cart) IDs() []uint {
	ids := make([]uint, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Sanitize drops entries that cannot come from Add, e.g. a zero id or a
// non-positive quantity decoded from an old cookie.
func (c Cart) Sanitize() {
	for id, q := range c {
		if id == 0 || q <= 0 {
			delete(c, id)
		}
	}
}
