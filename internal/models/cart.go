package models

import (
	"time"
)

// MaxLineQty bounds the quantity of a single cart line.
const MaxLineQty = 10_000

// ProductSnapshot is the immutable copy of product fields held by a cart line.
// It is never refreshed from the catalog.
type ProductSnapshot struct {
	Name  string `json:"name" bson:"name"`
	Price int64  `json:"price" bson:"price"`
	Image string `json:"image" bson:"image"`
}

type CartLine struct {
	ID              string `json:"id" bson:"_id"`
	ProductID       string `json:"productId" bson:"productId"`
	ProductSnapshot `bson:",inline"`
	Qty             int       `json:"qty" bson:"qty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Qty)
}

type CartView struct {
	Items []CartLine `json:"items"`
	Total int64      `json:"total"`
}

// NewCartView recomputes the total from the lines it is given.
func NewCartView(lines []CartLine) *CartView {
	if lines == nil {
		lines = []CartLine{}
	}

	return &CartView{Items: lines, Total: SumLines(lines)}
}

func SumLines(lines []CartLine) int64 {
	var total int64

	for _, line := range lines {
		total += line.LineTotal()
	}

	return total
}

// Qty is optional on add and defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       *int   `json:"qty,omitempty"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty"`
}
