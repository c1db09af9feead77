package models

import (
	"io"
	"time"
)

const (
	DefaultProductImage    = "https://cdn-icons-png.flaticon.com/512/679/679720.png"
	DefaultProductCategory = "general"
	// MaxProductPrice keeps price times MaxLineQty far from int64 overflow.
	MaxProductPrice = 1_000_000_000
)

type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       int64     `json:"price" bson:"price"`
	Image       string    `json:"image" bson:"image"`
	Category    string    `json:"category" bson:"category"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Snapshot copies the fields a cart line freezes at add time.
func (p *Product) Snapshot() ProductSnapshot {
	image := p.Image
	if image == "" {
		image = DefaultProductImage
	}

	return ProductSnapshot{
		Name:  p.Name,
		Price: p.Price,
		Image: image,
	}
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Price       int64  `json:"price" validate:"required,min=1,max=1000000000"`
	Image       string `json:"image" validate:"omitempty,max=2048"`
	Category    string `json:"category" validate:"max=100"`
}

// UpdateProductRequest is a partial update, nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitnil,max=500"`
	Price       *int64  `json:"price,omitempty" validate:"omitnil,min=1,max=1000000000"`
	Image       *string `json:"image,omitempty" validate:"omitnil,max=2048"`
	Category    *string `json:"category,omitempty" validate:"omitnil,max=100"`
}

// ImageUpload is an image file received with a catalog mutation.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MessageResponse struct {
	Message string `json:"message"`
}
