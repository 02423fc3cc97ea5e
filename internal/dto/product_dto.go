package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertProductRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Handle      string   `json:"handle" validate:"required,max=255"`
	Description string   `json:"description,omitempty" validate:"max=10000"`
	ProductType string   `json:"product_type,omitempty" validate:"max=120"`
	Tags        []string `json:"tags,omitempty" validate:"max=50,dive,max=60"`
	Price       string   `json:"price" validate:"required,max=32"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,url"`
}

type ProductResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Description string     `json:"description,omitempty"`
	ProductType string     `json:"product_type,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Price       string     `json:"price"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
