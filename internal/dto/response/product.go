package response

import (
	"time"

	"storefront/internal/data/entity"
)

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	ImageURL    *string   `json:"image_url,omitempty"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Price:       product.Price,
		Currency:    product.Currency,
		ImageURL:    product.ImageURL,
		InStock:     product.InStock,
		CreatedAt:   product.CreatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		result = append(result, ProductToResponse(product))
	}
	return result
}
