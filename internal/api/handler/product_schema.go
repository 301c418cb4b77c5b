package handler

import "github.com/99minutos/inventory-system/internal/core/domain"

type productRequest struct {
	Name     string  `json:"name"     validate:"required,max=200"`
	Category string  `json:"category" validate:"required,max=100"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Stock    int     `json:"stock"    validate:"gte=0"`
	Sales    int     `json:"sales"    validate:"gte=0"`
	Status   string  `json:"status"   validate:"max=50"`
}

func (r productRequest) toDomain() domain.Product {
	return domain.Product{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Quantity: r.Quantity,
		Stock:    r.Stock,
		Sales:    r.Sales,
		Status:   r.Status,
	}
}

type productPatchRequest struct {
	Name     *string  `json:"name"     validate:"omitempty,max=200"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Price    *float64 `json:"price"    validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
	Stock    *int     `json:"stock"    validate:"omitempty,gte=0"`
	Sales    *int     `json:"sales"    validate:"omitempty,gte=0"`
	Status   *string  `json:"status"   validate:"omitempty,max=50"`
}

func (r productPatchRequest) toDomain() domain.ProductPatch {
	return domain.ProductPatch{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Quantity: r.Quantity,
		Stock:    r.Stock,
		Sales:    r.Sales,
		Status:   r.Status,
	}
}

type createdResponse struct {
	Message string   `json:"message"`
	ID      string   `json:"id,omitempty"`
	IDs     []string `json:"ids,omitempty"`
}

type updatedResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modified_count"`
}

type deletedResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

type totalValueResponse struct {
	TotalInventoryValue float64 `json:"total_inventory_value"`
}
