package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
)

// CreateProductRequest is the request to add a product to the catalog
type CreateProductRequest struct {
	SKU                  string           `json:"sku" binding:"required,max=50"`
	Barcode              string           `json:"barcode" binding:"max=50"`
	Name                 string           `json:"name" binding:"required,max=200"`
	Description          string           `json:"description"`
	BrandName            string           `json:"brand_name" binding:"max=100"`
	GenericName          string           `json:"generic_name" binding:"max=100"`
	Dosage               string           `json:"dosage" binding:"max=50"`
	Form                 string           `json:"form" binding:"max=50"`
	RequiresPrescription bool             `json:"requires_prescription"`
	Price                decimal.Decimal  `json:"price" binding:"required"`
	Cost                 *decimal.Decimal `json:"cost"`
	CategoryID           *uuid.UUID       `json:"category_id"`
}

// UpdateProductRequest is the request to update a product's details
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	BrandName   string `json:"brand_name" binding:"max=100"`
	GenericName string `json:"generic_name" binding:"max=100"`
	Dosage      string `json:"dosage" binding:"max=50"`
	Form        string `json:"form" binding:"max=50"`
}

// UpdateProductPricesRequest is the request to change product pricing
type UpdateProductPricesRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
	Cost  decimal.Decimal `json:"cost"`
}

// ProductListFilter narrows product listings
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID                   uuid.UUID       `json:"id"`
	SKU                  string          `json:"sku"`
	Barcode              string          `json:"barcode,omitempty"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	BrandName            string          `json:"brand_name,omitempty"`
	GenericName          string          `json:"generic_name,omitempty"`
	Dosage               string          `json:"dosage,omitempty"`
	Form                 string          `json:"form,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Price                decimal.Decimal `json:"price"`
	Cost                 decimal.Decimal `json:"cost"`
	CategoryID           *uuid.UUID      `json:"category_id,omitempty"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:                   product.ID,
		SKU:                  product.SKU,
		Barcode:              product.Barcode,
		Name:                 product.Name,
		Description:          product.Description,
		BrandName:            product.BrandName,
		GenericName:          product.GenericName,
		Dosage:               product.Dosage,
		Form:                 product.Form,
		RequiresPrescription: product.RequiresPrescription,
		Price:                product.Price,
		Cost:                 product.Cost,
		CategoryID:           product.CategoryID,
		Status:               string(product.Status),
		CreatedAt:            product.CreatedAt,
		UpdatedAt:            product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}
	return responses
}

// CreateCategoryRequest is the request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category to its API representation
func ToCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses
}

// CreateBranchRequest is the request to register a branch
type CreateBranchRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"max=255"`
	City        string `json:"city" binding:"max=100"`
	Province    string `json:"province" binding:"max=100"`
	PostalCode  string `json:"postal_code" binding:"max=10"`
	Phone       string `json:"phone" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email,max=100"`
	ManagerName string `json:"manager_name" binding:"max=100"`
}

// UpdateBranchRequest is the request to update branch details
type UpdateBranchRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"max=255"`
	City        string `json:"city" binding:"max=100"`
	Province    string `json:"province" binding:"max=100"`
	PostalCode  string `json:"postal_code" binding:"max=10"`
	Phone       string `json:"phone" binding:"max=30"`
	Email       string `json:"email" binding:"omitempty,email,max=100"`
	ManagerName string `json:"manager_name" binding:"max=100"`
}

// BranchResponse is the API representation of a branch
type BranchResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Province     string    `json:"province,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	ManagerName  string    `json:"manager_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsMainBranch bool      `json:"is_main_branch"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToBranchResponse converts a domain branch to its API representation
func ToBranchResponse(branch *catalog.Branch) *BranchResponse {
	return &BranchResponse{
		ID:           branch.ID,
		Code:         branch.Code,
		Name:         branch.Name,
		Address:      branch.Address,
		City:         branch.City,
		Province:     branch.Province,
		PostalCode:   branch.PostalCode,
		Phone:        branch.Phone,
		Email:        branch.Email,
		ManagerName:  branch.ManagerName,
		IsActive:     branch.IsActive,
		IsMainBranch: branch.IsMainBranch,
		CreatedAt:    branch.CreatedAt,
		UpdatedAt:    branch.UpdatedAt,
	}
}

// ToBranchResponses converts a slice of domain branches
func ToBranchResponses(branches []catalog.Branch) []BranchResponse {
	responses := make([]BranchResponse, len(branches))
	for i := range branches {
		responses[i] = *ToBranchResponse(&branches[i])
	}
	return responses
}

// CreateDiscountRequest is the request to define a discount rule
type CreateDiscountRequest struct {
	Name                 string          `json:"name" binding:"required,max=100"`
	Description          string          `json:"description" binding:"max=255"`
	Type                 string          `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Value                decimal.Decimal `json:"value" binding:"required"`
	RequiresVerification bool            `json:"requires_verification"`
	StartDate            *time.Time      `json:"start_date"`
	EndDate              *time.Time      `json:"end_date"`
	ProductIDs           []uuid.UUID     `json:"product_ids"` // empty means shop-wide
}

// DiscountListFilter narrows discount listings
type DiscountListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT"`
	Enabled  *bool  `form:"enabled"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// DiscountResponse is the API representation of a discount rule
type DiscountResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	Type                 string          `json:"type"`
	Value                decimal.Decimal `json:"value"`
	Enabled              bool            `json:"enabled"`
	RequiresVerification bool            `json:"requires_verification"`
	StartDate            *time.Time      `json:"start_date,omitempty"`
	EndDate              *time.Time      `json:"end_date,omitempty"`
	ProductIDs           []uuid.UUID     `json:"product_ids"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToDiscountResponse converts a domain discount to its API representation
func ToDiscountResponse(discount *catalog.Discount) *DiscountResponse {
	productIDs := make([]uuid.UUID, len(discount.Products))
	for i := range discount.Products {
		productIDs[i] = discount.Products[i].ID
	}
	return &DiscountResponse{
		ID:                   discount.ID,
		Name:                 discount.Name,
		Description:          discount.Description,
		Type:                 string(discount.Type),
		Value:                discount.Value,
		Enabled:              discount.Enabled,
		RequiresVerification: discount.RequiresVerification,
		StartDate:            discount.StartDate,
		EndDate:              discount.EndDate,
		ProductIDs:           productIDs,
		CreatedAt:            discount.CreatedAt,
		UpdatedAt:            discount.UpdatedAt,
	}
}

// ToDiscountResponses converts a slice of domain discounts
func ToDiscountResponses(discounts []catalog.Discount) []DiscountResponse {
	responses := make([]DiscountResponse, len(discounts))
	for i := range discounts {
		responses[i] = *ToDiscountResponse(&discounts[i])
	}
	return responses
}
