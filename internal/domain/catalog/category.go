package catalog

import (
	"time"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Category represents a product category (e.g., antibiotics, vitamins).
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(255)"`
}

func (Category) TableName() string { return "categories" }

func validCategoryName(name string) error {
	switch {
	case name == "":
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	case len(name) > 100:
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

// NewCategory validates the name and returns a fresh category.
func NewCategory(name, description string) (*Category, error) {
	if err := validCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Update renames the category and bumps its version.
func (c *Category) Update(name, description string) error {
	if err := validCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
