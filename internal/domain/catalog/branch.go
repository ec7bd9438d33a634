package catalog

import (
	"strings"
	"time"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Branch represents a physical pharmacy branch.
type Branch struct {
	shared.BaseAggregateRoot
	Code         string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(100);not null"`
	Address      string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(100)"`
	Province     string `gorm:"type:varchar(100)"`
	PostalCode   string `gorm:"type:varchar(10)"`
	Phone        string `gorm:"type:varchar(30)"`
	Email        string `gorm:"type:varchar(100)"`
	ManagerName  string `gorm:"type:varchar(100)"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsMainBranch bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch
func NewBranch(code, name string) (*Branch, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Branch code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "Branch code cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}

	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		IsActive:          true,
	}, nil
}

// Update updates the branch's contact details
func (b *Branch) Update(name, address, city, province, postalCode, phone, email, managerName string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}

	b.Name = name
	b.Address = address
	b.City = city
	b.Province = province
	b.PostalCode = postalCode
	b.Phone = phone
	b.Email = email
	b.ManagerName = managerName
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Activate enables the branch
func (b *Branch) Activate() {
	b.IsActive = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Deactivate disables the branch
func (b *Branch) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// MarkAsMain designates the branch as the main branch
func (b *Branch) MarkAsMain() {
	b.IsMainBranch = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}
