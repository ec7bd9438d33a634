package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// Role determines what a staff member may do. Admins and managers can
// mutate stock; cashiers only sell.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// User is the aggregate root for staff accounts. BranchID is the home
// branch; CurrentBranchID tracks where the user is working right now.
type User struct {
	shared.BaseAggregateRoot
	Username        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email           string     `gorm:"type:varchar(200);uniqueIndex"`
	PasswordHash    string     `gorm:"type:varchar(100);not null"`
	FirstName       string     `gorm:"type:varchar(100)"`
	LastName        string     `gorm:"type:varchar(100)"`
	ContactNumber   string     `gorm:"type:varchar(30)"`
	Role            Role       `gorm:"type:varchar(20);not null;default:'cashier'"`
	BranchID        *uuid.UUID `gorm:"type:uuid;index"`
	CurrentBranchID *uuid.UUID `gorm:"type:uuid"`
	IsActive        bool       `gorm:"not null;default:true"`
	LastLoginAt     *time.Time
	FailedAttempts  int `gorm:"not null;default:0"`
	LockedUntil     *time.Time
}

func (User) TableName() string { return "users" }

// NewUser validates the credentials and returns an active account.
// Username and email are normalized to lowercase.
func NewUser(username, email, password string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid user role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              role,
		IsActive:          true,
	}, nil
}

// touch stamps a mutation for optimistic locking.
func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// FullName returns the display name, falling back to the username.
func (u *User) FullName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

func (u *User) SetName(firstName, lastName string) error {
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.touch()
	return nil
}

// AssignBranch sets the home branch. The working branch follows when it
// was never set.
func (u *User) AssignBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	u.BranchID = &branchID
	if u.CurrentBranchID == nil {
		u.CurrentBranchID = &branchID
	}
	u.touch()
	return nil
}

// SwitchBranch moves the user to a different working branch.
func (u *User) SwitchBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	u.CurrentBranchID = &branchID
	u.touch()
	return nil
}

// ChangePassword verifies the current password before accepting a new one.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = passwordHash
	u.touch()
	return nil
}

func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLoginSuccess clears the failure counter and any lock.
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.touch()
}

// RecordLoginFailure counts the attempt and reports whether the account
// just got locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.touch()

	if u.FailedAttempts < maxAttempts {
		return false
	}
	until := time.Now().Add(lockDuration)
	u.LockedUntil = &until
	return true
}

func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && u.LockedUntil.After(time.Now())
}

func (u *User) Activate() {
	u.IsActive = true
	u.touch()
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.touch()
}

// CanManageStock reports whether the role permits stock mutations.
func (u *User) CanManageStock() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	case len(username) < 3:
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	case len(username) > 100:
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	case !usernamePattern.MatchString(username):
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	case len(password) < 8:
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	case len(password) > 128:
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	case !letterPattern.MatchString(password) || !digitPattern.MatchString(password):
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func validateEmail(email string) error {
	switch {
	case len(email) > 200:
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	case !emailPattern.MatchString(email):
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
