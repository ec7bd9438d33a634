package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// UserService handles staff account management
type UserService struct {
	userRepo   identity.UserRepository
	branchRepo catalog.BranchRepository
	logger     *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, branchRepo catalog.BranchRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// Register creates a new staff account
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*UserInfo, error) {
	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	existing, err = s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}

	if err := user.SetName(req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	user.ContactNumber = strings.TrimSpace(req.ContactNumber)

	if req.BranchID != nil {
		exists, err := s.branchRepo.ExistsByID(ctx, *req.BranchID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("INVALID_BRANCH", "Branch not found")
		}
		if err := user.AssignBranch(*req.BranchID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	info := ToUserInfo(user)
	return &info, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, req UserListFilter) ([]UserInfo, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = strings.TrimSpace(req.Search)
	if req.Role != "" {
		filter.Filters["role"] = req.Role
	}

	var (
		users []identity.User
		err   error
	)
	if req.BranchID != nil {
		users, err = s.userRepo.FindByBranch(ctx, *req.BranchID, filter)
	} else {
		users, err = s.userRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	return ToUserInfos(users), nil
}

// AssignBranch sets a user's home branch
func (s *UserService) AssignBranch(ctx context.Context, userID, branchID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	exists, err := s.branchRepo.ExistsByID(ctx, branchID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_BRANCH", "Branch not found")
	}

	if err := user.AssignBranch(branchID); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// SwitchBranch moves a user to a different working branch
func (s *UserService) SwitchBranch(ctx context.Context, userID, branchID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	exists, err := s.branchRepo.ExistsByID(ctx, branchID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_BRANCH", "Branch not found")
	}

	if err := user.SwitchBranch(branchID); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// Activate re-enables a staff account
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.Activate()
	return s.userRepo.Save(ctx, user)
}

// Deactivate disables a staff account. Admins cannot deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError("SELF_DEACTIVATION", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}
