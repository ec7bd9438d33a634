package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// BranchService handles branch management operations
type BranchService struct {
	branchRepo catalog.BranchRepository
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo catalog.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// Create registers a new branch
func (s *BranchService) Create(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	existing, err := s.branchRepo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch with this code already exists")
	}

	branch, err := catalog.NewBranch(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := branch.Update(req.Name, req.Address, req.City, req.Province, req.PostalCode, req.Phone, req.Email, req.ManagerName); err != nil {
		return nil, err
	}

	// First branch registered becomes the main branch
	all, err := s.branchRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		branch.MarkAsMain()
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	return ToBranchResponse(branch), nil
}

// Get returns a branch by ID
func (s *BranchService) Get(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBranchResponse(branch), nil
}

// List returns all branches matching the search term
func (s *BranchService) List(ctx context.Context, search string) ([]BranchResponse, error) {
	filter := shared.DefaultFilter()
	filter.Search = search

	branches, err := s.branchRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToBranchResponses(branches), nil
}

// ListActive returns branches currently open for operations
func (s *BranchService) ListActive(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.branchRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToBranchResponses(branches), nil
}

// Update updates a branch's contact details
func (s *BranchService) Update(ctx context.Context, id uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := branch.Update(req.Name, req.Address, req.City, req.Province, req.PostalCode, req.Phone, req.Email, req.ManagerName); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	return ToBranchResponse(branch), nil
}

// Activate reopens a branch for operations
func (s *BranchService) Activate(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	branch.Activate()
	return s.branchRepo.Save(ctx, branch)
}

// Deactivate closes a branch. The main branch cannot be deactivated.
func (s *BranchService) Deactivate(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if branch.IsMainBranch {
		return shared.NewDomainError("MAIN_BRANCH", "The main branch cannot be deactivated")
	}

	branch.Deactivate()
	return s.branchRepo.Save(ctx, branch)
}
