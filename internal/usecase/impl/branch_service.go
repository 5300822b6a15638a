package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/usecase"
)

// branchService implements the BranchUsecase interface.
type branchService struct {
	branchRepo repository.BranchRepository
	txManager  repository.TransactionManager
	logger     *slog.Logger
}

// NewBranchService is the constructor for branchService.
func NewBranchService(
	branchRepo repository.BranchRepository,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.BranchUsecase {
	return &branchService{
		branchRepo: branchRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (srv *branchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves all branches.
func (srv *branchService) List(ctx context.Context) ([]*entity.Branch, error) {
	branches, err := srv.branchRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list branches")
	}

	return branches, nil
}

// Get retrieves one branch by ID.
func (srv *branchService) Get(ctx context.Context, id int64) (*entity.Branch, error) {
	branch, err := srv.branchRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBranchNotFound) {
			return nil, domainerrors.ErrBranchNotFound
		}

		return nil, errors.Wrap(err, "failed to find branch")
	}

	return branch, nil
}

// Create opens a new branch.
func (srv *branchService) Create(ctx context.Context, input usecase.CreateBranchInput) (*entity.Branch, error) {
	branch := &entity.Branch{
		Name:    sanitize(input.Name),
		Address: sanitize(input.Address),
		Phone:   sanitize(input.Phone),
	}

	if err := srv.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Branch created", slog.Int64("branch_id", branch.ID), slog.String("name", branch.Name))

	return branch, nil
}

// Update modifies a branch. Nil input fields are left unchanged.
func (srv *branchService) Update(ctx context.Context, id int64, input usecase.UpdateBranchInput) (*entity.Branch, error) {
	branch, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		branch.Name = sanitize(*input.Name)
	}
	if input.Address != nil {
		branch.Address = sanitize(*input.Address)
	}
	if input.Phone != nil {
		branch.Phone = sanitize(*input.Phone)
	}

	if err := srv.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}

	return srv.Get(ctx, id)
}

// Delete removes a branch only while it has no staff and no customers. The
// dependent checks and the delete run in one transaction so a concurrent
// insert cannot slip between them.
func (srv *branchService) Delete(ctx context.Context, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		branchRepo := repoFactory.BranchRepo()

		if _, err := branchRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrBranchNotFound) {
				return domainerrors.ErrBranchNotFound
			}

			return errors.Wrap(err, "failed to find branch")
		}

		staffCount, err := repoFactory.StaffRepo().Count(ctx, &id)
		if err != nil {
			return errors.Wrap(err, "failed to count branch staff")
		}

		customerCount, err := repoFactory.CustomerRepo().Count(ctx, repository.CustomerFilter{BranchID: &id})
		if err != nil {
			return errors.Wrap(err, "failed to count branch customers")
		}

		if staffCount > 0 || customerCount > 0 {
			return domainerrors.ErrBranchHasDependents
		}

		return branchRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Branch deleted", slog.Int64("branch_id", id))

	return nil
}
