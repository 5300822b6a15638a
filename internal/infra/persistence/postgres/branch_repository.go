package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/infra/persistence/model"
)

// branchRepository implements the domain's BranchRepository interface using GORM.
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository is the constructor for branchRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewBranchRepository(db *gorm.DB) repository.BranchRepository {
	return &branchRepository{db: db}
}

// FindByID retrieves a single branch by its unique ID.
func (repo *branchRepository) FindByID(ctx context.Context, id int64) (*entity.Branch, error) {
	var branchM model.BranchModel
	if err := repo.db.WithContext(ctx).First(&branchM, "branch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBranchNotFound
		}

		return nil, errors.Wrap(err, "failed to find branch by id")
	}

	return toBranchDomain(&branchM), nil
}

// List retrieves all branches, newest first.
func (repo *branchRepository) List(ctx context.Context) ([]*entity.Branch, error) {
	var branchMs []model.BranchModel
	if err := repo.db.WithContext(ctx).Order("branch_id DESC").Find(&branchMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list branches")
	}

	branches := make([]*entity.Branch, 0, len(branchMs))
	for i := range branchMs {
		branches = append(branches, toBranchDomain(&branchMs[i]))
	}

	return branches, nil
}

// Create persists a new branch entity to the database.
func (repo *branchRepository) Create(ctx context.Context, branch *entity.Branch) error {
	branchM := fromBranchDomain(branch)

	if err := repo.db.WithContext(ctx).Create(branchM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create branch")
	}

	branch.ID = branchM.ID
	branch.CreatedAt = branchM.CreatedAt
	branch.UpdatedAt = branchM.UpdatedAt

	return nil
}

// Update modifies an existing branch entity in the database.
func (repo *branchRepository) Update(ctx context.Context, branch *entity.Branch) error {
	result := repo.db.WithContext(ctx).Model(&model.BranchModel{}).
		Where("branch_id = ?", branch.ID).
		Updates(map[string]any{
			"branch_name":  branch.Name,
			"address":      branch.Address,
			"phone_number": branch.Phone,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update branch")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBranchNotFound
	}

	return nil
}

// Delete removes a branch by ID. The usecase layer checks for dependents
// first inside a transaction; the schema's foreign keys are the backstop.
func (repo *branchRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.BranchModel{}, "branch_id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrBranchHasDependents
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete branch")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBranchNotFound
	}

	return nil
}

// Count returns the number of branches.
func (repo *branchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.BranchModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count branches")
	}

	return count, nil
}

// Stats returns per-branch customer and staff aggregates for the dashboard.
// Branches with no customers or staff still appear with zero counts.
func (repo *branchRepository) Stats(ctx context.Context) ([]*entity.BranchStats, error) {
	var rows []entity.BranchStats
	err := repo.db.WithContext(ctx).
		Table("branches b").
		Select(`b.branch_id,
			b.branch_name,
			COUNT(DISTINCT c.customer_id) AS total_customers,
			COUNT(DISTINCT c.customer_id) FILTER (WHERE c.status = ?) AS active_customers,
			COUNT(DISTINCT c.customer_id) FILTER (WHERE c.status = ?) AS inactive_customers,
			COUNT(DISTINCT s.staff_id) AS total_staff`,
			entity.CustomerActive.String(), entity.CustomerInactive.String()).
		Joins("LEFT JOIN customers c ON c.branch_id = b.branch_id").
		Joins("LEFT JOIN staff s ON s.branch_id = b.branch_id").
		Group("b.branch_id, b.branch_name").
		Order("b.branch_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate branch stats")
	}

	stats := make([]*entity.BranchStats, 0, len(rows))
	for i := range rows {
		stats = append(stats, &rows[i])
	}

	return stats, nil
}

// --- Mapper Functions ---

// toBranchDomain converts a GORM BranchModel to a domain Branch entity.
func toBranchDomain(data *model.BranchModel) *entity.Branch {
	if data == nil {
		return nil
	}

	return &entity.Branch{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		Phone:     data.Phone,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromBranchDomain converts a domain Branch entity to a GORM BranchModel.
func fromBranchDomain(data *entity.Branch) *model.BranchModel {
	if data == nil {
		return nil
	}

	return &model.BranchModel{
		ID:      data.ID,
		Name:    data.Name,
		Address: data.Address,
		Phone:   data.Phone,
	}
}
