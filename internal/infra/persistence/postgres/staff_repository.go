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

// staffRepository implements the domain's StaffRepository interface using GORM.
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository is the constructor for staffRepository.
func NewStaffRepository(db *gorm.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

// FindByID retrieves a single staff member by their unique ID, with the
// branch preloaded so the branch name can be resolved.
func (repo *staffRepository) FindByID(ctx context.Context, id int64) (*entity.Staff, error) {
	var staffM model.StaffModel
	if err := repo.db.WithContext(ctx).Preload("Branch").First(&staffM, "staff_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff by id")
	}

	return toStaffDomain(&staffM), nil
}

// FindByUsername retrieves a single staff member by their login name.
func (repo *staffRepository) FindByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	var staffM model.StaffModel
	if err := repo.db.WithContext(ctx).Preload("Branch").First(&staffM, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff by username")
	}

	return toStaffDomain(&staffM), nil
}

// List retrieves all staff, newest first, with branch names resolved.
func (repo *staffRepository) List(ctx context.Context) ([]*entity.Staff, error) {
	var staffMs []model.StaffModel
	if err := repo.db.WithContext(ctx).Preload("Branch").Order("staff_id DESC").Find(&staffMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list staff")
	}

	staff := make([]*entity.Staff, 0, len(staffMs))
	for i := range staffMs {
		staff = append(staff, toStaffDomain(&staffMs[i]))
	}

	return staff, nil
}

// Create persists a new staff entity to the database.
func (repo *staffRepository) Create(ctx context.Context, staff *entity.Staff) error {
	staffM := fromStaffDomain(staff)

	if err := repo.db.WithContext(ctx).Create(staffM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUsernameExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBranchNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required staff information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create staff")
	}

	staff.ID = staffM.ID
	staff.CreatedAt = staffM.CreatedAt
	staff.UpdatedAt = staffM.UpdatedAt

	return nil
}

// Update modifies an existing staff entity in the database. The password
// column is only touched when the entity carries a new hash.
func (repo *staffRepository) Update(ctx context.Context, staff *entity.Staff) error {
	updates := map[string]any{
		"branch_id": staff.BranchID,
		"username":  staff.Username,
		"full_name": staff.FullName,
		"role":      staff.Role.String(),
	}
	if staff.PasswordHash != "" {
		updates["password"] = staff.PasswordHash
	}

	result := repo.db.WithContext(ctx).Model(&model.StaffModel{}).
		Where("staff_id = ?", staff.ID).
		Updates(updates)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUsernameExists
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrBranchNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update staff")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaffNotFound
	}

	return nil
}

// Delete removes a staff member by ID.
func (repo *staffRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.StaffModel{}, "staff_id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete staff")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaffNotFound
	}

	return nil
}

// Count returns the number of staff, optionally scoped to one branch.
func (repo *staffRepository) Count(ctx context.Context, branchID *int64) (int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.StaffModel{})
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count staff")
	}

	return count, nil
}

// --- Mapper Functions ---

// toStaffDomain converts a GORM StaffModel to a domain Staff entity.
func toStaffDomain(data *model.StaffModel) *entity.Staff {
	if data == nil {
		return nil
	}

	staff := &entity.Staff{
		ID:           data.ID,
		BranchID:     data.BranchID,
		Username:     data.Username,
		FullName:     data.FullName,
		Role:         entity.StaffRole(data.Role),
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
	if data.Branch != nil {
		staff.BranchName = data.Branch.Name
	}

	return staff
}

// fromStaffDomain converts a domain Staff entity to a GORM StaffModel.
func fromStaffDomain(data *entity.Staff) *model.StaffModel {
	if data == nil {
		return nil
	}

	return &model.StaffModel{
		ID:           data.ID,
		BranchID:     data.BranchID,
		Username:     data.Username,
		FullName:     data.FullName,
		Role:         data.Role.String(),
		PasswordHash: data.PasswordHash,
	}
}
