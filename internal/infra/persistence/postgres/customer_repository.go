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

// customerRepository implements the domain's CustomerRepository interface using GORM.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// FindByID retrieves a customer by ID. A non-nil branchScope restricts the
// lookup so out-of-branch records look exactly like missing ones.
func (repo *customerRepository) FindByID(ctx context.Context, id int64, branchScope *int64) (*entity.Customer, error) {
	query := repo.db.WithContext(ctx).Preload("Branch").Where("customer_id = ?", id)
	if branchScope != nil {
		query = query.Where("branch_id = ?", *branchScope)
	}

	var customerM model.CustomerModel
	if err := query.First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return toCustomerDomain(&customerM), nil
}

// FindByEmail retrieves a customer by their unique email address.
func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customerM model.CustomerModel
	if err := repo.db.WithContext(ctx).First(&customerM, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by email")
	}

	return toCustomerDomain(&customerM), nil
}

// List returns one page of customers matching the filter, newest first.
func (repo *customerRepository) List(ctx context.Context, filter repository.CustomerFilter, offset, limit int) ([]*entity.Customer, error) {
	var customerMs []model.CustomerModel
	err := applyCustomerFilter(repo.db.WithContext(ctx).Preload("Branch"), filter).
		Order("customer_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&customerMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	customers := make([]*entity.Customer, 0, len(customerMs))
	for i := range customerMs {
		customers = append(customers, toCustomerDomain(&customerMs[i]))
	}

	return customers, nil
}

// Count returns the number of customers matching the filter, independent of
// pagination. It shares the predicate builder with List so totals always
// agree with page contents.
func (repo *customerRepository) Count(ctx context.Context, filter repository.CustomerFilter) (int64, error) {
	var count int64
	err := applyCustomerFilter(repo.db.WithContext(ctx).Model(&model.CustomerModel{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count customers")
	}

	return count, nil
}

// Recent returns the most recently created customers within the scope.
func (repo *customerRepository) Recent(ctx context.Context, branchScope *int64, limit int) ([]*entity.Customer, error) {
	query := repo.db.WithContext(ctx).Preload("Branch")
	if branchScope != nil {
		query = query.Where("branch_id = ?", *branchScope)
	}

	var customerMs []model.CustomerModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&customerMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent customers")
	}

	customers := make([]*entity.Customer, 0, len(customerMs))
	for i := range customerMs {
		customers = append(customers, toCustomerDomain(&customerMs[i]))
	}

	return customers, nil
}

// RegistrationTrends returns monthly registration counts covering the last
// N months, newest month first.
func (repo *customerRepository) RegistrationTrends(ctx context.Context, months int) ([]*entity.RegistrationTrend, error) {
	var trends []*entity.RegistrationTrend
	err := repo.db.WithContext(ctx).Model(&model.CustomerModel{}).
		Select("to_char(registration_date, 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("registration_date >= CURRENT_DATE - make_interval(months => ?)", months).
		Group("to_char(registration_date, 'YYYY-MM')").
		Order("month DESC").
		Scan(&trends).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate registration trends")
	}

	return trends, nil
}

// Create persists a new customer entity to the database.
func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBranchNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required customer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	customer.ID = customerM.ID
	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

// Update modifies an existing customer entity in the database.
func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result := repo.db.WithContext(ctx).Model(&model.CustomerModel{}).
		Where("customer_id = ?", customer.ID).
		Updates(map[string]any{
			"branch_id":         customer.BranchID,
			"full_name":         customer.FullName,
			"email":             customer.Email,
			"phone_number":      customer.PhoneNumber,
			"code":              customer.Code,
			"address":           customer.Address,
			"registration_date": customer.RegistrationDate,
			"status":            customer.Status.String(),
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrEmailExists
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrBranchNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer by ID.
func (repo *customerRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.CustomerModel{}, "customer_id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

// applyCustomerFilter translates the shared filter into WHERE clauses. The
// search term matches case-insensitively across the five text columns.
func applyCustomerFilter(query *gorm.DB, filter repository.CustomerFilter) *gorm.DB {
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"full_name ILIKE ? OR phone_number ILIKE ? OR code ILIKE ? OR address ILIKE ? OR email ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	return query
}

// --- Mapper Functions ---

// toCustomerDomain converts a GORM CustomerModel to a domain Customer entity.
func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	if data == nil {
		return nil
	}

	customer := &entity.Customer{
		ID:               data.ID,
		BranchID:         data.BranchID,
		FullName:         data.FullName,
		Email:            data.Email,
		PhoneNumber:      data.PhoneNumber,
		Code:             data.Code,
		Address:          data.Address,
		RegistrationDate: data.RegistrationDate,
		Status:           entity.CustomerStatus(data.Status),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
	if data.Branch != nil {
		customer.BranchName = data.Branch.Name
	}

	return customer
}

// fromCustomerDomain converts a domain Customer entity to a GORM CustomerModel.
func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	if data == nil {
		return nil
	}

	return &model.CustomerModel{
		ID:               data.ID,
		BranchID:         data.BranchID,
		FullName:         data.FullName,
		Email:            data.Email,
		PhoneNumber:      data.PhoneNumber,
		Code:             data.Code,
		Address:          data.Address,
		RegistrationDate: data.RegistrationDate,
		Status:           data.Status.String(),
	}
}
