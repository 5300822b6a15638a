package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/usecase"
)

type customerFixture struct {
	customerRepo *memCustomerRepo
	branchRepo   *memBranchRepo
	uc           usecase.CustomerUsecase
}

func newCustomerFixture(t *testing.T) *customerFixture {
	t.Helper()

	f := &customerFixture{
		customerRepo: newMemCustomerRepo(),
		branchRepo:   newMemBranchRepo(),
	}
	f.uc = NewCustomerService(f.customerRepo, f.branchRepo, discardLogger())

	return f
}

func (f *customerFixture) seedBranch(t *testing.T, name string) *entity.Branch {
	t.Helper()

	branch := &entity.Branch{Name: name}
	require.NoError(t, f.branchRepo.Create(context.Background(), branch))

	return branch
}

func (f *customerFixture) seedCustomer(t *testing.T, branchID int64, fullName, email string, status entity.CustomerStatus) *entity.Customer {
	t.Helper()

	customer := &entity.Customer{
		BranchID: branchID,
		FullName: fullName,
		Email:    email,
		Status:   status,
	}
	require.NoError(t, f.customerRepo.Create(context.Background(), customer))

	return customer
}

func managementTestPrincipal() *entity.Principal {
	return &entity.Principal{
		ID:         1,
		Username:   "owner",
		Kind:       entity.KindManagement,
		Role:       entity.RoleOwner.String(),
		AuthMethod: entity.AuthMethodToken,
	}
}

func staffTestPrincipal(branchID int64) *entity.Principal {
	return &entity.Principal{
		ID:         2,
		Username:   "cashier01",
		Kind:       entity.KindStaff,
		Role:       entity.RoleCashier.String(),
		BranchID:   &branchID,
		AuthMethod: entity.AuthMethodToken,
	}
}

func TestCustomerService_List_PaginationDefaultsAndClamps(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	for range 15 {
		f.seedCustomer(t, branch.ID, "Someone", "", entity.CustomerActive)
	}

	tests := []struct {
		name      string
		input     usecase.ListCustomersInput
		wantPage  int
		wantLimit int
		wantItems int
	}{
		{name: "defaults", input: usecase.ListCustomersInput{}, wantPage: 1, wantLimit: 10, wantItems: 10},
		{name: "zero page floors to one", input: usecase.ListCustomersInput{Page: 0, Limit: 5}, wantPage: 1, wantLimit: 5, wantItems: 5},
		{name: "negative page floors to one", input: usecase.ListCustomersInput{Page: -3, Limit: 5}, wantPage: 1, wantLimit: 5, wantItems: 5},
		{name: "limit clamped to max", input: usecase.ListCustomersInput{Limit: 500}, wantPage: 1, wantLimit: 100, wantItems: 15},
		{name: "second page partial", input: usecase.ListCustomersInput{Page: 2, Limit: 10}, wantPage: 2, wantLimit: 10, wantItems: 5},
		{name: "page past the end", input: usecase.ListCustomersInput{Page: 99, Limit: 10}, wantPage: 99, wantLimit: 10, wantItems: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.uc.List(context.Background(), managementTestPrincipal(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPage, page.Pagination.Page)
			assert.Equal(t, tt.wantLimit, page.Pagination.Limit)
			assert.Equal(t, int64(15), page.Pagination.Total)
			assert.Len(t, page.Items, tt.wantItems)
		})
	}
}

func TestCustomerService_List_NewestFirst(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	first := f.seedCustomer(t, branch.ID, "First", "", entity.CustomerActive)
	second := f.seedCustomer(t, branch.ID, "Second", "", entity.CustomerActive)

	page, err := f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, second.ID, page.Items[0].ID)
	assert.Equal(t, first.ID, page.Items[1].ID)
}

func TestCustomerService_List_StaffPinnedToHomeBranch(t *testing.T) {
	f := newCustomerFixture(t)
	home := f.seedBranch(t, "Home")
	other := f.seedBranch(t, "Other")
	f.seedCustomer(t, home.ID, "Mine", "", entity.CustomerActive)
	f.seedCustomer(t, other.ID, "Theirs", "", entity.CustomerActive)

	// The requested branch filter points elsewhere; the staff principal's
	// own branch must win.
	page, err := f.uc.List(context.Background(), staffTestPrincipal(home.ID), usecase.ListCustomersInput{BranchID: &other.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mine", page.Items[0].FullName)
}

func TestCustomerService_List_ManagementBranchFilter(t *testing.T) {
	f := newCustomerFixture(t)
	downtown := f.seedBranch(t, "Downtown")
	uptown := f.seedBranch(t, "Uptown")
	f.seedCustomer(t, downtown.ID, "A", "", entity.CustomerActive)
	f.seedCustomer(t, uptown.ID, "B", "", entity.CustomerActive)

	page, err := f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{BranchID: &uptown.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "B", page.Items[0].FullName)

	// Without a branch filter, management sees the whole network.
	page, err = f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	branches := []int64{page.Items[0].BranchID, page.Items[1].BranchID}
	assert.ElementsMatch(t, []int64{downtown.ID, uptown.ID}, branches)
}

func TestCustomerService_List_StaffWithoutBranch(t *testing.T) {
	f := newCustomerFixture(t)

	principal := staffTestPrincipal(1)
	principal.BranchID = nil

	_, err := f.uc.List(context.Background(), principal, usecase.ListCustomersInput{})
	assert.ErrorIs(t, err, domainerrors.ErrMissingBranch)
}

func TestCustomerService_List_SearchThreshold(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	f.seedCustomer(t, branch.ID, "Alice Smith", "alice@example.com", entity.CustomerActive)
	f.seedCustomer(t, branch.ID, "Bob Jones", "bob@example.com", entity.CustomerActive)

	// Under three trimmed characters the term is dropped, not rejected.
	page, err := f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{Search: "  al  "})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{Search: "alice"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alice Smith", page.Items[0].FullName)
}

func TestCustomerService_List_InvalidStatus(t *testing.T) {
	f := newCustomerFixture(t)

	_, err := f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{Status: "Archived"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCustomerService_List_StatusFilter(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	f.seedCustomer(t, branch.ID, "Active One", "", entity.CustomerActive)
	f.seedCustomer(t, branch.ID, "Inactive One", "", entity.CustomerInactive)

	page, err := f.uc.List(context.Background(), managementTestPrincipal(), usecase.ListCustomersInput{Status: "Inactive"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Inactive One", page.Items[0].FullName)
}

func TestCustomerService_Get_StaffOutOfScopeIsNotFound(t *testing.T) {
	f := newCustomerFixture(t)
	home := f.seedBranch(t, "Home")
	other := f.seedBranch(t, "Other")
	foreign := f.seedCustomer(t, other.ID, "Theirs", "", entity.CustomerActive)

	_, err := f.uc.Get(context.Background(), staffTestPrincipal(home.ID), foreign.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)

	// Management sees it fine.
	got, err := f.uc.Get(context.Background(), managementTestPrincipal(), foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, foreign.ID, got.ID)
}

func TestCustomerService_Create(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")

	got, err := f.uc.Create(context.Background(), managementTestPrincipal(), usecase.CreateCustomerInput{
		BranchID: branch.ID,
		FullName: "  Alice Smith  ",
		Email:    " Alice@Example.COM ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Smith", got.FullName)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, entity.CustomerActive, got.Status)
	assert.False(t, got.RegistrationDate.IsZero())
}

func TestCustomerService_Create_SanitizesFreeText(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")

	got, err := f.uc.Create(context.Background(), managementTestPrincipal(), usecase.CreateCustomerInput{
		BranchID: branch.ID,
		FullName: `<script>alert("x")</script>`,
		Email:    "x@example.com",
	})
	require.NoError(t, err)
	assert.NotContains(t, got.FullName, "<script>")
	assert.Contains(t, got.FullName, "&lt;script&gt;")
}

func TestCustomerService_Create_StaffCrossBranch(t *testing.T) {
	f := newCustomerFixture(t)
	home := f.seedBranch(t, "Home")
	other := f.seedBranch(t, "Other")

	_, err := f.uc.Create(context.Background(), staffTestPrincipal(home.ID), usecase.CreateCustomerInput{
		BranchID: other.ID,
		FullName: "Alice",
		Email:    "alice@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrCrossBranchAccess)
}

func TestCustomerService_Create_UnknownBranch(t *testing.T) {
	f := newCustomerFixture(t)

	_, err := f.uc.Create(context.Background(), managementTestPrincipal(), usecase.CreateCustomerInput{
		BranchID: 999,
		FullName: "Alice",
		Email:    "alice@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrBranchNotFound)
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	f.seedCustomer(t, branch.ID, "Alice", "alice@example.com", entity.CustomerActive)

	_, err := f.uc.Create(context.Background(), managementTestPrincipal(), usecase.CreateCustomerInput{
		BranchID: branch.ID,
		FullName: "Other Alice",
		Email:    "alice@example.com",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailExists)
}

func TestCustomerService_Create_BadRegistrationDate(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")

	_, err := f.uc.Create(context.Background(), managementTestPrincipal(), usecase.CreateCustomerInput{
		BranchID:         branch.ID,
		FullName:         "Alice",
		Email:            "alice@example.com",
		RegistrationDate: "03/15/2024",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCustomerService_Update_PartialFields(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	customer := f.seedCustomer(t, branch.ID, "Alice", "alice@example.com", entity.CustomerActive)

	newStatus := "Inactive"
	got, err := f.uc.Update(context.Background(), managementTestPrincipal(), customer.ID, usecase.UpdateCustomerInput{
		Status: &newStatus,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CustomerInactive, got.Status)
	assert.Equal(t, "Alice", got.FullName)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestCustomerService_Update_EmailConflict(t *testing.T) {
	f := newCustomerFixture(t)
	branch := f.seedBranch(t, "Downtown")
	f.seedCustomer(t, branch.ID, "Alice", "alice@example.com", entity.CustomerActive)
	bob := f.seedCustomer(t, branch.ID, "Bob", "bob@example.com", entity.CustomerActive)

	taken := "alice@example.com"
	_, err := f.uc.Update(context.Background(), managementTestPrincipal(), bob.ID, usecase.UpdateCustomerInput{Email: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrEmailExists)

	// Re-submitting the customer's own email is not a conflict.
	own := "bob@example.com"
	_, err = f.uc.Update(context.Background(), managementTestPrincipal(), bob.ID, usecase.UpdateCustomerInput{Email: &own})
	assert.NoError(t, err)
}

func TestCustomerService_Update_StaffCannotMoveCrossBranch(t *testing.T) {
	f := newCustomerFixture(t)
	home := f.seedBranch(t, "Home")
	other := f.seedBranch(t, "Other")
	customer := f.seedCustomer(t, home.ID, "Alice", "alice@example.com", entity.CustomerActive)

	_, err := f.uc.Update(context.Background(), staffTestPrincipal(home.ID), customer.ID, usecase.UpdateCustomerInput{
		BranchID: &other.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrCrossBranchAccess)
}

func TestCustomerService_Delete_ScopedForStaff(t *testing.T) {
	f := newCustomerFixture(t)
	home := f.seedBranch(t, "Home")
	other := f.seedBranch(t, "Other")
	mine := f.seedCustomer(t, home.ID, "Mine", "mine@example.com", entity.CustomerActive)
	foreign := f.seedCustomer(t, other.ID, "Theirs", "theirs@example.com", entity.CustomerActive)

	err := f.uc.Delete(context.Background(), staffTestPrincipal(home.ID), foreign.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)

	require.NoError(t, f.uc.Delete(context.Background(), staffTestPrincipal(home.ID), mine.ID))

	_, err = f.uc.Get(context.Background(), managementTestPrincipal(), mine.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}
