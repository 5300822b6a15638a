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

type branchFixture struct {
	branchRepo   *memBranchRepo
	staffRepo    *memStaffRepo
	customerRepo *memCustomerRepo
	uc           usecase.BranchUsecase
}

func newBranchFixture(t *testing.T) *branchFixture {
	t.Helper()

	f := &branchFixture{
		branchRepo:   newMemBranchRepo(),
		staffRepo:    newMemStaffRepo(),
		customerRepo: newMemCustomerRepo(),
	}
	txManager := &memTxManager{factory: &memFactory{
		branchRepo:   f.branchRepo,
		staffRepo:    f.staffRepo,
		customerRepo: f.customerRepo,
		userRepo:     newMemUserRepo(),
	}}
	f.uc = NewBranchService(f.branchRepo, txManager, discardLogger())

	return f
}

func TestBranchService_CreateAndGet(t *testing.T) {
	f := newBranchFixture(t)

	created, err := f.uc.Create(context.Background(), usecase.CreateBranchInput{
		Name:    "  Downtown  ",
		Address: "1 Main St",
		Phone:   "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Downtown", created.Name)

	got, err := f.uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestBranchService_Get_NotFound(t *testing.T) {
	f := newBranchFixture(t)

	_, err := f.uc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domainerrors.ErrBranchNotFound)
}

func TestBranchService_Update_PartialFields(t *testing.T) {
	f := newBranchFixture(t)

	created, err := f.uc.Create(context.Background(), usecase.CreateBranchInput{Name: "Downtown", Phone: "555-0100"})
	require.NoError(t, err)

	newName := "Uptown"
	got, err := f.uc.Update(context.Background(), created.ID, usecase.UpdateBranchInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Uptown", got.Name)
	assert.Equal(t, "555-0100", got.Phone)
}

func TestBranchService_Delete_EmptyBranch(t *testing.T) {
	f := newBranchFixture(t)

	created, err := f.uc.Create(context.Background(), usecase.CreateBranchInput{Name: "Downtown"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	_, err = f.uc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrBranchNotFound)
}

func TestBranchService_Delete_BlockedByStaff(t *testing.T) {
	f := newBranchFixture(t)

	created, err := f.uc.Create(context.Background(), usecase.CreateBranchInput{Name: "Downtown"})
	require.NoError(t, err)
	require.NoError(t, f.staffRepo.Create(context.Background(), &entity.Staff{
		BranchID: created.ID,
		Username: "cashier01",
		Role:     entity.RoleCashier,
	}))

	err = f.uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrBranchHasDependents)

	// The branch survives the rejected delete.
	_, err = f.uc.Get(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestBranchService_Delete_BlockedByCustomers(t *testing.T) {
	f := newBranchFixture(t)

	created, err := f.uc.Create(context.Background(), usecase.CreateBranchInput{Name: "Downtown"})
	require.NoError(t, err)
	require.NoError(t, f.customerRepo.Create(context.Background(), &entity.Customer{
		BranchID: created.ID,
		FullName: "Alice",
		Email:    "alice@example.com",
		Status:   entity.CustomerActive,
	}))

	err = f.uc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrBranchHasDependents)
}

func TestBranchService_Delete_NotFound(t *testing.T) {
	f := newBranchFixture(t)

	err := f.uc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, domainerrors.ErrBranchNotFound)
}
