package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	BranchRepo() BranchRepository
	StaffRepo() StaffRepository
	CustomerRepo() CustomerRepository
	UserRepo() UserRepository
}

// TransactionManager runs a unit of work inside a single database
// transaction. Multi-step writes whose checks must hold atomically (the
// branch delete guard, username uniqueness on account creation) go through
// Execute; single statements use the plain repositories.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
