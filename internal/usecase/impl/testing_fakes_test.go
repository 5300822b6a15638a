package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"crm/internal/domain/entity"
	"crm/internal/domain/repository"
)

// In-memory repository fakes. They honor the same contracts as the postgres
// implementations (sentinel errors, ID assignment, newest-first ordering) so
// the services under test cannot tell the difference.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository ---

type memUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u

		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	hash := stored.PasswordHash
	copied := *user
	if copied.PasswordHash == "" {
		copied.PasswordHash = hash
	}
	r.users[user.ID] = &copied

	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// --- staff repository ---

type memStaffRepo struct {
	staff  map[int64]*entity.Staff
	nextID int64
}

func newMemStaffRepo() *memStaffRepo {
	return &memStaffRepo{staff: make(map[int64]*entity.Staff)}
}

func (r *memStaffRepo) FindByID(_ context.Context, id int64) (*entity.Staff, error) {
	if s, ok := r.staff[id]; ok {
		copied := *s

		return &copied, nil
	}

	return nil, repository.ErrStaffNotFound
}

func (r *memStaffRepo) FindByUsername(_ context.Context, username string) (*entity.Staff, error) {
	for _, s := range r.staff {
		if s.Username == username {
			copied := *s

			return &copied, nil
		}
	}

	return nil, repository.ErrStaffNotFound
}

func (r *memStaffRepo) List(_ context.Context) ([]*entity.Staff, error) {
	out := make([]*entity.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r *memStaffRepo) Create(_ context.Context, staff *entity.Staff) error {
	r.nextID++
	staff.ID = r.nextID
	staff.CreatedAt = time.Now()
	copied := *staff
	r.staff[staff.ID] = &copied

	return nil
}

func (r *memStaffRepo) Update(_ context.Context, staff *entity.Staff) error {
	stored, ok := r.staff[staff.ID]
	if !ok {
		return repository.ErrStaffNotFound
	}
	hash := stored.PasswordHash
	copied := *staff
	if copied.PasswordHash == "" {
		copied.PasswordHash = hash
	}
	r.staff[staff.ID] = &copied

	return nil
}

func (r *memStaffRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.staff[id]; !ok {
		return repository.ErrStaffNotFound
	}
	delete(r.staff, id)

	return nil
}

func (r *memStaffRepo) Count(_ context.Context, branchID *int64) (int64, error) {
	var count int64
	for _, s := range r.staff {
		if branchID == nil || s.BranchID == *branchID {
			count++
		}
	}

	return count, nil
}

// --- branch repository ---

type memBranchRepo struct {
	branches map[int64]*entity.Branch
	nextID   int64
}

func newMemBranchRepo() *memBranchRepo {
	return &memBranchRepo{branches: make(map[int64]*entity.Branch)}
}

func (r *memBranchRepo) FindByID(_ context.Context, id int64) (*entity.Branch, error) {
	if b, ok := r.branches[id]; ok {
		copied := *b

		return &copied, nil
	}

	return nil, repository.ErrBranchNotFound
}

func (r *memBranchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r *memBranchRepo) Create(_ context.Context, branch *entity.Branch) error {
	r.nextID++
	branch.ID = r.nextID
	branch.CreatedAt = time.Now()
	copied := *branch
	r.branches[branch.ID] = &copied

	return nil
}

func (r *memBranchRepo) Update(_ context.Context, branch *entity.Branch) error {
	if _, ok := r.branches[branch.ID]; !ok {
		return repository.ErrBranchNotFound
	}
	copied := *branch
	r.branches[branch.ID] = &copied

	return nil
}

func (r *memBranchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.branches[id]; !ok {
		return repository.ErrBranchNotFound
	}
	delete(r.branches, id)

	return nil
}

func (r *memBranchRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.branches)), nil
}

func (r *memBranchRepo) Stats(_ context.Context) ([]*entity.BranchStats, error) {
	out := make([]*entity.BranchStats, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, &entity.BranchStats{BranchID: b.ID, BranchName: b.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BranchID > out[j].BranchID })

	return out, nil
}

// --- customer repository ---

type memCustomerRepo struct {
	customers map[int64]*entity.Customer
	nextID    int64
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[int64]*entity.Customer)}
}

func (r *memCustomerRepo) matches(c *entity.Customer, filter repository.CustomerFilter) bool {
	if filter.BranchID != nil && c.BranchID != *filter.BranchID {
		return false
	}
	if filter.Status != nil && c.Status != *filter.Status {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystacks := []string{c.FullName, c.PhoneNumber, c.Code, c.Address, c.Email}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				found = true

				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (r *memCustomerRepo) filtered(filter repository.CustomerFilter) []*entity.Customer {
	out := make([]*entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if r.matches(c, filter) {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out
}

func (r *memCustomerRepo) FindByID(_ context.Context, id int64, branchScope *int64) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	if branchScope != nil && c.BranchID != *branchScope {
		return nil, repository.ErrCustomerNotFound
	}
	copied := *c

	return &copied, nil
}

func (r *memCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			copied := *c

			return &copied, nil
		}
	}

	return nil, repository.ErrCustomerNotFound
}

func (r *memCustomerRepo) List(_ context.Context, filter repository.CustomerFilter, offset, limit int) ([]*entity.Customer, error) {
	all := r.filtered(filter)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}

func (r *memCustomerRepo) Count(_ context.Context, filter repository.CustomerFilter) (int64, error) {
	return int64(len(r.filtered(filter))), nil
}

func (r *memCustomerRepo) Recent(_ context.Context, branchScope *int64, limit int) ([]*entity.Customer, error) {
	all := r.filtered(repository.CustomerFilter{BranchID: branchScope})
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if limit < len(all) {
		all = all[:limit]
	}

	return all, nil
}

func (r *memCustomerRepo) RegistrationTrends(_ context.Context, months int) ([]*entity.RegistrationTrend, error) {
	cutoff := time.Now().AddDate(0, -months, 0)
	counts := make(map[string]int64)
	for _, c := range r.customers {
		if c.RegistrationDate.Before(cutoff) {
			continue
		}
		counts[c.RegistrationDate.Format("2006-01")]++
	}

	out := make([]*entity.RegistrationTrend, 0, len(counts))
	for month, count := range counts {
		out = append(out, &entity.RegistrationTrend{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })

	return out, nil
}

func (r *memCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.nextID++
	customer.ID = r.nextID
	customer.CreatedAt = time.Now()
	copied := *customer
	r.customers[customer.ID] = &copied

	return nil
}

func (r *memCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	copied := *customer
	r.customers[customer.ID] = &copied

	return nil
}

func (r *memCustomerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(r.customers, id)

	return nil
}

// --- api key repository ---

// memAPIKeyRepo is mutex-guarded because the authenticate path touches the
// last-used timestamp from a background goroutine.
type memAPIKeyRepo struct {
	mu     sync.Mutex
	keys   map[int64]*entity.APIKey
	owners map[int64]*entity.User
	nextID int64
}

func newMemAPIKeyRepo() *memAPIKeyRepo {
	return &memAPIKeyRepo{
		keys:   make(map[int64]*entity.APIKey),
		owners: make(map[int64]*entity.User),
	}
}

func (r *memAPIKeyRepo) FindByHash(_ context.Context, keyHash string) (*entity.APIKey, *entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.keys {
		if k.KeyHash == keyHash && k.IsActive {
			key := *k
			owner := *r.owners[k.UserID]

			return &key, &owner, nil
		}
	}

	return nil, nil, repository.ErrAPIKeyNotFound
}

func (r *memAPIKeyRepo) FindByID(_ context.Context, id int64) (*entity.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if k, ok := r.keys[id]; ok {
		copied := *k

		return &copied, nil
	}

	return nil, repository.ErrAPIKeyNotFound
}

func (r *memAPIKeyRepo) List(_ context.Context) ([]*entity.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.APIKey, 0, len(r.keys))
	for _, k := range r.keys {
		copied := *k
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	return out, nil
}

func (r *memAPIKeyRepo) Create(_ context.Context, key *entity.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	key.ID = r.nextID
	key.CreatedAt = time.Now()
	copied := *key
	r.keys[key.ID] = &copied

	return nil
}

func (r *memAPIKeyRepo) Revoke(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.keys[id]
	if !ok {
		return repository.ErrAPIKeyNotFound
	}
	k.IsActive = false

	return nil
}

func (r *memAPIKeyRepo) TouchLastUsed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.keys[id]
	if !ok {
		return repository.ErrAPIKeyNotFound
	}
	now := time.Now()
	k.LastUsedAt = &now

	return nil
}

// --- transaction manager ---

type memFactory struct {
	branchRepo   repository.BranchRepository
	staffRepo    repository.StaffRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

func (f *memFactory) BranchRepo() repository.BranchRepository     { return f.branchRepo }
func (f *memFactory) StaffRepo() repository.StaffRepository       { return f.staffRepo }
func (f *memFactory) CustomerRepo() repository.CustomerRepository { return f.customerRepo }
func (f *memFactory) UserRepo() repository.UserRepository         { return f.userRepo }

// memTxManager runs the unit of work directly against the shared fakes.
// There is no rollback; tests assert on end state only.
type memTxManager struct {
	factory *memFactory
}

func (tm *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}
