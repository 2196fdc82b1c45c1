// Package memory is a process-local implementation of the repositories,
// used for demo mode (STORAGE=memory) and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"acservice/internal/model"
	"acservice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrDuplicatePhone matches repository.ErrDuplicate
var ErrDuplicatePhone = fmt.Errorf("%w: idx_users_phone", repository.ErrDuplicate)

// Store keeps users, complaints and audit entries in maps guarded by one lock
type Store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]model.User
	complaints map[uuid.UUID]model.Complaint
	audit      []model.AuditLog
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]model.User),
		complaints: make(map[uuid.UUID]model.Complaint),
		now:        time.Now,
	}
}

// Repositories bound to this store
func (s *Store) Users() repository.UserRepository            { return userRepo{s} }
func (s *Store) Complaints() repository.ComplaintRepository  { return complaintRepo{s} }
func (s *Store) Audit() repository.AuditRepository           { return auditRepo{s} }
func (s *Store) Statistics() repository.StatisticsRepository { return statsRepo{s} }
func (s *Store) TxManager() repository.TransactionManager    { return txManager{} }

// txManager runs fn directly; the memory store has no rollback.
type txManager struct{}

func (txManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Phone == user.Phone {
			return ErrDuplicatePhone
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Phone == phone {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepo) List(_ context.Context) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r userRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r userRepo) Update(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, u := range r.s.users {
		if id != user.ID && u.Phone == user.Phone {
			return ErrDuplicatePhone
		}
	}
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

func (r userRepo) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[uid]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, uid)
	// mirror ON DELETE SET NULL
	for cid, c := range r.s.complaints {
		c.AssignedToID = clearRef(c.AssignedToID, uid)
		c.CreatedByID = clearRef(c.CreatedByID, uid)
		c.UpdatedByID = clearRef(c.UpdatedByID, uid)
		r.s.complaints[cid] = c
	}
	return nil
}

func clearRef(ref *uuid.UUID, id uuid.UUID) *uuid.UUID {
	if ref != nil && *ref == id {
		return nil
	}
	return ref
}

// --- complaints ---

type complaintRepo struct{ s *Store }

func (r complaintRepo) Create(_ context.Context, c *model.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := c.BeforeCreate(nil); err != nil {
		return err
	}
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.complaints[c.ID] = stripRefs(*c)
	return nil
}

func (r complaintRepo) GetByID(_ context.Context, id string) (*model.Complaint, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.complaints[cid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r.s.withUsers(c)
	return &out, nil
}

func (r complaintRepo) List(_ context.Context, filter repository.ComplaintFilter) ([]model.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Complaint, 0, len(r.s.complaints))
	for _, c := range r.s.complaints {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && c.Priority != filter.Priority {
			continue
		}
		if filter.Participant != "" && !isParticipant(c, filter.Participant) {
			continue
		}
		out = append(out, r.s.withUsers(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r complaintRepo) Update(_ context.Context, c *model.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.complaints[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = r.s.now()
	r.s.complaints[c.ID] = stripRefs(*c)
	return nil
}

func isParticipant(c model.Complaint, userID string) bool {
	return (c.AssignedToID != nil && c.AssignedToID.String() == userID) ||
		(c.CreatedByID != nil && c.CreatedByID.String() == userID)
}

// stripRefs stores only foreign keys, like the database row
func stripRefs(c model.Complaint) model.Complaint {
	c.AssignedTo, c.CreatedBy, c.UpdatedBy = nil, nil, nil
	c.PartsReplaced = append([]string(nil), c.PartsReplaced...)
	return c
}

// withUsers resolves the user references the way Preload does. Caller holds the lock.
func (s *Store) withUsers(c model.Complaint) model.Complaint {
	c.AssignedTo = s.userRef(c.AssignedToID)
	c.CreatedBy = s.userRef(c.CreatedByID)
	c.UpdatedBy = s.userRef(c.UpdatedByID)
	c.PartsReplaced = append([]string{}, c.PartsReplaced...)
	return c
}

func (s *Store) userRef(id *uuid.UUID) *model.User {
	if id == nil {
		return nil
	}
	u, ok := s.users[*id]
	if !ok {
		return nil
	}
	return &u
}

// --- audit ---

type auditRepo struct{ s *Store }

func (r auditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = r.s.now()
	e := *entry
	e.User = nil
	r.s.audit = append(r.s.audit, e)
	return nil
}

func (r auditRepo) List(_ context.Context, entityID string, offset, limit int) ([]model.AuditLog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []model.AuditLog
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		e := r.s.audit[i]
		if entityID != "" && e.EntityID != entityID {
			continue
		}
		e.User = r.s.userRef(e.UserID)
		matched = append(matched, e)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// --- statistics ---

type statsRepo struct{ s *Store }

func (r statsRepo) GetDashboard(_ context.Context) (model.DashboardStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stats := model.DashboardStats{
		TotalUsers:      int64(len(r.s.users)),
		TotalComplaints: int64(len(r.s.complaints)),
		TotalRevenue:    decimal.Zero,
		PendingPayments: decimal.Zero,
	}
	for _, c := range r.s.complaints {
		if c.Status.Active() {
			stats.OpenComplaints++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(c.Payment.Collected())
		stats.PendingPayments = stats.PendingPayments.Add(c.Payment.BalanceAmount)
	}
	return stats, nil
}
