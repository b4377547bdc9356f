package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/tomnaj/todo-app/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory implementations of UserRepo and TaskRepo. They return the
// same sentinel errors as the Postgres ones (pgx.ErrNoRows, PgError
// 23505) so services behave identically against either backend.

type MemUserRepo struct {
	mu    sync.RWMutex
	users map[string]dom.User // keyed by email
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{users: make(map[string]dom.User)}
}

func (r *MemUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *MemUserRepo) Create(ctx context.Context, email, name, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	u := dom.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[email] = u
	return u, nil
}

type MemTaskRepo struct {
	mu    sync.RWMutex
	tasks map[string]dom.Task // keyed by task id
}

func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{tasks: make(map[string]dom.Task)}
}

func (r *MemTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *MemTaskRepo) List(ctx context.Context, userID string) ([]dom.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []dom.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *MemTaskRepo) Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.Title = patch.Title
	t.Description = patch.Description
	t.Status = patch.Status
	t.UpdatedAt = time.Now().UTC()
	if !t.UpdatedAt.After(r.tasks[id].UpdatedAt) {
		// Clock granularity can make two writes land on the same tick.
		t.UpdatedAt = r.tasks[id].UpdatedAt.Add(time.Microsecond)
	}
	r.tasks[id] = t
	return t, nil
}

func (r *MemTaskRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}
