package repo

import (
	"context"

	dom "github.com/tomnaj/todo-app/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepo provides task persistence. Every query is keyed by the owning
// user id so a task is never reachable through another user's calls.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id string) (dom.Task, error)
	List(ctx context.Context, userID string) ([]dom.Task, error)
	Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, description, status, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, uuid.NewString(), t.UserID, t.Title, t.Description, t.Status).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.Status,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, created_at, updated_at
		FROM tasks WHERE id = $1 AND user_id = $2`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) List(ctx context.Context, userID string) ([]dom.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, created_at, updated_at
		FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error) {
	// clock_timestamp() instead of NOW() so updated_at strictly increases
	// even inside a single transaction.
	query := `
		UPDATE tasks SET title = $3, description = $4, status = $5, updated_at = clock_timestamp()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, description, status, created_at, updated_at`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, userID, patch.Title, patch.Description, patch.Status).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Delete removes the task. Returns pgx.ErrNoRows when no row matched,
// so not-found and not-owned collapse into the same error.
func (r *PGTaskRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
