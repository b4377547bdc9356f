package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tomnaj/todo-app/internal/cache"
	dom "github.com/tomnaj/todo-app/internal/domain"
	"github.com/tomnaj/todo-app/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrEmptyTitle    = errors.New("title must not be empty")
	ErrInvalidStatus = errors.New("status must be TODO, IN_PROGRESS or DONE")
)

// TaskService is the only layer that applies ownership scoping. Handlers
// pass the verified caller id; it is never taken from the request body.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

func (s *TaskService) Create(ctx context.Context, userID, title, desc string, status dom.Status) (dom.Task, error) {
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}
	if status == "" {
		status = dom.StatusTodo
	}
	if !status.Valid() {
		return dom.Task{}, ErrInvalidStatus
	}

	t, err := s.repo.Create(ctx, dom.Task{
		UserID:      userID,
		Title:       title,
		Description: desc,
		Status:      status,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]dom.Task, error) {
	if s.cache != nil {
		key := "list:" + userID
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Task), nil
	}
	return s.repo.List(ctx, userID)
}

func (s *TaskService) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// Update applies a partial update: nil fields keep their current value.
// The existence+ownership check is the same as GetByID, so a foreign
// task id yields ErrNotFound, never a hint that the task exists.
func (s *TaskService) Update(ctx context.Context, userID, id string, title, desc *string, status *dom.Status) (dom.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	patch := existing
	if title != nil {
		patch.Title = strings.TrimSpace(*title)
		if patch.Title == "" {
			return dom.Task{}, ErrEmptyTitle
		}
	}
	if desc != nil {
		patch.Description = strings.TrimSpace(*desc)
	}
	if status != nil {
		if !status.Valid() {
			return dom.Task{}, ErrInvalidStatus
		}
		patch.Status = *status
	}
	t, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userID)
	}
}
