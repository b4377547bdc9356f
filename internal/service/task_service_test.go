package service

import (
	"context"
	"testing"

	dom "github.com/tomnaj/todo-app/internal/domain"
	"github.com/tomnaj/todo-app/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

func newTaskService() *TaskService {
	return NewTaskService(repo.NewMemTaskRepo(), nil)
}

func TestCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, alice, "  Buy milk  ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, dom.StatusTodo, task.Status)
	assert.Equal(t, alice, task.UserID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestCreate_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	_, err := svc.Create(ctx, alice, "   ", "", "")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestCreate_BadStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	_, err := svc.Create(ctx, alice, "x", "", dom.Status("LATER"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetByID_OwnershipScoped(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, alice, "Buy milk", "", "")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, alice, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	// Another user's id must look exactly like a missing task.
	_, errOther := svc.GetByID(ctx, bob, task.ID)
	_, errMissing := svc.GetByID(ctx, alice, "no-such-id")
	assert.ErrorIs(t, errOther, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errMissing, errOther)
}

func TestList_ScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	first, err := svc.Create(ctx, alice, "first", "", "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice, "second", "", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, "bob's", "", "")
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	for _, item := range list {
		assert.Equal(t, alice, item.UserID)
	}
}

func TestUpdate_Partial(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, alice, "Buy milk", "2 liters", "")
	require.NoError(t, err)

	done := dom.StatusDone
	updated, err := svc.Update(ctx, alice, task.ID, nil, nil, &done)
	require.NoError(t, err)

	assert.Equal(t, dom.StatusDone, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title, "unsupplied fields unchanged")
	assert.Equal(t, "2 liters", updated.Description)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt), "updated_at strictly increases")
}

func TestUpdate_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, alice, "Buy milk", "", "")
	require.NoError(t, err)

	empty := "  "
	_, err = svc.Update(ctx, alice, task.ID, &empty, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	bad := dom.Status("SOMEDAY")
	_, err = svc.Update(ctx, alice, task.ID, nil, nil, &bad)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_NotOwned(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, alice, "Buy milk", "", "")
	require.NoError(t, err)

	title := "stolen"
	_, err = svc.Update(ctx, bob, task.ID, &title, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTaskService()

	task, err := svc.Create(ctx, alice, "Buy milk", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, task.ID), ErrNotFound)

	require.NoError(t, svc.Delete(ctx, alice, task.ID))
	_, err = svc.GetByID(ctx, alice, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, alice, task.ID), ErrNotFound)
}
