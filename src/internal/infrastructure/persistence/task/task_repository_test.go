package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/jackyeh168/momentum/src/internal/domain/task"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence"
	taskstore "github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/task"
	"github.com/jackyeh168/momentum/src/internal/infrastructure/persistence/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seededAt = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTask(t *testing.T, name string, taskType task.TaskType, pts int, active bool) *task.Task {
	t.Helper()
	tk, err := task.NewTask(task.Definition{
		Name: name, Type: taskType, Points: pts, Active: active, Category: task.CategorySystem,
		Description: "desc of " + name,
	}, seededAt)
	require.NoError(t, err)
	return tk
}

func setup(t *testing.T) (*persistence.GORMTransactionManager, *taskstore.TaskRepositoryImpl) {
	t.Helper()
	db := testdb.Open(t)
	return persistence.NewGORMTransactionManager(db), taskstore.NewTaskRepository(db)
}

func save(t *testing.T, txManager *persistence.GORMTransactionManager, repo *taskstore.TaskRepositoryImpl, tasks ...*task.Task) {
	t.Helper()
	require.NoError(t, txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		for _, tk := range tasks {
			if err := repo.Save(tx, tk); err != nil {
				return err
			}
		}
		return nil
	}))
}

func TestTaskRepository_SaveAndFind_RoundTrip(t *testing.T) {
	// Arrange
	txManager, repo := setup(t)
	tk := newTask(t, "Complete your profile", task.TypeOneTime, 15, true)
	save(t, txManager, repo, tk)

	// Act
	byID, err := repo.FindByID(nil, tk.ID())
	require.NoError(t, err)
	byName, err := repo.FindByName(nil, "Complete your profile")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, tk.ID(), byID.ID())
	assert.Equal(t, task.TypeOneTime, byID.Type())
	assert.Equal(t, 15, byID.Points())
	assert.True(t, byID.IsActive())
	assert.Equal(t, task.CategorySystem, byID.Category())
	assert.Equal(t, "desc of Complete your profile", byID.Description())
	assert.Equal(t, tk.ID(), byName.ID())
}

func TestTaskRepository_Find_Missing_ReturnsNotFound(t *testing.T) {
	// Arrange
	_, repo := setup(t)

	// Act
	_, errByID := repo.FindByID(nil, task.NewTaskID())
	_, errByName := repo.FindByName(nil, "Nope")

	// Assert
	assert.ErrorIs(t, errByID, task.ErrTaskNotFound)
	assert.ErrorIs(t, errByName, task.ErrTaskNotFound)
}

func TestTaskRepository_Save_DuplicateName_ReturnsNameTaken(t *testing.T) {
	// Arrange
	txManager, repo := setup(t)
	save(t, txManager, repo, newTask(t, "Take a real break", task.TypeDaily, 4, true))

	// Act
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		return repo.Save(tx, newTask(t, "Take a real break", task.TypeDaily, 9, true))
	})

	// Assert
	assert.ErrorIs(t, err, task.ErrTaskNameTaken)
}

func TestTaskRepository_Save_PersistsFalseActive(t *testing.T) {
	// Arrange
	txManager, repo := setup(t)
	tk := newTask(t, "Retired task", task.TypeDaily, 3, false)

	// Act
	save(t, txManager, repo, tk)

	// Assert
	got, err := repo.FindByID(nil, tk.ID())
	require.NoError(t, err)
	assert.False(t, got.IsActive())
}

func TestTaskRepository_Update_PersistsFalseActive(t *testing.T) {
	// Arrange
	txManager, repo := setup(t)
	tk := newTask(t, "Say no to one thing", task.TypeDaily, 5, true)
	save(t, txManager, repo, tk)
	tk.ApplyDefinition(task.Definition{Name: tk.Name(), Type: task.TypeDaily, Points: 7, Active: false}, seededAt.Add(time.Hour))

	// Act
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		return repo.Update(tx, tk)
	})

	// Assert
	require.NoError(t, err)
	got, err := repo.FindByID(nil, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, 7, got.Points())
	assert.False(t, got.IsActive())
}

func TestTaskRepository_Update_Missing_ReturnsNotFound(t *testing.T) {
	// Arrange
	txManager, repo := setup(t)
	tk := newTask(t, "Ghost", task.TypeDaily, 5, true)

	// Act
	err := txManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		return repo.Update(tx, tk)
	})

	// Assert
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskRepository_FindActive_OrderedByNameAndFiltered(t *testing.T) {
	// Arrange
	txManager, repo := setup(t)
	save(t, txManager, repo,
		newTask(t, "Ship one small thing", task.TypeDaily, 15, true),
		newTask(t, "Define today's primary focus", task.TypeDaily, 10, true),
		newTask(t, "Retired task", task.TypeDaily, 3, false),
	)

	// Act
	active, err := repo.FindActive(nil)
	require.NoError(t, err)
	all, err := repo.FindAll(nil)
	require.NoError(t, err)

	// Assert
	require.Len(t, active, 2)
	assert.Equal(t, "Define today's primary focus", active[0].Name())
	assert.Equal(t, "Ship one small thing", active[1].Name())
	assert.Len(t, all, 3)
}
