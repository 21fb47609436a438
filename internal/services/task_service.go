package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mkravets/taskdeck/internal/models"
	"github.com/mkravets/taskdeck/internal/taskview"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	clock  taskview.Clock
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	clock taskview.Clock,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
		clock:  clock,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if !models.KnownPriority(params.Priority) {
		return nil, ErrInvalidTaskPriority
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:           taskUUID.String(),
		UserID:       params.UserID,
		Description:  params.Description,
		Priority:     params.Priority,
		DueDate:      params.DueDate,
		ProjectID:    params.ProjectID,
		AssignedToID: params.AssignedToID,
		ParentTaskID: params.ParentTaskID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   description,
                   completed,
                   priority,
                   due_date,
                   project_id,
                   assigned_to_id,
                   parent_task_id,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Description,
		task.Completed,
		task.Priority,
		task.DueDate,
		task.ProjectID,
		task.AssignedToID,
		task.ParentTaskID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

// snapshot loads the user's complete task set in creation order.
// The derived views recompute from scratch on every call; there is
// no incremental state to go stale.
func (s *taskServiceImpl) snapshot(ctx context.Context, userID string) ([]models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       description,
       completed,
       priority,
       due_date,
       project_id,
       assigned_to_id,
       parent_task_id,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at
`
	rows, err := s.pgPool.Query(ctx, selectTasksByUserIDQuery, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task := models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Description,
			&task.Completed,
			&task.Priority,
			&task.DueDate,
			&task.ProjectID,
			&task.AssignedToID,
			&task.ParentTaskID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("loaded task snapshot")
	return tasks, nil
}

func (s *taskServiceImpl) SortedTasks(ctx context.Context, userID string) ([]TaskView, error) {
	tasks, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sorted := taskview.SortedView(tasks)

	views := make([]TaskView, len(sorted))
	for i, task := range sorted {
		views[i] = TaskView{
			Task:   task,
			Status: taskview.Classify(task, now),
		}
	}

	s.logger.Info().
		Int("count", len(views)).
		Str("user_id", userID).
		Msg("computed sorted task view")
	return views, nil
}

func (s *taskServiceImpl) TaskSummary(ctx context.Context, userID string) (*TaskSummary, error) {
	tasks, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	summary := &TaskSummary{
		Total:     len(tasks),
		Reminders: taskview.ReminderCount(tasks, now),
		ByStatus:  make(map[string]int),
	}
	for _, task := range tasks {
		summary.ByStatus[taskview.Classify(task, now).String()]++
	}

	s.logger.Info().
		Int("total", summary.Total).
		Int("reminders", summary.Reminders).
		Str("user_id", userID).
		Msg("computed task summary")
	return summary, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if params.Priority != nil && !models.KnownPriority(*params.Priority) {
		return nil, ErrInvalidTaskPriority
	}

	task := models.Task{
		ID:        params.ID,
		UserID:    params.UserID,
		UpdatedAt: time.Now(),
	}

	const selectTaskQuery = `
SELECT description,
       completed,
       priority,
       due_date,
       project_id,
       assigned_to_id,
       parent_task_id,
       created_at
FROM tasks
WHERE id = $1 AND user_id = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Description,
		&task.Completed,
		&task.Priority,
		&task.DueDate,
		&task.ProjectID,
		&task.AssignedToID,
		&task.ParentTaskID,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to select task")
		return nil, err
	}

	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.ClearDueDate {
		task.DueDate = nil
	} else if params.DueDate != nil {
		task.DueDate = params.DueDate
	}
	if params.ProjectID != nil {
		task.ProjectID = params.ProjectID
	}
	if params.AssignedToID != nil {
		task.AssignedToID = params.AssignedToID
	}
	if params.ParentTaskID != nil {
		task.ParentTaskID = params.ParentTaskID
	}

	const updateTaskQuery = `
UPDATE tasks
SET description = $1,
    priority = $2,
    due_date = $3,
    project_id = $4,
    assigned_to_id = $5,
    parent_task_id = $6,
    updated_at = $7
WHERE id = $8 AND user_id = $9
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Description,
		task.Priority,
		task.DueDate,
		task.ProjectID,
		task.AssignedToID,
		task.ParentTaskID,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return &task, nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	task := models.Task{
		ID:        taskID,
		UserID:    userID,
		Completed: true,
		UpdatedAt: time.Now(),
	}

	const completeTaskQuery = `
UPDATE tasks
SET completed = TRUE,
    updated_at = $1
WHERE id = $2 AND user_id = $3
RETURNING description, priority, due_date, project_id, assigned_to_id, parent_task_id, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		completeTaskQuery,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	).Scan(
		&task.Description,
		&task.Priority,
		&task.DueDate,
		&task.ProjectID,
		&task.AssignedToID,
		&task.ParentTaskID,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to complete task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("completed task")
	return &task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID, userID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}
