package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/taskdeck/internal/models"
	"github.com/mkravets/taskdeck/internal/realtime"
	"github.com/mkravets/taskdeck/internal/services"
)

type taskResponse struct {
	ID           string     `json:"id"`
	Description  string     `json:"description"`
	Completed    bool       `json:"completed"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       string     `json:"status,omitempty"`
	ProjectID    *string    `json:"project_id,omitempty"`
	AssignedToID *string    `json:"assigned_to_id,omitempty"`
	ParentTaskID *string    `json:"parent_task_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:           task.ID,
		Description:  task.Description,
		Completed:    task.Completed,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		ProjectID:    task.ProjectID,
		AssignedToID: task.AssignedToID,
		ParentTaskID: task.ParentTaskID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// parseDueDate accepts RFC 3339 or a plain date. Anything else is
// treated as absent rather than rejected, so a garbled due date
// degrades to "no due date" instead of failing the request.
func parseDueDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t
	}
	return nil
}

type createTaskRequest struct {
	Description  string  `json:"description" binding:"required,max=1024"`
	Priority     string  `json:"priority" binding:"required"`
	DueDate      string  `json:"due_date,omitempty"`
	ProjectID    *string `json:"project_id,omitempty"`
	AssignedToID *string `json:"assigned_to_id,omitempty"`
	ParentTaskID *string `json:"parent_task_id,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:       userID,
		Description:  req.Description,
		Priority:     req.Priority,
		DueDate:      parseDueDate(req.DueDate),
		ProjectID:    req.ProjectID,
		AssignedToID: req.AssignedToID,
		ParentTaskID: req.ParentTaskID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newBadRequestError(services.ErrInvalidTaskPriority.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventTasksChanged})
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	views, err := h.tasks.SortedTasks(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch sorted tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]taskResponse, len(views))
	for i, view := range views {
		response[i] = newTaskResponse(&view.Task)
		response[i].Status = view.Status.String()
	}

	c.JSON(http.StatusOK, response)
}

type taskSummaryResponse struct {
	Total     int            `json:"total"`
	Reminders int            `json:"reminders"`
	ByStatus  map[string]int `json:"by_status"`
}

func (h *handlerImpl) HandleGetTaskSummary(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	summary, err := h.tasks.TaskSummary(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to compute task summary")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, taskSummaryResponse{
		Total:     summary.Total,
		Reminders: summary.Reminders,
		ByStatus:  summary.ByStatus,
	})
}

type updateTaskRequest struct {
	Description  *string `json:"description,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	ProjectID    *string `json:"project_id,omitempty"`
	AssignedToID *string `json:"assigned_to_id,omitempty"`
	ParentTaskID *string `json:"parent_task_id,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Warn().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.UpdateTaskParams{
		ID:           taskID,
		UserID:       userID,
		Description:  req.Description,
		Priority:     req.Priority,
		ProjectID:    req.ProjectID,
		AssignedToID: req.AssignedToID,
		ParentTaskID: req.ParentTaskID,
	}
	if req.DueDate != nil {
		// An explicit empty string clears the due date; a garbled
		// value degrades to absent the same way.
		params.DueDate = parseDueDate(*req.DueDate)
		params.ClearDueDate = params.DueDate == nil
	}

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrInvalidTaskPriority):
			abort(c, newBadRequestError(services.ErrInvalidTaskPriority.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventTasksChanged})
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Warn().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	task, err := h.tasks.CompleteTask(c, taskID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to complete task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventTasksChanged})
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Warn().Msg("no task id provided")
		abort(c, newBadRequestError("no task id provided"))
		return
	}

	err := h.tasks.DeleteTask(c, taskID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	h.hub.Notify(userID, realtime.Event{Type: realtime.EventTasksChanged})
	c.Status(http.StatusNoContent)
}
