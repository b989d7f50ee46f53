package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rambackend/user-tasks-api/internal/constants"
	"github.com/rambackend/user-tasks-api/internal/dto"
	apierrors "github.com/rambackend/user-tasks-api/internal/errors"
	"github.com/rambackend/user-tasks-api/internal/events"
	"github.com/rambackend/user-tasks-api/internal/services"
	"github.com/rambackend/user-tasks-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
	bus         *events.Bus
}

func NewTaskHandler(taskService *services.TaskService, bus *events.Bus) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		bus:         bus,
	}
}

// ListTasks handles GET /task/ with page, page_size and order_by parameters.
// An out-of-range page returns an empty list.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	orderBy := c.DefaultQuery("order_by", constants.DefaultOrderBy)

	tasks, err := h.taskService.ListTasks(params.Page, params.Limit, orderBy)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask handles POST /task/. A TaskCreated event fires on both outcomes
// so subscribers can observe failures too.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		TaskType:      req.TaskType,
		Status:        req.Status,
		AssignedUsers: req.AssignedUsers,
	})
	if err != nil {
		h.bus.Publish(c.Request.Context(), events.TaskCreated{
			Created: false,
			Err:     err.Error(),
		})

		switch {
		case errors.Is(err, services.ErrInvalidTaskStatus),
			errors.Is(err, services.ErrInvalidTaskAssignee):
			apierrors.BadRequest(c, err.Error())
		default:
			// The system this replaces answered 200 here; an internal
			// failure is a 500.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	taskDTO := dto.ToTaskDTO(*task)
	h.bus.Publish(c.Request.Context(), events.TaskCreated{
		Task:    &taskDTO,
		Created: true,
	})

	c.JSON(http.StatusCreated, taskDTO)
}

// AssignTask handles PATCH /task/:task_id/assign/. Assignment is additive:
// users already assigned stay assigned, duplicates are no-ops.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task_id")
		return
	}

	task, err := h.taskService.RetrieveTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch task")
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var req dto.AssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	updated, err := h.taskService.AssignUsers(task, req.AssignedUsers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUserIDsProvided),
			errors.Is(err, services.ErrInvalidTaskAssignee):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to assign users to task")
		}
		return
	}

	resp := dto.ToTaskAssignDTO(*updated)
	h.bus.Publish(c.Request.Context(), events.UserAssignedToTask{
		TaskName: updated.Name,
		UserIDs:  resp.AssignedUsers,
	})

	c.JSON(http.StatusOK, resp)
}
