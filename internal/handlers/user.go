package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rambackend/user-tasks-api/internal/dto"
	apierrors "github.com/rambackend/user-tasks-api/internal/errors"
	"github.com/rambackend/user-tasks-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser handles POST /user/. The response never includes the password.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailRequired),
			errors.Is(err, services.ErrFirstNameRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserAlreadyExists):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create user")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// GetUserTasks handles GET /user/:user_id/tasks/. A missing user yields a
// 200 with an error body, matching the rest of the user-facing contract.
func (h *UserHandler) GetUserTasks(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user_id")
		return
	}

	user, err := h.userService.GetUserTasks(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"error": "User not found"})
			return
		}
		apierrors.InternalError(c, "Failed to fetch user tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserTasksResponse(*user))
}
