package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rambackend/user-tasks-api/internal/database"
	"github.com/rambackend/user-tasks-api/internal/events"
	"github.com/rambackend/user-tasks-api/internal/models"
	"github.com/rambackend/user-tasks-api/internal/repository"
	"github.com/rambackend/user-tasks-api/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	userSvc *services.UserService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(database.MigrateDB(suite.db))
	database.SetDB(suite.db)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	bus := events.NewBus(logger)
	suite.userSvc = services.NewUserService(repository.NewUserRepository(suite.db), bus)
	taskSvc := services.NewTaskService(repository.NewTaskRepository(suite.db))
	handler := NewTaskHandler(taskSvc, bus)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.GET("/task/", handler.ListTasks)
	suite.router.POST("/task/", handler.CreateTask)
	suite.router.PATCH("/task/:task_id/assign/", handler.AssignTask)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user, err := suite.userSvc.CreateUser(context.Background(), services.CreateUserInput{
		FirstName: "Test",
		Email:     email,
	})
	suite.Require().NoError(err)
	return user
}

func (suite *TaskHandlerTestSuite) request(method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

// TestCreateTask_Success tests creating a task with only the required fields
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	w := suite.request("POST", "/task/", map[string]any{
		"name":        "Buy groceries",
		"description": "Milk and eggs",
		"task_type":   "errand",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Buy groceries", response["name"])
	assert.Equal(suite.T(), "Pending", response["status"])
	assert.Nil(suite.T(), response["completed_at"])
	assert.Empty(suite.T(), response["assigned_users"])
}

// TestCreateTask_MissingFields tests validation of the required fields
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingFields() {
	w := suite.request("POST", "/task/", map[string]any{
		"name": "Buy groceries",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("POST", "/task/", map[string]any{
		"description": "Milk and eggs",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_InvalidStatus tests rejection of an unknown status value
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidStatus() {
	w := suite.request("POST", "/task/", map[string]any{
		"name":        "Buy groceries",
		"description": "Milk and eggs",
		"status":      "Done",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_WithAssignees tests creating a task already assigned to users
func (suite *TaskHandlerTestSuite) TestCreateTask_WithAssignees() {
	user := suite.createTestUser("ram@example.com")

	w := suite.request("POST", "/task/", map[string]any{
		"name":           "Buy groceries",
		"description":    "Milk and eggs",
		"status":         "In Progress",
		"assigned_users": []uint64{user.ID},
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "In Progress", response["status"])

	assigned := response["assigned_users"].([]any)
	assert.Len(suite.T(), assigned, 1)
	assert.Equal(suite.T(), float64(user.ID), assigned[0])
}

// TestCreateTask_UnknownAssignee tests rejecting assignment to a missing user
func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	w := suite.request("POST", "/task/", map[string]any{
		"name":           "Buy groceries",
		"description":    "Milk and eggs",
		"assigned_users": []uint64{42},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_Empty tests listing with no tasks in the store
func (suite *TaskHandlerTestSuite) TestListTasks_Empty() {
	w := suite.request("GET", "/task/", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

// TestListTasks_PaginationAndOrder tests page, page_size and order_by
func (suite *TaskHandlerTestSuite) TestListTasks_PaginationAndOrder() {
	for _, name := range []string{"c-task", "a-task", "b-task"} {
		w := suite.request("POST", "/task/", map[string]any{
			"name":        name,
			"description": "desc",
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := suite.request("GET", "/task/?order_by=name", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 3)
	assert.Equal(suite.T(), "a-task", tasks[0]["name"])
	assert.Equal(suite.T(), "c-task", tasks[2]["name"])

	w = suite.request("GET", "/task/?order_by=name&page=2&page_size=2", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "c-task", tasks[0]["name"])

	// A page past the end is an empty list, not an error.
	w = suite.request("GET", "/task/?page=9", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

// TestAssignTask_Success tests the assignment endpoint response shape
func (suite *TaskHandlerTestSuite) TestAssignTask_Success() {
	ram := suite.createTestUser("ram@example.com")
	sita := suite.createTestUser("sita@example.com")

	w := suite.request("POST", "/task/", map[string]any{
		"name":        "Buy groceries",
		"description": "Milk and eggs",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	taskID := uint64(suite.decode(w)["id"].(float64))

	w = suite.request("PATCH", fmt.Sprintf("/task/%d/assign/", taskID), map[string]any{
		"assigned_users": []uint64{ram.ID, sita.ID},
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Buy groceries", response["name"])
	assert.Len(suite.T(), response["assigned_users"].([]any), 2)
}

// TestAssignTask_Idempotent tests that re-assigning the same users is a no-op
func (suite *TaskHandlerTestSuite) TestAssignTask_Idempotent() {
	ram := suite.createTestUser("ram@example.com")

	w := suite.request("POST", "/task/", map[string]any{
		"name":           "Buy groceries",
		"description":    "Milk and eggs",
		"assigned_users": []uint64{ram.ID},
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	taskID := uint64(suite.decode(w)["id"].(float64))

	for i := 0; i < 2; i++ {
		w = suite.request("PATCH", fmt.Sprintf("/task/%d/assign/", taskID), map[string]any{
			"assigned_users": []uint64{ram.ID},
		})
		assert.Equal(suite.T(), http.StatusOK, w.Code)
		assert.Len(suite.T(), suite.decode(w)["assigned_users"].([]any), 1)
	}
}

// TestAssignTask_TaskNotFound tests the 404 contract of the assign endpoint
func (suite *TaskHandlerTestSuite) TestAssignTask_TaskNotFound() {
	ram := suite.createTestUser("ram@example.com")

	w := suite.request("PATCH", "/task/999/assign/", map[string]any{
		"assigned_users": []uint64{ram.ID},
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "Task not found", suite.decode(w)["error"])
}

// TestAssignTask_UnknownUser tests rejecting assignment of missing users
func (suite *TaskHandlerTestSuite) TestAssignTask_UnknownUser() {
	w := suite.request("POST", "/task/", map[string]any{
		"name":        "Buy groceries",
		"description": "Milk and eggs",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	taskID := uint64(suite.decode(w)["id"].(float64))

	w = suite.request("PATCH", fmt.Sprintf("/task/%d/assign/", taskID), map[string]any{
		"assigned_users": []uint64{404},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestAssignTask_EmptyUserList tests that an empty id list is rejected
func (suite *TaskHandlerTestSuite) TestAssignTask_EmptyUserList() {
	w := suite.request("POST", "/task/", map[string]any{
		"name":        "Buy groceries",
		"description": "Milk and eggs",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	taskID := uint64(suite.decode(w)["id"].(float64))

	w = suite.request("PATCH", fmt.Sprintf("/task/%d/assign/", taskID), map[string]any{
		"assigned_users": []uint64{},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
