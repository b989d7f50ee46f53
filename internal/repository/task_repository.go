package repository

import (
	"github.com/rambackend/user-tasks-api/internal/database"
	"github.com/rambackend/user-tasks-api/internal/models"
	"github.com/rambackend/user-tasks-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderableColumns whitelists the columns GET /task/ may sort by. The order_by
// query parameter is interpolated into SQL, so anything else falls back to id.
var orderableColumns = map[string]struct{}{
	"id":           {},
	"name":         {},
	"task_type":    {},
	"status":       {},
	"created_at":   {},
	"completed_at": {},
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit("AssignedUsers").Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves a page of tasks ordered by the filter's column. A page past
// the end of the result set yields an empty slice, not an error.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	orderBy := filter.OrderBy
	if _, ok := orderableColumns[orderBy]; !ok {
		orderBy = "id"
	}

	params := utils.PaginationParams{
		Page:   filter.Page,
		Limit:  filter.PageSize,
		Offset: (filter.Page - 1) * filter.PageSize,
	}

	var tasks []models.Task
	err := r.db.
		Preload("AssignedUsers").
		Order(orderBy).
		Scopes(database.Paginate(params)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// AssignUsers adds the given users to the task's assigned set. The insert
// carries an ON CONFLICT DO NOTHING clause so the union happens atomically in
// the store instead of through a read-modify-write cycle.
func (r *GormTaskRepository) AssignUsers(taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID: taskID,
			UserID: userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

// CountUsersByIDs counts how many of the given user IDs exist
func (r *GormTaskRepository) CountUsersByIDs(userIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id IN ?", userIDs).
		Count(&count).Error
	return count, err
}
