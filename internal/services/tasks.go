package services

import (
	"errors"

	"taskflow/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotTaskOwner = errors.New("not authorized to access this task")
)

// TaskPatch carries the fields of a task update; nil fields are left as-is.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

type TaskService interface {
	CreateTask(db *gorm.DB, ownerID uuid.UUID, title, description, status string) (models.Task, error)
	GetTasksByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error)
	UpdateTask(db *gorm.DB, id, callerID uuid.UUID, patch TaskPatch) (models.Task, error)
	DeleteTask(db *gorm.DB, id, callerID uuid.UUID) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, ownerID uuid.UUID, title, description, status string) (models.Task, error) {
	if status == "" {
		status = models.StatusPending
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Status:      status,
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	if err := db.Create(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) GetTasksByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	tasks := []models.Task{}
	err := db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask fetches the task first: a missing id fails with ErrTaskNotFound
// before ownership is considered, so existence is revealed but mutation is
// owner-only. The fetch and the write are separate store calls; concurrent
// updates interleave last-write-wins.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id, callerID uuid.UUID, patch TaskPatch) (models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if task.UserID != callerID {
		return models.Task{}, ErrNotTaskOwner
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	if err := db.Save(&task).Error; err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask uses the same existence-then-ownership sequence as UpdateTask.
func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id, callerID uuid.UUID) error {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if task.UserID != callerID {
		return ErrNotTaskOwner
	}

	return db.Delete(&task).Error
}
