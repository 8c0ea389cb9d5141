package services

import (
	"fmt"
	"time"

	"taskflow/internal/cache"
	"taskflow/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ownerListTTL = 5 * time.Minute

// CachedTaskService decorates a TaskService with a per-owner list cache.
// Task lists are only ever read within one owner's scope, so the cache key is
// keyed by owner id and every write by that owner invalidates it.
type CachedTaskService struct {
	tasks TaskService
	cache cache.Cache
	sf    singleflight.Group
}

func NewCachedTaskService(tasks TaskService, c cache.Cache) *CachedTaskService {
	return &CachedTaskService{tasks: tasks, cache: c}
}

func ownerListKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("user_tasks:%s", ownerID.String())
}

func (s *CachedTaskService) CreateTask(db *gorm.DB, ownerID uuid.UUID, title, description, status string) (models.Task, error) {
	task, err := s.tasks.CreateTask(db, ownerID, title, description, status)
	if err != nil {
		return task, err
	}

	s.cache.Delete(ownerListKey(ownerID))
	return task, nil
}

// GetTasksByOwner serves from cache when possible. Concurrent misses for the
// same owner are collapsed into a single store read.
func (s *CachedTaskService) GetTasksByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	key := ownerListKey(ownerID)

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		var cached []models.Task
		if err := s.cache.Get(key, &cached); err == nil {
			return cached, nil
		}

		tasks, err := s.tasks.GetTasksByOwner(db, ownerID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, tasks, ownerListTTL)
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Task), nil
}

func (s *CachedTaskService) UpdateTask(db *gorm.DB, id, callerID uuid.UUID, patch TaskPatch) (models.Task, error) {
	task, err := s.tasks.UpdateTask(db, id, callerID, patch)
	if err != nil {
		return task, err
	}

	s.cache.Delete(ownerListKey(task.UserID))
	return task, nil
}

func (s *CachedTaskService) DeleteTask(db *gorm.DB, id, callerID uuid.UUID) error {
	if err := s.tasks.DeleteTask(db, id, callerID); err != nil {
		return err
	}

	// Ownership was already enforced, so the caller is the owner.
	s.cache.Delete(ownerListKey(callerID))
	return nil
}

func (s *CachedTaskService) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}
