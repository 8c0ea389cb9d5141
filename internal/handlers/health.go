package handlers

import (
	"net/http"

	"taskflow/internal/cache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewHealthHandler(db *gorm.DB, c cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "API is running...")
}

func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	cacheStatus := "up"
	if h.cache == nil {
		cacheStatus = "disabled"
	} else if h.cache.Health() != nil {
		cacheStatus = "down"
	}

	status := http.StatusOK
	if dbStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	resp := gin.H{
		"status":   "ok",
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	if h.cache != nil {
		resp["cache_stats"] = h.cache.Stats()
	}
	if status != http.StatusOK {
		resp["status"] = "degraded"
	}

	c.JSON(status, resp)
}
