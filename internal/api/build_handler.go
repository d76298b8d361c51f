package api

import (
	"context"
	"net/http"
	"sync"

	"BarInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BuildRunner runs one pipeline build.
type BuildRunner interface {
	Run(ctx context.Context) (*service.BuildResult, error)
}

type BuildHandler struct {
	runner BuildRunner
	logger *logrus.Logger
	mu     sync.Mutex // one build at a time
}

func NewBuildHandler(runner BuildRunner, logger *logrus.Logger) *BuildHandler {
	return &BuildHandler{runner: runner, logger: logger}
}

// TriggerBuild runs the pipeline synchronously and returns its summary.
// POST /api/build
func (h *BuildHandler) TriggerBuild(c *gin.Context) {
	if !h.mu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a build is already running"})
		return
	}
	defer h.mu.Unlock()

	res, err := h.runner.Run(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
