package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/beankit/bean"
	"github.com/kbukum/beankit/component"
	apperrors "github.com/kbukum/beankit/errors"
	"github.com/kbukum/beankit/version"
)

// Beans is the read-only view of a container the admin surface needs.
type Beans interface {
	Snapshot() []bean.Info
	Lookup(name string) (bean.Info, bool)
}

// HealthChecker returns the health of registered components.
type HealthChecker func(ctx context.Context) []component.Health

// DataResponse is the success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// respondWithError derives status and body from an AppError, or sends a
// generic 500 for anything else.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// healthHandler reports service health including component statuses.
func healthHandler(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := component.StatusHealthy
		var components []component.Health

		if checker != nil {
			components = checker(c.Request.Context())
			for _, ch := range components {
				if ch.Status == component.StatusUnhealthy {
					status = component.StatusUnhealthy
					break
				}
				if ch.Status == component.StatusDegraded {
					status = component.StatusDegraded
				}
			}
		}

		httpStatus := http.StatusOK
		if status == component.StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}

func listBeansHandler(beans Beans) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondOK(c, beans.Snapshot())
	}
}

func getBeanHandler(beans Beans) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("type")
		info, ok := beans.Lookup(name)
		if !ok {
			respondWithError(c, apperrors.NotFound("bean", name))
			return
		}
		respondOK(c, info)
	}
}

func versionHandler(c *gin.Context) {
	respondOK(c, version.Get())
}
