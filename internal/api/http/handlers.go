package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsbrowser/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fsbrowser/internal/shared/types"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// HealthChecker reports the accessor's serving state
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// Handlers contains the gateway's HTTP handlers
type Handlers struct {
	accessor types.FileAccessor
	health   HealthChecker
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates a handler set around an accessor. health and metrics
// may be nil.
func NewHandlers(accessor types.FileAccessor, health HealthChecker, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		accessor: accessor,
		health:   health,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "fsbrowser gateway",
		"version": Version,
	})
}

// Health reports gateway and accessor health
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{"status": "healthy"}
	code := http.StatusOK

	if h.health != nil {
		state, err := h.health.Health(c.Request.Context())
		switch {
		case err != nil:
			body["status"] = "degraded"
			body["accessor"] = gin.H{"status": "UNREACHABLE", "error": err.Error()}
			code = http.StatusServiceUnavailable
		case state != "SERVING":
			body["status"] = "degraded"
			body["accessor"] = gin.H{"status": state}
			code = http.StatusServiceUnavailable
		default:
			body["accessor"] = gin.H{"status": state}
		}
	}

	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}

	c.JSON(code, body)
}

// MetricsJSON reports request totals as JSON
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// ListFiles handles GET /api/files/list?path=
func (h *Handlers) ListFiles(c *gin.Context) {
	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, "path", err.Error())
		return
	}

	res, err := h.accessor.ListDirectory(c.Request.Context(), q.Path)
	if err != nil {
		h.hardFailure(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, entriesPayload(res))
}

// ReadFile handles GET /api/files/read?path=. The path parameter is required;
// an explicitly empty value addresses the root.
func (h *Handlers) ReadFile(c *gin.Context) {
	path, ok := c.GetQuery("path")
	if !ok {
		validationError(c, "path", "field required")
		return
	}

	res, err := h.accessor.ReadFile(c.Request.Context(), path)
	if err != nil {
		h.hardFailure(c, "read", err)
		return
	}
	c.JSON(http.StatusOK, res.Payload())
}

// WalkFiles handles GET /api/files/walk?path=&max_depth=
func (h *Handlers) WalkFiles(c *gin.Context) {
	var q types.WalkQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, "max_depth", err.Error())
		return
	}

	res, err := h.accessor.Walk(c.Request.Context(), q.Path, q.MaxDepth)
	if err != nil {
		h.hardFailure(c, "walk", err)
		return
	}
	c.JSON(http.StatusOK, entriesPayload(res))
}

// GlobFiles handles GET /api/files/glob?pattern=
func (h *Handlers) GlobFiles(c *gin.Context) {
	var q types.GlobQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationError(c, "pattern", "field required")
		return
	}

	res, err := h.accessor.Glob(c.Request.Context(), q.Pattern)
	if err != nil {
		h.hardFailure(c, "glob", err)
		return
	}
	c.JSON(http.StatusOK, entriesPayload(res))
}

// hardFailure answers 500 with the failure's message in detail
func (h *Handlers) hardFailure(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	h.logger.Warn("Accessor call failed",
		zap.String("op", op),
		zap.String("query", c.Request.URL.RawQuery),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}

// validationError answers 422 in the shape browsers of the API already parse
func validationError(c *gin.Context, field, msg string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []gin.H{{
			"loc":  []string{"query", field},
			"msg":  msg,
			"type": "value_error",
		}},
	})
}

func entriesPayload(res types.Result[[]types.Entry]) interface{} {
	if !res.IsSoftError() && res.Value() == nil {
		return []types.Entry{}
	}
	return res.Payload()
}
