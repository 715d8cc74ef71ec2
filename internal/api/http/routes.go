package http

import "github.com/gin-gonic/gin"

// Register mounts the file API and the service endpoints on router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
		router.GET("/metrics/json", h.MetricsJSON)
	}

	files := router.Group("/api/files")
	files.GET("/list", h.ListFiles)
	files.GET("/read", h.ReadFile)
	files.GET("/walk", h.WalkFiles)
	files.GET("/glob", h.GlobFiles)
}
