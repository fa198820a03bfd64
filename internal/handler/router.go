package handler

import (
	"github.com/gin-gonic/gin"
)

// Set bundles every handler mounted on the API.
type Set struct {
	Programs      *ProgramHandler
	Syllabi       *SyllabusHandler
	Terms         *TermHandler
	Subjects      *SubjectHandler
	MaterialTypes *MaterialTypeHandler
	Materials     *MaterialHandler
	Recruitments  *RecruitmentHandler
	Updates       *UpdatesHandler
	Metrics       *MetricsHandler
}

// Register mounts all API routes under the given prefix. Health, readiness
// and metrics live outside the prefix.
func Register(router *gin.Engine, prefix string, h Set) {
	router.GET("/health", h.Metrics.Health)
	router.GET("/ready", h.Metrics.Ready)
	router.GET("/metrics", h.Metrics.Prometheus)

	api := router.Group(prefix)

	programs := api.Group("/programs")
	programs.GET("", h.Programs.List)
	programs.POST("", h.Programs.Create)
	programs.GET("/:id", h.Programs.Get)
	programs.DELETE("/:id", h.Programs.Delete)

	syllabi := api.Group("/syllabi")
	syllabi.GET("", h.Syllabi.List)
	syllabi.POST("", h.Syllabi.Create)
	syllabi.GET("/:id", h.Syllabi.Get)
	syllabi.DELETE("/:id", h.Syllabi.Delete)

	terms := api.Group("/terms")
	terms.GET("", h.Terms.List)
	terms.POST("", h.Terms.Create)
	terms.GET("/:id", h.Terms.Get)
	terms.DELETE("/:id", h.Terms.Delete)

	subjects := api.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.POST("", h.Subjects.Create)
	subjects.GET("/:id", h.Subjects.Get)
	subjects.DELETE("/:id", h.Subjects.Delete)

	types := api.Group("/material-types")
	types.GET("", h.MaterialTypes.List)
	types.POST("", h.MaterialTypes.Create)
	types.GET("/:id", h.MaterialTypes.Get)

	materials := api.Group("/materials")
	materials.GET("", h.Materials.List)
	materials.POST("", h.Materials.Create)
	materials.POST("/upload", h.Materials.Upload)
	materials.POST("/classify", h.Materials.Classify)
	materials.GET("/download/:token", h.Materials.Download)
	materials.GET("/:id", h.Materials.Get)
	materials.PUT("/:id", h.Materials.Update)
	materials.GET("/:id/download-url", h.Materials.DownloadURL)
	materials.DELETE("/:id", h.Materials.Delete)

	recruitments := api.Group("/recruitments")
	recruitments.GET("", h.Recruitments.List)
	recruitments.POST("", h.Recruitments.Create)
	recruitments.GET("/:id", h.Recruitments.Get)
	recruitments.DELETE("/:id", h.Recruitments.Delete)

	api.GET("/latest-updates", h.Updates.Latest)
}
