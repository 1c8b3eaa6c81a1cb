package assessment

import "github.com/gin-gonic/gin"

// RegisterRoutes registers public calculator routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/presets", handler.GetPresets)

	a := r.Group("/assessments")
	{
		a.POST("/estimate", handler.Estimate)
		a.POST("/profit-leak", handler.ProfitLeak)
		a.POST("/submit", handler.Submit)
		a.GET("/:public_id/snapshot", handler.DownloadSnapshot)
		a.GET("/:public_id/dispatches", handler.GetDispatches)
	}
}
