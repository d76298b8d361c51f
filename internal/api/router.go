package api

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the report and build endpoints. pprof is mounted under /debug/pprof.
func NewRouter(mode string, build *BuildHandler, reports *ReportHandler) *gin.Engine {
	gin.SetMode(mode)
	r := gin.New()
	r.Use(gin.Recovery())
	if mode != gin.TestMode {
		r.Use(gin.Logger())
	}
	pprof.Register(r)

	r.POST("/api/build", build.TriggerBuild)

	r.GET("/api/inventory", reports.ListInventory)
	r.GET("/api/transactions", reports.ListTransactions)
	r.GET("/api/catalog", reports.ListCatalog)
	r.GET("/api/remediations", reports.ListRemediations)
	r.GET("/api/reports/glass-demand", reports.GlassDemand)
	r.GET("/api/reports/daily-sales", reports.DailySales)
	return r
}
