package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"BarInventory/internal/repository"
	"BarInventory/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportHandler serves the materialized tables and reporting views.
type ReportHandler struct {
	reports *service.ReportService
	logger  *logrus.Logger
}

func NewReportHandler(db *gorm.DB, logger *logrus.Logger) *ReportHandler {
	repo := repository.NewReportRepository(db)
	return &ReportHandler{
		reports: service.NewReportService(repo, logger),
		logger:  logger,
	}
}

func filterFrom(c *gin.Context) repository.ReportFilter {
	return repository.ReportFilter{
		Location: c.Query("location"),
		Drink:    c.Query("drink"),
		RunID:    c.Query("run_id"),
	}
}

// pageFrom reads page and page_size. On a non-numeric value it answers 400 and returns ok=false.
func pageFrom(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page: want an integer"})
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size: want an integer"})
		return 0, 0, false
	}
	return page, pageSize, true
}

func (h *ReportHandler) fail(c *gin.Context, op string, err error) {
	h.logger.WithError(err).Errorf("%s failed", op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// ListInventory GET /api/inventory?location=london&page=1&page_size=50
func (h *ReportHandler) ListInventory(c *gin.Context) {
	page, pageSize, ok := pageFrom(c)
	if !ok {
		return
	}
	res, err := h.reports.Inventory(c.Request.Context(), filterFrom(c), page, pageSize)
	if err != nil {
		h.fail(c, "ListInventory", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListTransactions GET /api/transactions?location=budapest&drink=Martini
func (h *ReportHandler) ListTransactions(c *gin.Context) {
	page, pageSize, ok := pageFrom(c)
	if !ok {
		return
	}
	res, err := h.reports.Transactions(c.Request.Context(), filterFrom(c), page, pageSize)
	if err != nil {
		h.fail(c, "ListTransactions", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListCatalog GET /api/catalog?drink=Martini
func (h *ReportHandler) ListCatalog(c *gin.Context) {
	page, pageSize, ok := pageFrom(c)
	if !ok {
		return
	}
	res, err := h.reports.Catalog(c.Request.Context(), filterFrom(c), page, pageSize)
	if err != nil {
		h.fail(c, "ListCatalog", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListRemediations GET /api/remediations?run_id=<uuid>; latest run when run_id is omitted.
func (h *ReportHandler) ListRemediations(c *gin.Context) {
	page, pageSize, ok := pageFrom(c)
	if !ok {
		return
	}
	res, err := h.reports.Remediations(c.Request.Context(), filterFrom(c), page, pageSize)
	if err != nil {
		h.fail(c, "ListRemediations", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GlassDemand GET /api/reports/glass-demand?location=london
func (h *ReportHandler) GlassDemand(c *gin.Context) {
	rows, err := h.reports.GlassDemand(c.Request.Context(), filterFrom(c))
	if err != nil {
		h.fail(c, "GlassDemand", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// DailySales GET /api/reports/daily-sales?from=2023-03-01&to=2023-03-31&location=london
func (h *ReportHandler) DailySales(c *gin.Context) {
	from, err := dateParam(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := dateParam(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := h.reports.DailySales(c.Request.Context(), filterFrom(c), from, to)
	if err != nil {
		h.fail(c, "DailySales", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func dateParam(c *gin.Context, name string) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: want YYYY-MM-DD", name)
	}
	return t, nil
}
