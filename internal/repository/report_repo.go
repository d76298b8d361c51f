package repository

import (
	"context"
	"time"

	"BarInventory/internal/model"

	"gorm.io/gorm"
)

// ReportFilter narrows report queries. Empty fields match everything.
type ReportFilter struct {
	Location string
	RunID    string
	Drink    string
}

// GlassDemand is one row of v_glass_demand.
type GlassDemand struct {
	Location    string `gorm:"column:location" json:"location"`
	GlassID     uint64 `gorm:"column:glass_id" json:"glass_id"`
	Glass       string `gorm:"column:glass" json:"glass"`
	GlassesUsed int64  `gorm:"column:glasses_used" json:"glasses_used"`
}

// DailySales is one row of v_daily_drink_sales.
type DailySales struct {
	Location string  `gorm:"column:location" json:"location"`
	SaleDate string  `gorm:"column:sale_date" json:"sale_date"`
	Drink    string  `gorm:"column:drink" json:"drink"`
	DrinkID  uint64  `gorm:"column:drink_id" json:"drink_id"`
	Sold     int64   `gorm:"column:sold" json:"sold"`
	Revenue  float64 `gorm:"column:revenue" json:"revenue"`
}

// ReportRepository reads the materialized tables and reporting views.
type ReportRepository interface {
	ListInventory(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.InventoryItem, int64, error)
	ListTransactions(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.Transaction, int64, error)
	ListCatalog(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.CatalogEntry, int64, error)
	ListRemediations(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.Remediation, int64, error)
	// LatestRunID returns the run id of the newest remediation, or "" when there is none.
	LatestRunID(ctx context.Context) (string, error)
	GlassDemand(ctx context.Context, filter ReportFilter) ([]*GlassDemand, error)
	DailySales(ctx context.Context, filter ReportFilter, from, to time.Time) ([]*DailySales, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// NormalizePage applies the default page (1) and page size (50, max 500).
func NormalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 50
	}
	return page, pageSize
}

func paginate[T any](db *gorm.DB, order string, page, pageSize int) ([]*T, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []*T
	if err := db.Order(order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *reportRepository) ListInventory(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.InventoryItem, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.InventoryItem{})
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	return paginate[model.InventoryItem](db, "id ASC", page, pageSize)
}

func (r *reportRepository) ListTransactions(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.Transaction, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	if filter.Drink != "" {
		db = db.Where("drink = ?", filter.Drink)
	}
	return paginate[model.Transaction](db, "unique_transaction_id ASC", page, pageSize)
}

func (r *reportRepository) ListCatalog(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.CatalogEntry, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.CatalogEntry{})
	if filter.Drink != "" {
		db = db.Where("drink = ?", filter.Drink)
	}
	return paginate[model.CatalogEntry](db, "id ASC", page, pageSize)
}

func (r *reportRepository) ListRemediations(ctx context.Context, filter ReportFilter, page, pageSize int) ([]*model.Remediation, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Remediation{})
	if filter.RunID != "" {
		db = db.Where("run_id = ?", filter.RunID)
	}
	return paginate[model.Remediation](db, "created_at DESC, id ASC", page, pageSize)
}

func (r *reportRepository) LatestRunID(ctx context.Context) (string, error) {
	if !r.db.Migrator().HasTable(&model.Remediation{}) {
		return "", nil
	}
	var rows []model.Remediation
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(1).Find(&rows).Error; err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].RunID, nil
}

func (r *reportRepository) GlassDemand(ctx context.Context, filter ReportFilter) ([]*GlassDemand, error) {
	db := r.db.WithContext(ctx).Table("v_glass_demand")
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	var rows []*GlassDemand
	if err := db.Order("location ASC, glasses_used DESC, glass_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) DailySales(ctx context.Context, filter ReportFilter, from, to time.Time) ([]*DailySales, error) {
	db := r.db.WithContext(ctx).Table("v_daily_drink_sales")
	if filter.Location != "" {
		db = db.Where("location = ?", filter.Location)
	}
	if filter.Drink != "" {
		db = db.Where("drink = ?", filter.Drink)
	}
	if !from.IsZero() {
		db = db.Where("sale_date >= ?", from.Format(time.DateOnly))
	}
	if !to.IsZero() {
		db = db.Where("sale_date <= ?", to.Format(time.DateOnly))
	}
	var rows []*DailySales
	if err := db.Order("sale_date ASC, location ASC, drink ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
