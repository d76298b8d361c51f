package repository

import (
	"context"
	"fmt"

	"BarInventory/internal/interfaces"
	"BarInventory/internal/model"

	"gorm.io/gorm"
)

// StoreRepository writes build snapshots. Each write is one transaction; any failure rolls it back.
type StoreRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewStoreRepository(db *gorm.DB, batchSize int) interfaces.StoreWriter {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &StoreRepository{db: db, batchSize: batchSize}
}

// Materialize implements interfaces.StoreWriter.
func (r *StoreRepository) Materialize(ctx context.Context, snap *interfaces.Snapshot, scripts interfaces.Scripts) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	// 1. schema script
	if err := tx.Exec(scripts.Schema).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("run schema script: %w", err)
	}

	// 2. replace the three data tables
	if err := replaceTable(tx, &model.InventoryItem{}, snap.Inventory, r.batchSize); err != nil {
		tx.Rollback()
		return err
	}
	if err := replaceTable(tx, &model.Transaction{}, snap.Transactions, r.batchSize); err != nil {
		tx.Rollback()
		return err
	}
	if err := replaceTable(tx, &model.CatalogEntry{}, snap.Catalog, r.batchSize); err != nil {
		tx.Rollback()
		return err
	}

	// 3. remediations accumulate across runs, keyed by run id
	if len(snap.Remediations) > 0 {
		if err := ensureTable(tx, &model.Remediation{}); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.CreateInBatches(snap.Remediations, r.batchSize).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("save remediations: %w", err)
		}
	}

	// 4. reporting script
	if err := tx.Exec(scripts.Reporting).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("run reporting script: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// replaceTable empties the table behind table and inserts rows.
func replaceTable[T any](tx *gorm.DB, table *T, rows []*T, batchSize int) error {
	if err := ensureTable(tx, table); err != nil {
		return err
	}
	name := tableName(tx, table)
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// ensureTable creates the table from the model when the schema script did not.
func ensureTable(tx *gorm.DB, table any) error {
	if tx.Migrator().HasTable(table) {
		return nil
	}
	if err := tx.Migrator().CreateTable(table); err != nil {
		return fmt.Errorf("create %s: %w", tableName(tx, table), err)
	}
	return nil
}

func tableName(tx *gorm.DB, table any) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(table); err != nil {
		return fmt.Sprintf("%T", table)
	}
	return stmt.Schema.Table
}
