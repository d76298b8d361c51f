package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"BarInventory/internal/config"
	"BarInventory/internal/interfaces"
	"BarInventory/internal/loader"
	"BarInventory/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// transactionsSource attributes remediations raised against the unified transaction relation.
const transactionsSource = "transactions"

// BuildResult summarises one pipeline run.
type BuildResult struct {
	RunID                  string              `json:"run_id"`
	InventoryRows          int                 `json:"inventory_rows"`
	TransactionRows        int                 `json:"transaction_rows"`
	CatalogRows            int                 `json:"catalog_rows"`
	GlassCategories        int                 `json:"glass_categories"`
	UnresolvedInventory    int                 `json:"unresolved_inventory"`
	UnresolvedTransactions int                 `json:"unresolved_transactions"`
	Remediations           []model.Remediation `json:"remediations"`
	Duration               time.Duration       `json:"duration"`
}

// BuildService runs the batch: load, reconcile, resolve, materialize.
type BuildService struct {
	cfg     *config.Config
	loader  *loader.Loader
	catalog *CatalogService
	store   interfaces.StoreWriter
	logger  *logrus.Logger
	now     func() time.Time
}

func NewBuildService(cfg *config.Config, lookup interfaces.CatalogLookup, store interfaces.StoreWriter, logger *logrus.Logger) *BuildService {
	return &BuildService{
		cfg:     cfg,
		loader:  loader.NewLoader(logger),
		catalog: NewCatalogService(lookup, logger),
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one build. Any I/O or store failure aborts the run with nothing written; catalog
// failures only produce remediation entries.
func (s *BuildService) Run(ctx context.Context) (*BuildResult, error) {
	started := s.now()
	runID := uuid.NewString()
	log := s.logger.WithField("run_id", runID)
	log.Info("build started")

	// 1. schema scripts, before any network call
	scripts, err := readScripts(s.cfg.Paths)
	if err != nil {
		return nil, err
	}

	// 2. inventory
	inv, err := s.loader.LoadInventory(ctx, s.cfg.Paths.Inventory)
	if err != nil {
		return nil, err
	}

	// 3. transaction logs, unified in declaration order
	logs, err := s.loader.LoadTransactions(ctx, s.cfg.Sources)
	if err != nil {
		return nil, err
	}
	txs := model.Unify(logs...)

	// 4. catalog lookups, then identity assignment over the answers
	categories := DistinctCategories(inv.Items)
	results, err := s.catalog.Fetch(ctx, categories)
	if err != nil {
		return nil, err
	}
	rec := Reconcile(results, filepath.Base(s.cfg.Paths.Inventory))

	// 5. reference resolution
	items := ResolveInventory(inv.Items, rec.GlassIDs)
	txs = ResolveTransactions(txs, rec.DrinkIDs)

	// 6. punch list
	remediations := make([]model.Remediation, 0, len(inv.Remediations)+len(rec.Remediations))
	remediations = append(remediations, rec.Remediations...)
	remediations = append(remediations, inv.Remediations...)
	remediations = append(remediations, UnmatchedDrinks(txs, transactionsSource)...)
	stamped := s.now().UTC()
	for i := range remediations {
		remediations[i].ID = uint64(i + 1)
		remediations[i].RunID = runID
		remediations[i].CreatedAt = stamped
	}

	// 7. store
	snap := &interfaces.Snapshot{
		Inventory:    items,
		Transactions: txs,
		Catalog:      rec.Entries,
		Remediations: remediations,
	}
	if err := s.store.Materialize(ctx, snap, scripts); err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}

	res := &BuildResult{
		RunID:                  runID,
		InventoryRows:          len(items),
		TransactionRows:        len(txs),
		CatalogRows:            len(rec.Entries),
		GlassCategories:        len(rec.GlassIDs),
		UnresolvedInventory:    countUnresolvedInventory(items),
		UnresolvedTransactions: countUnresolvedTransactions(txs),
		Remediations:           remediations,
		Duration:               s.now().Sub(started),
	}
	s.logSummary(log, res)
	return res, nil
}

func readScripts(paths config.PathsConfig) (interfaces.Scripts, error) {
	schema, err := os.ReadFile(paths.SchemaScript)
	if err != nil {
		return interfaces.Scripts{}, fmt.Errorf("read schema script: %w", err)
	}
	reporting, err := os.ReadFile(paths.ReportingScript)
	if err != nil {
		return interfaces.Scripts{}, fmt.Errorf("read reporting script: %w", err)
	}
	return interfaces.Scripts{Schema: string(schema), Reporting: string(reporting)}, nil
}

func countUnresolvedInventory(items []*model.InventoryItem) int {
	n := 0
	for _, it := range items {
		if it.GlassID == 0 {
			n++
		}
	}
	return n
}

func countUnresolvedTransactions(txs []*model.Transaction) int {
	n := 0
	for _, tx := range txs {
		if tx.DrinkID == 0 {
			n++
		}
	}
	return n
}

func (s *BuildService) logSummary(log *logrus.Entry, res *BuildResult) {
	log.WithFields(logrus.Fields{
		"bar_data":                res.InventoryRows,
		"transactions":            res.TransactionRows,
		"dim_glasses":             res.CatalogRows,
		"glass_categories":        res.GlassCategories,
		"unresolved_inventory":    res.UnresolvedInventory,
		"unresolved_transactions": res.UnresolvedTransactions,
		"remediations":            len(res.Remediations),
		"elapsed":                 res.Duration.String(),
	}).Info("build finished")

	for _, r := range res.Remediations {
		log.WithFields(logrus.Fields{
			"key":    r.Key,
			"cause":  r.Cause,
			"source": r.Source,
		}).Warn("remediation")
	}
}
