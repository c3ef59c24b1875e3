// Package reconcile drives repeated scan→clean→verify rounds until the
// scanner reports a clean state or the round budget runs out. The loop is
// strictly sequential: one phase completes fully before the next begins.
package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Nunuaa/AugmentCleaner/internal/config"
	"github.com/Nunuaa/AugmentCleaner/internal/fsutil"
	"github.com/Nunuaa/AugmentCleaner/internal/statedb"
	"github.com/Nunuaa/AugmentCleaner/pkg/models"
)

// LocationScanner produces a snapshot of candidate locations.
type LocationScanner interface {
	Scan(ctx context.Context) (*models.ScanResult, error)
}

// RowPruner deletes matching rows from one embedded database.
type RowPruner interface {
	PruneRows(ctx context.Context, dbPath string, patterns []string) (int, error)
}

// PathGate vetoes deletions of protected paths.
type PathGate = fsutil.Gate

// StateDBPruner is the production RowPruner backed by the statedb package.
type StateDBPruner struct{}

// PruneRows implements RowPruner.
func (StateDBPruner) PruneRows(ctx context.Context, dbPath string, patterns []string) (int, error) {
	return statedb.PruneRows(ctx, dbPath, patterns)
}

// Reconciler owns one cleaning session. Rounds are accumulated for the
// session and discarded with it; nothing persists across invocations.
type Reconciler struct {
	cfg     *config.Config
	scanner LocationScanner
	pruner  RowPruner
	gate    PathGate
	logger  *zap.Logger
}

// New creates a reconciler. The scanner and pruner are interfaces so tests
// can drive the loop with doubles.
func New(cfg *config.Config, scanner LocationScanner, pruner RowPruner, gate PathGate, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		cfg:     cfg,
		scanner: scanner,
		pruner:  pruner,
		gate:    gate,
		logger:  logger,
	}
}

// Run executes up to MaxRounds scan→clean→verify cycles. It always returns
// a report, even when every individual item failed; zero successes is a
// reportable outcome, not an error. The returned error is non-nil only for
// cancellation or a scanner failure that made the session meaningless.
func (r *Reconciler) Run(ctx context.Context) (*models.ReconcileReport, error) {
	maxRounds := r.cfg.MaxRounds
	if maxRounds < 1 {
		maxRounds = 1
	}

	report := &models.ReconcileReport{
		EditorKey: r.cfg.Editor,
		StartTime: time.Now(),
	}

	for round := 1; round <= maxRounds; round++ {
		r.logger.Info("Starting clean round",
			zap.Int("round", round),
			zap.Int("max_rounds", maxRounds))

		scanRes, err := r.scanner.Scan(ctx)
		if err != nil {
			report.Finalize(models.StatusAborted)
			return report, err
		}

		cr := &models.CleanRound{Round: round, Scan: scanRes}

		if scanRes.TotalCount() == 0 {
			r.logger.Info("Nothing to clean, converged", zap.Int("round", round))
			report.AddRound(cr)
			report.Finalize(models.StatusConverged)
			return report, nil
		}

		r.logger.Info("Scan found candidate locations",
			zap.Int("round", round),
			zap.Int("total_count", scanRes.TotalCount()))

		r.clean(ctx, scanRes, cr)
		if err := ctx.Err(); err != nil {
			report.AddRound(cr)
			report.Finalize(models.StatusAborted)
			return report, err
		}

		// Let the filesystem and database handles settle before verifying.
		if err := r.settle(ctx); err != nil {
			report.AddRound(cr)
			report.Finalize(models.StatusAborted)
			return report, err
		}

		verify, err := r.scanner.Scan(ctx)
		if err != nil {
			report.AddRound(cr)
			report.Finalize(models.StatusAborted)
			return report, err
		}
		cr.Verify = verify
		report.AddRound(cr)

		if verify.TotalCount() == 0 {
			r.logger.Info("Verification clean, converged", zap.Int("round", round))
			report.Finalize(models.StatusConverged)
			return report, nil
		}

		r.logger.Warn("Residual locations after clean",
			zap.Int("round", round),
			zap.Int("residual", verify.TotalCount()))
	}

	report.Finalize(models.StatusExhausted)
	r.logger.Warn("Round budget exhausted with residual locations",
		zap.Int("rounds", len(report.Rounds)),
		zap.Any("residual", report.Residual))
	return report, nil
}

// clean deletes every scanned location and prunes every database hit.
// Per-item failures are recorded and never stop the remaining items; only
// operator cancellation aborts the round early.
func (r *Reconciler) clean(ctx context.Context, scanRes *models.ScanResult, cr *models.CleanRound) {
	targets := []struct {
		category models.Category
		paths    []string
	}{
		{models.CategoryGlobalStorage, scanRes.GlobalStorageDirs},
		{models.CategoryWorkspaceStorage, scanRes.WorkspaceStorageDirs},
		{models.CategoryOtherFile, scanRes.OtherFileHits},
		{models.CategoryConfigFile, scanRes.ConfigFileHits},
	}

	for _, group := range targets {
		for _, path := range group.paths {
			if ctx.Err() != nil {
				return
			}
			cr.Outcomes = append(cr.Outcomes, fsutil.Remove(path, group.category, r.gate, r.logger))
		}
	}

	patterns := r.cfg.PatternsFor("augment_specific")
	for _, hit := range scanRes.DatabaseHits {
		if ctx.Err() != nil {
			return
		}
		cr.Prunes = append(cr.Prunes, r.pruneDatabase(ctx, hit.Path, patterns))
	}
}

func (r *Reconciler) pruneDatabase(ctx context.Context, dbPath string, patterns []string) models.PruneOutcome {
	outcome := models.PruneOutcome{Path: dbPath}

	if r.gate.IsForbidden(dbPath) {
		r.logger.Warn("Refusing to prune protected path", zap.String("path", dbPath))
		outcome.Skipped = true
		return outcome
	}

	rows, err := r.pruner.PruneRows(ctx, dbPath, patterns)
	if err != nil {
		outcome.Error = err.Error()
		r.logger.Warn("Prune failed", zap.String("path", dbPath), zap.Error(err))
		return outcome
	}
	outcome.RowsRemoved = rows
	if rows > 0 {
		r.logger.Info("Pruned database rows",
			zap.String("path", dbPath),
			zap.Int("rows", rows))
	}
	return outcome
}

// settle waits the configured delay, or less if cancelled.
func (r *Reconciler) settle(ctx context.Context) error {
	if r.cfg.SettleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.cfg.SettleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
