package migration

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/adityarahman/celengan/internal"
)

// Revision is one schema version: a named batch of statements applied
// atomically. Versions are strictly increasing positive integers.
type Revision struct {
	Version    int64
	Name       string
	Statements []string
}

// Runner applies pending revisions in ascending order, tracking
// progress in a single-row schema_version counter inside the store.
// Each revision runs in its own transaction that also advances the
// counter, so a partially applied revision is never observable. The
// runner assumes one writer and memoizes after the first success;
// a failed run may be retried.
type Runner struct {
	db        *sqlx.DB
	logger    *slog.Logger
	revisions []Revision

	mu   sync.Mutex
	done bool
}

func NewRunner(db *sqlx.DB, revisions []Revision, logger *slog.Logger) *Runner {
	return &Runner{db: db, logger: logger, revisions: revisions}
}

func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil
	}

	if err := validateRevisions(r.revisions); err != nil {
		return internal.NewMigrationError("invalid revision list", err)
	}

	if err := r.ensureVersionTable(ctx); err != nil {
		return err
	}

	current, err := r.currentVersion(ctx)
	if err != nil {
		return err
	}

	applied := 0
	for _, rev := range r.revisions {
		if rev.Version <= current {
			continue
		}
		if err := r.apply(ctx, rev); err != nil {
			r.logger.Error("migration failed, store left at last good version",
				"version", rev.Version, "name", rev.Name, "last_good", current, "error", err)
			return err
		}
		current = rev.Version
		applied++
		r.logger.Info("applied schema revision", "version", rev.Version, "name", rev.Name)
	}

	if applied == 0 {
		r.logger.Debug("schema already current", "version", current)
	}

	r.done = true
	return nil
}

// CurrentVersion reads the persisted counter; 0 means a fresh store.
func (r *Runner) CurrentVersion(ctx context.Context) (int64, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	return r.currentVersion(ctx)
}

func (r *Runner) apply(ctx context.Context, rev Revision) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return internal.NewStorageError("begin migration transaction", err)
	}

	for i, stmt := range rev.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return internal.NewMigrationError(
				fmt.Sprintf("revision %d (%s) statement %d", rev.Version, rev.Name, i+1), err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE schema_version SET version = ?`, rev.Version); err != nil {
		_ = tx.Rollback()
		return internal.NewMigrationError(
			fmt.Sprintf("advance counter to %d", rev.Version), err)
	}

	if err := tx.Commit(); err != nil {
		return internal.NewMigrationError(
			fmt.Sprintf("commit revision %d", rev.Version), err)
	}
	return nil
}

func (r *Runner) ensureVersionTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return internal.NewStorageError("create schema_version table", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM schema_version`); err != nil {
		return internal.NewStorageError("read schema_version", err)
	}
	if count == 0 {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return internal.NewStorageError("initialize schema_version", err)
		}
	}
	return nil
}

func (r *Runner) currentVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := r.db.GetContext(ctx, &version, `SELECT version FROM schema_version`); err != nil {
		return 0, internal.NewStorageError("read schema version", err)
	}
	return version, nil
}

func validateRevisions(revisions []Revision) error {
	var prev int64
	for _, rev := range revisions {
		if rev.Version <= prev {
			return fmt.Errorf("revision %q: version %d not strictly ascending after %d",
				rev.Name, rev.Version, prev)
		}
		if len(rev.Statements) == 0 {
			return fmt.Errorf("revision %q: empty statement batch", rev.Name)
		}
		prev = rev.Version
	}
	return nil
}
