package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cosmetic-platform-dataset/config"
	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/internal/domain/repository"
	"cosmetic-platform-dataset/internal/infrastructure/database"
	"cosmetic-platform-dataset/internal/integrity"
	"cosmetic-platform-dataset/internal/seed"
	"cosmetic-platform-dataset/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDatasetInvalid  = errors.New("dataset failed integrity checks")
	ErrAlreadyImported = errors.New("this dataset was already imported; use --truncate to replace it or --force to insert again")
)

type ImportOptions struct {
	DryRun       bool
	Force        bool
	Truncate     bool
	SkipPolicies bool
}

type TablePlan struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

type ImportResult struct {
	Checksum        string                   `json:"checksum"`
	DryRun          bool                     `json:"dry_run"`
	Tables          []TablePlan              `json:"tables"`
	Sequences       []integrity.SequenceStep `json:"sequences"`
	Truncated       bool                     `json:"truncated"`
	PoliciesApplied bool                     `json:"policies_applied"`
	Duration        time.Duration            `json:"duration"`
}

// TotalRows sums the planned rows
func (r *ImportResult) TotalRows() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

type ImportUsecase interface {
	Run(ctx context.Context, opts ImportOptions) (*ImportResult, error)
}

type importUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	cfg          config.ImportConfig
	dataset      *seed.Dataset
	checker      *integrity.Checker
	lock         service.ImportLock
	authShim     func() error
	seedRepo     repository.SeedRepository
	sequenceRepo repository.SequenceRepository
	policyRepo   repository.PolicyRepository
	auditLogRepo repository.AuditLogRepository
	auditService service.AuditService
}

// NewImportUsecase wires the import. authShim may be nil when the target
// already provides the Supabase auth schema.
func NewImportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.ImportConfig,
	dataset *seed.Dataset,
	checker *integrity.Checker,
	lock service.ImportLock,
	authShim func() error,
	seedRepo repository.SeedRepository,
	sequenceRepo repository.SequenceRepository,
	policyRepo repository.PolicyRepository,
	auditLogRepo repository.AuditLogRepository,
	auditService service.AuditService,
) ImportUsecase {
	return &importUsecase{
		db:           db,
		log:          log,
		cfg:          cfg,
		dataset:      dataset,
		checker:      checker,
		lock:         lock,
		authShim:     authShim,
		seedRepo:     seedRepo,
		sequenceRepo: sequenceRepo,
		policyRepo:   policyRepo,
		auditLogRepo: auditLogRepo,
		auditService: auditService,
	}
}

// Run imports the dataset in dependency order inside one transaction.
//
// Flow:
// 1. Offline integrity check (a dry run stops here and returns the plan)
// 2. Import lock
// 3. Auth shim migrations and CREATE TABLE IF NOT EXISTS for every table
// 4. Re-import guard on the dataset checksum
// 5. Optional truncate, inserts, sequence resync, policies and audit entry
// 6. Commit
func (u *importUsecase) Run(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	result, err := u.plan()
	if err != nil {
		return nil, err
	}
	result.DryRun = opts.DryRun

	// Step 1: offline integrity check
	report := u.checker.Check(u.dataset)
	if !report.OK() {
		for _, f := range report.Findings() {
			u.log.WithFields(logrus.Fields{"table": f.Table, "column": f.Column, "row_id": f.RowID, "kind": f.Kind}).Warn(f.Message)
		}
		return result, fmt.Errorf("%w: %d findings", ErrDatasetInvalid, len(report.Findings()))
	}
	if opts.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	if err := requireDB(u.db); err != nil {
		return nil, err
	}

	// Step 2: import lock
	release, err := u.lock.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			u.log.Warnf("Failed to release import lock: %+v", err)
		}
	}()

	// Step 3: schema
	if u.authShim != nil {
		if err := u.authShim(); err != nil {
			u.log.Warnf("Failed to apply auth shim: %+v", err)
			return nil, database.Classify(err)
		}
	}
	models := append(catalog.Models(), &entity.AuditLog{})
	if err := u.seedRepo.Migrate(u.db.WithContext(ctx), models...); err != nil {
		u.log.Warnf("Failed to create tables: %+v", err)
		return nil, database.Classify(err)
	}

	// Step 4: re-import guard
	if !opts.Force && !opts.Truncate {
		last, err := u.auditLogRepo.FindLatestByAction(u.db.WithContext(ctx), entity.AuditActionSeedImport)
		if err != nil {
			u.log.Warnf("Failed to read previous imports: %+v", err)
			return nil, database.Classify(err)
		}
		if last != nil && last.Metadata["checksum"] == result.Checksum {
			return nil, ErrAlreadyImported
		}
	}

	// Step 5: one transaction for the data
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, database.Classify(tx.Error)
	}
	defer tx.Rollback()

	userID := requesterID(ctx)

	if opts.Truncate {
		names := tableNames(u.dataset)
		if err := u.seedRepo.Truncate(tx, names); err != nil {
			u.log.Warnf("Failed to truncate tables: %+v", err)
			return nil, database.Classify(err)
		}
		if err := u.auditService.LogTruncate(ctx, tx, userID, names); err != nil {
			return nil, err
		}
		result.Truncated = true
	}

	counts := make(map[string]int, len(u.dataset.Tables()))
	for _, t := range u.dataset.Tables() {
		rows, err := u.rowsForInsert(t)
		if err != nil {
			return nil, err
		}
		if err := u.seedRepo.InsertRows(tx, t.Spec, rows, u.cfg.BatchSize); err != nil {
			u.log.Warnf("Failed to import %s: %+v", t.Spec.Name, err)
			return nil, fmt.Errorf("import %s: %w", t.Spec.Name, database.Classify(err))
		}
		counts[t.Spec.Name] = len(rows)
		u.log.WithFields(logrus.Fields{"table": t.Spec.Name, "rows": len(rows)}).Info("Imported table")
	}

	positions := make(map[string]int64)
	for _, step := range result.Sequences {
		position, err := u.sequenceRepo.Resync(tx, step.Table)
		if err != nil {
			u.log.Warnf("Failed to resync sequence of %s: %+v", step.Table, err)
			return nil, fmt.Errorf("resync %s: %w", step.Table, database.Classify(err))
		}
		positions[step.Table] = position
	}
	if err := u.auditService.LogSequenceResync(ctx, tx, userID, positions); err != nil {
		return nil, err
	}

	if u.cfg.ApplyPolicies && !opts.SkipPolicies {
		specs := tableSpecs(u.dataset)
		statements := policy.Statements(specs)
		if err := u.policyRepo.Exec(tx, statements); err != nil {
			u.log.Warnf("Failed to apply policies: %+v", err)
			return nil, fmt.Errorf("apply policies: %w", database.Classify(err))
		}
		if err := u.auditService.LogPolicyApply(ctx, tx, userID, len(specs), len(statements)); err != nil {
			return nil, err
		}
		result.PoliciesApplied = true
	}

	if err := u.auditService.LogImport(ctx, tx, userID, result.Checksum, counts, opts.Truncate); err != nil {
		return nil, err
	}

	// Step 6: commit
	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit import: %+v", err)
		return nil, database.Classify(err)
	}

	result.Duration = time.Since(start)
	u.log.WithFields(logrus.Fields{"rows": result.TotalRows(), "checksum": result.Checksum}).Info("Import complete")
	return result, nil
}

func (u *importUsecase) plan() (*ImportResult, error) {
	checksum, err := u.dataset.Checksum()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Checksum:  checksum,
		Sequences: integrity.SequencePlan(u.dataset),
	}
	for _, t := range u.dataset.Tables() {
		result.Tables = append(result.Tables, TablePlan{Table: t.Spec.Name, Rows: len(t.Rows)})
	}
	return result, nil
}

// rowsForInsert returns the table's rows, with seed users given a password
// hash when SEED_USER_PASSWORD is set.
func (u *importUsecase) rowsForInsert(t *seed.Table) ([]any, error) {
	if t.Spec.Name != "users" || u.cfg.SeedUserPassword == "" {
		return t.Rows, nil
	}

	rows := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		user, ok := row.(*entity.User)
		if !ok {
			return nil, fmt.Errorf("users row is %T", row)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.cfg.SeedUserPassword), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash seed password: %+v", err)
			return nil, err
		}
		clone := *user
		clone.PasswordHash = string(hash)
		rows[i] = &clone
	}
	return rows, nil
}

func tableSpecs(ds *seed.Dataset) []catalog.TableSpec {
	specs := make([]catalog.TableSpec, len(ds.Tables()))
	for i, t := range ds.Tables() {
		specs[i] = t.Spec
	}
	return specs
}

func tableNames(ds *seed.Dataset) []string {
	names := make([]string, len(ds.Tables()))
	for i, t := range ds.Tables() {
		names[i] = t.Spec.Name
	}
	return names
}
