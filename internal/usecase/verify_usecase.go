package usecase

import (
	"context"
	"fmt"

	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/internal/domain/repository"
	"cosmetic-platform-dataset/internal/infrastructure/database"
	"cosmetic-platform-dataset/internal/integrity"
	"cosmetic-platform-dataset/internal/seed"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

// orphanLimit caps the orphan ids reported per reference
const orphanLimit = 20

type VerifyOptions struct {
	Policies bool
}

type VerifyUsecase interface {
	// Check validates the embedded dataset without a database
	Check(ctx context.Context) (*integrity.Report, error)
	// Verify compares a live database against the dataset
	Verify(ctx context.Context, opts VerifyOptions) (*integrity.Report, error)
}

type verifyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	dataset       *seed.Dataset
	checker       *integrity.Checker
	concurrency   int
	integrityRepo repository.IntegrityRepository
	sequenceRepo  repository.SequenceRepository
}

func NewVerifyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dataset *seed.Dataset,
	checker *integrity.Checker,
	concurrency int,
	integrityRepo repository.IntegrityRepository,
	sequenceRepo repository.SequenceRepository,
) VerifyUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &verifyUsecase{
		db:            db,
		log:           log,
		dataset:       dataset,
		checker:       checker,
		concurrency:   concurrency,
		integrityRepo: integrityRepo,
		sequenceRepo:  sequenceRepo,
	}
}

func (u *verifyUsecase) Check(ctx context.Context) (*integrity.Report, error) {
	return u.checker.Check(u.dataset), nil
}

// Verify checks every table concurrently; the first query error cancels
// the remaining tables.
func (u *verifyUsecase) Verify(ctx context.Context, opts VerifyOptions) (*integrity.Report, error) {
	if err := requireDB(u.db); err != nil {
		return nil, err
	}

	report := integrity.NewReport()
	p := pool.New().WithMaxGoroutines(u.concurrency).WithContext(ctx).WithCancelOnError()
	for _, t := range u.dataset.Tables() {
		t := t // per-iteration copy; go directive is pre-1.22
		p.Go(func(ctx context.Context) error {
			return u.verifyTable(ctx, report, t, opts)
		})
	}
	if err := p.Wait(); err != nil {
		u.log.Warnf("Failed to verify database: %+v", err)
		return nil, database.Classify(err)
	}
	return report, nil
}

func (u *verifyUsecase) verifyTable(ctx context.Context, report *integrity.Report, t *seed.Table, opts VerifyOptions) error {
	db := u.db.WithContext(ctx)
	name := t.Spec.Name

	count, err := u.integrityRepo.CountRows(db, name)
	if err != nil {
		return fmt.Errorf("count %s: %w", name, err)
	}
	summary := integrity.TableSummary{Name: name, Rows: int(count), Declared: t.Declared}
	if int(count) != t.Declared {
		report.Add(integrity.Finding{
			Kind:    integrity.KindRowCountMismatch,
			Table:   name,
			Message: fmt.Sprintf("declared %d rows, database has %d", t.Declared, count),
		})
	}

	for _, ref := range t.Spec.References {
		ids, err := u.integrityRepo.Orphans(db, name, ref, orphanLimit)
		if err != nil {
			return fmt.Errorf("orphans %s.%s: %w", name, ref.Column, err)
		}
		for _, id := range ids {
			report.Add(integrity.Finding{
				Kind:    integrity.KindMissingReference,
				Table:   name,
				Column:  ref.Column,
				RowID:   id,
				Message: fmt.Sprintf("%s points at a missing %s row", ref.Column, ref.Parent),
			})
		}
	}

	if t.Spec.Serial {
		maxID, err := u.integrityRepo.MaxID(db, name)
		if err != nil {
			return fmt.Errorf("max id %s: %w", name, err)
		}
		next, err := u.sequenceRepo.Next(db, name)
		if err != nil {
			return fmt.Errorf("sequence %s: %w", name, err)
		}
		summary.MaxID = int(maxID)
		summary.NextID = int(next)
		if next <= maxID {
			report.Add(integrity.Finding{
				Kind:    integrity.KindSequenceBehind,
				Table:   name,
				Column:  "id",
				Message: fmt.Sprintf("next id %d does not exceed max id %d", next, maxID),
			})
		}
	}
	report.AddTable(summary)

	if opts.Policies && t.Spec.Owner != "" && len(t.Rows) > 0 {
		return u.checkLivePolicies(db, report, t)
	}
	return nil
}

// checkLivePolicies runs SELECT and UPDATE against the first seeded row of
// an owned table, once as its owner and once as an unrelated user, and
// reports every outcome that differs from the in-process policy decision.
func (u *verifyUsecase) checkLivePolicies(db *gorm.DB, report *integrity.Report, t *seed.Table) error {
	name := t.Spec.Name
	ownerCol, err := catalog.ColumnByName(t.Spec, t.Spec.Owner)
	if err != nil {
		return err
	}
	idCol, err := catalog.ColumnByName(t.Spec, "id")
	if err != nil {
		return err
	}

	row := t.Rows[0]
	owner, ok := ownerCol.Value(row).(uuid.UUID)
	if !ok {
		return fmt.Errorf("%s.%s is not a uuid", name, t.Spec.Owner)
	}
	id := idCol.Value(row)

	requesters := []struct {
		label string
		id    uuid.UUID
	}{
		{"owner", owner},
		{"a different user", uuid.New()},
	}
	for _, r := range requesters {
		for _, action := range []policy.Action{policy.ActionSelect, policy.ActionUpdate} {
			var live bool
			if action == policy.ActionSelect {
				live, err = u.integrityRepo.VisibleAs(db, name, id, r.id)
			} else {
				live, err = u.integrityRepo.UpdatableAs(db, name, t.Spec.Owner, id, r.id)
			}
			if err != nil {
				return fmt.Errorf("%s %s as %s: %w", action, name, r.label, err)
			}

			want := policy.Evaluate(t.Spec, action, policy.Authenticated(r.id), policy.Row{Owner: &owner}).Allowed
			if live == want {
				continue
			}
			verb := "cannot"
			if live {
				verb = "can"
			}
			report.Add(integrity.Finding{
				Kind:    integrity.KindPolicyViolation,
				Table:   name,
				RowID:   seed.Key(id),
				Message: fmt.Sprintf("%s %s %s the row", r.label, verb, action),
			})
		}
	}
	return nil
}
