package usecase

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/internal/integrity"
	"cosmetic-platform-dataset/internal/seed"
	"cosmetic-platform-dataset/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func newLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func loadDataset(t *testing.T) *seed.Dataset {
	t.Helper()
	ds, err := seed.Default()
	require.NoError(t, err)
	return ds
}

func newChecker() *integrity.Checker {
	return integrity.NewChecker(validator.NewValidator())
}

// dummyDB is a session that never reaches a server; the fake repositories
// ignore it.
func dummyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

type fakeIntegrityRepo struct {
	counts      map[string]int64
	maxIDs      map[string]int64
	orphans     map[string][]string
	leaky       map[string]bool
	leakyUpdate map[string]bool
	countErr    error
}

func (r *fakeIntegrityRepo) CountRows(db *gorm.DB, table string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.counts[table], nil
}

func (r *fakeIntegrityRepo) MaxID(db *gorm.DB, table string) (int64, error) {
	return r.maxIDs[table], nil
}

func (r *fakeIntegrityRepo) Orphans(db *gorm.DB, table string, ref catalog.Reference, limit int) ([]string, error) {
	return r.orphans[table+"."+ref.Column], nil
}

// VisibleAs follows the rendered policies: community rows are public,
// other owned rows are visible to their owner only.
func (r *fakeIntegrityRepo) VisibleAs(db *gorm.DB, table string, id any, requester uuid.UUID) (bool, error) {
	if r.leaky[table] {
		return true, nil
	}
	spec, err := catalog.Lookup(table)
	if err != nil {
		return false, err
	}
	if spec.Access == catalog.AccessCommunity {
		return true, nil
	}
	return r.isOwner(spec, requester)
}

func (r *fakeIntegrityRepo) UpdatableAs(db *gorm.DB, table, ownerColumn string, id any, requester uuid.UUID) (bool, error) {
	if r.leaky[table] || r.leakyUpdate[table] {
		return true, nil
	}
	spec, err := catalog.Lookup(table)
	if err != nil {
		return false, err
	}
	return r.isOwner(spec, requester)
}

func (r *fakeIntegrityRepo) isOwner(spec catalog.TableSpec, requester uuid.UUID) (bool, error) {
	ds, err := seed.Default()
	if err != nil {
		return false, err
	}
	tbl, _ := ds.Table(spec.Name)
	owner, err := catalog.ColumnByName(spec, spec.Owner)
	if err != nil {
		return false, err
	}
	return owner.Value(tbl.Rows[0]) == requester, nil
}

type fakeSequenceRepo struct {
	next    map[string]int64
	resyncs []string
}

func (r *fakeSequenceRepo) Resync(db *gorm.DB, table string) (int64, error) {
	r.resyncs = append(r.resyncs, table)
	return r.next[table] - 1, nil
}

func (r *fakeSequenceRepo) Next(db *gorm.DB, table string) (int64, error) {
	return r.next[table], nil
}

type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (r *fakeAuditLogRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	log.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	if len(r.logs) > limit {
		return r.logs[:limit], nil
	}
	return r.logs, nil
}

func (r *fakeAuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	for i := range r.logs {
		if r.logs[i].ID == id {
			return &r.logs[i], nil
		}
	}
	return nil, nil
}

func (r *fakeAuditLogRepo) FindLatestByAction(db *gorm.DB, action string) (*entity.AuditLog, error) {
	for i := len(r.logs) - 1; i >= 0; i-- {
		if r.logs[i].Action == action {
			return &r.logs[i], nil
		}
	}
	return nil, nil
}

// healthyDatabase mirrors a clean import of ds
func healthyDatabase(ds *seed.Dataset) (*fakeIntegrityRepo, *fakeSequenceRepo) {
	ints := &fakeIntegrityRepo{
		counts:      map[string]int64{},
		maxIDs:      map[string]int64{},
		orphans:     map[string][]string{},
		leaky:       map[string]bool{},
		leakyUpdate: map[string]bool{},
	}
	seqs := &fakeSequenceRepo{next: map[string]int64{}}
	for _, t := range ds.Tables() {
		ints.counts[t.Spec.Name] = int64(len(t.Rows))
		if t.Spec.Serial {
			ints.maxIDs[t.Spec.Name] = int64(t.MaxID())
			seqs.next[t.Spec.Name] = int64(t.MaxID()) + 1
		}
	}
	return ints, seqs
}

var errNoServer = errors.New("fake connection pool has no server")

// fakeConnPool lets gorm open and finish transactions without a server;
// every statement goes through the fake repositories instead.
type fakeConnPool struct {
	tx *fakeTx
}

func (p *fakeConnPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errNoServer
}

func (p *fakeConnPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNoServer
}

func (p *fakeConnPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNoServer
}

func (p *fakeConnPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (p *fakeConnPool) BeginTx(ctx context.Context, opts *sql.TxOptions) (gorm.ConnPool, error) {
	p.tx = &fakeTx{}
	return p.tx, nil
}

type fakeTx struct {
	fakeConnPool
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func transactionalDB(t *testing.T) (*gorm.DB, *fakeConnPool) {
	t.Helper()
	db := dummyDB(t)
	pool := &fakeConnPool{}
	db.ConnPool = pool
	db.Statement.ConnPool = pool
	return db, pool
}

type fakeSeedRepo struct {
	migrated  int
	order     []string
	inserted  map[string][]any
	truncated []string
	failOn    string
}

func (r *fakeSeedRepo) Migrate(db *gorm.DB, models ...any) error {
	r.migrated = len(models)
	return nil
}

func (r *fakeSeedRepo) InsertRows(db *gorm.DB, spec catalog.TableSpec, rows []any, batchSize int) error {
	if spec.Name == r.failOn {
		return errors.New("insert failed")
	}
	if r.inserted == nil {
		r.inserted = map[string][]any{}
	}
	r.order = append(r.order, spec.Name)
	r.inserted[spec.Name] = rows
	return nil
}

func (r *fakeSeedRepo) Truncate(db *gorm.DB, tables []string) error {
	r.truncated = tables
	return nil
}

type fakePolicyRepo struct {
	statements []string
}

func (r *fakePolicyRepo) Exec(db *gorm.DB, statements []string) error {
	r.statements = append(r.statements, statements...)
	return nil
}
