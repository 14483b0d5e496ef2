package usecase

import (
	"context"
	"errors"
	"testing"

	"cosmetic-platform-dataset/internal/integrity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVerify_Check(t *testing.T) {
	uc := NewVerifyUsecase(nil, newLogger(), loadDataset(t), newChecker(), 4, nil, nil)

	report, err := uc.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestVerify_RequiresDatabase(t *testing.T) {
	uc := NewVerifyUsecase(nil, newLogger(), loadDataset(t), newChecker(), 4, nil, nil)

	_, err := uc.Verify(context.Background(), VerifyOptions{})
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
}

func TestVerify_HealthyDatabase(t *testing.T) {
	ds := loadDataset(t)
	ints, seqs := healthyDatabase(ds)
	uc := NewVerifyUsecase(dummyDB(t), newLogger(), ds, newChecker(), 4, ints, seqs)

	report, err := uc.Verify(context.Background(), VerifyOptions{Policies: true})
	require.NoError(t, err)

	assert.True(t, report.OK(), "%+v", report.Findings())
	assert.Len(t, report.Tables(), 27)
}

func TestVerify_ReportsDrift(t *testing.T) {
	ds := loadDataset(t)
	ints, seqs := healthyDatabase(ds)
	ints.counts["banners"] = 3
	ints.orphans["reviews.doctor_id"] = []string{"2"}
	seqs.next["body_parts"] = 1
	ints.leaky["favorites"] = true

	uc := NewVerifyUsecase(dummyDB(t), newLogger(), ds, newChecker(), 2, ints, seqs)

	report, err := uc.Verify(context.Background(), VerifyOptions{Policies: true})
	require.NoError(t, err)
	require.False(t, report.OK())

	byKind := report.ByKind()
	require.Len(t, byKind[integrity.KindRowCountMismatch], 1)
	assert.Equal(t, "banners", byKind[integrity.KindRowCountMismatch][0].Table)

	require.Len(t, byKind[integrity.KindMissingReference], 1)
	assert.Equal(t, "2", byKind[integrity.KindMissingReference][0].RowID)
	assert.Equal(t, "doctor_id", byKind[integrity.KindMissingReference][0].Column)

	require.Len(t, byKind[integrity.KindSequenceBehind], 1)
	assert.Equal(t, "body_parts", byKind[integrity.KindSequenceBehind][0].Table)

	violations := byKind[integrity.KindPolicyViolation]
	require.Len(t, violations, 2)
	for _, f := range violations {
		assert.Equal(t, "favorites", f.Table)
		assert.Equal(t, "1", f.RowID)
	}
	assert.ElementsMatch(t,
		[]string{"a different user can SELECT the row", "a different user can UPDATE the row"},
		[]string{violations[0].Message, violations[1].Message})
}

func TestVerify_CommunityUpdateIsAuthorOnly(t *testing.T) {
	ds := loadDataset(t)
	ints, seqs := healthyDatabase(ds)
	ints.leakyUpdate["community_replies"] = true

	uc := NewVerifyUsecase(dummyDB(t), newLogger(), ds, newChecker(), 4, ints, seqs)

	report, err := uc.Verify(context.Background(), VerifyOptions{Policies: true})
	require.NoError(t, err)

	violations := report.ByKind()[integrity.KindPolicyViolation]
	require.Len(t, violations, 1, "%+v", violations)
	assert.Equal(t, "community_replies", violations[0].Table)
	assert.Equal(t, "a different user can UPDATE the row", violations[0].Message)
}

func TestVerify_OwnerLockedOut(t *testing.T) {
	ds := loadDataset(t)
	ints, seqs := healthyDatabase(ds)
	uc := NewVerifyUsecase(dummyDB(t), newLogger(), ds, newChecker(), 4, &lockedOutRepo{ints, "messages"}, seqs)

	report, err := uc.Verify(context.Background(), VerifyOptions{Policies: true})
	require.NoError(t, err)

	violations := report.ByKind()[integrity.KindPolicyViolation]
	require.Len(t, violations, 1)
	assert.Equal(t, "messages", violations[0].Table)
	assert.Equal(t, "owner cannot UPDATE the row", violations[0].Message)
}

func TestVerify_PoliciesSkippedByDefault(t *testing.T) {
	ds := loadDataset(t)
	ints, seqs := healthyDatabase(ds)
	ints.leaky["favorites"] = true

	uc := NewVerifyUsecase(dummyDB(t), newLogger(), ds, newChecker(), 4, ints, seqs)

	report, err := uc.Verify(context.Background(), VerifyOptions{})
	require.NoError(t, err)
	assert.True(t, report.OK())
}

// lockedOutRepo denies every UPDATE on one table
type lockedOutRepo struct {
	*fakeIntegrityRepo
	table string
}

func (r *lockedOutRepo) UpdatableAs(db *gorm.DB, table, ownerColumn string, id any, requester uuid.UUID) (bool, error) {
	if table == r.table {
		return false, nil
	}
	return r.fakeIntegrityRepo.UpdatableAs(db, table, ownerColumn, id, requester)
}

func TestVerify_QueryErrorAborts(t *testing.T) {
	ds := loadDataset(t)
	ints, seqs := healthyDatabase(ds)
	ints.countErr = errors.New("relation does not exist")

	uc := NewVerifyUsecase(dummyDB(t), newLogger(), ds, newChecker(), 4, ints, seqs)

	_, err := uc.Verify(context.Background(), VerifyOptions{})
	assert.ErrorContains(t, err, "relation does not exist")
}
