package usecase

import (
	"context"
	"testing"

	"cosmetic-platform-dataset/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededAuditRepo() *fakeAuditLogRepo {
	repo := &fakeAuditLogRepo{}
	repo.Create(nil, &entity.AuditLog{Action: entity.AuditActionSeedImport, Metadata: entity.JSON{"checksum": "abc"}})
	repo.Create(nil, &entity.AuditLog{Action: entity.AuditActionPolicyApply})
	return repo
}

func TestAuditLog_GetAll(t *testing.T) {
	uc := NewAuditLogUsecase(dummyDB(t), newLogger(), seededAuditRepo())

	resp, err := uc.GetAllAuditLogs(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, defaultAuditLogLimit, resp.Limit)

	resp, err = uc.GetAllAuditLogs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	resp, err = uc.GetAllAuditLogs(context.Background(), 10000)
	require.NoError(t, err)
	assert.Equal(t, maxAuditLogLimit, resp.Limit)
}

func TestAuditLog_Get(t *testing.T) {
	uc := NewAuditLogUsecase(dummyDB(t), newLogger(), seededAuditRepo())

	resp, err := uc.GetAuditLog(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionSeedImport, resp.Action)

	_, err = uc.GetAuditLog(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}

func TestAuditLog_RequiresDatabase(t *testing.T) {
	uc := NewAuditLogUsecase(nil, newLogger(), seededAuditRepo())

	_, err := uc.GetAllAuditLogs(context.Background(), 10)
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	_, err = uc.GetAuditLog(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
}

func TestCatalog_ListTables(t *testing.T) {
	uc := NewCatalogUsecase(loadDataset(t))

	resp, err := uc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 27, resp.Total)
	assert.Equal(t, "users", resp.Tables[0].Name)
}
