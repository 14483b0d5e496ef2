package seed

import (
	"testing"
	"testing/fstest"

	"cosmetic-platform-dataset/internal/domain/catalog"
	"cosmetic-platform-dataset/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_RowCounts(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	cases := map[string]int{
		"users":             9,
		"body_parts":        25,
		"categories":        20,
		"procedures":        20,
		"doctors":           5,
		"doctor_procedures": 15,
		"banners":           4,
		"banner_slides":     8,
		"community_votes":   0,
	}
	for name, want := range cases {
		table, ok := ds.Table(name)
		require.True(t, ok, name)
		assert.Len(t, table.Rows, want, name)
		assert.Equal(t, want, table.Declared, name)
	}
	assert.Len(t, ds.Tables(), len(catalog.All()))
	assert.Equal(t, 159, ds.TotalRows())
}

func TestDefault_BodyPartIDs(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	table, _ := ds.Table("body_parts")
	assert.Equal(t, 55, table.MaxID())
	assert.Equal(t, 31, table.Rows[0].(*entity.BodyPart).ID)

	users, _ := ds.Table("users")
	assert.Equal(t, 0, users.MaxID())
}

func TestDefault_DecodesTypedColumns(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	procedures, _ := ds.Table("procedures")
	p := procedures.Rows[0].(*entity.Procedure)
	assert.True(t, p.CostMin.GreaterThan(decimal.Zero))

	analyses, _ := ds.Table("face_scan_analyses")
	a := analyses.Rows[0].(*entity.FaceScanAnalysis)
	assert.Equal(t, uuid.MustParse("11111111-1111-4111-8111-111111111111"), a.UserID)
	assert.Contains(t, a.Analysis, "facial_thirds")

	banners, _ := ds.Table("banners")
	last := banners.Rows[3].(*entity.Banner)
	require.NotNil(t, last.IsActive)
	assert.False(t, *last.IsActive)
}

func TestChecksum_Stable(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)

	sumA, err := a.Checksum()
	require.NoError(t, err)
	sumB, err := b.Checksum()
	require.NoError(t, err)
	assert.Equal(t, sumA, sumB)
	assert.Len(t, sumA, 16)

	table, _ := b.Table("banners")
	table.Rows[0].(*entity.Banner).Clicks++
	sumC, err := b.Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumC)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	ds, err := Load(fstest.MapFS{
		"banners.yaml": {Data: []byte("table: banners\nrow_count: 1\nrows:\n  - id: 7\n    title: Solo\n    placement: home_hero\n    image_url: https://cdn.example.com/solo.jpg\n")},
	})
	require.NoError(t, err)

	banners, _ := ds.Table("banners")
	assert.Len(t, banners.Rows, 1)
	assert.Equal(t, 7, banners.MaxID())

	users, _ := ds.Table("users")
	assert.Empty(t, users.Rows)
	assert.Equal(t, 0, users.Declared)
}

func TestLoad_RejectsUnknownColumn(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"banners.yaml": {Data: []byte("table: banners\nrow_count: 1\nrows:\n  - id: 1\n    colour: red\n")},
	})
	assert.ErrorIs(t, err, ErrDataFormat)
}

func TestLoad_RejectsWrongTable(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"banners.yaml": {Data: []byte("table: clinics\nrow_count: 0\nrows: []\n")},
	})
	assert.ErrorIs(t, err, ErrTableMismatch)
}

func TestTableValues_DereferencesPointers(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	replies, _ := ds.Table("community_replies")
	parents, err := replies.Values("parent_reply_id")
	require.NoError(t, err)
	assert.Nil(t, parents[0])

	nested := 0
	for _, v := range parents {
		if _, ok := v.(int); ok {
			nested++
		}
	}
	assert.Positive(t, nested)
}
