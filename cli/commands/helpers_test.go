package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/sqlmorph/sqlmorph/cli/internal/config"
	"github.com/sqlmorph/sqlmorph/schema"
)

func writeSnapshot(t *testing.T, fs afero.Fs, path string, s *schema.Schema) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, schema.EncodeJSON(&buf, s))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0o644))
}

func TestLoadSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := schema.NewBuilder()
	cat := b.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.PrimaryKey("Cat_pkey", id)
	writeSnapshot(t, fs, "next.json", b.Build())

	s, err := loadSnapshot(fs, "next.json")
	require.NoError(t, err)
	require.Len(t, s.Tables, 1)
	require.Equal(t, "Cat", s.Tables[0].Name)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := loadSnapshot(afero.NewMemMapFs(), "missing.json")
	require.ErrorContains(t, err, "missing.json")
}

func TestLoadSnapshotRejectsInvalidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`{"tables": [{"name": "Cat", "namespace": 7}]}`), 0o644))

	_, err := loadSnapshot(fs, "bad.json")
	require.Error(t, err)
}

func TestBuildPlanEndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	oldFs := config.AppFs
	config.AppFs = fs
	t.Cleanup(func() { config.AppFs = oldFs })

	previous := schema.NewBuilder()
	cat := previous.Table("Cat")
	id := cat.Column("id", schema.FamilyInt)
	cat.PrimaryKey("Cat_pkey", id)
	writeSnapshot(t, fs, "previous.json", previous.Build())

	next := schema.NewBuilder()
	cat = next.Table("Cat")
	id = cat.Column("id", schema.FamilyInt)
	cat.Column("age", schema.FamilyInt, schema.Nullable())
	cat.PrimaryKey("Cat_pkey", id)
	writeSnapshot(t, fs, "next.json", next.Build())

	plan, err := buildPlan(&config.Config{
		Provider:     "postgresql",
		PreviousPath: "previous.json",
		NextPath:     "next.json",
	})
	require.NoError(t, err)
	require.True(t, plan.HasChanges())
	require.Equal(t, []string{`ALTER TABLE "Cat" ADD COLUMN "age" INTEGER`}, plan.Statements)
}
