package migrate_test

import (
	"testing"

	"github.com/kyson-dev/profile-upgrader/internal/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchemaVersion(t *testing.T) {
	tests := []struct {
		in   string
		want migrate.SchemaVersion
	}{
		{"1.8.9", migrate.SchemaVersion{1, 8, 9}},
		{"v1.9.0", migrate.SchemaVersion{1, 9, 0}},
		{"1.9", migrate.SchemaVersion{1, 9, 0}},
		{" 1.9.4 ", migrate.SchemaVersion{1, 9, 4}},
		{"1.9.4.7", migrate.SchemaVersion{1, 9, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := migrate.ParseSchemaVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSchemaVersion_Invalid(t *testing.T) {
	for _, v := range []string{"", "abc", "1.x.0", "-1.0.0", "1..4"} {
		_, err := migrate.ParseSchemaVersion(v)
		assert.ErrorIs(t, err, migrate.ErrUnsupportedVersion, v)
	}
}

func TestSchemaVersion_Before(t *testing.T) {
	v := func(s string) migrate.SchemaVersion {
		sv, err := migrate.ParseSchemaVersion(s)
		require.NoError(t, err)
		return sv
	}

	assert.True(t, v("1.8.9").Before(v("1.9.0")))
	assert.True(t, v("1.9.0").Before(v("1.9.4")))
	assert.False(t, v("1.9.4").Before(v("1.9.4")))
	assert.False(t, v("1.10.0").Before(v("1.9.4")))
	assert.False(t, v("1.9").Before(v("1.9.0")))
}

func TestSchemaVersion_Schema(t *testing.T) {
	tests := map[string]string{
		"1.8":   "1.8.9",
		"1.8.9": "1.8.9",
		"1.9.0": "1.9.0",
		"1.9.3": "1.9.0",
		"1.9.4": "1.9.4",
		"2.0.0": "1.9.4",
	}
	for in, want := range tests {
		sv, err := migrate.ParseSchemaVersion(in)
		require.NoError(t, err)
		assert.Equal(t, want, sv.Schema(), in)
	}
}

func TestSchemaVersion_Needs(t *testing.T) {
	legacyStep := migrate.DefaultSteps()[0]

	needed, err := migrate.SchemaVersion{1, 8, 9}.Needs(legacyStep)
	require.NoError(t, err)
	assert.True(t, needed)

	needed, err = migrate.SchemaVersion{1, 9, 0}.Needs(legacyStep)
	require.NoError(t, err)
	assert.False(t, needed)

	assert.Equal(t, "1.9.0", migrate.SchemaVersion{1, 9}.String())
}
