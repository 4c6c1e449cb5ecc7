package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_init.sql"))
	assert.Equal(t, "002", Version("migrations/002_counters_and_triggers.sql"))
	assert.Equal(t, "seed.sql", Version("seed.sql"))
}

func TestPending_SortsAndFiltersSQL(t *testing.T) {
	files := fstest.MapFS{
		"003_views.sql":    {Data: []byte("SELECT 1;")},
		"001_init.sql":     {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("docs")},
		"002_counters.sql": {Data: []byte("SELECT 1;")},
		"old/000_x.sql":    {Data: []byte("SELECT 1;")},
	}

	names, err := Pending(files)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_counters.sql", "003_views.sql"}, names)
}
