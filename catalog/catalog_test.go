package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlsql/dlsql/catalog"
)

func TestLoadBuildsTableInfo(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load(context.Background(), []string{
		"CREATE TABLE hosts (id integer, name varchar(36), PRIMARY KEY (id))",
	})
	require.NoError(t, err)

	info, ok := c.Lookup("hosts")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, info.PrimaryKey)
	require.Len(t, info.Columns, 2)
	assert.Equal(t, "id", info.Columns[0].Name)
	assert.Equal(t, "name", info.Columns[1].Name)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load(context.Background(), []string{
		"CREATE TABLE hosts (id integer, PRIMARY KEY (id))",
	})
	require.NoError(t, err)

	_, ok := c.Lookup("HOSTS")
	assert.True(t, ok)
	_, ok = c.Lookup("HoStS")
	assert.True(t, ok)
}

func TestLookupUnknownTable(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load(context.Background(), nil)
	require.NoError(t, err)

	_, err = c.MustLookup("missing")
	require.Error(t, err)
}

func TestLoadBuildsCompositePrimaryKeyInDeclarationOrder(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load(context.Background(), []string{
		"CREATE TABLE e (a integer, b integer, PRIMARY KEY (a, b))",
	})
	require.NoError(t, err)

	info, ok := c.Lookup("e")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, info.PrimaryKey)
}
