package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CSCI-GA-2820-SP25-003/customers/internal/repository/repotest"
)

func TestSplitStatements(t *testing.T) {
	script := `-- reset
DROP TABLE IF EXISTS customers;

CREATE TABLE customers (
    id INT PRIMARY KEY,
    name VARCHAR(63) NOT NULL
);
`
	stmts := splitStatements(script)
	require.Len(t, stmts, 2)
	assert.Equal(t, "DROP TABLE IF EXISTS customers", stmts[0])
	assert.Contains(t, stmts[1], "CREATE TABLE customers")
	assert.NotContains(t, stmts[1], "--")
}

func TestSeedCustomers_Idempotent(t *testing.T) {
	repo := repotest.NewCustomers()

	n, err := seedCustomers(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = seedCustomers(context.Background(), repo)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 5, repo.Len())
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "events"} {
		assert.True(t, names[want], want)
	}
}
