package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes one command line against a fresh command tree, as a separate process would.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CLASSIFIEDS_STORE_DRIVER", "sqlite")
	t.Setenv("CLASSIFIEDS_STORE_SQLITE_DSN", filepath.Join(dir, "cli.db"))
	t.Setenv("CLASSIFIEDS_LOGGER_LEVEL", "error")

	_, err := run(t, "user", "show")
	assert.ErrorIs(t, err, errNoCurrentUser)

	out, err := run(t, "user", "register", "dan@example.com", "dan", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "registered dan")

	out, err = run(t, "user", "use", "dan", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "current user: dan (free)")

	out, err = run(t, "user", "upgrade", "premium")
	require.NoError(t, err)
	assert.Contains(t, out, "dan is now premium")

	out, err = run(t, "user", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "premium⭐", "current user follows the upgrade")

	_, err = run(t, "user", "upgrade", "free")
	assert.Error(t, err)

	out, err = run(t, "posts", "--mine", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "REMAINING")

	out, err = run(t, "routes", "--tier", "premium")
	require.NoError(t, err)
	assert.Contains(t, out, "Post Ad")
	assert.Contains(t, out, "RESTRICTED FOR PREMIUM")
	assert.Contains(t, out, "VIP Lounge")

	_, err = run(t, "routes", "--tier", "platinum")
	assert.Error(t, err)

	out, err = run(t, "store", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, `store "sqlite" cleared`)

	_, err = run(t, "user", "show")
	assert.ErrorIs(t, err, errNoCurrentUser)
}
