package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in process against a dedicated data directory.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--data-dir", dataDir))
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "init", "--family", "Smith")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")

	// A second init refuses to clobber the config.
	_, err = run(t, dir, "init")
	assert.Error(t, err)
}

func TestChildLifecycle(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "init")
	require.NoError(t, err)

	out, err := run(t, dir, "child", "create", "--name", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")

	_, err = run(t, dir, "child", "create", "--name", "Bob")
	require.NoError(t, err)

	// First created child stayed active.
	out, err = run(t, dir, "child", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* Alice"))

	_, err = run(t, dir, "child", "use", "bob")
	require.NoError(t, err)
	out, err = run(t, dir, "child", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "* Bob")
}

func TestTransactionsAndBalance(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "init")
	require.NoError(t, err)
	_, err = run(t, dir, "child", "create", "--name", "Alice")
	require.NoError(t, err)

	_, err = run(t, dir, "add", "10.00", "birthday money")
	require.NoError(t, err)
	_, err = run(t, dir, "spend", "3.50", "candy")
	require.NoError(t, err)

	out, err := run(t, dir, "balance")
	require.NoError(t, err)
	assert.Contains(t, out, "$6.50")

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "birthday money")
	assert.Contains(t, out, "-3.50")
}

func TestCommandsRequireActiveChild(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "init")
	require.NoError(t, err)

	_, err = run(t, dir, "balance")
	assert.Error(t, err)
	_, err = run(t, dir, "goal", "status")
	assert.Error(t, err)
}

func TestGoalCommands(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "init")
	require.NoError(t, err)
	_, err = run(t, dir, "child", "create", "--name", "Alice")
	require.NoError(t, err)
	_, err = run(t, dir, "add", "15.50", "starting balance")
	require.NoError(t, err)
	_, err = run(t, dir, "allowance", "set", "--amount", "5.00", "--day", "saturday")
	require.NoError(t, err)

	out, err := run(t, dir, "goal", "create", "--description", "new bike", "--target", "40.00")
	require.NoError(t, err)
	assert.Contains(t, out, "new bike")
	assert.Contains(t, out, "$24.50")

	out, err = run(t, dir, "goal", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "new bike")

	_, err = run(t, dir, "goal", "cancel")
	require.NoError(t, err)

	out, err = run(t, dir, "goal", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "cancelled")
}

func TestUnlockCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "init", "--answer", "open sesame")
	require.NoError(t, err)
	_, err = run(t, dir, "child", "create", "--name", "Alice")
	require.NoError(t, err)

	out, err := run(t, dir, "unlock", "--answer", "Open Sesame")
	require.NoError(t, err)
	assert.Contains(t, out, "Access granted")

	_, err = run(t, dir, "unlock", "--answer", "wrong")
	assert.Error(t, err)

	out, err = run(t, dir, "unlock", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 attempts: 1 granted, 1 denied")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "init")
	require.NoError(t, err)
	_, err = run(t, dir, "child", "create", "--name", "Alice")
	require.NoError(t, err)
	_, err = run(t, dir, "add", "10.00", "birthday money")
	require.NoError(t, err)

	out, err := run(t, dir, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "date,description,amount,balance")
	assert.Contains(t, out, "birthday money,10.00,10.00")
}
