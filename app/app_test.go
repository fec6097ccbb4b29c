package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `Title = "Address Book"

[DB]
GormEngine = "sqlite"
Path = %q

[Log]
LogLevel = "error"
AppName = "address-book"
ServiceName = "address-book-test"

[Webserver]
Port = 8080
URL = "http://localhost:8080"
`

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := fmt.Sprintf(testConfig, filepath.Join(dir, "address_book.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// flags are package globals, reset them between runs
	dumpJSON = false
	tokenUsername = ""
	deleteUsername = ""

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := Execute()

	return out.String(), err
}

func TestConfigDump(t *testing.T) {
	dir := writeConfig(t)

	out, err := run(t, "--config", dir, "config", "dump")
	require.NoError(t, err)
	assert.Contains(t, out, `Title = "Address Book"`)
	assert.Contains(t, out, `GormEngine = "sqlite"`)

	out, err = run(t, "--config", dir, "config", "dump", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title": "Address Book"`)
}

func TestConfigDump_MissingFile(t *testing.T) {
	_, err := run(t, "--config", t.TempDir(), "config", "dump")
	assert.Error(t, err)
}

func TestUserAndToken(t *testing.T) {
	dir := writeConfig(t)

	_, err := run(t, "--config", dir, "migrate")
	require.NoError(t, err)

	out, err := run(t, "--config", dir, "user", "create",
		"--username", "alice", "--email", "alice@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, `created user "alice"`)

	_, err = run(t, "--config", dir, "user", "create",
		"--username", "alice", "--email", "other@example.com", "--password", "secret")
	assert.Error(t, err)

	first, err := run(t, "--config", dir, "token", "create", "--username", "alice")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(first), 40)

	second, err := run(t, "--config", dir, "token", "create", "--username", "alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = run(t, "--config", dir, "token", "create", "--username", "nobody")
	assert.Error(t, err)

	out, err = run(t, "--config", dir, "user", "delete", "--username", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, `deleted user "alice"`)

	_, err = run(t, "--config", dir, "token", "create", "--username", "alice")
	assert.Error(t, err)
}
