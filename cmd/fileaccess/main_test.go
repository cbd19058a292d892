package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runIn(t *testing.T, root, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--env-file", "", "--root", root}, args...)
	code := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFixture(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCSVWriteThenRead(t *testing.T) {
	root := t.TempDir()

	res := runIn(t, root, "1,2\n6\n", "csv", "write", "data/out.csv", "--header", "a,b", "--chunks", "2")
	require.Equal(t, 0, res.code, res.stderr)

	raw, err := os.ReadFile(filepath.Join(root, "data", "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n6,\n", string(raw))

	res = runIn(t, root, "", "csv", "read", "data/out.csv")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "2 rows, 2 columns")
	assert.Contains(t, res.stdout, "6")
}

func TestCSVWriteAppend(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "log.csv", "a,b\n1,2\n")

	res := runIn(t, root, "3,4\n", "csv", "write", "log.csv", "--append")
	require.Equal(t, 0, res.code, res.stderr)

	raw, err := os.ReadFile(filepath.Join(root, "log.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n3,4\n", string(raw))
}

func TestCSVDescribe(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "n.csv", "name,score\nann,1\nbo,3\ncy,5\n")

	res := runIn(t, root, "", "csv", "describe", "n.csv")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "score")
	assert.NotContains(t, res.stdout, "ann")
}

func TestCSVReadMissing(t *testing.T) {
	res := runIn(t, t.TempDir(), "", "csv", "read", "missing.csv")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid path")
}

func TestTxtWriteThenRead(t *testing.T) {
	root := t.TempDir()

	res := runIn(t, root, "", "txt", "write", "src/sample.txt", "samplessss", "--chunks", "3")
	require.Equal(t, 0, res.code, res.stderr)

	res = runIn(t, root, "", "txt", "read", "src/sample.txt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "samplessss", res.stdout)
}

func TestJSONSetGet(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "doc.json", `{"users":[{"id":1,"name":"ann","tags":[]}]}`)

	res := runIn(t, root, "", "json", "set", "doc.json", "users.[id=1].name", "bo")
	require.Equal(t, 0, res.code, res.stderr)

	res = runIn(t, root, "", "json", "push", "doc.json", "users.[id=1].tags", `"x"`)
	require.Equal(t, 0, res.code, res.stderr)

	res = runIn(t, root, "", "json", "get", "doc.json", "users.[id=1].name")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "\"bo\"\n", res.stdout)

	res = runIn(t, root, "", "json", "get", "doc.json", "-q", "users.0.tags.0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "\"x\"\n", res.stdout)
}

func TestJSONSetArrayIndex(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "doc.json", `{"nums":[1,2]}`)

	res := runIn(t, root, "", "json", "set", "doc.json", "nums.3", "9")
	require.Equal(t, 0, res.code, res.stderr)

	res = runIn(t, root, "", "json", "get", "doc.json", "nums")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `[1,2,null,9]`, res.stdout)
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps("users.[id=2].name")
	require.NoError(t, err)
	assert.Len(t, steps, 3)

	steps, err = parseSteps("")
	require.NoError(t, err)
	assert.Empty(t, steps)

	_, err = parseSteps("a..b")
	assert.Error(t, err)
	_, err = parseSteps("a.[id=2")
	assert.Error(t, err)
	_, err = parseSteps("a.[id]")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 2.0, parseValue("2"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "plain", parseValue("plain"))
	assert.Equal(t, "quoted", parseValue(`"quoted"`))
}

func TestWalkFindGlob(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "src/a.csv", "x\n")
	writeFixture(t, root, "src/nested/b.txt", "y\n")

	res := runIn(t, root, "", "walk", "src", "--flat")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "src/a.csv\nsrc/nested/b.txt\n", res.stdout)

	res = runIn(t, root, "", "walk", "src")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a.csv\nnested/\n  b.txt\n", res.stdout)

	res = runIn(t, root, "", "find", ".", "b.txt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "src/nested/b.txt\n", res.stdout)

	res = runIn(t, root, "", "find", ".", "nope.txt")
	assert.Equal(t, 1, res.code)

	res = runIn(t, root, "", "glob", ".", "**/*.csv")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "src/a.csv\n", res.stdout)
}

func TestEnsureAndRm(t *testing.T) {
	root := t.TempDir()

	res := runIn(t, root, "", "ensure", "a/b/c.txt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(root, "a", "b", "c.txt"))

	res = runIn(t, root, "", "ensure", "d/e", "--dir")
	require.Equal(t, 0, res.code, res.stderr)
	assert.DirExists(t, filepath.Join(root, "d", "e"))

	res = runIn(t, root, "", "rm", "a", "d", "missing")
	assert.Equal(t, 1, res.code)

	res = runIn(t, root, "", "rm", "a", "d", "missing", "--ignore-errors")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NoDirExists(t, filepath.Join(root, "a"))
	assert.NoDirExists(t, filepath.Join(root, "d"))
}

func TestStat(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "notes.txt", "hello world\n")

	res := runIn(t, root, "", "stat", "notes.txt")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "type: FILE")
	assert.Contains(t, res.stdout, "mime: text/plain")

	res = runIn(t, root, "", "stat", ".")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "type: DIRECTORY\n", res.stdout)
}

func TestRootAndMetricsFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "n.csv", "a\n1\n")
	metrics := filepath.Join(t.TempDir(), "run.prom")

	res := runIn(t, root, "", "root")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, root+"\n", res.stdout)

	res = runIn(t, root, "", "--metrics-file", metrics, "csv", "read", "n.csv")
	require.Equal(t, 0, res.code, res.stderr)

	raw, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "fileaccess_csv_rows_parsed_total 1")
}
