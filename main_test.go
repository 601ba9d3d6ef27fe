package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs ccwc itself when re-executed by TestMainProcess.
func TestMain(m *testing.M) {
	if os.Getenv("GO_WANT_CCWC_MAIN") == "1" {
		main()
		return
	}
	os.Exit(m.Run())
}

type result struct {
	code   int
	stdout string
	stderr string
}

// runCcwc runs the command in-process with an isolated HOME so no user
// config file leaks into the test.
func runCcwc(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRunStdin(t *testing.T) {
	res := runCcwc(t, "a b c\n")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1 3 6\n", res.stdout)
	assert.Empty(t, res.stderr)

	res = runCcwc(t, "a b c\n", "-")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1 3 6\n", res.stdout)
}

func TestRunFile(t *testing.T) {
	path := writeTempFile(t, "hello.txt", "hello world\n")

	res := runCcwc(t, "", path)
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1 2 12 "+path+"\n", res.stdout)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-c"}, "12"},
		{[]string{"-l"}, "1"},
		{[]string{"-w"}, "2"},
		{[]string{"-m"}, "12"},
		{[]string{"-lw"}, "1 2"},
		{[]string{"-w", "-l"}, "1 2"},
		{[]string{"-c", "-m"}, "12 12"},
		{[]string{"--lines", "--bytes"}, "1 12"},
		{[]string{"-L"}, "11"},
	}
	for _, c := range cases {
		res := runCcwc(t, "", append(c.args, path)...)
		assert.Equal(t, 0, res.code, "args %v: %s", c.args, res.stderr)
		assert.Equal(t, c.want+" "+path+"\n", res.stdout, "args %v", c.args)
	}
}

func TestRunEmptyAndUnterminated(t *testing.T) {
	assert.Equal(t, "0 0 0\n", runCcwc(t, "").stdout)
	assert.Equal(t, "0 1 3\n", runCcwc(t, "abc").stdout)
}

func TestRunUnknownFlag(t *testing.T) {
	for _, flag := range []string{"-x", "--bogus"} {
		res := runCcwc(t, "a b c\n", flag)
		assert.Equal(t, 1, res.code)
		assert.Empty(t, res.stdout)
		assert.Contains(t, res.stderr, "ccwc: invalid argument "+flag)
		assert.Contains(t, res.stderr, "Try 'ccwc --help' for more information.")
	}
}

func TestRunUnknownFlagDoesNoIO(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	res := runCcwc(t, "", "-x", missing)
	assert.Equal(t, 1, res.code)
	assert.NotContains(t, res.stderr, "no such file")
}

func TestRunExtraOperand(t *testing.T) {
	res := runCcwc(t, "", "a.txt", "b.txt")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "invalid argument b.txt")
}

func TestRunMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	res := runCcwc(t, "", missing)
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "ccwc: "+missing+": no such file or directory\n", res.stderr)
}

func TestRunHelpAndVersion(t *testing.T) {
	res := runCcwc(t, "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Usage:")
	assert.Contains(t, res.stdout, "--max-line-length")

	res = runCcwc(t, "", "--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, version)
}

func TestRunWidth(t *testing.T) {
	res := runCcwc(t, "a\n", "-l", "--width", "4")
	assert.Equal(t, "   1\n", res.stdout)

	res = runCcwc(t, "a\n", "--width", "-1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "width must not be negative")
}

func TestRunWidthFromEnv(t *testing.T) {
	t.Setenv("CCWC_WIDTH", "3")
	res := runCcwc(t, "a\n", "-lc")
	assert.Equal(t, "  1   2\n", res.stdout)
}

func TestRunConfigFile(t *testing.T) {
	cfg := writeTempFile(t, "ccwc.toml", "width = 2\n")
	res := runCcwc(t, "a\n", "--config", cfg, "-l")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, " 1\n", res.stdout)

	res = runCcwc(t, "a\n", "--config", cfg, "-l", "--width", "0")
	assert.Equal(t, "1\n", res.stdout)
}

func TestRunConfigFileInHome(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".config", "ccwc")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("width = 3\n"), 0o644))

	t.Setenv("HOME", home)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-w"}, strings.NewReader("x y\n"), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "  2\n", stdout.String())
}

func TestRunMissingConfigFileIsNotFatal(t *testing.T) {
	res := runCcwc(t, "a\n", "--config", filepath.Join(t.TempDir(), "nope.toml"), "-l")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1\n", res.stdout)
}

func TestRunBrokenConfigFileWarns(t *testing.T) {
	cfg := writeTempFile(t, "broken.toml", "width = [unterminated\n")
	res := runCcwc(t, "a\n", "--config", cfg, "-l")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1\n", res.stdout)
	assert.Contains(t, res.stderr, "Warning: error reading config file")
}

func TestRunVerbose(t *testing.T) {
	res := runCcwc(t, "hello\n", "--verbose")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1 1 6\n", res.stdout)
	assert.Contains(t, res.stderr, "scan complete")
	assert.Contains(t, res.stderr, "6 B")
}

func TestRunClipboard(t *testing.T) {
	copied := stubClipboard(t, nil)
	res := runCcwc(t, "a b\n", "--clipboard")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1 2 4\n", res.stdout)
	assert.Equal(t, "1 2 4", *copied)
}

func TestRunTokenizerError(t *testing.T) {
	res := runCcwc(t, "a\n", "--tokens", "--tokenizer", "bogus")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "unsupported tokenizer type: bogus")
}

func TestRunTokensMissingFileFailsBeforeTokenizer(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	res := runCcwc(t, "", "--tokens", "--tokenizer", "bogus", missing)
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Equal(t, "ccwc: "+missing+": no such file or directory\n", res.stderr)
}

// TestMainProcess runs the real process so package init side effects on
// stderr or the filesystem are visible.
func TestMainProcess(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Chmod(home, 0o555))
	t.Cleanup(func() { _ = os.Chmod(home, 0o755) })

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(), "GO_WANT_CCWC_MAIN=1", "HOME="+home)
	cmd.Stdin = strings.NewReader("a b c\n")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	require.NoError(t, cmd.Run(), "stderr: %s", stderr.String())
	assert.Equal(t, "1 3 6\n", stdout.String())
	assert.Empty(t, stderr.String())

	_, err := os.Stat(filepath.Join(home, ".cache"))
	assert.True(t, os.IsNotExist(err), "nothing may be written under HOME")
}
