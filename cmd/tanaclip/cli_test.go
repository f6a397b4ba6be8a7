package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/tanaclip/cmd/tanaclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"clip", "batch", "history", "show", "delete", "config"}

const articlePage = `<!DOCTYPE html>
<html>
<head>
	<title>Rivers | Example Times</title>
	<meta property="og:title" content="How Rivers Shape Cities">
	<meta property="og:site_name" content="Example Times">
	<meta name="author" content="Ann Lee">
</head>
<body>
	<nav><a href="/">Home</a></nav>
	<article>
		<p>Rivers have always drawn people together, offering water, transport and fertile land to the first settlers who built along their banks.</p>
		<p>Over centuries those settlements grew into cities whose streets, bridges and markets still follow the bends of the water that founded them.</p>
	</article>
</body>
</html>`

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range allCommands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

// newMain returns a Main with an isolated database and config file.
func newMain(t *testing.T, dir string) (*main.Main, string) {
	t.Helper()

	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err != nil {
		require.NoError(t, os.WriteFile(configPath, []byte("tag: article\n"), 0o644))
	}

	m := main.NewMain()
	m.DBPath = filepath.Join(dir, "clips.db")
	return m, configPath
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m, _ := newMain(t, t.TempDir())
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range allCommands {
			assert.Contains(t, stdout.String(), cmd)
		}
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "Flags:")
	})

	t.Run("returns error without command", func(t *testing.T) {
		t.Parallel()

		m, _ := newMain(t, t.TempDir())

		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("prints effective config", func(t *testing.T) {
		t.Parallel()

		m, configPath := newMain(t, t.TempDir())
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--config", configPath, "config"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "tag: article")
		assert.Contains(t, stdout.String(), "destinationKey: Author")
	})

	t.Run("reports invalid config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("maxChunkLength: -1\n"), 0o644))
		m, _ := newMain(t, dir)
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--config", configPath, "config"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "TANACLIP_CONFIG")
	})

	t.Run("clips a saved page and manages its history", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pagePath := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(pagePath, []byte(articlePage), 0o644))
		run := func(args ...string) (string, string, error) {
			m, configPath := newMain(t, dir)
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			err := m.Run(context.Background(), append([]string{"--config", configPath}, args...), stdout, stderr)
			return stdout.String(), stderr.String(), err
		}

		stdout, stderr, err := run("clip", "https://example.com/rivers", "--file", pagePath, "--save")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "%%tana%%\n- How Rivers Shape Cities #article\n"), stdout)
		assert.Contains(t, stdout, "  - Author:: Ann Lee\n")
		assert.Contains(t, stdout, "Rivers have always drawn people together")
		require.Contains(t, stderr, "Saved clip ")
		id := strings.TrimSpace(strings.TrimPrefix(stderr[strings.Index(stderr, "Saved clip "):], "Saved clip "))
		require.NotEmpty(t, id)

		stdout, _, err = run("history")
		require.NoError(t, err)
		assert.Contains(t, stdout, id)
		assert.Contains(t, stdout, "How Rivers Shape Cities")

		stdout, _, err = run("show", id)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "%%tana%%\n"))

		stdout, _, err = run("show", id, "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"name": "How Rivers Shape Cities"`)

		stdout, _, err = run("delete", id, "--force")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Deleted clip "+id)

		stdout, _, err = run("history")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No clips found")
	})

	t.Run("writes payload to output directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pagePath := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(pagePath, []byte(articlePage), 0o644))
		outDir := filepath.Join(dir, "out")
		m, configPath := newMain(t, dir)
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{
			"--config", configPath,
			"clip", "https://example.com/rivers", "--file", pagePath, "--format", "markdown", "--out", outDir,
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		path := filepath.Join(outDir, "example.com", "rivers.md")
		assert.Equal(t, "Wrote "+path+"\n", stdout.String())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "title: How Rivers Shape Cities")
		_, err = os.Stat(filepath.Join(dir, "clips.db"))
		assert.True(t, os.IsNotExist(err), "database should not be opened without --save")
	})
}
