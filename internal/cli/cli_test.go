package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenian/i18nprune/internal/config"
)

const projectDir = "/proj"

func newProject(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, projectDir+"/"+path, []byte(content), 0o644))
	}
	return fs
}

func run(t *testing.T, fs afero.Fs, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(fs, projectDir)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--no-color"))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, projectDir+"/"+path)
	require.NoError(t, err)
	return string(data)
}

func basicProject(t *testing.T) afero.Fs {
	return newProject(t, map[string]string{
		"src/App.vue":         `<template><h1>{{ t('common.hello') }}</h1><button v-t="'buttons.submit'" /></template>`,
		"src/locales/en.json": `{"common":{"hello":"Hello","unused":"Unused Key"},"buttons":{"submit":"Submit"}}`,
	})
}

func TestRootHelp(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "--help")
	require.NoError(t, err)

	for _, want := range []string{"clean", "init-config", "version", "--translation-file", "--dry-run"} {
		assert.Contains(t, out, want)
	}
}

func TestVersion(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	out, _, err := run(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestClean_SingleFile(t *testing.T) {
	fs := basicProject(t)

	out, _, err := run(t, fs, "clean", "-t", "src/locales/en.json", "-s", "src")
	require.NoError(t, err)

	assert.Contains(t, out, "Total translation keys: 3\n")
	assert.Contains(t, out, "Used keys: 2\n")
	assert.Contains(t, out, "Unused keys: 1\n")
	assert.Contains(t, out, "  common.unused\n")
	assert.Contains(t, out, "Translations file has been updated\n")
	assert.Contains(t, out, "Backup: src/locales/en.json.backup\n")

	assert.JSONEq(t, `{"common":{"hello":"Hello"},"buttons":{"submit":"Submit"}}`, readFile(t, fs, "src/locales/en.json"))
	assert.Equal(t,
		`{"common":{"hello":"Hello","unused":"Unused Key"},"buttons":{"submit":"Submit"}}`,
		readFile(t, fs, "src/locales/en.json.backup"))
}

func TestClean_RootRunsClean(t *testing.T) {
	fs := basicProject(t)

	out, _, err := run(t, fs, "-t", "src/locales/en.json", "-s", "src", "--dry-run", "--no-backup")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run - no changes made\n")

	exists, err := afero.Exists(fs, projectDir+"/src/locales/en.json.backup")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClean_FlagAliases(t *testing.T) {
	fs := basicProject(t)

	out, _, err := run(t, fs, "clean", "--translations", "src/locales/en.json", "--src", "src", "--dry_run")
	require.NoError(t, err)
	assert.Contains(t, out, "  common.unused\n")
	assert.Contains(t, out, "Dry run - no changes made\n")
}

func TestClean_Check(t *testing.T) {
	fs := basicProject(t)
	before := readFile(t, fs, "src/locales/en.json")

	_, _, err := run(t, fs, "clean", "-t", "src/locales/en.json", "-s", "src", "--check")
	require.Error(t, err)

	var ece *ExitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitFailed, ece.Code)
	assert.Equal(t, "Found 1 unused translation key(s)", ece.Error())
	assert.Equal(t, before, readFile(t, fs, "src/locales/en.json"), "--check must not write")
}

func TestClean_CheckPasses(t *testing.T) {
	fs := newProject(t, map[string]string{
		"src/main.ts":         `t('a')`,
		"src/locales/en.json": `{"a":"A"}`,
	})

	_, _, err := run(t, fs, "clean", "-t", "src/locales/en.json", "-s", "src", "--check")
	assert.NoError(t, err)
}

func TestClean_JSON(t *testing.T) {
	fs := basicProject(t)

	out, _, err := run(t, fs, "clean", "-t", "src/locales/en.json", "-s", "src", "--json", "-n")
	require.NoError(t, err)

	var reports []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "en", reports[0]["locale"])
	assert.Equal(t, "src/locales/en.json", reports[0]["translationFile"])
	assert.Equal(t, float64(1), reports[0]["unusedKeys"])
	assert.Equal(t, []any{"common.unused"}, reports[0]["unusedTranslations"])
}

func TestClean_DirectoryMode(t *testing.T) {
	fs := newProject(t, map[string]string{
		"src/main.ts":            `t('a')`,
		"locales/en.json":        `{"a":"A","b":"B"}`,
		"locales/nested/lt.json": `{"a":"A","b":"B","c":"C"}`,
	})

	out, _, err := run(t, fs, "-t", "locales", "-s", "src", "-v", "--no-backup")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 2 translation files\n")
	assert.Contains(t, out, "locales/en.json (en): 1 unused of 2 updated\n")
	assert.Contains(t, out, "locales/nested/lt.json (lt): 2 unused of 3 updated\n")
	assert.Contains(t, out, "Found 3 unused translation keys across 2 file(s)\n")

	assert.JSONEq(t, `{"a":"A"}`, readFile(t, fs, "locales/en.json"))
	assert.JSONEq(t, `{"a":"A"}`, readFile(t, fs, "locales/nested/lt.json"))
}

func TestClean_DirectoryWithoutJSON(t *testing.T) {
	fs := newProject(t, map[string]string{
		"src/main.ts":       `t('a')`,
		"locales/README.md": "",
	})

	_, _, err := run(t, fs, "-t", "locales", "-s", "src")
	require.Error(t, err)
	assert.Equal(t, "no translation files found in locales", err.Error())
}

func TestClean_AutoDetect(t *testing.T) {
	fs := basicProject(t)

	out, _, err := run(t, fs, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 unused translation keys across 1 file(s)\n")
}

func TestClean_AutoDetectSourceOnly(t *testing.T) {
	fs := basicProject(t)

	out, _, err := run(t, fs, "-t", "src/locales/en.json", "-n")
	require.NoError(t, err)
	assert.Contains(t, out, "Unused keys: 1\n")
}

func TestClean_CannotDetect(t *testing.T) {
	fs := newProject(t, map[string]string{"README.md": ""})

	_, _, err := run(t, fs)
	require.Error(t, err)
	assert.Equal(t,
		"Could not determine required paths: Could not detect Vite i18n include or common directories.",
		err.Error())
}

func TestClean_NotFound(t *testing.T) {
	fs := basicProject(t)

	_, _, err := run(t, fs, "-t", "src/locales/en.json", "-s", "missing")
	require.Error(t, err)
	assert.Equal(t, "Source path not found: /proj/missing", err.Error())
}

func TestClean_ConfigFile(t *testing.T) {
	fs := newProject(t, map[string]string{
		config.FileName: `src: app
translations: app/i18n/en.json
ignores:
  keys:
    - menu
  folders:
    - legacy
`,
		"app/Nav.vue":       `<a>{{ t('menu.' + item) }}</a>`,
		"app/legacy/Old.ts": `t('old')`,
		"app/i18n/en.json":  `{"menu":{"home":"Home"},"old":"Old"}`,
	})

	out, stderr, err := run(t, fs, "--no-backup", "--keep", "unrelated", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded config")
	assert.Contains(t, stderr, "path="+config.FileName)

	assert.Contains(t, out, "Note: 1 key(s) kept by the keep-list\n")
	assert.Contains(t, out, "  old\n")
	assert.JSONEq(t, `{"menu":{"home":"Home"}}`, readFile(t, fs, "app/i18n/en.json"))
}

func TestClean_InvalidConfigWarns(t *testing.T) {
	fs := basicProject(t)
	require.NoError(t, afero.WriteFile(fs, projectDir+"/"+config.FileName, []byte("ignores: [oops"), 0o644))

	out, errOut, err := run(t, fs, "-n")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Warning: failed to load "+config.FileName)
	assert.True(t, strings.Contains(out, "Found 1 unused translation keys"))
}

func TestInitConfig(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, "init-config")
	require.NoError(t, err)
	assert.Equal(t, "Created "+config.FileName+" in the current directory\n", out)
	assert.Equal(t, config.DefaultContent, readFile(t, fs, config.FileName))

	_, _, err = run(t, fs, "init-config")
	require.Error(t, err)
	assert.Equal(t, config.FileName+" already exists in the current directory", err.Error())
}

func TestLocaleOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/p/locales/en.json", "en"},
		{"/p/locales/pt_BR.json", "pt-BR"},
		{"/p/locales/zh-Hant.json", "zh-Hant"},
		{"/p/locales/de/messages.json", "de"},
		{"/p/src/messages.json", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, localeOf(tt.path), tt.path)
	}
}
