package detect

import (
	"testing"

	"github.com/spf13/afero"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

func TestBaseDirFromInclude(t *testing.T) {
	tests := []struct {
		include  string
		expected string
	}{
		{"/proj/src/locales/**", "/proj/src/locales"},
		{"/proj/src/locales/*.json", "/proj/src/locales"},
		{"/proj/src/i18n/**/*.json", "/proj/src/i18n"},
		{"/proj/lang/[a-z][a-z].json", "/proj/lang"},
		{"/proj/lang/en.json", "/proj/lang"},
		{"/proj/locales", "/proj/locales"},
	}

	for _, tt := range tests {
		t.Run(tt.include, func(t *testing.T) {
			if got := BaseDirFromInclude(tt.include); got != tt.expected {
				t.Errorf("BaseDirFromInclude(%q) = %q, want %q", tt.include, got, tt.expected)
			}
		})
	}
}

func TestIncludeFromViteConfig(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		code     string
		expected string
	}{
		{
			name:     "string literal",
			filename: "vite.config.js",
			code: `import VueI18nPlugin from '@intlify/unplugin-vue-i18n/vite'
export default {
  plugins: [VueI18nPlugin({ include: 'src/lang/**' })],
}`,
			expected: "/proj/src/lang/**",
		},
		{
			name:     "path.resolve",
			filename: "vite.config.js",
			code: `const path = require('path')
module.exports = {
  plugins: [VueI18nPlugin({ include: path.resolve(__dirname, 'src', 'i18n', '**', '*.json') })],
}`,
			expected: "/proj/src/i18n/**/*.json",
		},
		{
			name:     "resolve with fileURLToPath in typescript",
			filename: "vite.config.ts",
			code: `import { defineConfig } from 'vite'
import { resolve, dirname } from 'node:path'
import { fileURLToPath } from 'node:url'
import VueI18nPlugin from '@intlify/unplugin-vue-i18n/vite'

export default defineConfig({
  plugins: [
    VueI18nPlugin({
      include: resolve(dirname(fileURLToPath(import.meta.url)), './src/locales/**'),
      strictMessage: false,
    }) as any,
  ],
})`,
			expected: "/proj/src/locales/**",
		},
		{
			name:     "new URL",
			filename: "vite.config.mts",
			code: `export default defineConfig({
  plugins: [VueI18nPlugin({ include: [fileURLToPath(new URL('./locales/**', import.meta.url))] })],
})`,
			expected: "/proj/locales/**",
		},
		{
			name:     "plugin include wins over optimizeDeps",
			filename: "vite.config.ts",
			code: `export default defineConfig({
  optimizeDeps: { include: ['vue', 'vue-router'] },
  plugins: [VueI18nPlugin({ 'include': "/abs/translations/*.json" })],
})`,
			expected: "/abs/translations/*.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := IncludeFromViteConfig([]byte(tt.code), tt.filename, "/proj")
			if err != nil {
				t.Fatalf("IncludeFromViteConfig failed: %v", err)
			}
			if !ok {
				t.Fatalf("Expected an include path")
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIncludeFromViteConfig_Unresolvable(t *testing.T) {
	code := "export default { plugins: [VueI18nPlugin({ include: `${root}/locales/**` })] }"
	_, ok, err := IncludeFromViteConfig([]byte(code), "vite.config.js", "/proj")
	if err != nil {
		t.Fatalf("IncludeFromViteConfig failed: %v", err)
	}
	if ok {
		t.Error("A template string with substitutions cannot be resolved")
	}
}

func TestDetect_FromViteConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/proj/vite.config.ts": `import VueI18nPlugin from '@intlify/unplugin-vue-i18n/vite'
export default { plugins: [VueI18nPlugin({ include: 'src/lang/**' })] }`,
		"/proj/src/main.ts":      "",
		"/proj/locales/en.json":  "{}",
		"/proj/src/lang/nl.json": "{}",
	})

	d := Detect(fs, "/proj")
	if d.TranslationsPath != "/proj/src/lang" {
		t.Errorf("Expected translations from vite config, got %q", d.TranslationsPath)
	}
	if d.SrcPath != "/proj/src" {
		t.Errorf("Expected src /proj/src, got %q", d.SrcPath)
	}
	if d.Reason != "" {
		t.Errorf("Expected a complete detection, got %+v", d)
	}
}

func TestDetect_ViteConfigWithoutPlugin(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/proj/vite.config.js":    `export default { build: { include: 'nope/**' } }`,
		"/proj/app/index.ts":      "",
		"/proj/locales/readme.md": "",
		"/proj/i18n/de/main.json": "{}",
	})

	d := Detect(fs, "/proj")
	if d.SrcPath != "/proj/app" {
		t.Errorf("Expected src /proj/app, got %q", d.SrcPath)
	}
	if d.TranslationsPath != "/proj/i18n" {
		t.Errorf("Expected the first candidate holding JSON files, got %q", d.TranslationsPath)
	}
}

func TestDetect_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		reason string
	}{
		{"nothing", map[string]string{"/proj/README.md": ""}, ReasonNothing},
		{"only translations", map[string]string{"/proj/locales/en.json": "{}"}, ReasonMissingSource},
		{"only source", map[string]string{"/proj/client/main.ts": ""}, ReasonMissingTranslation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFiles(t, fs, tt.files)

			d := Detect(fs, "/proj")
			if d.Reason != tt.reason {
				t.Errorf("Expected reason %q, got %q", tt.reason, d.Reason)
			}
			if d.SrcPath != "" && d.TranslationsPath != "" {
				t.Error("Detection should be incomplete")
			}
		})
	}
}
