package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18next-parser-go/packages/extractor/config"
	"i18next-parser-go/packages/extractor/runner"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readCatalog(t *testing.T, root, rel string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	var doc map[string]string
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Root = root
	cfg.Input = []string{"src/**/*.tsx", "src/**/*.ts"}
	// natural-language keys contain sentence punctuation; keep them flat
	cfg.KeySeparator = ""
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.tsx", `
export function App() {
  return (
    <div>
      <Trans>I have {{count: 5}} bananas</Trans>
      <Trans i18nKey="greeting">Hello</Trans>
      <p>{t("app.title", "My App")}</p>
    </div>
  );
}
`)

	cfg := testConfig(root)
	result, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Files)
	assert.Zero(t, result.ParseErrors)

	doc := readCatalog(t, root, "locales/en/translation.json")
	assert.Equal(t, map[string]string{
		"I have {{count}} bananas_one":   "I have {{count}} bananas",
		"I have {{count}} bananas_other": "I have {{count}} bananas",
		"greeting":                       "Hello",
		"app.title":                      "My App",
	}, doc)
}

func TestRunMultipleLocales(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Items.tsx", `<Trans i18nKey="items" count={n}>{{count}} items</Trans>`)

	cfg := testConfig(root)
	cfg.Locales = []string{"en", "ar", "ja"}
	result, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)
	require.Len(t, result.Catalogs, 3)

	en := readCatalog(t, root, "locales/en/translation.json")
	assert.Len(t, en, 2)
	assert.Contains(t, en, "items_one")
	assert.Contains(t, en, "items_other")

	ar := readCatalog(t, root, "locales/ar/translation.json")
	assert.Len(t, ar, 6)
	assert.Contains(t, ar, "items_zero")
	assert.Contains(t, ar, "items_many")

	ja := readCatalog(t, root, "locales/ja/translation.json")
	assert.Equal(t, map[string]string{"items_other": "{{count}} items"}, ja)
}

func TestRunNamespaceSplit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", `t("common:ok"); t("plain")`)
	writeFile(t, root, "src/b.tsx", `<Trans i18nKey="common:cancel">Cancel</Trans>`)

	cfg := testConfig(root)
	_, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)

	common := readCatalog(t, root, "locales/en/common.json")
	assert.Equal(t, map[string]string{"ok": "ok", "cancel": "Cancel"}, common)

	translation := readCatalog(t, root, "locales/en/translation.json")
	assert.Equal(t, map[string]string{"plain": "plain"}, translation)
}

func TestRunMergePreservesTranslations(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.tsx", `<Trans i18nKey="greeting">Hello</Trans>`)
	writeFile(t, root, "locales/de/translation.json", `{"greeting": "Hallo", "gone": "Weg"}`)

	cfg := testConfig(root)
	cfg.Locales = []string{"de"}
	_, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)

	doc := readCatalog(t, root, "locales/de/translation.json")
	assert.Equal(t, map[string]string{"greeting": "Hallo"}, doc)
}

func TestRunKeepRemoved(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.tsx", `<Trans i18nKey="greeting">Hello</Trans>`)
	writeFile(t, root, "locales/en/translation.json", `{"gone": "but kept"}`)

	cfg := testConfig(root)
	cfg.KeepRemoved = true
	_, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)

	doc := readCatalog(t, root, "locales/en/translation.json")
	assert.Equal(t, map[string]string{"greeting": "Hello", "gone": "but kept"}, doc)
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.tsx", `<Trans i18nKey="greeting">Hello</Trans>`)

	cfg := testConfig(root)
	cfg.DryRun = true
	result, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)
	require.Len(t, result.Catalogs, 1)

	_, err = os.Stat(filepath.Join(root, "locales"))
	assert.True(t, os.IsNotExist(err), "dry run must not write catalogs")
}

func TestRunParseErrorSkipsFileOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/broken.tsx", `<Trans>never closed`)
	writeFile(t, root, "src/good.tsx", `<Trans i18nKey="ok">OK</Trans>`)

	cfg := testConfig(root)
	result, err := runner.New(cfg, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.NotZero(t, result.ParseErrors)

	doc := readCatalog(t, root, "locales/en/translation.json")
	assert.Equal(t, map[string]string{"ok": "OK"}, doc)
}

func TestRunConflictError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.tsx", `<Trans i18nKey="dup">One</Trans>`)
	writeFile(t, root, "src/b.tsx", `<Trans i18nKey="dup">Two</Trans>`)

	cfg := testConfig(root)
	cfg.ConflictPolicy = "error"
	_, err := runner.New(cfg, nil).Run()
	assert.Error(t, err)
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.tsx", `<Trans i18nKey="dup">First wins</Trans>`)
	writeFile(t, root, "src/z.tsx", `<Trans i18nKey="dup">Last loses</Trans>`)
	for i := 0; i < 8; i++ {
		writeFile(t, root, filepath.Join("src", "pad"+string(rune('a'+i))+".tsx"),
			`<Trans i18nKey="pad`+string(rune('a'+i))+`">p</Trans>`)
	}

	cfg := testConfig(root)
	cfg.Concurrency = 4
	for run := 0; run < 3; run++ {
		_, err := runner.New(cfg, nil).Run()
		require.NoError(t, err)
		doc := readCatalog(t, root, "locales/en/translation.json")
		assert.Equal(t, "First wins", doc["dup"], "first-seen value in sorted file order must win")
	}
}
