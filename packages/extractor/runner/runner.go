package runner

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"i18next-parser-go/packages/extractor/catalog"
	"i18next-parser-go/packages/extractor/config"
	"i18next-parser-go/packages/extractor/jsx_parser"
	"i18next-parser-go/packages/extractor/plural"
	"i18next-parser-go/packages/extractor/trans"
	"i18next-parser-go/packages/extractor/transcalls"
	"i18next-parser-go/packages/extractor/util"
)

// Runner drives a full extraction pass: discover source files, extract
// Trans-nodes and translation calls from each, and write merged catalogs.
type Runner struct {
	cfg      *config.Config
	logger   *zap.Logger
	resolver *plural.Resolver
	analyzer *trans.Analyzer
}

// New creates a new Runner
func New(cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger,
		resolver: plural.NewResolver(),
		analyzer: trans.NewAnalyzer(trans.Options{
			Components:       cfg.TransComponents,
			DefaultNamespace: cfg.DefaultNamespace,
		}),
	}
}

// Result summarizes one extraction pass
type Result struct {
	Files       int
	ParseErrors int
	Catalogs    []*catalog.Catalog
}

// fileResult is the locale-independent extraction output for one source file
type fileResult struct {
	path     string
	analyses []trans.Analysis
	errors   []*util.ParseError
}

// Run executes the extraction pass. File extraction is embarrassingly
// parallel and runs on a worker pool; aggregation happens afterwards in
// sorted-file order so catalog contents are deterministic regardless of
// worker scheduling.
func (r *Runner) Run() (*Result, error) {
	files, err := r.discover()
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	r.logger.Info("discovered source files", zap.Int("count", len(files)))

	results, err := r.extractAll(files)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: len(files)}
	for _, fr := range results {
		for _, parseErr := range fr.errors {
			result.ParseErrors++
			r.logger.Warn("parse error", zap.String("file", fr.path), zap.String("error", parseErr.Error()))
		}
	}

	catalogs, err := r.aggregate(results)
	if err != nil {
		return nil, err
	}
	result.Catalogs = catalogs

	for _, cat := range catalogs {
		if err := r.write(cat); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// discover walks the root directory collecting files matched by any input
// glob. node_modules and hidden directories are never descended into.
func (r *Runner) discover() ([]string, error) {
	globs := make([]glob.Glob, 0, len(r.cfg.Input))
	for _, pattern := range r.cfg.Input {
		// "a/**/b" requires at least one intermediate directory; compile the
		// collapsed variant too so files directly under "a" match as well.
		variants := []string{pattern}
		if collapsed := strings.ReplaceAll(pattern, "**/", ""); collapsed != pattern {
			variants = append(variants, collapsed)
		}
		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, errors.Wrapf(err, "compile input pattern %q", pattern)
			}
			globs = append(globs, g)
		}
	}

	var files []string
	err := filepath.WalkDir(r.cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != r.cfg.Root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(r.cfg.Root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, g := range globs {
			if g.Match(rel) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", r.cfg.Root)
	}
	return files, nil
}

// extractAll runs per-file extraction on a worker pool. Each file's analysis
// is independent of every other file's, so ordering within the pool does not
// matter; results land in slots indexed by file order.
func (r *Runner) extractAll(files []string) ([]*fileResult, error) {
	workers := r.cfg.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	results := make([]*fileResult, len(files))
	var wg sync.WaitGroup
	for i, path := range files {
		i, path := i, path
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = r.extractFile(path)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
	return results, nil
}

// extractFile extracts Trans-node analyses and translation calls from one
// source file. A file that cannot be read or parsed contributes its errors
// and nothing else; it never aborts the run.
func (r *Runner) extractFile(path string) *fileResult {
	fr := &fileResult{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		fr.errors = append(fr.errors, util.NewParseError(nil, err.Error()))
		return fr
	}
	file := util.NewParseSourceFile(string(data), path)

	parsed := jsx_parser.Parse(file, jsx_parser.Options{Components: r.cfg.TransComponents})
	fr.errors = append(fr.errors, parsed.Errors...)
	for _, element := range parsed.Elements {
		analysis := r.analyzer.AnalyzeElement(element)
		analysis.Key, analysis.Namespace = r.splitNamespace(analysis.Key, analysis.Namespace)
		fr.analyses = append(fr.analyses, analysis)
	}

	for _, call := range transcalls.Scan(file, transcalls.Options{Functions: r.cfg.TFunctions}) {
		analysis := trans.Analysis{
			Key:        call.Key,
			Defaults:   call.DefaultValue,
			Context:    call.Context,
			HasContext: call.HasContext,
			Namespace:  r.cfg.DefaultNamespace,
		}
		if call.HasCount {
			analysis.Decision = trans.CountExplicit
		}
		analysis.Key, analysis.Namespace = r.splitNamespace(analysis.Key, analysis.Namespace)
		fr.analyses = append(fr.analyses, analysis)
	}
	return fr
}

// splitNamespace peels a namespace prefix off an explicit key
func (r *Runner) splitNamespace(key, namespace string) (string, string) {
	if r.cfg.NsSeparator == "" || key == "" {
		return key, namespace
	}
	if idx := strings.Index(key, r.cfg.NsSeparator); idx > 0 {
		return key[idx+len(r.cfg.NsSeparator):], key[:idx]
	}
	return key, namespace
}

// aggregate folds all analyses into per-(locale, namespace) catalogs. Each
// locale gets its own plural category set; entry generation happens here
// because plural suffixes depend on the target locale.
func (r *Runner) aggregate(results []*fileResult) ([]*catalog.Catalog, error) {
	policy, err := catalog.ParseConflictPolicy(r.cfg.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	catalogs := make(map[string]*catalog.Catalog)
	var order []string
	for _, locale := range r.cfg.Locales {
		categories := r.resolver.Resolve(locale)
		for _, fr := range results {
			for _, analysis := range fr.analyses {
				key := locale + "\x00" + analysis.Namespace
				cat, ok := catalogs[key]
				if !ok {
					cat = catalog.New(locale, analysis.Namespace, policy, r.logger)
					catalogs[key] = cat
					order = append(order, key)
				}
				for _, entry := range analysis.Entries([]string(categories)) {
					if err := cat.Add(entry.Key, entry.Value); err != nil {
						return nil, errors.Wrapf(err, "aggregate %s", fr.path)
					}
				}
			}
		}
	}

	sort.Strings(order)
	out := make([]*catalog.Catalog, 0, len(order))
	for _, key := range order {
		out = append(out, catalogs[key])
	}
	return out, nil
}

// write merges a catalog with its existing file, preserving translated
// values, and persists it unless the run is a dry run
func (r *Runner) write(cat *catalog.Catalog) error {
	path := r.outputPath(cat)
	if existing, err := os.ReadFile(path); err == nil {
		if err := cat.MergeExisting(existing, r.cfg.KeySeparator, r.cfg.KeepRemoved); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "read existing catalog %s", path)
	}

	data, err := cat.Bytes(r.cfg.KeySeparator)
	if err != nil {
		return err
	}
	if r.cfg.DryRun {
		r.logger.Info("dry run, catalog not written",
			zap.String("path", path), zap.Int("keys", cat.Len()))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create catalog directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write catalog %s", path)
	}
	r.logger.Info("catalog written", zap.String("path", path), zap.Int("keys", cat.Len()))
	return nil
}

// outputPath expands the output template for one catalog
func (r *Runner) outputPath(cat *catalog.Catalog) string {
	path := strings.ReplaceAll(r.cfg.Output, "$LOCALE", cat.Locale)
	path = strings.ReplaceAll(path, "$NAMESPACE", cat.Namespace)
	return filepath.Join(r.cfg.Root, filepath.FromSlash(path))
}
