package tscat

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

const tsExtension = ".ts"

type loadedFile struct {
	name    string
	lang    string
	catalog *Catalog
}

func (dmc *DefaultMessageCatalog) resourceFS() fs.FS {
	if dmc.cfg.ResourceFS != nil {
		return dmc.cfg.ResourceFS
	}
	return os.DirFS(dmc.cfg.ResourcePath)
}

// readCatalogs parses every *.ts file at the root of the resource directory,
// grouped by language in file name order.
func (dmc *DefaultMessageCatalog) readCatalogs() (map[string][]*Catalog, error) {
	fsys := dmc.resourceFS()
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to find translations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), tsExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]loadedFile, len(names))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		g.Go(func() error {
			catalog, err := ReadFS(fsys, name)
			if err != nil {
				return fmt.Errorf("failed to read translation file: %w", err)
			}
			lang := languageOfFile(name, catalog)
			if lang == "" {
				return fmt.Errorf("cannot determine language of %s", name)
			}
			files[i] = loadedFile{name: name, lang: lang, catalog: catalog}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byLang := map[string][]*Catalog{}
	for _, file := range files {
		byLang[file.lang] = append(byLang[file.lang], file.catalog)
		dmc.cfg.Logger.Debug().Str("file", file.name).Str("lang", file.lang).Msg("translation file parsed")
	}
	return byLang, nil
}

func (dmc *DefaultMessageCatalog) readCatalogsWithRetry() (map[string][]*Catalog, error) {
	retries := dmc.cfg.ReloadRetries
	if retries < 0 {
		retries = 0
	}
	delay := dmc.cfg.ReloadRetryDelay
	if delay <= 0 {
		delay = 50 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		byLang, err := dmc.readCatalogs()
		if err == nil {
			return byLang, nil
		}
		lastErr = err
		if attempt < retries {
			dmc.cfg.Logger.Warn().Err(err).Int("attempt", attempt+1).Msg("reading translations failed, retrying")
			time.Sleep(delay)
		}
	}

	return nil, lastErr
}

func (dmc *DefaultMessageCatalog) loadFromFiles() error {
	byLang, err := dmc.readCatalogsWithRetry()
	if err != nil {
		return err
	}

	dmc.mu.Lock()
	defer dmc.mu.Unlock()
	indexes := make(map[string]*Index, len(byLang)+len(dmc.runtimeCatalogs))
	for lang, catalogs := range byLang {
		indexes[lang] = layeredIndex(catalogs, dmc.runtimeCatalogs[lang])
	}
	for lang, runtimeSet := range dmc.runtimeCatalogs {
		if _, fromFiles := indexes[lang]; !fromFiles {
			indexes[lang] = layeredIndex(nil, runtimeSet)
		}
	}
	dmc.catalogs = byLang
	dmc.indexes = indexes
	dmc.stats.setLastReloadAt(dmc.cfg.NowFn())
	dmc.cfg.Logger.Info().Int("languages", len(indexes)).Msg("translations loaded")

	return nil
}

// languageOfFile prefers the language attribute; otherwise the part of the
// file name after the first underscore (VirtualBox_pt_BR.ts -> pt-br).
func languageOfFile(name string, catalog *Catalog) string {
	if catalog != nil && strings.TrimSpace(catalog.Language) != "" {
		return normalizeLangTag(catalog.Language)
	}
	stem := strings.TrimSuffix(path.Base(name), tsExtension)
	if idx := strings.Index(stem, "_"); idx >= 0 {
		stem = stem[idx+1:]
	}
	return normalizeLangTag(stem)
}

func normalizeLangTag(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	if tag, err := language.Parse(lang); err == nil {
		return strings.ToLower(tag.String())
	}
	lang = strings.ToLower(lang)
	return strings.ReplaceAll(lang, "_", "-")
}

func baseLangTag(lang string) string {
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		return lang[:idx]
	}
	return lang
}

func appendLangIfMissing(target *[]string, seen map[string]struct{}, lang string) {
	if lang == "" {
		return
	}
	if _, exists := seen[lang]; exists {
		return
	}
	seen[lang] = struct{}{}
	*target = append(*target, lang)
}
