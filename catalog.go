package tscat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/loopcontext/tscat/internal/plural"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=$GOFILE -package mock_tscat -destination=test/mock/$GOFILE

const (
	DefaultResourcePath   = "./resources/translations"
	DefaultSourceLanguage = "en"
)

type MessageCatalog interface {
	// Adds a parsed catalog for lang on top of the files; kept across reloads.
	// An equally ranked entry of the latest runtime catalog wins over earlier ones and over the files.
	LoadCatalog(lang string, catalog *Catalog) error
	ResolveWithCtx(ctx context.Context, key Key) *Resolution
	TranslateWithCtx(ctx context.Context, key Key, args ...interface{}) string
	TranslateNWithCtx(ctx context.Context, key Key, n int, args ...interface{}) string
	WrapErrorWithCtx(ctx context.Context, err error, key Key, args ...interface{}) error
	GetErrorWithCtx(ctx context.Context, key Key, args ...interface{}) error
}

type DefaultMessageCatalog struct {
	mu              sync.RWMutex
	catalogs        map[string][]*Catalog // language with file catalogs in load order
	indexes         map[string]*Index
	runtimeCatalogs map[string][]*Catalog
	cfg             Config
	stats           *catalogStats
	observerMu      sync.RWMutex
	observerCh      chan observerEvent
	observerDone    chan struct{}
	watcher         *watcher
}

func (dmc *DefaultMessageCatalog) resolveRequestedLang(ctx context.Context) string {
	lang := normalizeLangTag(dmc.cfg.DefaultLanguage)
	if lang == "" {
		lang = normalizeLangTag(dmc.cfg.SourceLanguage)
	}
	if ctx == nil {
		return lang
	}

	if langKeyVal := ctx.Value(dmc.cfg.CtxLanguageKey); langKeyVal != nil {
		return normalizeLangTag(fmt.Sprintf("%v", langKeyVal))
	}
	// plain string keys are still accepted
	if langKeyVal := ctx.Value(string(dmc.cfg.CtxLanguageKey)); langKeyVal != nil {
		return normalizeLangTag(fmt.Sprintf("%v", langKeyVal))
	}

	return lang
}

func (dmc *DefaultMessageCatalog) languageCandidates(requestedLang string) []string {
	candidates := make([]string, 0, 4+len(dmc.cfg.FallbackLanguages))
	seen := map[string]struct{}{}
	appendLangIfMissing(&candidates, seen, requestedLang)
	appendLangIfMissing(&candidates, seen, baseLangTag(requestedLang))
	for _, lang := range dmc.cfg.FallbackLanguages {
		appendLangIfMissing(&candidates, seen, normalizeLangTag(lang))
	}
	appendLangIfMissing(&candidates, seen, normalizeLangTag(dmc.cfg.DefaultLanguage))
	return candidates
}

// servable returns the text to show for msg, or false when the source must be used instead.
func (dmc *DefaultMessageCatalog) servable(msg *Message) (string, []string, bool) {
	tr := msg.Translation
	if tr.Type.IsRetired() {
		return "", nil, false
	}
	if tr.Type == TypeUnfinished && !dmc.cfg.UseUnfinished {
		return "", nil, false
	}
	if len(tr.NumerusForms) > 0 {
		forms := tr.displayForms()
		if form := firstNonEmpty(forms); form != "" {
			return form, forms, true
		}
		return "", nil, false
	}
	text := tr.displayText()
	if text == "" {
		return "", nil, false
	}
	return text, nil, true
}

func (dmc *DefaultMessageCatalog) resolve(requestedLang string, key Key) *Resolution {
	res := &Resolution{Key: key, Text: key.Source, Status: StatusMissing}
	sourceLang := normalizeLangTag(dmc.cfg.SourceLanguage)

	var (
		primaryLang      string
		reachedSource    bool
		untranslated     *Message
		untranslatedLang string
	)
	dmc.mu.RLock()
	for _, lang := range dmc.languageCandidates(requestedLang) {
		idx, loaded := dmc.indexes[lang]
		if !loaded {
			if lang == sourceLang {
				reachedSource = true
				break
			}
			continue
		}
		if primaryLang == "" {
			primaryLang = lang
		}
		msg, found := idx.Lookup(key)
		if !found {
			continue
		}
		if text, forms, ok := dmc.servable(msg); ok {
			res.Text = text
			res.NumerusForms = forms
			res.Lang = lang
			res.Status = StatusTranslated
			break
		}
		if untranslated == nil {
			untranslated = msg
			untranslatedLang = lang
		}
	}
	dmc.mu.RUnlock()

	switch {
	case res.Status == StatusTranslated:
		if res.Lang != requestedLang {
			dmc.onLanguageFallback(requestedLang, res.Lang)
		}
	case reachedSource && primaryLang == "":
		res.Status = StatusSource
		res.Lang = sourceLang
	case primaryLang == "":
		res.Status = StatusNoLanguage
		res.Lang = requestedLang
		dmc.onLanguageMissing(requestedLang)
	case untranslated != nil:
		res.Lang = untranslatedLang
		switch kind := untranslated.Translation.Type; {
		case kind.IsRetired():
			res.Status = StatusObsolete
			dmc.onUntranslated(untranslatedLang, key, kind)
		case kind == TypeUnfinished:
			res.Status = StatusUnfinished
			dmc.onUntranslated(untranslatedLang, key, kind)
		default:
			// finished but empty
			dmc.onMessageMissing(untranslatedLang, key)
		}
	default:
		res.Lang = primaryLang
		dmc.onMessageMissing(primaryLang, key)
	}

	return res
}

// layeredIndex indexes runtime catalogs, newest first, ahead of the files so they win ties.
func layeredIndex(files []*Catalog, runtime []*Catalog) *Index {
	layers := make([]*Catalog, 0, len(runtime)+len(files))
	for i := len(runtime) - 1; i >= 0; i-- {
		layers = append(layers, runtime[i])
	}
	return NewIndex(append(layers, files...)...)
}

// renderLang is the language whose number conventions apply to the rendered text.
func (dmc *DefaultMessageCatalog) renderLang(res *Resolution) string {
	if res.Translated() {
		return res.Lang
	}
	return normalizeLangTag(dmc.cfg.SourceLanguage)
}

func (dmc *DefaultMessageCatalog) LoadCatalog(lang string, catalog *Catalog) error {
	if catalog == nil {
		return ErrNilCatalog
	}
	normalizedLang := normalizeLangTag(lang)
	if normalizedLang == "" {
		normalizedLang = normalizeLangTag(catalog.Language)
	}
	if normalizedLang == "" {
		return ErrNoLanguage
	}

	dmc.mu.Lock()
	defer dmc.mu.Unlock()
	if dmc.catalogs == nil {
		dmc.catalogs = map[string][]*Catalog{}
	}
	if dmc.indexes == nil {
		dmc.indexes = map[string]*Index{}
	}
	if dmc.runtimeCatalogs == nil {
		dmc.runtimeCatalogs = map[string][]*Catalog{}
	}
	dmc.runtimeCatalogs[normalizedLang] = append(dmc.runtimeCatalogs[normalizedLang], catalog)
	dmc.indexes[normalizedLang] = layeredIndex(dmc.catalogs[normalizedLang], dmc.runtimeCatalogs[normalizedLang])
	dmc.cfg.Logger.Debug().Str("lang", normalizedLang).Int("contexts", len(catalog.Contexts)).Msg("runtime catalog loaded")

	return nil
}

func (dmc *DefaultMessageCatalog) ResolveWithCtx(ctx context.Context, key Key) *Resolution {
	return dmc.resolve(dmc.resolveRequestedLang(ctx), key)
}

func (dmc *DefaultMessageCatalog) TranslateWithCtx(ctx context.Context, key Key, args ...interface{}) string {
	res := dmc.ResolveWithCtx(ctx, key)
	return dmc.renderArgs(dmc.renderLang(res), key, res.Text, args)
}

func (dmc *DefaultMessageCatalog) TranslateNWithCtx(ctx context.Context, key Key, n int, args ...interface{}) string {
	res := dmc.ResolveWithCtx(ctx, key)
	lang := dmc.renderLang(res)
	text := res.Text
	if res.Translated() && len(res.NumerusForms) > 0 {
		text = res.NumerusForms[plural.Index(res.Lang, n, len(res.NumerusForms))]
		if text == "" {
			dmc.onTemplateIssue(res.Lang, key, fmt.Sprintf("empty_numerus_form_%d", n))
			text = key.Source
			lang = normalizeLangTag(dmc.cfg.SourceLanguage)
		}
	}
	text = renderCount(lang, text, n)
	return dmc.renderArgs(lang, key, text, args)
}

func (dmc *DefaultMessageCatalog) WrapErrorWithCtx(ctx context.Context, err error, key Key, args ...interface{}) error {
	res := dmc.ResolveWithCtx(ctx, key)
	message := dmc.renderArgs(dmc.renderLang(res), key, res.Text, args)

	return newCatalogError(res, message, err)
}

func (dmc *DefaultMessageCatalog) GetErrorWithCtx(ctx context.Context, key Key, args ...interface{}) error {
	return dmc.WrapErrorWithCtx(ctx, nil, key, args...)
}

// Languages lists the loaded languages, sorted.
func (dmc *DefaultMessageCatalog) Languages() []string {
	dmc.mu.RLock()
	defer dmc.mu.RUnlock()
	out := make([]string, 0, len(dmc.indexes))
	for lang := range dmc.indexes {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Duplicates returns the repeated keys of lang's merged catalogs.
func (dmc *DefaultMessageCatalog) Duplicates(lang string) []Key {
	dmc.mu.RLock()
	defer dmc.mu.RUnlock()
	idx, ok := dmc.indexes[normalizeLangTag(lang)]
	if !ok {
		return nil
	}
	return idx.Duplicates()
}

func (dmc *DefaultMessageCatalog) Reload() error {
	return dmc.loadFromFiles()
}

func (dmc *DefaultMessageCatalog) SnapshotStats() MessageCatalogStats {
	return dmc.stats.snapshot()
}

func (dmc *DefaultMessageCatalog) ResetStats() {
	dmc.stats.reset()
}

func (dmc *DefaultMessageCatalog) Close() {
	dmc.stopWatcher()
	dmc.stopObserverWorker()
}

func Reload(catalog MessageCatalog) error {
	reloadable, ok := catalog.(interface{ Reload() error })
	if !ok {
		return fmt.Errorf("catalog does not support reload")
	}
	return reloadable.Reload()
}

func SnapshotStats(catalog MessageCatalog) (MessageCatalogStats, error) {
	statsProvider, ok := catalog.(interface{ SnapshotStats() MessageCatalogStats })
	if !ok {
		return MessageCatalogStats{}, fmt.Errorf("catalog does not support stats snapshots")
	}
	return statsProvider.SnapshotStats(), nil
}

func ResetStats(catalog MessageCatalog) error {
	statsProvider, ok := catalog.(interface{ ResetStats() })
	if !ok {
		return fmt.Errorf("catalog does not support stats reset")
	}
	statsProvider.ResetStats()
	return nil
}

func Close(catalog MessageCatalog) error {
	closer, ok := catalog.(interface{ Close() })
	if !ok {
		return fmt.Errorf("catalog does not support close")
	}
	closer.Close()
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.ResourcePath == "" && cfg.ResourceFS == nil {
		cfg.ResourcePath = DefaultResourcePath
	}
	if cfg.CtxLanguageKey == "" {
		cfg.CtxLanguageKey = "language"
	}
	if cfg.SourceLanguage == "" {
		cfg.SourceLanguage = DefaultSourceLanguage
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = 1024
	}
	if cfg.StatsMaxKeys <= 0 {
		cfg.StatsMaxKeys = 512
	}
	if cfg.ReloadRetries < 0 {
		cfg.ReloadRetries = 0
	}
	if cfg.ReloadRetryDelay <= 0 {
		cfg.ReloadRetryDelay = 50 * time.Millisecond
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 100 * time.Millisecond
	}
}

func NewMessageCatalog(cfg Config) (MessageCatalog, error) {
	applyDefaults(&cfg)

	dmc := &DefaultMessageCatalog{
		cfg:   cfg,
		stats: newCatalogStats(cfg.StatsMaxKeys),
	}
	err := dmc.loadFromFiles()
	if err != nil {
		return dmc, err
	}
	dmc.startObserverWorker()
	if cfg.WatchChanges {
		if err := dmc.startWatcher(); err != nil {
			dmc.stopObserverWorker()
			return dmc, err
		}
	}

	return dmc, nil
}
