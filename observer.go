package tscat

// Observer receives catalog events on a background goroutine. Slow observers
// lose events once the buffer fills; those drops are counted in the stats.
type Observer interface {
	OnLanguageFallback(requestedLang string, resolvedLang string)
	OnLanguageMissing(lang string)
	OnMessageMissing(lang string, key Key)
	// OnUntranslated fires when an entry exists but is unfinished or retired.
	OnUntranslated(lang string, key Key, kind TranslationType)
	OnTemplateIssue(lang string, key Key, issue string)
}

type observerEventType int

const (
	observerEventLanguageFallback observerEventType = iota
	observerEventLanguageMissing
	observerEventMessageMissing
	observerEventUntranslated
	observerEventTemplateIssue
)

type observerEvent struct {
	kind          observerEventType
	requested     string
	resolved      string
	lang          string
	key           Key
	translation   TranslationType
	templateIssue string
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (dmc *DefaultMessageCatalog) startObserverWorker() {
	if dmc.cfg.Observer == nil || dmc.observerCh != nil {
		return
	}
	dmc.observerCh = make(chan observerEvent, dmc.cfg.ObserverBuffer)
	dmc.observerDone = make(chan struct{})
	go func() {
		defer close(dmc.observerDone)
		for evt := range dmc.observerCh {
			switch evt.kind {
			case observerEventLanguageFallback:
				safeObserverCall(func() {
					dmc.cfg.Observer.OnLanguageFallback(evt.requested, evt.resolved)
				})
			case observerEventLanguageMissing:
				safeObserverCall(func() {
					dmc.cfg.Observer.OnLanguageMissing(evt.lang)
				})
			case observerEventMessageMissing:
				safeObserverCall(func() {
					dmc.cfg.Observer.OnMessageMissing(evt.lang, evt.key)
				})
			case observerEventUntranslated:
				safeObserverCall(func() {
					dmc.cfg.Observer.OnUntranslated(evt.lang, evt.key, evt.translation)
				})
			case observerEventTemplateIssue:
				safeObserverCall(func() {
					dmc.cfg.Observer.OnTemplateIssue(evt.lang, evt.key, evt.templateIssue)
				})
			}
		}
	}()
}

func (dmc *DefaultMessageCatalog) stopObserverWorker() {
	dmc.observerMu.Lock()
	defer dmc.observerMu.Unlock()
	if dmc.observerCh == nil {
		return
	}
	close(dmc.observerCh)
	<-dmc.observerDone
	dmc.observerCh = nil
	dmc.observerDone = nil
}

func (dmc *DefaultMessageCatalog) publishObserverEvent(evt observerEvent) {
	dmc.observerMu.RLock()
	defer dmc.observerMu.RUnlock()
	if dmc.cfg.Observer == nil || dmc.observerCh == nil {
		return
	}
	select {
	case dmc.observerCh <- evt:
	default:
		dmc.stats.incrementDroppedEvent("observer_queue_full")
	}
}

func (dmc *DefaultMessageCatalog) onLanguageFallback(requestedLang string, resolvedLang string) {
	dmc.stats.incrementLanguageFallback(requestedLang, resolvedLang)
	dmc.publishObserverEvent(observerEvent{
		kind:      observerEventLanguageFallback,
		requested: requestedLang,
		resolved:  resolvedLang,
	})
}

func (dmc *DefaultMessageCatalog) onLanguageMissing(lang string) {
	dmc.stats.incrementMissingLanguage(lang)
	dmc.publishObserverEvent(observerEvent{
		kind: observerEventLanguageMissing,
		lang: lang,
	})
}

func (dmc *DefaultMessageCatalog) onMessageMissing(lang string, key Key) {
	dmc.stats.incrementMissingMessage(lang, key)
	dmc.publishObserverEvent(observerEvent{
		kind: observerEventMessageMissing,
		lang: lang,
		key:  key,
	})
}

func (dmc *DefaultMessageCatalog) onUntranslated(lang string, key Key, kind TranslationType) {
	dmc.stats.incrementUntranslated(lang, key, kind)
	dmc.publishObserverEvent(observerEvent{
		kind:        observerEventUntranslated,
		lang:        lang,
		key:         key,
		translation: kind,
	})
}

func (dmc *DefaultMessageCatalog) onTemplateIssue(lang string, key Key, issue string) {
	dmc.stats.incrementTemplateIssue(lang, key, issue)
	dmc.publishObserverEvent(observerEvent{
		kind:          observerEventTemplateIssue,
		lang:          lang,
		key:           key,
		templateIssue: issue,
	})
}
