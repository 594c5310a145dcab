package tscat

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const overflowStatKey = "__overflow__"

type catalogStats struct {
	mu                sync.Mutex
	languageFallbacks map[string]int
	missingLanguages  map[string]int
	missingMessages   map[string]int
	untranslated      map[string]int
	templateIssues    map[string]int
	droppedEvents     map[string]int
	maxKeys           int
	lastReloadAt      time.Time
}

func newCatalogStats(maxKeys int) *catalogStats {
	return &catalogStats{
		languageFallbacks: map[string]int{},
		missingLanguages:  map[string]int{},
		missingMessages:   map[string]int{},
		untranslated:      map[string]int{},
		templateIssues:    map[string]int{},
		droppedEvents:     map[string]int{},
		maxKeys:           maxKeys,
	}
}

func sanitizeStatKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	if len(key) > 120 {
		return key[:120]
	}
	return key
}

func (s *catalogStats) increment(target map[string]int, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == nil {
		return
	}
	key = sanitizeStatKey(key)
	if s.maxKeys > 0 {
		if _, exists := target[key]; !exists {
			if _, hasOverflow := target[overflowStatKey]; hasOverflow {
				if len(target) >= s.maxKeys {
					key = overflowStatKey
				}
			} else if len(target) >= s.maxKeys-1 {
				key = overflowStatKey
			}
		}
	}
	target[key]++
}

func (s *catalogStats) incrementLanguageFallback(requestedLang string, resolvedLang string) {
	s.increment(s.languageFallbacks, fmt.Sprintf("%s->%s", requestedLang, resolvedLang))
}

func (s *catalogStats) incrementMissingLanguage(lang string) {
	s.increment(s.missingLanguages, lang)
}

func (s *catalogStats) incrementMissingMessage(lang string, key Key) {
	s.increment(s.missingMessages, fmt.Sprintf("%s:%s", lang, key))
}

func (s *catalogStats) incrementUntranslated(lang string, key Key, kind TranslationType) {
	s.increment(s.untranslated, fmt.Sprintf("%s:%s:%s", lang, kind, key))
}

func (s *catalogStats) incrementTemplateIssue(lang string, key Key, issue string) {
	s.increment(s.templateIssues, fmt.Sprintf("%s:%s:%s", lang, key, issue))
}

func (s *catalogStats) incrementDroppedEvent(reason string) {
	s.increment(s.droppedEvents, reason)
}

func (s *catalogStats) setLastReloadAt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastReloadAt = t
}

func (s *catalogStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languageFallbacks = map[string]int{}
	s.missingLanguages = map[string]int{}
	s.missingMessages = map[string]int{}
	s.untranslated = map[string]int{}
	s.templateIssues = map[string]int{}
	s.droppedEvents = map[string]int{}
	s.lastReloadAt = time.Time{}
}

func (s *catalogStats) snapshot() MessageCatalogStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copyMap := func(input map[string]int) map[string]int {
		output := make(map[string]int, len(input))
		for k, v := range input {
			output[k] = v
		}
		return output
	}

	return MessageCatalogStats{
		LanguageFallbacks: copyMap(s.languageFallbacks),
		MissingLanguages:  copyMap(s.missingLanguages),
		MissingMessages:   copyMap(s.missingMessages),
		Untranslated:      copyMap(s.untranslated),
		TemplateIssues:    copyMap(s.templateIssues),
		DroppedEvents:     copyMap(s.droppedEvents),
		LastReloadAt:      s.lastReloadAt,
	}
}
