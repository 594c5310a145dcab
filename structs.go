package tscat

import (
	"encoding/xml"
	"io/fs"
	"time"

	"github.com/rs/zerolog"
)

// Catalog is a Qt Linguist translation source file (<TS>).
type Catalog struct {
	XMLName        xml.Name  `xml:"TS" yaml:"-"`
	Version        string    `xml:"version,attr,omitempty" yaml:"version,omitempty"`
	Language       string    `xml:"language,attr,omitempty" yaml:"language,omitempty"`
	SourceLanguage string    `xml:"sourcelanguage,attr,omitempty" yaml:"sourcelanguage,omitempty"`
	Contexts       []Context `xml:"context" yaml:"contexts"`
}

// Context groups the messages of one GUI class.
type Context struct {
	Name     string    `xml:"name" yaml:"name"`
	Comment  string    `xml:"comment,omitempty" yaml:"comment,omitempty"`
	Messages []Message `xml:"message" yaml:"messages"`
}

type Location struct {
	Filename string `xml:"filename,attr,omitempty" yaml:"filename,omitempty"`
	Line     string `xml:"line,attr,omitempty" yaml:"line,omitempty"`
}

type Message struct {
	ID                string      `xml:"id,attr,omitempty" yaml:"id,omitempty"`
	Numerus           NumerusFlag `xml:"numerus,attr,omitempty" yaml:"numerus,omitempty"`
	Locations         []Location  `xml:"location" yaml:"locations,omitempty"`
	Source            string      `xml:"source" yaml:"source"`
	OldSource         string      `xml:"oldsource,omitempty" yaml:"oldsource,omitempty"`
	Comment           string      `xml:"comment,omitempty" yaml:"comment,omitempty"`
	ExtraComment      string      `xml:"extracomment,omitempty" yaml:"extracomment,omitempty"`
	TranslatorComment string      `xml:"translatorcomment,omitempty" yaml:"translatorcomment,omitempty"`
	Translation       Translation `xml:"translation" yaml:"translation"`
}

// Translation holds either a single text or, for numerus messages, one form per plural category.
// The XML form is handled by MarshalXML and UnmarshalXML.
type Translation struct {
	Type TranslationType `yaml:"type,omitempty"`
	Text string          `yaml:"text,omitempty"`
	// LengthVariants are the <lengthvariant> alternatives of a variants="yes" translation, longest first.
	LengthVariants []string `yaml:"lengthvariants,omitempty"`
	NumerusForms   []string `yaml:"numerusforms,omitempty"`
	// NumerusVariants[i] holds the length variants of numerus form i, nil for a plain form.
	NumerusVariants [][]string `yaml:"numerusvariants,omitempty"`
}

// Key is the effective lookup key of a message.
type Key struct {
	Context string
	Source  string
	Comment string
}

func (k Key) String() string {
	if k.Comment == "" {
		return k.Context + "/" + k.Source
	}
	return k.Context + "/" + k.Source + "#" + k.Comment
}

// Key returns the lookup key of m inside context ctxName.
func (m Message) Key(ctxName string) Key {
	return Key{Context: ctxName, Source: m.Source, Comment: m.Comment}
}

type ResolutionStatus int

const (
	StatusTranslated ResolutionStatus = iota
	// StatusSource means the requested language is the source language.
	StatusSource
	StatusUnfinished
	StatusObsolete
	StatusMissing
	StatusNoLanguage
)

func (s ResolutionStatus) String() string {
	switch s {
	case StatusTranslated:
		return "translated"
	case StatusSource:
		return "source"
	case StatusUnfinished:
		return "unfinished"
	case StatusObsolete:
		return "obsolete"
	case StatusMissing:
		return "missing"
	case StatusNoLanguage:
		return "no_language"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of a lookup before argument rendering.
// Text is the source text whenever Status is not StatusTranslated.
type Resolution struct {
	Key          Key
	Text         string
	NumerusForms []string
	Lang         string
	Status       ResolutionStatus
}

// Translated reports whether a translation (not the source text) was found.
func (r *Resolution) Translated() bool {
	return r.Status == StatusTranslated
}

type ContextKey string

type Config struct {
	ResourcePath string `yaml:"resource_path"`
	// ResourceFS takes precedence over ResourcePath, e.g. an embed.FS.
	ResourceFS        fs.FS            `yaml:"-"`
	CtxLanguageKey    ContextKey       `yaml:"ctx_language_key"`
	SourceLanguage    string           `yaml:"source_language"`
	DefaultLanguage   string           `yaml:"default_language"`
	FallbackLanguages []string         `yaml:"fallback_languages"`
	UseUnfinished     bool             `yaml:"use_unfinished"`
	StrictTemplates   bool             `yaml:"strict_templates"`
	WatchChanges      bool             `yaml:"watch_changes"`
	WatchDebounce     time.Duration    `yaml:"watch_debounce"`
	ReloadRetries     int              `yaml:"reload_retries"`
	ReloadRetryDelay  time.Duration    `yaml:"reload_retry_delay"`
	StatsMaxKeys      int              `yaml:"stats_max_keys"`
	ObserverBuffer    int              `yaml:"observer_buffer"`
	Observer          Observer         `yaml:"-"`
	Logger            *zerolog.Logger  `yaml:"-"`
	NowFn             func() time.Time `yaml:"-"`
}

type MessageCatalogStats struct {
	LanguageFallbacks map[string]int
	MissingLanguages  map[string]int
	MissingMessages   map[string]int
	Untranslated      map[string]int
	TemplateIssues    map[string]int
	DroppedEvents     map[string]int
	LastReloadAt      time.Time
}
