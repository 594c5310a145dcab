package tscat

import "errors"

var (
	ErrNotTS         = errors.New("not a Qt Linguist TS document")
	ErrMalformed     = errors.New("malformed TS document")
	ErrMissingSource = errors.New("message without source")
	ErrNoLanguage    = errors.New("language is required")
	ErrNilCatalog    = errors.New("catalog is nil")
)

// Error is the catalog error type. Error() returns the translated text.
type Error interface {
	Error() string
	Unwrap() error
	MessageKey() Key
	Lang() string
	Translated() bool
}

type DefaultError struct {
	err        error
	message    string
	key        Key
	lang       string
	translated bool
}

func (ce DefaultError) Error() string {
	return ce.message
}

func (ce *DefaultError) Unwrap() error {
	return ce.err
}

func (ce *DefaultError) MessageKey() Key {
	return ce.key
}

// Lang is the language the text was resolved in; empty when the source text was used.
func (ce *DefaultError) Lang() string {
	return ce.lang
}

func (ce *DefaultError) Translated() bool {
	return ce.translated
}

func newCatalogError(res *Resolution, message string, err error) error {
	lang := ""
	if res.Translated() {
		lang = res.Lang
	}
	return &DefaultError{
		err:        err,
		message:    message,
		key:        res.Key,
		lang:       lang,
		translated: res.Translated(),
	}
}
