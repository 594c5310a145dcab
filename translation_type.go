package tscat

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// TranslationType is the "type" attribute of <translation>. The empty value marks a finished translation.
type TranslationType string

const (
	TypeFinished   TranslationType = ""
	TypeUnfinished TranslationType = "unfinished"
	TypeObsolete   TranslationType = "obsolete"
	// TypeVanished is written by Qt 5 lupdate for messages no longer found in sources.
	TypeVanished TranslationType = "vanished"
)

// IsRetired reports whether the message is kept only for translator history.
func (t TranslationType) IsRetired() bool {
	return t == TypeObsolete || t == TypeVanished
}

func (t TranslationType) Valid() bool {
	switch t {
	case TypeFinished, TypeUnfinished, TypeObsolete, TypeVanished:
		return true
	}
	return false
}

// UnmarshalYAML accepts the attribute values plus "finished" for the empty type.
func (t *TranslationType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	if v == nil {
		*t = TypeFinished
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("translation type must be a string, got %T", v)
	}
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "finished" {
		s = ""
	}
	parsed := TranslationType(s)
	if !parsed.Valid() {
		return fmt.Errorf("unknown translation type %q", s)
	}
	*t = parsed
	return nil
}

// NumerusFlag is a yes/no attribute: numerus="yes" of <message>, also variants="yes" of <translation>.
type NumerusFlag bool

func (n NumerusFlag) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if !n {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: "yes"}, nil
}

func (n *NumerusFlag) UnmarshalXMLAttr(attr xml.Attr) error {
	*n = NumerusFlag(strings.EqualFold(strings.TrimSpace(attr.Value), "yes"))
	return nil
}
