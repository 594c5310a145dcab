package tscat

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

const (
	DefaultTSVersion = "2.0"
	tsDoctype        = "<!DOCTYPE TS>"
)

// Decode reads a TS document. Encodings other than UTF-8 declared in the
// XML prolog are converted through the IANA charset registry.
func Decode(r io.Reader) (*Catalog, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader

	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		var startErr xml.UnmarshalError
		if errors.As(err, &startErr) && strings.Contains(string(startErr), "expected element type <TS>") {
			return nil, fmt.Errorf("%w: %v", ErrNotTS, err)
		}
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := normalizeCatalog(&catalog); err != nil {
		return nil, err
	}

	return &catalog, nil
}

func Parse(data []byte) (*Catalog, error) {
	return Decode(bytes.NewReader(data))
}

func ReadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

func ReadFS(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return catalog, nil
}

// Encode writes c the way lupdate lays out a TS file.
func Encode(w io.Writer, c *Catalog) error {
	if c == nil {
		return ErrNilCatalog
	}
	out := *c
	if out.Version == "" {
		out.Version = DefaultTSVersion
	}
	if _, err := io.WriteString(w, xml.Header+tsDoctype+"\n"); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "    ")
	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("encode TS: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (c *Catalog) MarshalTS() ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func WriteFile(path string, c *Catalog) error {
	data, err := c.MarshalTS()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func normalizeCatalog(c *Catalog) error {
	if c.Version == "" {
		c.Version = DefaultTSVersion
	}
	for ci := range c.Contexts {
		ctx := &c.Contexts[ci]
		for mi := range ctx.Messages {
			msg := &ctx.Messages[mi]
			if msg.Source == "" && msg.ID == "" {
				return fmt.Errorf("%w in context %q (message %d)", ErrMissingSource, ctx.Name, mi+1)
			}
			if msg.Numerus || len(msg.Translation.NumerusForms) > 0 {
				// chardata between <numerusform> elements is layout only
				if strings.TrimSpace(msg.Translation.Text) == "" {
					msg.Translation.Text = ""
				}
			}
		}
	}
	return nil
}

type numerusFormXML struct {
	Variants       NumerusFlag `xml:"variants,attr,omitempty"`
	Text           string      `xml:",chardata"`
	LengthVariants []string    `xml:"lengthvariant"`
}

type translationXML struct {
	Type           TranslationType  `xml:"type,attr,omitempty"`
	Variants       NumerusFlag      `xml:"variants,attr,omitempty"`
	Text           string           `xml:",chardata"`
	LengthVariants []string         `xml:"lengthvariant"`
	NumerusForms   []numerusFormXML `xml:"numerusform"`
}

func (t Translation) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	out := translationXML{
		Type:           t.Type,
		Variants:       len(t.LengthVariants) > 0,
		Text:           t.Text,
		LengthVariants: t.LengthVariants,
	}
	for i, form := range t.NumerusForms {
		if i < len(t.NumerusVariants) && len(t.NumerusVariants[i]) > 0 {
			out.NumerusForms = append(out.NumerusForms, numerusFormXML{Variants: true, LengthVariants: t.NumerusVariants[i]})
			continue
		}
		out.NumerusForms = append(out.NumerusForms, numerusFormXML{Text: form})
	}
	return e.EncodeElement(out, start)
}

func (t *Translation) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var in translationXML
	if err := d.DecodeElement(&in, &start); err != nil {
		return err
	}
	*t = Translation{Type: in.Type, Text: in.Text}
	if len(in.LengthVariants) > 0 {
		t.LengthVariants = in.LengthVariants
		// chardata between <lengthvariant> elements is layout only
		if strings.TrimSpace(t.Text) == "" {
			t.Text = ""
		}
	}
	if len(in.NumerusForms) == 0 {
		return nil
	}
	t.NumerusForms = make([]string, len(in.NumerusForms))
	for i, form := range in.NumerusForms {
		if len(form.LengthVariants) == 0 {
			t.NumerusForms[i] = form.Text
			continue
		}
		if t.NumerusVariants == nil {
			t.NumerusVariants = make([][]string, len(in.NumerusForms))
		}
		t.NumerusVariants[i] = form.LengthVariants
	}
	return nil
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// displayText is the text lrelease compiles: the first length variant when
// there are any, otherwise Text.
func (t Translation) displayText() string {
	if v := firstNonEmpty(t.LengthVariants); v != "" {
		return v
	}
	return t.Text
}

// displayForms returns the numerus forms with each variant form collapsed to its first length variant.
func (t Translation) displayForms() []string {
	if len(t.NumerusVariants) == 0 {
		return t.NumerusForms
	}
	out := make([]string, len(t.NumerusForms))
	copy(out, t.NumerusForms)
	for i, variants := range t.NumerusVariants {
		if i >= len(out) {
			break
		}
		if v := firstNonEmpty(variants); v != "" {
			out[i] = v
		}
	}
	return out
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
