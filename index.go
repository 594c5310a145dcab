package tscat

import "sort"

// Index is a read-only lookup table over one or more catalogs of the same language.
type Index struct {
	entries    map[Key]*Message
	duplicates []Key
}

// NewIndex builds the lookup table. When a key repeats, the better ranked
// entry wins (finished > unfinished with text > unfinished > retired) and
// the first one wins a tie.
func NewIndex(catalogs ...*Catalog) *Index {
	idx := &Index{entries: map[Key]*Message{}}
	seenDup := map[Key]struct{}{}
	for _, catalog := range catalogs {
		if catalog == nil {
			continue
		}
		for ci := range catalog.Contexts {
			ctx := &catalog.Contexts[ci]
			for mi := range ctx.Messages {
				msg := &ctx.Messages[mi]
				key := msg.Key(ctx.Name)
				current, exists := idx.entries[key]
				if !exists {
					idx.entries[key] = msg
					continue
				}
				if _, reported := seenDup[key]; !reported {
					seenDup[key] = struct{}{}
					idx.duplicates = append(idx.duplicates, key)
				}
				if rank(msg) > rank(current) {
					idx.entries[key] = msg
				}
			}
		}
	}
	return idx
}

func rank(msg *Message) int {
	tr := msg.Translation
	switch {
	case tr.Type.IsRetired():
		return 0
	case tr.Type == TypeUnfinished && !hasText(tr):
		return 1
	case tr.Type == TypeUnfinished:
		return 2
	default:
		return 3
	}
}

func hasText(tr Translation) bool {
	return tr.displayText() != "" || firstNonEmpty(tr.displayForms()) != ""
}

// Lookup finds key, retrying without the comment when a commented key is absent.
func (i *Index) Lookup(key Key) (*Message, bool) {
	if i == nil {
		return nil, false
	}
	if msg, found := i.entries[key]; found {
		return msg, true
	}
	if key.Comment != "" {
		key.Comment = ""
		msg, found := i.entries[key]
		return msg, found
	}
	return nil, false
}

// Duplicates lists keys that appear more than once, in first-seen order.
func (i *Index) Duplicates() []Key {
	if i == nil {
		return nil
	}
	out := make([]Key, len(i.duplicates))
	copy(out, i.duplicates)
	return out
}

func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Contexts returns the distinct context names with at least one entry.
func (i *Index) Contexts() []string {
	if i == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for key := range i.entries {
		if _, ok := seen[key.Context]; ok {
			continue
		}
		seen[key.Context] = struct{}{}
		out = append(out, key.Context)
	}
	sort.Strings(out)
	return out
}
