package tscat

import (
	"github.com/loopcontext/tscat/internal/plural"
)

// Extracted is a message reference found in application sources.
type Extracted struct {
	Key       Key
	Numerus   bool
	Locations []Location
}

type UpdateOptions struct {
	// Language decides how many numerus forms new numerus messages get. Defaults to the catalog language.
	Language string
	// NoObsolete drops messages that are no longer referenced instead of marking them vanished.
	NoObsolete bool
}

type UpdateSummary struct {
	Found    int
	New      int
	Kept     int
	Revived  int
	Vanished int
	Dropped  int
}

// Update merges the messages found in sources into existing the way lupdate
// does: translations of found keys are kept, new keys are added unfinished,
// translated keys that disappeared become vanished and untranslated ones are dropped.
// existing is not modified.
func Update(existing *Catalog, found []Extracted, opts UpdateOptions) (*Catalog, UpdateSummary) {
	if existing == nil {
		existing = &Catalog{}
	}
	out := &Catalog{
		Version:        existing.Version,
		Language:       existing.Language,
		SourceLanguage: existing.SourceLanguage,
	}
	if out.Version == "" {
		out.Version = DefaultTSVersion
	}
	if opts.Language != "" && out.Language == "" {
		out.Language = opts.Language
	}
	lang := opts.Language
	if lang == "" {
		lang = out.Language
	}

	order := make([]Key, 0, len(found))
	byKey := map[Key]*Extracted{}
	for _, item := range found {
		if current, ok := byKey[item.Key]; ok {
			current.Locations = append(current.Locations, item.Locations...)
			current.Numerus = current.Numerus || item.Numerus
			continue
		}
		copied := item
		copied.Locations = append([]Location(nil), item.Locations...)
		byKey[item.Key] = &copied
		order = append(order, item.Key)
	}

	// a key found again keeps its best ranked existing entry
	type position struct{ ctx, msg int }
	keepers := map[Key]position{}
	for ci := range existing.Contexts {
		ctx := &existing.Contexts[ci]
		for mi := range ctx.Messages {
			key := ctx.Messages[mi].Key(ctx.Name)
			if _, isFound := byKey[key]; !isFound {
				continue
			}
			current, ok := keepers[key]
			if !ok || rank(&ctx.Messages[mi]) > rank(&existing.Contexts[current.ctx].Messages[current.msg]) {
				keepers[key] = position{ci, mi}
			}
		}
	}

	summary := UpdateSummary{Found: len(order)}
	consumed := map[Key]struct{}{}
	ctxIndex := map[string]int{}

	for ci, ctx := range existing.Contexts {
		next := Context{Name: ctx.Name, Comment: ctx.Comment}
		for mi, msg := range ctx.Messages {
			key := msg.Key(ctx.Name)
			ref, isFound := byKey[key]
			if isFound && keepers[key] == (position{ci, mi}) {
				consumed[key] = struct{}{}
				msg.Locations = ref.Locations
				msg.Numerus = NumerusFlag(ref.Numerus)
				if msg.Translation.Type.IsRetired() {
					msg.Translation.Type = TypeUnfinished
					summary.Revived++
				} else {
					summary.Kept++
				}
				if ref.Numerus && len(msg.Translation.NumerusForms) == 0 {
					msg.Translation.NumerusForms = emptyForms(lang)
					msg.Translation.Text = ""
					msg.Translation.LengthVariants = nil
				}
				next.Messages = append(next.Messages, msg)
				continue
			}
			switch {
			case opts.NoObsolete:
				summary.Dropped++
			case msg.Translation.Type.IsRetired():
				next.Messages = append(next.Messages, msg)
			case hasText(msg.Translation):
				msg.Translation.Type = TypeVanished
				msg.Locations = nil
				next.Messages = append(next.Messages, msg)
				summary.Vanished++
			default:
				summary.Dropped++
			}
		}
		if len(next.Messages) == 0 {
			continue
		}
		ctxIndex[next.Name] = len(out.Contexts)
		out.Contexts = append(out.Contexts, next)
	}

	for _, key := range order {
		if _, taken := consumed[key]; taken {
			continue
		}
		ref := byKey[key]
		msg := Message{
			Numerus:     NumerusFlag(ref.Numerus),
			Locations:   ref.Locations,
			Source:      key.Source,
			Comment:     key.Comment,
			Translation: Translation{Type: TypeUnfinished},
		}
		if ref.Numerus {
			msg.Translation.NumerusForms = emptyForms(lang)
		}
		pos, ok := ctxIndex[key.Context]
		if !ok {
			pos = len(out.Contexts)
			ctxIndex[key.Context] = pos
			out.Contexts = append(out.Contexts, Context{Name: key.Context})
		}
		out.Contexts[pos].Messages = append(out.Contexts[pos].Messages, msg)
		summary.New++
	}

	return out, summary
}

func emptyForms(lang string) []string {
	return make([]string, len(plural.Forms(lang)))
}
