package tscat

import (
	"reflect"
	"testing"
)

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex(readFixture(t))

	tests := []struct {
		name      string
		key       Key
		wantFound bool
		wantText  string
		wantType  TranslationType
	}{
		{"exact", Key{Context: "QIMessageBox", Source: "OK"}, true, "Baik", TypeFinished},
		{"unfinished", Key{Context: "UIMachineSettingsAudio", Source: "Enable &Audio"}, true, "", TypeUnfinished},
		{"comment disambiguates", Key{Context: "UIVMListView", Source: "Name", Comment: "details report"}, true, "Nama Mesin", TypeFinished},
		{"unknown comment retries without comment", Key{Context: "QIMessageBox", Source: "Cancel", Comment: "button"}, true, "Batal", TypeFinished},
		{"commented entries need their comment", Key{Context: "UIVMListView", Source: "Name"}, false, "", TypeFinished},
		{"wrong context", Key{Context: "UIVMListView", Source: "OK"}, false, "", TypeFinished},
		{"obsolete is indexed", Key{Context: "QIMessageBox", Source: "Ignore"}, true, "Abaikan", TypeObsolete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, found := idx.Lookup(tt.key)
			if found != tt.wantFound {
				t.Fatalf("Lookup(%s) found = %v, want %v", tt.key, found, tt.wantFound)
			}
			if !found {
				return
			}
			if msg.Translation.Text != tt.wantText || msg.Translation.Type != tt.wantType {
				t.Errorf("Lookup(%s) = %+v", tt.key, msg.Translation)
			}
		})
	}
}

func TestIndex_DuplicatesPreferLiveEntry(t *testing.T) {
	idx := NewIndex(readFixture(t))

	msg, found := idx.Lookup(Key{Context: "UIVMListView", Source: "Inaccessible"})
	if !found {
		t.Fatal("Inaccessible not indexed")
	}
	if msg.Translation.Text != "Tidak dapat diakses" || msg.Translation.Type != TypeFinished {
		t.Errorf("duplicate resolution picked %+v", msg.Translation)
	}
	want := []Key{{Context: "UIVMListView", Source: "Inaccessible"}}
	if got := idx.Duplicates(); !reflect.DeepEqual(got, want) {
		t.Errorf("Duplicates() = %v, want %v", got, want)
	}
}

func TestIndex_RankOrder(t *testing.T) {
	key := Key{Context: "C", Source: "s"}
	entry := func(tr Translation) *Catalog {
		return &Catalog{Contexts: []Context{{Name: "C", Messages: []Message{{Source: "s", Translation: tr}}}}}
	}

	idx := NewIndex(
		entry(Translation{Type: TypeVanished, Text: "old"}),
		entry(Translation{Type: TypeUnfinished}),
		entry(Translation{Type: TypeUnfinished, Text: "draft"}),
		entry(Translation{Type: TypeUnfinished, Text: "second draft"}),
	)
	msg, _ := idx.Lookup(key)
	if msg.Translation.Text != "draft" {
		t.Errorf("got %q, want first unfinished entry with text", msg.Translation.Text)
	}

	idx = NewIndex(entry(Translation{Text: "done"}), entry(Translation{Type: TypeUnfinished, Text: "draft"}))
	msg, _ = idx.Lookup(key)
	if msg.Translation.Text != "done" {
		t.Errorf("got %q, want finished entry", msg.Translation.Text)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestIndex_Contexts(t *testing.T) {
	idx := NewIndex(readFixture(t), nil)
	want := []string{"QIMessageBox", "UIGlobalSettingsGeneral", "UIMachineSettingsAudio", "UIVMListView"}
	if got := idx.Contexts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Contexts() = %v, want %v", got, want)
	}

	var empty *Index
	if _, found := empty.Lookup(Key{Source: "x"}); found {
		t.Error("nil index must not find anything")
	}
	if empty.Duplicates() != nil || empty.Contexts() != nil || empty.Len() != 0 {
		t.Error("nil index must be empty")
	}
}
