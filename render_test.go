package tscat

import "testing"

func TestFormatNumberByLang(t *testing.T) {
	tests := []struct {
		lang  string
		value interface{}
		want  string
		ok    bool
	}{
		{"en", 1234567, "1,234,567", true},
		{"en", -1234, "-1,234", true},
		{"id", 1234567, "1.234.567", true},
		{"id", 1234.25, "1.234,25", true},
		{"de-DE", uint16(65535), "65.535", true},
		{"en", 999, "999", true},
		{"en", "text", "", false},
	}
	for _, tt := range tests {
		got, ok := formatNumberByLang(tt.lang, tt.value)
		if got != tt.want || ok != tt.ok {
			t.Errorf("formatNumberByLang(%q, %v) = %q, %v; want %q, %v", tt.lang, tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderArgs(t *testing.T) {
	dmc := &DefaultMessageCatalog{stats: newCatalogStats(16)}
	key := Key{Context: "C", Source: "s"}

	tests := []struct {
		name     string
		template string
		args     []interface{}
		want     string
	}{
		{"positional", "%1 of %2", []interface{}{3, 10}, "3 of 10"},
		{"reordered", "%2 / %1", []interface{}{"a", "b"}, "b / a"},
		{"localized", "%L1 MB", []interface{}{20480}, "20,480 MB"},
		{"localized non numeric", "%L1", []interface{}{"x"}, "x"},
		{"missing arg kept", "%1 %3", []interface{}{"a"}, "a %3"},
		{"percent sign", "100% %1", []interface{}{"done"}, "100% done"},
		{"no args", "%1", nil, "%1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dmc.renderArgs("en", key, tt.template, tt.args); got != tt.want {
				t.Errorf("renderArgs(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}

	issues := dmc.stats.snapshot().TemplateIssues
	if issues["en:C/s:missing_arg_3"] != 1 {
		t.Errorf("TemplateIssues = %v", issues)
	}
	if issues["en:C/s:localized_non_numeric_arg_1"] != 1 {
		t.Errorf("TemplateIssues = %v", issues)
	}
}

func TestRenderCount(t *testing.T) {
	if got := renderCount("id", "%n berkas, %Ln byte", 2048); got != "2048 berkas, 2.048 byte" {
		t.Errorf("renderCount = %q", got)
	}
}
