package tscat_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/loopcontext/tscat"
)

func buildFuzzCatalog(t *testing.T) tscat.MessageCatalog {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "tscat-fuzz-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	if err := os.WriteFile(filepath.Join(tmpDir, "app_id.ts"), []byte(benchTS), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	catalog, err := tscat.NewMessageCatalog(tscat.Config{
		ResourcePath:    tmpDir,
		StrictTemplates: true,
		StatsMaxKeys:    64,
	})
	if err != nil {
		t.Fatalf("failed to create catalog: %v", err)
	}
	t.Cleanup(func() { _ = tscat.Close(catalog) })
	return catalog
}

func FuzzTranslateWithCtx(f *testing.F) {
	f.Add("id", "QIMessageBox", "Copying %1 of %2", "", int64(12), 3)
	f.Add("es-MX", "QIMessageBox", "OK", "button", int64(-1000), 2)
	f.Add("", "", "%L1 %2 %n %99", "", int64(0), 0)

	f.Fuzz(func(t *testing.T, lang string, contextName string, source string, comment string, arg int64, count int) {
		catalog := buildFuzzCatalog(t)
		ctx := context.WithValue(context.Background(), tscat.ContextKey("language"), lang)
		key := tscat.Key{Context: contextName, Source: source, Comment: comment}
		_ = catalog.TranslateWithCtx(ctx, key, arg, source)
		_ = catalog.TranslateNWithCtx(ctx, key, count, arg)
	})
}

func FuzzParse(f *testing.F) {
	f.Add([]byte(benchTS))
	f.Add([]byte(`<TS><context><name>A</name></context></TS>`))
	f.Add([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><TS/>`))

	f.Fuzz(func(t *testing.T, data []byte) {
		catalog, err := tscat.Parse(data)
		if err != nil {
			return
		}
		out, err := catalog.MarshalTS()
		if err != nil {
			t.Fatalf("MarshalTS after successful Parse: %v", err)
		}
		if _, err := tscat.Parse(out); err != nil {
			t.Fatalf("Parse of encoded catalog: %v", err)
		}
	})
}
