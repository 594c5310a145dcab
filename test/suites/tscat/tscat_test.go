package test_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/loopcontext/tscat"
	"github.com/loopcontext/tscat/test"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const resourcePath = "./resources/translations"

type mockObserver struct {
	mu           sync.Mutex
	fallbacks    []string
	missingLangs []string
	missingKeys  []string
	untranslated []string
	issues       []string
}

func (o *mockObserver) OnLanguageFallback(requestedLang string, resolvedLang string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks = append(o.fallbacks, requestedLang+"->"+resolvedLang)
}

func (o *mockObserver) OnLanguageMissing(lang string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.missingLangs = append(o.missingLangs, lang)
}

func (o *mockObserver) OnMessageMissing(lang string, key tscat.Key) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.missingKeys = append(o.missingKeys, lang+":"+key.String())
}

func (o *mockObserver) OnUntranslated(lang string, key tscat.Key, kind tscat.TranslationType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.untranslated = append(o.untranslated, fmt.Sprintf("%s:%s:%s", lang, kind, key))
}

func (o *mockObserver) OnTemplateIssue(lang string, key tscat.Key, issue string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.issues = append(o.issues, fmt.Sprintf("%s:%s:%s", lang, key, issue))
}

func (o *mockObserver) snapshot(list *[]string) func() string {
	return func() string {
		o.mu.Lock()
		defer o.mu.Unlock()
		return strings.Join(*list, ",")
	}
}

const watchedTS = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.0" language="id">
<context>
    <name>QIMessageBox</name>
    <message>
        <source>OK</source>
        <translation>%s</translation>
    </message>
</context>
</TS>
`

var (
	okKey       = tscat.Key{Context: "QIMessageBox", Source: "OK"}
	audioKey    = tscat.Key{Context: "UIMachineSettingsAudio", Source: "Enable &Audio"}
	selectedKey = tscat.Key{Context: "UIVMListView", Source: "%n machine(s) selected"}
)

var _ = Describe("TS Catalog", func() {
	var messageCatalog tscat.MessageCatalog
	var ctx *test.RequestContext

	BeforeEach(func() {
		var err error
		ctx = test.NewRequestContext()
		messageCatalog, err = tscat.NewMessageCatalog(tscat.Config{ResourcePath: resourcePath})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(tscat.Close(messageCatalog)).To(Succeed())
	})

	It("should translate a finished message", func() {
		ctx.SetLanguage("id")
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Baik"))
	})

	It("should fall back to the source text for unfinished translations", func() {
		ctx.SetLanguage("id")
		res := messageCatalog.ResolveWithCtx(ctx.Ctx, audioKey)
		Expect(res.Status).To(Equal(tscat.StatusUnfinished))
		Expect(res.Text).To(Equal("Enable &Audio"))
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, audioKey)).To(Equal("Enable &Audio"))
	})

	It("should fall back to the source text for obsolete translations", func() {
		ctx.SetLanguage("id")
		res := messageCatalog.ResolveWithCtx(ctx.Ctx, tscat.Key{Context: "QIMessageBox", Source: "Ignore"})
		Expect(res.Status).To(Equal(tscat.StatusObsolete))
		Expect(res.Text).To(Equal("Ignore"))
	})

	It("should disambiguate by comment", func() {
		ctx.SetLanguage("id")
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, tscat.Key{Context: "UIVMListView", Source: "Name", Comment: "column"})).To(Equal("Nama"))
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, tscat.Key{Context: "UIVMListView", Source: "Name", Comment: "details report"})).To(Equal("Nama Mesin"))
	})

	It("should reorder positional arguments", func() {
		ctx.SetLanguage("id")
		key := tscat.Key{Context: "UIVMListView", Source: "%1 (%2)"}
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, key, "Ubuntu", "Running")).To(Equal("Running (Ubuntu)"))
	})

	It("should read the language from a file name without language attribute", func() {
		ctx.SetLanguage("es")
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Aceptar"))
	})

	It("should fallback from regional language to base language", func() {
		ctx.SetLanguage("es-AR")
		res := messageCatalog.ResolveWithCtx(ctx.Ctx, okKey)
		Expect(res.Text).To(Equal("Aceptar"))
		Expect(res.Lang).To(Equal("es"))
	})

	It("should accept a plain string context key", func() {
		ctx.SetValue("language", "es")
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Aceptar"))
	})

	It("should pick numerus forms by plural rules", func() {
		ctx.SetLanguage("en")
		Expect(messageCatalog.TranslateNWithCtx(ctx.Ctx, selectedKey, 1)).To(Equal("1 machine selected"))
		Expect(messageCatalog.TranslateNWithCtx(ctx.Ctx, selectedKey, 3)).To(Equal("3 machines selected"))

		ctx.SetLanguage("id")
		Expect(messageCatalog.TranslateNWithCtx(ctx.Ctx, selectedKey, 1)).To(Equal("1 mesin dipilih"))
		Expect(messageCatalog.TranslateNWithCtx(ctx.Ctx, selectedKey, 2500)).To(Equal("2500 mesin dipilih"))
	})

	It("should return error with translated message components", func() {
		ctx.SetLanguage("id")
		err := messageCatalog.GetErrorWithCtx(ctx.Ctx, okKey)
		Expect(err.Error()).To(Equal("Baik"))

		castedError := err.(tscat.Error)
		Expect(castedError.MessageKey()).To(Equal(okKey))
		Expect(castedError.Lang()).To(Equal("id"))
		Expect(castedError.Translated()).To(BeTrue())
	})

	It("should wrap error", func() {
		original := errors.New("original error")
		ctErr := messageCatalog.WrapErrorWithCtx(ctx.SetLanguage("id").Ctx, original, audioKey)
		Expect(errors.Is(ctErr, original)).To(BeTrue())
		Expect(errors.Unwrap(ctErr)).To(Equal(original))
		Expect(ctErr.Error()).To(Equal("Enable &Audio"))
		Expect(ctErr.(tscat.Error).Translated()).To(BeFalse())
	})

	It("should load catalogs from code", func() {
		runtime := &tscat.Catalog{Contexts: []tscat.Context{{
			Name:     "QIMessageBox",
			Messages: []tscat.Message{{Source: "OK", Translation: tscat.Translation{Text: "Aceitar"}}},
		}}}
		Expect(messageCatalog.LoadCatalog("pt", runtime)).To(Succeed())

		ctx.SetLanguage("pt-BR")
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Aceitar"))
		Expect(messageCatalog.LoadCatalog("", &tscat.Catalog{})).To(MatchError(tscat.ErrNoLanguage))
	})

	It("should report duplicated keys per language", func() {
		dmc := messageCatalog.(*tscat.DefaultMessageCatalog)
		Expect(dmc.Languages()).To(Equal([]string{"en", "es", "id"}))
		Expect(dmc.Duplicates("id")).To(ConsistOf(tscat.Key{Context: "UIVMListView", Source: "Inaccessible"}))

		ctx.SetLanguage("id")
		Expect(messageCatalog.TranslateWithCtx(ctx.Ctx, tscat.Key{Context: "UIVMListView", Source: "Inaccessible"})).To(Equal("Tidak dapat diakses"))
	})

	It("should serve fallback languages before the source text", func() {
		observer := &mockObserver{}
		observedCatalog, err := tscat.NewMessageCatalog(tscat.Config{
			ResourcePath:      resourcePath,
			FallbackLanguages: []string{"es"},
			Observer:          observer,
		})
		Expect(err).NotTo(HaveOccurred())
		defer tscat.Close(observedCatalog)

		ctx.SetLanguage("id")
		res := observedCatalog.ResolveWithCtx(ctx.Ctx, audioKey)
		Expect(res.Text).To(Equal("Habilitar &audio"))
		Expect(res.Lang).To(Equal("es"))
		Eventually(observer.snapshot(&observer.fallbacks)).Should(ContainSubstring("id->es"))
	})

	It("should expose observability counters for fallback and misses", func() {
		observer := &mockObserver{}
		observedCatalog, err := tscat.NewMessageCatalog(tscat.Config{
			ResourcePath:    resourcePath,
			StrictTemplates: true,
			Observer:        observer,
		})
		Expect(err).NotTo(HaveOccurred())
		defer tscat.Close(observedCatalog)

		ctx.SetLanguage("es-MX")
		Expect(observedCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Aceptar"))

		ctx.SetLanguage("pt-BR")
		Expect(observedCatalog.ResolveWithCtx(ctx.Ctx, okKey).Status).To(Equal(tscat.StatusNoLanguage))

		ctx.SetLanguage("id")
		Expect(observedCatalog.ResolveWithCtx(ctx.Ctx, tscat.Key{Context: "QIMessageBox", Source: "Retry"}).Status).To(Equal(tscat.StatusMissing))
		Expect(observedCatalog.TranslateWithCtx(ctx.Ctx, audioKey)).To(Equal("Enable &Audio"))
		Expect(observedCatalog.TranslateWithCtx(ctx.Ctx, tscat.Key{Context: "UIVMListView", Source: "%1 (%2)"}, "vm")).To(Equal("<missing:2> (vm)"))

		stats, err := tscat.SnapshotStats(observedCatalog)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.LanguageFallbacks).To(HaveKeyWithValue("es-mx->es", 1))
		Expect(stats.MissingLanguages).To(HaveKeyWithValue("pt-br", 1))
		Expect(stats.MissingMessages).To(HaveKeyWithValue("id:QIMessageBox/Retry", 1))
		Expect(stats.Untranslated).To(HaveKey("id:unfinished:UIMachineSettingsAudio/Enable &Audio"))
		Expect(len(stats.TemplateIssues)).To(BeNumerically(">", 0))

		Eventually(observer.snapshot(&observer.fallbacks)).Should(ContainSubstring("es-mx->es"))
		Eventually(observer.snapshot(&observer.missingLangs)).Should(ContainSubstring("pt-br"))
		Eventually(observer.snapshot(&observer.missingKeys)).Should(ContainSubstring("id:QIMessageBox/Retry"))
		Eventually(observer.snapshot(&observer.untranslated)).Should(ContainSubstring("id:unfinished:"))
		Eventually(observer.snapshot(&observer.issues)).Should(ContainSubstring("missing_arg_2"))

		Expect(tscat.ResetStats(observedCatalog)).To(Succeed())
		stats, _ = tscat.SnapshotStats(observedCatalog)
		Expect(stats.MissingMessages).To(BeEmpty())
	})

	It("should reload ts changes and keep runtime loaded catalogs", func() {
		tmpDir, err := os.MkdirTemp("", "tscat-reload-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		path := filepath.Join(tmpDir, "app_id.ts")
		Expect(os.WriteFile(path, []byte(fmt.Sprintf(watchedTS, "Sebelum")), 0o600)).To(Succeed())

		customCatalog, err := tscat.NewMessageCatalog(tscat.Config{ResourcePath: tmpDir})
		Expect(err).NotTo(HaveOccurred())
		defer tscat.Close(customCatalog)

		runtimeKey := tscat.Key{Context: "Runtime", Source: "Loaded"}
		Expect(customCatalog.LoadCatalog("id", &tscat.Catalog{Contexts: []tscat.Context{{
			Name:     "Runtime",
			Messages: []tscat.Message{{Source: "Loaded", Translation: tscat.Translation{Text: "Dimuat"}}},
		}}})).To(Succeed())

		Expect(os.WriteFile(path, []byte(fmt.Sprintf(watchedTS, "Sesudah")), 0o600)).To(Succeed())
		Expect(tscat.Reload(customCatalog)).To(Succeed())

		ctx.SetLanguage("id")
		Expect(customCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Sesudah"))
		Expect(customCatalog.TranslateWithCtx(ctx.Ctx, runtimeKey)).To(Equal("Dimuat"))
	})

	It("should reload automatically when watching the resource directory", func() {
		tmpDir, err := os.MkdirTemp("", "tscat-watch-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		path := filepath.Join(tmpDir, "app_id.ts")
		Expect(os.WriteFile(path, []byte(fmt.Sprintf(watchedTS, "Lama")), 0o600)).To(Succeed())

		watchedCatalog, err := tscat.NewMessageCatalog(tscat.Config{
			ResourcePath:  tmpDir,
			WatchChanges:  true,
			WatchDebounce: 20 * time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())
		defer tscat.Close(watchedCatalog)

		ctx.SetLanguage("id")
		Expect(watchedCatalog.TranslateWithCtx(ctx.Ctx, okKey)).To(Equal("Lama"))

		Expect(os.WriteFile(path, []byte(fmt.Sprintf(watchedTS, "Baru")), 0o600)).To(Succeed())
		Eventually(func() string {
			return watchedCatalog.TranslateWithCtx(ctx.Ctx, okKey)
		}, 3*time.Second, 20*time.Millisecond).Should(Equal("Baru"))
	})

	It("should be safe under concurrent reads and writes", func() {
		ctx.SetLanguage("id")

		const (
			readers       = 12
			readerIters   = 200
			writerEntries = 20
		)

		errCh := make(chan error, readers+writerEntries)
		var wg sync.WaitGroup

		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < readerIters; j++ {
					if text := messageCatalog.TranslateWithCtx(ctx.Ctx, okKey); text != "Baik" {
						errCh <- fmt.Errorf("unexpected translation %q", text)
						return
					}
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writerEntries; i++ {
				source := fmt.Sprintf("Runtime %d", i)
				err := messageCatalog.LoadCatalog("id", &tscat.Catalog{Contexts: []tscat.Context{{
					Name:     "Runtime",
					Messages: []tscat.Message{{Source: source, Translation: tscat.Translation{Text: source}}},
				}}})
				if err != nil {
					errCh <- err
					return
				}
			}
		}()

		wg.Wait()
		close(errCh)

		for err := range errCh {
			Expect(err).NotTo(HaveOccurred())
		}
	})
})
