package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/loopcontext/tscat"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultImportPath = "github.com/loopcontext/tscat"

type extractOptions struct {
	paths        []string
	ts           string
	out          string
	lang         string
	noObsolete   bool
	includeTests bool
	importPath   string
	excludeDirs  []string
}

func newExtractCommand() *cobra.Command {
	var opts extractOptions
	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Find tscat.Key literals in Go sources",
		Long: `Extract scans Go files for tscat.Key composite literals. Keys passed to
TranslateNWithCtx are marked numerus.

Without --ts the keys are printed one per line. With --ts the file is updated the
way lupdate does it: new keys are added unfinished, translations of keys that
are gone become vanished.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			opts.paths = args
			if len(opts.paths) == 0 {
				opts.paths = []string{"."}
			}
			return runExtract(cmd.OutOrStdout(), &logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ts, "ts", "", "Update this .ts file instead of printing keys")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Where to write the updated .ts (default: --ts)")
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Language of a new .ts file")
	cmd.Flags().BoolVar(&opts.noObsolete, "no-obsolete", false, "Drop messages that are no longer referenced")
	cmd.Flags().BoolVar(&opts.includeTests, "include-tests", false, "Include _test.go files")
	cmd.Flags().StringVar(&opts.importPath, "import-path", defaultImportPath, "Import path of the tscat package")
	cmd.Flags().StringSliceVar(&opts.excludeDirs, "exclude", []string{"vendor", "testdata"}, "Directory names to skip")

	return cmd
}

// keyExtractor collects tscat.Key literals from Go files.
type keyExtractor struct {
	importPath string
	pkgName    string // local name of the tscat import in the current file
	fset       *token.FileSet
	file       string
	found      map[tscat.Key]*tscat.Extracted
	numerus    map[tscat.Key]bool
	numerusFns map[string]int
}

func newKeyExtractor(importPath string) *keyExtractor {
	return &keyExtractor{
		importPath: importPath,
		found:      make(map[tscat.Key]*tscat.Extracted),
		numerus:    make(map[tscat.Key]bool),
		numerusFns: map[string]int{
			"TranslateNWithCtx": 1,
		},
	}
}

func (e *keyExtractor) extractFromFile(path string, src []byte) error {
	e.fset = token.NewFileSet()
	f, err := parser.ParseFile(e.fset, path, src, 0)
	if err != nil {
		return err
	}
	e.pkgName = e.importName(f)
	if e.pkgName == "" {
		return nil
	}
	e.file = filepath.ToSlash(path)
	ast.Walk(e, f)
	return nil
}

func (e *keyExtractor) importName(file *ast.File) string {
	for _, imp := range file.Imports {
		if imp.Path == nil {
			continue
		}
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != e.importPath {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return filepath.Base(path)
	}
	return ""
}

func (e *keyExtractor) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case *ast.CompositeLit:
		if key, ok := e.keyLiteral(n); ok {
			e.add(key, n.Pos())
		}
	case *ast.CallExpr:
		sel, ok := n.Fun.(*ast.SelectorExpr)
		if !ok {
			return e
		}
		idx, ok := e.numerusFns[sel.Sel.Name]
		if !ok || idx >= len(n.Args) {
			return e
		}
		arg := n.Args[idx]
		if unary, ok := arg.(*ast.UnaryExpr); ok && unary.Op == token.AND {
			arg = unary.X
		}
		if cl, ok := arg.(*ast.CompositeLit); ok {
			if key, ok := e.keyLiteral(cl); ok {
				e.numerus[key] = true
			}
		}
	}
	return e
}

func (e *keyExtractor) isKeyType(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == e.pkgName && sel.Sel.Name == "Key"
}

// keyLiteral reads a tscat.Key literal. Keys built from non-constant
// expressions cannot be known statically and are skipped.
func (e *keyExtractor) keyLiteral(cl *ast.CompositeLit) (tscat.Key, bool) {
	if !e.isKeyType(cl.Type) {
		return tscat.Key{}, false
	}
	var key tscat.Key
	fields := []*string{&key.Context, &key.Source, &key.Comment}
	for i, elt := range cl.Elts {
		value := elt
		var target *string
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			ident, ok := kv.Key.(*ast.Ident)
			if !ok {
				return tscat.Key{}, false
			}
			switch ident.Name {
			case "Context":
				target = &key.Context
			case "Source":
				target = &key.Source
			case "Comment":
				target = &key.Comment
			default:
				return tscat.Key{}, false
			}
			value = kv.Value
		} else if i < len(fields) {
			target = fields[i]
		}
		if target == nil {
			return tscat.Key{}, false
		}
		s, ok := e.stringValue(value)
		if !ok {
			return tscat.Key{}, false
		}
		*target = s
	}
	if key.Source == "" {
		return tscat.Key{}, false
	}
	return key, true
}

func (e *keyExtractor) stringValue(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.BasicLit:
		if t.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(t.Value)
		return s, err == nil
	case *ast.BinaryExpr:
		if t.Op != token.ADD {
			return "", false
		}
		left, ok := e.stringValue(t.X)
		if !ok {
			return "", false
		}
		right, ok := e.stringValue(t.Y)
		return left + right, ok
	case *ast.ParenExpr:
		return e.stringValue(t.X)
	}
	return "", false
}

func (e *keyExtractor) add(key tscat.Key, pos token.Pos) {
	loc := tscat.Location{Filename: e.file, Line: strconv.Itoa(e.fset.Position(pos).Line)}
	entry, ok := e.found[key]
	if !ok {
		entry = &tscat.Extracted{Key: key}
		e.found[key] = entry
	}
	entry.Locations = append(entry.Locations, loc)
}

// extracted returns the keys sorted by context, source and comment.
func (e *keyExtractor) extracted() []tscat.Extracted {
	out := make([]tscat.Extracted, 0, len(e.found))
	for key, entry := range e.found {
		item := *entry
		item.Numerus = e.numerus[key]
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Comment < b.Comment
	})
	return out
}

func (e *keyExtractor) walk(root string, opts extractOptions) error {
	exclude := make(map[string]struct{}, len(opts.excludeDirs))
	for _, d := range opts.excludeDirs {
		if d = strings.TrimSpace(d); d != "" {
			exclude[d] = struct{}{}
		}
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := exclude[d.Name()]; skip && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != ".go" {
			return nil
		}
		if !opts.includeTests && strings.HasSuffix(p, "_test.go") {
			return nil
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return e.extractFromFile(p, src)
	})
}

func runExtract(out io.Writer, logger *zerolog.Logger, opts extractOptions) error {
	ext := newKeyExtractor(opts.importPath)
	for _, path := range opts.paths {
		if err := ext.walk(filepath.Clean(path), opts); err != nil {
			return err
		}
	}
	found := ext.extracted()
	logger.Debug().Int("keys", len(found)).Msg("sources scanned")

	if opts.ts == "" {
		for _, item := range found {
			line := item.Key.String()
			if item.Numerus {
				line += "\t(numerus)"
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	}

	existing, err := tscat.ReadFile(opts.ts)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		existing = nil
	}
	updated, summary := tscat.Update(existing, found, tscat.UpdateOptions{
		Language:   opts.lang,
		NoObsolete: opts.noObsolete,
	})
	target := opts.out
	if target == "" {
		target = opts.ts
	}
	if err := tscat.WriteFile(target, updated); err != nil {
		return err
	}
	logger.Info().Str("file", target).Int("found", summary.Found).Int("new", summary.New).
		Int("vanished", summary.Vanished).Int("dropped", summary.Dropped).Msg("translation file updated")
	_, err = fmt.Fprintf(out, "found=%d new=%d kept=%d revived=%d vanished=%d dropped=%d\n",
		summary.Found, summary.New, summary.Kept, summary.Revived, summary.Vanished, summary.Dropped)
	return err
}
