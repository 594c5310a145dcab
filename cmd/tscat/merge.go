package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loopcontext/tscat"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type mergeOptions struct {
	source     string
	langs      []string
	targetDir  string
	outDir     string
	prefix     string
	noObsolete bool
}

func newMergeCommand() *cobra.Command {
	var opts mergeOptions
	cmd := &cobra.Command{
		Use:   "merge <source.ts>",
		Short: "Create or update per-language .ts files from a source .ts",
		Long: `Merge brings every target language file in line with the messages of a source
file (usually the source language .ts written by extract). Target files are
named <prefix>_<lang>.ts; missing ones are created with unfinished entries.

Targets come from --langs or, without it, from the <prefix>_*.ts files in --dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			opts.source = args[0]
			return runMerge(cmd.OutOrStdout(), &logger, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.langs, "langs", nil, "Target languages (e.g. id,es)")
	cmd.Flags().StringVar(&opts.targetDir, "dir", "", "Directory with the target .ts files (default: directory of the source)")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Where to write the merged files (default: --dir)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "File name prefix (default: source name up to the first underscore)")
	cmd.Flags().BoolVar(&opts.noObsolete, "no-obsolete", false, "Drop messages that are not in the source")

	return cmd
}

// sourceMessages lists the live messages of c as if they had been extracted from code.
func sourceMessages(c *tscat.Catalog) []tscat.Extracted {
	var out []tscat.Extracted
	for _, ctx := range c.Contexts {
		for _, msg := range ctx.Messages {
			if msg.Translation.Type.IsRetired() {
				continue
			}
			out = append(out, tscat.Extracted{
				Key:       msg.Key(ctx.Name),
				Numerus:   bool(msg.Numerus),
				Locations: msg.Locations,
			})
		}
	}
	return out
}

func filePrefix(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if idx := strings.Index(stem, "_"); idx > 0 {
		return stem[:idx]
	}
	return stem
}

// targetLangs finds <prefix>_<lang>.ts files in dir other than the source.
func targetLangs(dir string, prefix string, source string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var langs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == filepath.Base(source) || !strings.HasSuffix(name, ".ts") {
			continue
		}
		stem := strings.TrimSuffix(name, ".ts")
		if !strings.HasPrefix(stem, prefix+"_") {
			continue
		}
		if lang := strings.TrimPrefix(stem, prefix+"_"); lang != "" {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs, nil
}

func runMerge(out io.Writer, logger *zerolog.Logger, opts mergeOptions) error {
	source, err := tscat.ReadFile(opts.source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	found := sourceMessages(source)

	dir := opts.targetDir
	if dir == "" {
		dir = filepath.Dir(opts.source)
	}
	outDir := opts.outDir
	if outDir == "" {
		outDir = dir
	}
	prefix := opts.prefix
	if prefix == "" {
		prefix = filePrefix(opts.source)
	}

	langs := opts.langs
	if len(langs) == 0 {
		langs, err = targetLangs(dir, prefix, opts.source)
		if err != nil {
			return err
		}
	}
	if len(langs) == 0 {
		return fmt.Errorf("merge: no target languages, use --langs or add %s_<lang>.ts files to %s", prefix, dir)
	}

	for _, lang := range langs {
		lang = strings.TrimSpace(lang)
		name := prefix + "_" + lang + ".ts"
		existing, err := tscat.ReadFile(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		merged, summary := tscat.Update(existing, found, tscat.UpdateOptions{
			Language:   lang,
			NoObsolete: opts.noObsolete,
		})
		if merged.SourceLanguage == "" {
			merged.SourceLanguage = source.Language
		}

		outPath := filepath.Join(outDir, name)
		if err := tscat.WriteFile(outPath, merged); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		logger.Debug().Str("file", outPath).Int("new", summary.New).Int("vanished", summary.Vanished).Msg("merged")
		report := tscat.Summarize(merged)
		_, err = fmt.Fprintf(out, "%s\tnew=%d vanished=%d dropped=%d\t%d/%d finished\n",
			outPath, summary.New, summary.Vanished, summary.Dropped, report.Finished, report.Live())
		if err != nil {
			return err
		}
	}
	return nil
}
