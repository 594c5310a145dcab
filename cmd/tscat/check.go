package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/loopcontext/tscat"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var errDuplicates = errors.New("duplicate live messages")

type checkOptions struct {
	strict bool
	yaml   bool
}

type fileReport struct {
	File   string       `yaml:"file"`
	Report tscat.Report `yaml:"report"`
	// Duplicates mirrors Report.Duplicates in printable form.
	Duplicates []string `yaml:"duplicates,omitempty"`
}

func newCheckCommand() *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check <file.ts>...",
		Short: "Report translation progress of .ts files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			reports := make([]fileReport, 0, len(args))
			for _, path := range args {
				catalog, err := tscat.ReadFile(path)
				if err != nil {
					return err
				}
				logger.Debug().Str("file", path).Int("contexts", len(catalog.Contexts)).Msg("catalog parsed")
				reports = append(reports, newFileReport(path, catalog))
			}
			return runCheck(cmd.OutOrStdout(), reports, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail when a file repeats a live message key")
	cmd.Flags().BoolVar(&opts.yaml, "yaml", false, "Print the reports as YAML")

	return cmd
}

func newFileReport(path string, catalog *tscat.Catalog) fileReport {
	report := tscat.Summarize(catalog)
	fr := fileReport{File: path, Report: report}
	for _, key := range report.Duplicates {
		fr.Duplicates = append(fr.Duplicates, key.String())
	}
	return fr
}

func runCheck(out io.Writer, reports []fileReport, opts checkOptions) error {
	if opts.yaml {
		data, err := yaml.Marshal(reports)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else {
		for _, fr := range reports {
			r := fr.Report
			_, err := fmt.Fprintf(out, "%s\t%s\t%d/%d finished (%.1f%%)\tunfinished=%d obsolete=%d vanished=%d numerus=%d\n",
				fr.File, r.Language, r.Finished, r.Live(), r.Completion()*100, r.Unfinished, r.Obsolete, r.Vanished, r.Numerus)
			if err != nil {
				return err
			}
			for _, dup := range fr.Duplicates {
				if _, err := fmt.Fprintf(out, "\tduplicate: %s\n", dup); err != nil {
					return err
				}
			}
		}
	}

	if !opts.strict {
		return nil
	}
	var offending []string
	for _, fr := range reports {
		if len(fr.Duplicates) > 0 {
			offending = append(offending, fr.File)
		}
	}
	if len(offending) > 0 {
		return fmt.Errorf("%w in %s", errDuplicates, strings.Join(offending, ", "))
	}
	return nil
}
