package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/loopcontext/tscat"
	"github.com/spf13/cobra"
)

type lookupOptions struct {
	lang    string
	context string
	comment string
	count   int
	numerus bool
	explain bool
}

func newLookupCommand() *cobra.Command {
	var opts lookupOptions
	cmd := &cobra.Command{
		Use:   "lookup <source> [args...]",
		Short: "Translate one message",
		Long: `Resolve a message by context, source text and optional comment and print
the text an application would show. Extra arguments fill %1, %2, ... markers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			cfg, err := catalogConfig(cmd, &logger)
			if err != nil {
				return err
			}
			catalog, err := tscat.NewMessageCatalog(cfg)
			if err != nil {
				return err
			}
			defer tscat.Close(catalog)

			opts.numerus = cmd.Flags().Changed("count")
			ctx := cmd.Context()
			if opts.lang != "" {
				langKey := cfg.CtxLanguageKey
				if langKey == "" {
					langKey = tscat.ContextKey("language")
				}
				ctx = context.WithValue(ctx, langKey, opts.lang)
			}
			return runLookup(ctx, cmd.OutOrStdout(), catalog, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "Requested language (default: configured default language)")
	cmd.Flags().StringVarP(&opts.context, "context", "c", "", "Message context (class name)")
	cmd.Flags().StringVar(&opts.comment, "comment", "", "Disambiguation comment")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "Count for numerus messages")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Also print the resolution status and language")

	return cmd
}

func runLookup(ctx context.Context, out io.Writer, catalog tscat.MessageCatalog, opts lookupOptions, source string, rawArgs []string) error {
	key := tscat.Key{Context: opts.context, Source: source, Comment: opts.comment}
	args := make([]interface{}, 0, len(rawArgs))
	for _, raw := range rawArgs {
		args = append(args, parseArg(raw))
	}

	var text string
	if opts.numerus {
		text = catalog.TranslateNWithCtx(ctx, key, opts.count, args...)
	} else {
		text = catalog.TranslateWithCtx(ctx, key, args...)
	}
	if _, err := fmt.Fprintln(out, text); err != nil {
		return err
	}

	if opts.explain {
		res := catalog.ResolveWithCtx(ctx, key)
		if res == nil {
			return fmt.Errorf("no resolution for %s", key)
		}
		_, err := fmt.Fprintf(out, "status=%s lang=%s key=%s\n", res.Status, res.Lang, res.Key)
		return err
	}
	return nil
}

// parseArg turns numeric command line arguments into numbers so %L markers can localize them.
func parseArg(raw string) interface{} {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
