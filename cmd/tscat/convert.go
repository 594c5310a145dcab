package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loopcontext/tscat"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert between .ts and YAML",
		Long: `Convert a .ts file to YAML or a YAML catalog back to .ts. The direction
follows the file extensions (.ts, .yaml, .yml).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			if err := convertFile(args[0], args[1]); err != nil {
				return err
			}
			logger.Info().Str("in", args[0]).Str("out", args[1]).Msg("catalog converted")
			return nil
		},
	}
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func convertFile(in string, out string) error {
	switch {
	case strings.EqualFold(filepath.Ext(in), ".ts") && isYAMLPath(out):
		catalog, err := tscat.ReadFile(in)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(catalog)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", out, err)
		}
		return os.WriteFile(out, data, 0o644)
	case isYAMLPath(in) && strings.EqualFold(filepath.Ext(out), ".ts"):
		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		var catalog tscat.Catalog
		if err := yaml.UnmarshalStrict(data, &catalog); err != nil {
			return fmt.Errorf("failed to decode %s: %w", in, err)
		}
		encoded, err := catalog.MarshalTS()
		if err != nil {
			return err
		}
		// reject catalogs the decoder would refuse, e.g. messages without source
		if _, err := tscat.Parse(encoded); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		return os.WriteFile(out, encoded, 0o644)
	default:
		return fmt.Errorf("unsupported conversion %s -> %s", filepath.Ext(in), filepath.Ext(out))
	}
}
