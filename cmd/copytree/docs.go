package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd returns the hidden gen-docs command, which renders the copytree
// man page or markdown reference from the root command's flags and help.
func newDocsCmd() *cobra.Command {
	var dir, format string
	cmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Generate the copytree man page or markdown reference",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return genDocs(cmd.Root(), dir, format)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "docs", "output directory")
	cmd.Flags().StringVar(&format, "format", "man", "output format (man or markdown)")
	return cmd
}

func genDocs(root *cobra.Command, dir, format string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	root.DisableAutoGenTag = true

	switch format {
	case "man":
		date, err := sourceDate()
		if err != nil {
			return err
		}
		header := &doc.GenManHeader{
			Title:   "COPYTREE",
			Section: "1",
			Manual:  "User Commands",
			Source:  "copytree " + version,
			Date:    date,
		}
		return doc.GenManTree(root, header, dir)
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	default:
		return fmt.Errorf("unknown format %q (use man or markdown)", format)
	}
}

// sourceDate pins the man page date to SOURCE_DATE_EPOCH when it is set, so
// packaged pages are reproducible. Nil lets cobra use the current time.
func sourceDate() (*time.Time, error) {
	raw := os.Getenv("SOURCE_DATE_EPOCH")
	if raw == "" {
		return nil, nil //nolint:nilnil // nil date means "now" to cobra/doc
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q: %w", raw, err)
	}
	date := time.Unix(secs, 0).UTC()
	return &date, nil
}
