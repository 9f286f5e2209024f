package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quill/internal/dictionary"
)

func newCheckCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report misspelled words",
		Long: `Spell-check each file the way the editor does. URLs, email addresses,
all-caps words, words with digits or underscores and words in the custom
dictionary are never reported.

Each misspelling is printed as path:line:col: word, followed by up to
--suggestions corrections. The command fails when any word is misspelled,
which makes it usable as a pre-commit hook.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, o, args)
		},
	}
	cmd.Flags().IntP("suggestions", "n", 3, "corrections to list per word, 0 for none")
	return cmd
}

func runCheck(cmd *cobra.Command, o *rootOptions, args []string) error {
	limit, _ := cmd.Flags().GetInt("suggestions")
	ctx := cmd.Context()

	sp := openSpelling(ctx, o.cfg.Dictionary)
	defer sp.close()
	if !sp.checker.Enabled() {
		return fmt.Errorf("spell check: %w", dictionary.ErrUnavailable)
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		text := string(data)
		for _, tok := range sp.checker.Check(text) {
			if tok.Correct {
				continue
			}
			total++
			line, col := lineCol(text, tok.Start)
			fmt.Fprintf(out, "%s:%d:%d: %s", path, line, col, tok.Word)
			if limit > 0 {
				suggestions, err := sp.checker.Suggest(ctx, tok.Word, limit)
				if err != nil {
					return err
				}
				if len(suggestions) > 0 {
					fmt.Fprintf(out, " (%s)", strings.Join(suggestions, ", "))
				}
			}
			fmt.Fprintln(out)
		}
	}
	if total > 0 {
		return fmt.Errorf("%d misspelled %s", total, plural(total, "word", "words"))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
