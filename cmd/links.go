package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/quill/internal/links"
)

func newLinksCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links FILE",
		Short: "List the links in a file",
		Long: `List every link in FILE as line:col start-end url. start and end are
byte offsets into the file. Explicit [label](url) links are always listed;
bare URLs and email addresses follow editor.auto_link unless --auto-link
is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			autoLink := o.cfg.Editor.AutoLink
			if cmd.Flags().Changed("auto-link") {
				autoLink, _ = cmd.Flags().GetBool("auto-link")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			text := string(data)
			out := cmd.OutOrStdout()
			for _, l := range links.Detect(text, autoLink) {
				line, col := lineCol(text, l.Start)
				fmt.Fprintf(out, "%d:%d %d-%d %s\n", line, col, l.Start, l.End, l.URL)
			}
			return nil
		},
	}
	cmd.Flags().Bool("auto-link", true, "detect bare URLs and email addresses")
	return cmd
}
