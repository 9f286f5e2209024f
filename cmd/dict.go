package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newDictCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the custom dictionary",
		Long: `Manage the words the spell checker always accepts. The words live in the
sqlite database named by dictionary.custom_db and are shared with the
editor's "add to dictionary" action.`,
	}
	cmd.AddCommand(newDictAddCmd(o), newDictRemoveCmd(o), newDictListCmd(o))
	return cmd
}

func newDictAddCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add WORD...",
		Short: "Add words to the custom dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, custom, err := openCustom(ctx, o.cfg.Dictionary.CustomDB)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			for _, word := range args {
				if err := custom.Add(ctx, word); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", word)
			}
			return nil
		},
	}
}

func newDictRemoveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove WORD...",
		Aliases: []string{"rm"},
		Short:   "Remove words from the custom dictionary",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, custom, err := openCustom(ctx, o.cfg.Dictionary.CustomDB)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			missing := 0
			for _, word := range args {
				removed, err := custom.Remove(ctx, word)
				if err != nil {
					return err
				}
				if !removed {
					missing++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s is not in the dictionary\n", word)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", word)
			}
			if missing > 0 {
				return fmt.Errorf("%d %s not found", missing, plural(missing, "word", "words"))
			}
			return nil
		},
	}
}

func newDictListCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the custom dictionary",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			long, _ := cmd.Flags().GetBool("long")
			ctx := cmd.Context()
			db, _, err := openCustom(ctx, o.cfg.Dictionary.CustomDB)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			entries, err := db.WordRepository().List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				if long {
					fmt.Fprintf(out, "%s\t%s\n", e.AddedAt.Local().Format(time.DateTime), e.Word)
					continue
				}
				fmt.Fprintln(out, e.Word)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("long", "l", false, "show when each word was added")
	return cmd
}
