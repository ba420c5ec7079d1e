package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/internal/pairmatch"
)

var matchesFile string

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Edit the match table",
	Long: `Reads and edits single entries of the match table. Pairs are unordered:
"a b" and "b a" are the same entry.

Examples:
  tracksim matches set a.mp3 b.mp3 yes
  tracksim matches get b.mp3 a.mp3
  tracksim matches rm a.mp3 b.mp3`,
}

var matchesSetCmd = &cobra.Command{
	Use:   "set <track> <track> <yes|no>",
	Short: "Label a pair",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		match, err := parseAnswer(args[2])
		if err != nil {
			return err
		}
		return editMatches(cmd.Context(), func(m *pairmatch.Matrix) (bool, error) {
			m.Set(args[0], args[1], match)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", args[0], args[1], matchLabel(match))
			return true, nil
		})
	},
}

var matchesGetCmd = &cobra.Command{
	Use:   "get <track> <track>",
	Short: "Show the label of a pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editMatches(cmd.Context(), func(m *pairmatch.Matrix) (bool, error) {
			match, ok := m.Get(args[0], args[1])
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), styles.Help.Render("not labelled"))
				return false, nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), matchLabel(match))
			return false, nil
		})
	},
}

var matchesRmCmd = &cobra.Command{
	Use:   "rm <track> <track>",
	Short: "Remove the label of a pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editMatches(cmd.Context(), func(m *pairmatch.Matrix) (bool, error) {
			if !m.Exists(args[0], args[1]) {
				return false, fmt.Errorf("pair %s / %s is not labelled", args[0], args[1])
			}
			m.Remove(args[0], args[1])
			return true, nil
		})
	},
}

func init() {
	matchesCmd.PersistentFlags().StringVar(&matchesFile, "matches", "", "match table file (default from config)")
	matchesCmd.AddCommand(matchesSetCmd, matchesGetCmd, matchesRmCmd)

	rootCmd.AddCommand(matchesCmd)
}

// editMatches loads the table, applies fn, and saves when fn reports a change.
func editMatches(ctx context.Context, fn func(*pairmatch.Matrix) (bool, error)) error {
	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	repo, err := pairmatch.Open(matchesConfig(matchesFile), store)
	if err != nil {
		return err
	}
	defer repo.Close()

	m, err := repo.Load(ctx)
	if err != nil {
		return err
	}

	changed, err := fn(m)
	if err != nil || !changed {
		return err
	}
	return repo.Save(ctx, m)
}

func parseAnswer(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("invalid answer %q, want yes or no", s)
}
