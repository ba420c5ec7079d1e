package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jaki95/tracksim/internal/domain"
	"github.com/jaki95/tracksim/internal/features"
	"github.com/jaki95/tracksim/internal/ranker"
)

var rankFlags struct {
	id     string
	row    int
	vector string
	topK   int
}

var rankCmd = &cobra.Command{
	Use:   "rank <features.csv>",
	Short: "List the tracks nearest to a query in a feature table",
	Long: `Standardizes every feature column of the table and ranks rows by Euclidean
distance to the query. The query is a track id in the table, a row index, or
an explicit vector. The query track itself is never listed.

Examples:
  tracksim rank track_features.csv --id "[hd] Artist - Title.mp3"
  tracksim rank track_features.csv --row 12 -k 3
  tracksim rank track_features.csv --vector "120.5,0.31,0.02"`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.StringVar(&rankFlags.id, "id", "", "query by track id")
	f.IntVar(&rankFlags.row, "row", -1, "query by zero-based row index")
	f.StringVar(&rankFlags.vector, "vector", "", "query by comma-separated feature values")
	f.IntVarP(&rankFlags.topK, "top", "k", 0, "number of neighbours (default from config)")
	rankCmd.MarkFlagsMutuallyExclusive("id", "row", "vector")
	rankCmd.MarkFlagsOneRequired("id", "row", "vector")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	topK := GetConfig().Ranker.TopK
	if cmd.Flags().Changed("top") {
		topK = rankFlags.topK
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.GetReader(args[0])
	if err != nil {
		return err
	}
	tbl, err := features.ReadTable(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	query, err := rankQuery(cmd, tbl)
	if err != nil {
		return err
	}

	neighbors, err := ranker.Rank(tbl.Rows, query, topK)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderNeighbors(query, neighbors))
	return nil
}

func rankQuery(cmd *cobra.Command, tbl *features.Table) (domain.FeatureRow, error) {
	switch {
	case cmd.Flags().Changed("id"):
		row, ok := tbl.Find(rankFlags.id)
		if !ok {
			return domain.FeatureRow{}, fmt.Errorf("track %q is not in the table", rankFlags.id)
		}
		return row, nil
	case cmd.Flags().Changed("row"):
		if rankFlags.row < 0 || rankFlags.row >= len(tbl.Rows) {
			return domain.FeatureRow{}, fmt.Errorf("row %d out of range, table has %d rows", rankFlags.row, len(tbl.Rows))
		}
		return tbl.Rows[rankFlags.row], nil
	default:
		vec, err := parseVector(rankFlags.vector)
		if err != nil {
			return domain.FeatureRow{}, err
		}
		return domain.FeatureRow{Vector: vec}, nil
	}
}

func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vec := make([]float64, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("vector value %d: %w", i+1, err)
		}
		vec = append(vec, v)
	}
	return vec, nil
}

func renderNeighbors(query domain.FeatureRow, neighbors []ranker.Neighbor) string {
	title := "query vector"
	if query.ID != "" {
		title = query.ID
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("#", "track", "distance")
	for i, n := range neighbors {
		t.Row(strconv.Itoa(i+1), n.ID, strconv.FormatFloat(n.Distance, 'f', 4, 64))
	}

	return styles.Title.Render("Nearest to "+title) + "\n" + t.Render()
}
