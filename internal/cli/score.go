package cli

import (
	"encoding/json"
	"fmt"
	"transparency/internal/model"
	"transparency/internal/scoring"

	"github.com/spf13/cobra"
)

type scoreResult struct {
	model.AnalyzeResponse
	Breakdown []scoring.Line `json:"breakdown"`
}

func newScoreCmd(_ *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score <product.json|->",
		Short: "Score a product and print the breakdown and recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readProduct(cmd, args[0])
			if err != nil {
				return err
			}

			score := scoring.Score(data)
			res := scoreResult{
				AnalyzeResponse: model.AnalyzeResponse{
					Success:           true,
					TransparencyScore: score,
					Recommendations:   scoring.Recommend(data, score),
					Analysis:          scoring.Analyze(score),
				},
				Breakdown: scoring.Breakdown(data),
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if err := data.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			fmt.Fprintf(out, "Score: %d/100 (%s)\n", score, scoring.Interpretation(score))
			fmt.Fprintf(out, "Completeness: %s, trust level: %s\n\n", res.Analysis.Completeness, res.Analysis.TrustLevel)
			for _, line := range res.Breakdown {
				fmt.Fprintf(out, "  %-15s %3d\n", line.Rule, line.Points)
			}
			fmt.Fprintln(out)
			for i, rec := range res.Recommendations {
				fmt.Fprintf(out, "%d. %s\n", i+1, rec)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
