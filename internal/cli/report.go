package cli

import (
	"fmt"
	"os"
	"transparency/internal/model"
	"transparency/internal/render"
	"transparency/internal/service"

	"github.com/spf13/cobra"
)

func newReportCmd(_ *options) *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "report <product.json|->",
		Short: "Render a transparency report as PDF or Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readProduct(cmd, args[0])
			if err != nil {
				return err
			}
			report, err := service.BuildReport(data, "")
			if err != nil {
				return err
			}

			renderer := render.For(model.ParseReportFormat(format))
			if output == "" {
				output = render.Filename(data.Name, renderer)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := renderer.Render(f, report); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (score %d/100)\n", output, report.Score)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>_transparency_report.<ext>)")
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "report format: pdf or md")
	return cmd
}
