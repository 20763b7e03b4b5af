package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"transparency/internal/model"
	"transparency/internal/questions"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newQuestionsCmd(opts *options) *cobra.Command {
	var (
		base   model.ProductData
		format string
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the follow-up questions for a product category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.IsCategory(base.Category) {
				return fmt.Errorf("unknown category %q; use one of: %s", base.Category, strings.Join(model.Categories, ", "))
			}

			var sel *questions.Selector
			if local {
				sel = questions.NewSelector(nil, questions.MustCatalog(), 0)
			} else {
				var err error
				if sel, err = questions.NewSelectorFromConfig(opts.cfg.AI); err != nil {
					return err
				}
			}
			qs := sel.Select(cmd.Context(), base)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(qs)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(qs)
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}

	cmd.Flags().StringVarP(&base.Category, "category", "c", "", "product category (required)")
	cmd.Flags().StringVar(&base.Name, "name", "", "product name")
	cmd.Flags().StringVar(&base.Brand, "brand", "", "brand name")
	cmd.Flags().StringVar(&base.Description, "description", "", "product description")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&local, "local", false, "use the built-in catalog only")
	cmd.MarkFlagRequired("category")
	return cmd
}
