package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"badrefining/internal/core"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "List catalog definitions and the patch categories they fall into",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			reg, err := root.loadRegistry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(root.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "DEFINITION\tCATEGORIES")
			for _, def := range reg.AllDefinitions() {
				cats := core.Categorize(def)
				if !all && len(cats) == 1 && cats[0] == core.CategoryUncategorized {
					continue
				}
				names := make([]string, len(cats))
				for i, c := range cats {
					names[i] = string(c)
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", def.DefinitionID(), strings.Join(names, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include uncategorized definitions")
	return cmd
}
