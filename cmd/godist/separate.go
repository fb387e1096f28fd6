package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"mit.edu/dsg/godist/planner"
)

func newSeparateCmd() *cobra.Command {
	var planPath string
	cmd := &cobra.Command{
		Use:   "separate",
		Short: "Rewrite a JSON plan document for distributed execution",
		Long: `
Decodes a plan document, inserts the Fetcher boundary and Transaction protocol nodes,
and prints the rewritten plan followed by the routing of every Fetcher.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(planPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			g, err := open()
			if err != nil {
				return err
			}
			qc, shape, err := g.Separate(doc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rewrite: %s\n\n", shape)
			fmt.Fprint(out, qc.Plan.ExplainWithIDs())
			fmt.Fprintln(out)
			renderFetchers(out, qc.Plan)
			return nil
		},
	}
	cmd.Flags().StringVar(&planPath, "plan", "-", "plan document to rewrite, - for stdin")
	return cmd
}

func readDocument(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		doc, err := io.ReadAll(stdin)
		return doc, errors.Wrap(err, "read plan document from stdin")
	}
	doc, err := os.ReadFile(path)
	return doc, errors.Wrapf(err, "read plan document %s", path)
}

// renderFetchers prints one row per Fetcher in plan order.
func renderFetchers(w io.Writer, tree *planner.PlanTree) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Node", "Op", "Merge", "Partitions", "Inserts", "Addresses"})
	for _, id := range tree.FindAll(planner.KindFetcher) {
		f := tree.Node(id).Fetcher()
		var addrs []string
		for _, d := range f.Routing.Descriptors() {
			addrs = append(addrs, d.Address)
		}
		table.Append([]string{
			fmt.Sprintf("#%d", id),
			f.Op.String(),
			f.Merge.String(),
			f.Routing.String(),
			f.InsertPartitions.String(),
			strings.Join(addrs, ","),
		})
	}
	table.Render()
}
