package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/region"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the partition catalog",
	}
	cmd.AddCommand(newCatalogAddCmd(), newCatalogListCmd())
	return cmd
}

func newCatalogAddCmd() *cobra.Command {
	var d region.Descriptor
	var id, table uint32
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a partition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogDir == "" {
				return fmt.Errorf("--catalog is required to add partitions")
			}
			g, err := open()
			if err != nil {
				return err
			}
			d.ID = common.PartitionID(id)
			d.TableOid = common.ObjectID(table)
			if err := g.Catalog.AddPartition(d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", d)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&id, "id", 0, "partition id")
	cmd.Flags().Uint32Var(&table, "table", 0, "table oid the partition belongs to")
	cmd.Flags().StringVar(&d.Address, "address", "", "store address serving the partition")
	cmd.Flags().StringVar(&d.StartKey, "start", "", "inclusive start key")
	cmd.Flags().StringVar(&d.EndKey, "end", "", "exclusive end key")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered partitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := open()
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Table", "Address", "Start", "End"})
			for _, d := range g.Catalog.Partitions() {
				table.Append([]string{
					d.ID.String(),
					fmt.Sprintf("%d", d.TableOid),
					d.Address,
					d.StartKey,
					d.EndKey,
				})
			}
			table.Render()
			return nil
		},
	}
}
