// Package demo handles the demo data command
package demo

import (
	"fmt"
	"math/rand"

	"fjacquet/asset-tracker/cmd/root"
	demodata "fjacquet/asset-tracker/internal/demo"

	"github.com/spf13/cobra"
)

var (
	// Seed makes the generated balances reproducible; 0 picks one from the clock
	Seed int64
	// Force replaces existing data
	Force bool
)

// Cmd represents the demo command
var Cmd = &cobra.Command{
	Use:   "demo",
	Short: "Load a sample household with a year of history",
	Long: `Fill the data store with a sample household: three owners, seven accounts
in five currencies and twelve months of balances ending this month.`,
	Args: cobra.NoArgs,
	RunE: demoFunc,
}

func init() {
	Cmd.Flags().Int64Var(&Seed, "seed", 0, "Random seed for reproducible data")
	Cmd.Flags().BoolVar(&Force, "force", false, "Replace existing data")
}

func demoFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	current, err := root.LoadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if !current.IsEmpty() && !Force {
		return fmt.Errorf("data store is not empty; use --force to replace it with demo data")
	}

	now := c.Now()
	seed := Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	ds, err := demodata.Generate(now, c.GetIDs(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if err := c.GetStore().Save(cmd.Context(), ds); err != nil {
		return fmt.Errorf("error saving data: %w", err)
	}
	fmt.Fprintf(root.Out(cmd), "Loaded demo data: %d records for %d accounts\n", len(ds.Records), len(ds.Accounts))
	return nil
}
