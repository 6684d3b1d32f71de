package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"techlab/internal/catalog"
)

// catalogCmd lists the current catalog with inventory counters
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List products with stock and sold counters",
	RunE:  listCatalog,
}

// seedCmd writes the default catalog to the store file
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the default product catalog to the store file",
	Long: `Writes the built-in three-product catalog to the configured store
file, overwriting whatever is there. Use once on first setup or to reset
inventory counters.`,
	RunE: seedCatalog,
}

func listCatalog(cmd *cobra.Command, args []string) error {
	store := catalog.Open(cfg.Catalog.Path, logger)
	snap := store.Snapshot()

	fmt.Printf("%-4s %-28s %10s %7s %6s\n", "ID", "NAME", "PRICE", "STOCK", "SOLD")
	for _, id := range snap.IDs() {
		p := snap[id]
		fmt.Printf("%-4d %-28s %10s %7d %6d\n",
			p.ID, p.Name, "$"+p.Price.StringFixed(2), p.Stock, p.Sold)
	}
	return nil
}

func seedCatalog(cmd *cobra.Command, args []string) error {
	store := catalog.Open(cfg.Catalog.Path, logger)
	if err := store.Seed(); err != nil {
		return err
	}
	logger.Info("catalog seeded", zap.String("path", cfg.Catalog.Path))
	fmt.Println("Seeded default catalog to", cfg.Catalog.Path)
	return nil
}
