package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"techlab/internal/store"
)

// ordersCmd lists recorded orders, newest first
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List placed orders from the order log",
	RunE:  listOrders,
}

func listOrders(cmd *cobra.Command, args []string) error {
	log, err := store.NewOrderLog(cfg.Orders.DatabasePath)
	if err != nil {
		return err
	}
	defer log.Close()

	orders, err := log.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("No orders recorded.")
		return nil
	}

	for _, o := range orders {
		fmt.Printf("%s  %s  $%s  %s <%s>\n",
			o.ID, o.PlacedAt.Local().Format("2006-01-02 15:04"),
			o.Total.StringFixed(2), o.CustomerName, o.CustomerEmail)

		ids := make([]int, 0, len(o.Items))
		for id := range o.Items {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Printf("    product %d x%d\n", id, o.Items[id])
		}
		if note := strings.TrimSpace(o.Note); note != "" {
			fmt.Printf("    note: %s\n", note)
		}
	}
	return nil
}
