package cli

import (
	"github.com/spf13/cobra"

	"github.com/saimazoom/warehouse-go/internal/wire"
)

// NewRequestCommand creates the request command
func NewRequestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "request <product> [<product>...]",
		Short: "Submit an order for a set of products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundTrip(cmd, wire.Request(userID, args))
		},
	}
}

// NewCancelCommand creates the cancel command
func NewCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an order that is still in storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundTrip(cmd, wire.Cancel(userID, args[0]))
		},
	}
}

// NewViewCommand creates the view command
func NewViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "List the user's orders and their states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundTrip(cmd, wire.View(userID))
		},
	}
}
