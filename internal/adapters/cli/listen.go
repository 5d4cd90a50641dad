package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewListenCommand creates the listen command. It prints everything that
// arrives on the user's queue, which is how RECEIVE hand-off notices from
// delivery agents show up.
func NewListenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Print messages arriving for the user until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := NewSession(configPath, userID)
			if err != nil {
				return err
			}
			defer session.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmd.Printf("listening on %s (ctrl-c to stop)\n", userID)
			return session.Listen(ctx, func(body string) {
				cmd.Println(body)
			})
		},
	}
}
