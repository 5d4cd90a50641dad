package cli

import (
	"github.com/spf13/cobra"

	"github.com/saimazoom/warehouse-go/internal/wire"
)

// NewSignUpCommand creates the sign-up command
func NewSignUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-up",
		Short: "Register the user with the controller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundTrip(cmd, wire.SignUp(userID))
		},
	}
}

// NewSignInCommand creates the sign-in command
func NewSignInCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-in",
		Short: "Open a session for the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundTrip(cmd, wire.SignIn(userID))
		},
	}
}

// NewSignOutCommand creates the sign-out command
func NewSignOutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-out",
		Short: "Close the user's session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return roundTrip(cmd, wire.SignOut(userID))
		},
	}
}

// roundTrip sends one command and prints the controller's response
func roundTrip(cmd *cobra.Command, body string) error {
	session, err := NewSession(configPath, userID)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx := cmd.Context()
	if err := session.Send(ctx, body); err != nil {
		return err
	}
	response, err := session.Await(ctx, timeout)
	if err != nil {
		return err
	}
	cmd.Println(response)
	return nil
}
