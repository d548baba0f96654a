package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukemay/quizroom-go/internal/model"
)

func newRoomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "room CODE",
		Short: "Fetch a room's broadcast view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var view model.RoomView
			if err := client.Get("/api/v1/rooms/"+args[0], &view); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Dump the full engine state (rooms and players)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var dump map[string]any
			if err := client.Get("/api/v1/debug/state", &dump); err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), dump); err != nil {
				return err
			}
			if rooms, ok := dump["rooms"].([]any); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%d room(s)\n", len(rooms))
			}
			return nil
		},
	}
}
