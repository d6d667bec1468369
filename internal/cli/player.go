package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player registration commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerAssignCmd())
	cmd.AddCommand(newPlayerMMRCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var (
		displayName string
		mmr         int
	)

	cmd := &cobra.Command{
		Use:   "register <tournament-id> <epic-id>",
		Short: "Register a player in a tournament",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"epicId": args[1],
			}
			if displayName != "" {
				req["displayName"] = displayName
			}
			if cmd.Flags().Changed("mmr") {
				req["mmr"] = mmr
			}

			var result RegisterResult

			if err := client.Post(fmt.Sprintf("/api/tournament/%s/register", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name (default: Epic handle)")
	cmd.Flags().IntVar(&mmr, "mmr", 0, "Explicit MMR (default: looked up from the rating tracker)")

	return cmd
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tournament-id> <epic-id>",
		Short: "Remove a player (creator only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerResult

			if err := client.Delete(fmt.Sprintf("/api/tournament/%s/player/%s", args[0], args[1]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Removed %s", result.Player.DisplayName))
			return nil
		},
	}
}

func newPlayerAssignCmd() *cobra.Command {
	var team int

	cmd := &cobra.Command{
		Use:   "assign <tournament-id> <epic-id>",
		Short: "Pre-assign a player to a team (creator only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("team") {
				req["teamNumber"] = team
			}

			var result PlayerResult

			if err := client.Post(fmt.Sprintf("/api/tournament/%s/player/%s/assign", args[0], args[1]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&team, "team", 0, "Team number (omit or 0 to clear)")

	return cmd
}

func newPlayerMMRCmd() *cobra.Command {
	var mmr int

	cmd := &cobra.Command{
		Use:   "mmr <tournament-id> <epic-id>",
		Short: "Edit a player's MMR (creator only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("mmr") {
				return fmt.Errorf("--mmr is required")
			}

			req := map[string]int{"mmr": mmr}
			var result PlayerResult

			if err := client.Patch(fmt.Sprintf("/api/tournament/%s/player/%s/mmr", args[0], args[1]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&mmr, "mmr", 0, "New MMR value (required)")
	_ = cmd.MarkFlagRequired("mmr")

	return cmd
}
