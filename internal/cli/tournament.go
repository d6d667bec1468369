package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament management commands",
	}

	cmd.AddCommand(newTournamentCreateCmd())
	cmd.AddCommand(newTournamentGetCmd())
	cmd.AddCommand(newTournamentListCmd())
	cmd.AddCommand(newTournamentResolveCmd())
	cmd.AddCommand(newTournamentGenerateCmd())
	cmd.AddCommand(newTournamentDeleteCmd())

	return cmd
}

func newTournamentCreateCmd() *cobra.Command {
	var (
		maxPlayers int
		teamSize   int
		region     string
		public     bool
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":        args[0],
				"maxPlayers":  maxPlayers,
				"teamSize":    teamSize,
				"region":      region,
				"isPublic":    public,
				"balanceMode": mode,
			}
			if cfg.CreatorID != "" {
				req["creatorId"] = cfg.CreatorID
			}

			var result CreateResult

			if err := client.Post("/api/tournament/create", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 16, "Maximum number of players")
	cmd.Flags().IntVar(&teamSize, "team-size", 3, "Players per team")
	cmd.Flags().StringVar(&region, "region", "", "Region label")
	cmd.Flags().BoolVar(&public, "public", false, "List tournament publicly")
	cmd.Flags().StringVar(&mode, "mode", "balanced", "Balance mode: balanced, random")

	return cmd
}

func newTournamentGetCmd() *cobra.Command {
	var asCreator bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get tournament details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/tournament/%s", args[0])
			if asCreator {
				path += "?isCreator=true"
			}

			var result Tournament

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCreator, "as-creator", false, "View unredacted creator details")

	return cmd
}

func newTournamentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public open tournaments",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []TournamentSummary

			if err := client.Get("/api/tournaments/public", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTournamentResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <code>",
		Short: "Resolve a join code to a tournament ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ResolveResult

			if err := client.Get(fmt.Sprintf("/api/tournament/code/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(result.ID)
			return nil
		},
	}
}

func newTournamentGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <id>",
		Short: "Generate teams for a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GenerateResult

			if err := client.Post(fmt.Sprintf("/api/tournament/%s/generate", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTournamentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/tournament/%s", args[0]), nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Deleted tournament %s", args[0]))
			return nil
		},
	}
}
