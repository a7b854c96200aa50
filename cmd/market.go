package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/disgoorg/card-binder/internal/domain/market"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

var (
	marketQuery     string
	marketGame      string
	marketCondition string
	marketDistance  float64
	marketID        string
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Browse nearby listings",
}

var marketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List listings matching a search",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := market.Filter{Query: marketQuery, MaxDistanceKm: marketDistance}
		if marketGame != "" {
			game, err := tcg.ParseGame(marketGame)
			if err != nil {
				return err
			}
			f.Game = game
		}
		if marketCondition != "" {
			cond, err := tcg.ParseCondition(marketCondition)
			if err != nil {
				return err
			}
			f.MinCondition = &cond
		}

		var rows [][]string
		for _, l := range market.Search(f) {
			rows = append(rows, []string{
				l.ID, l.CardName, l.Game.String(), l.Condition.Code(), l.Grading.Label(), l.Price(), l.Seller, l.Location, fmt.Sprintf("%.1f km", l.DistanceKm),
			})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "Card", "Game", "Condition", "Grading", "Price", "Seller", "Location", "Distance"}, rows)
		return nil
	},
}

var marketShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the details of one listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, ok := market.ByID(marketID)
		if !ok {
			return fmt.Errorf("no listing with id %q", marketID)
		}
		var rows [][]string
		for _, f := range market.ListingDetails(l) {
			rows = append(rows, []string{f.Label, f.Value})
		}
		printTitle(cmd.OutOrStdout(), l.CardName)
		printTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows)
		return nil
	},
}

func init() {
	flags := marketListCmd.Flags()
	flags.StringVarP(&marketQuery, "query", "q", "", "card name to search for")
	flags.StringVarP(&marketGame, "game", "g", "", "only this game")
	flags.StringVar(&marketCondition, "condition", "", "minimum condition")
	flags.Float64Var(&marketDistance, "distance", market.DefaultMaxDistanceKm, "maximum distance in km")

	marketShowCmd.Flags().StringVar(&marketID, "id", "", "listing id")
	_ = marketShowCmd.MarkFlagRequired("id")

	marketCmd.AddCommand(marketListCmd, marketShowCmd)
	rootCmd.AddCommand(marketCmd)
}
