package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

var (
	lookupGame     string
	lookupName     string
	lookupPrinting int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Query the public card databases",
}

var lookupSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest card names for a partial name",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tcg.ParseGame(lookupGame)
		if err != nil {
			return err
		}
		client, err := newLookupClient()
		if err != nil {
			return err
		}
		names, err := client.Suggest(cmd.Context(), game, lookupName)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var lookupCardCmd = &cobra.Command{
	Use:   "card",
	Short: "Fetch a card and show the values it would prefill",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tcg.ParseGame(lookupGame)
		if err != nil {
			return err
		}
		client, err := newLookupClient()
		if err != nil {
			return err
		}
		card, err := client.Fetch(cmd.Context(), game, lookupName)
		if err != nil {
			return err
		}
		sel, err := lookup.NewSelection(card)
		if err != nil {
			return err
		}
		pre, err := sel.Choose(lookupPrinting)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printTitle(out, card.Name)
		var printings [][]string
		for i, p := range card.Printings {
			mark := ""
			if i == sel.Index() {
				mark = "*"
			}
			printings = append(printings, []string{mark, fmt.Sprint(i), p.Label})
		}
		printTable(out, []string{"", "#", "Printing"}, printings)

		rows := [][]string{{"name", pre.Name}, {"rarity", pre.Rarity}, {"image", pre.Image}}
		keys := make([]string, 0, len(pre.Values))
		for k := range pre.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, []string{k, pre.Values[k]})
		}
		printTable(out, []string{"Field", "Value"}, rows)
		return nil
	},
}

func init() {
	lookupCmd.PersistentFlags().StringVarP(&lookupGame, "game", "g", "mtg", "game: mtg, pokemon or yugioh")
	lookupCmd.PersistentFlags().StringVarP(&lookupName, "name", "n", "", "card name")
	_ = lookupCmd.MarkPersistentFlagRequired("name")
	lookupCardCmd.Flags().IntVar(&lookupPrinting, "printing", 0, "printing index to map")

	lookupCmd.AddCommand(lookupSuggestCmd, lookupCardCmd)
	rootCmd.AddCommand(lookupCmd)
}
