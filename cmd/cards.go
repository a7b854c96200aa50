package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/disgoorg/card-binder/internal/domain/intake"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List, add and remove collection cards",
}

var (
	cardsGame      string
	cardsID        string
	addName        string
	addRarity      string
	addCondition   string
	addCopies      int
	addLanguage    string
	addFoil        bool
	addDescription string
	addImage       string
	addFields      map[string]string
	addCompany     string
	addGrade       string
	addSubGrades   map[string]string
)

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards owned for a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tcg.ParseGame(cardsGame)
		if err != nil {
			return err
		}
		store, closeRepo, err := loadStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		var rows [][]string
		for _, c := range store.ListCards(game) {
			rows = append(rows, []string{c.ID, c.Name, c.Rarity, c.Condition.Code(), strconv.Itoa(c.Copies), c.GradingInfo.Label()})
		}
		printTitle(cmd.OutOrStdout(), fmt.Sprintf("%s collection", game))
		printTable(cmd.OutOrStdout(), []string{"ID", "Name", "Rarity", "Condition", "Copies", "Grading"}, rows)
		return nil
	},
}

var cardsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the details of one card",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tcg.ParseGame(cardsGame)
		if err != nil {
			return err
		}
		store, closeRepo, err := loadStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		for _, c := range store.ListCards(game) {
			if c.ID != cardsID {
				continue
			}
			var rows [][]string
			for _, f := range tcg.Details(game, c) {
				rows = append(rows, []string{f.Label, f.Value})
			}
			printTitle(cmd.OutOrStdout(), c.Name)
			printTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows)
			return nil
		}
		return fmt.Errorf("no %s card with id %q", game, cardsID)
	},
}

// cardsAddCmd fills an intake form from flags so the same validation and
// defaults apply as on the API.
var cardsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card to the collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tcg.ParseGame(cardsGame)
		if err != nil {
			return err
		}
		form, err := intake.NewForm(game)
		if err != nil {
			return err
		}
		if err := fillForm(form); err != nil {
			return err
		}

		store, closeRepo, err := loadStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		cards, err := form.Submit(cmd.Context(), store)
		if err != nil {
			return err
		}
		rec := cards[len(cards)-1]
		fmt.Fprintf(cmd.OutOrStdout(), "%s has been added to your collection (id %s)\n", rec.Name, rec.ID)
		return nil
	},
}

var cardsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a card from the collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := tcg.ParseGame(cardsGame)
		if err != nil {
			return err
		}
		store, closeRepo, err := loadStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeRepo()

		cards, err := store.RemoveCard(cmd.Context(), game, cardsID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s, %d %s cards left\n", cardsID, len(cards), game)
		return nil
	},
}

func fillForm(f *intake.Form) error {
	f.SetName(addName)
	f.SetRarity(addRarity)
	f.SetImage(addImage)
	f.SetFoil(addFoil)
	f.Copies().Set(addCopies)

	var errs []error
	if err := f.SetLanguage(addLanguage); err != nil {
		errs = append(errs, err)
	}
	if err := f.SetDescription(addDescription); err != nil {
		errs = append(errs, err)
	}
	if addCondition != "" {
		cond, err := tcg.ParseCondition(addCondition)
		if err == nil {
			err = f.Condition().Set(cond)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	for name, value := range addFields {
		if err := f.SetField(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	if addCompany != "" {
		f.SetGraded(true)
		if err := f.SetGradingCompany(tcg.GradingCompany(addCompany)); err != nil {
			errs = append(errs, err)
		} else if err := f.SetGrade(addGrade); err != nil {
			errs = append(errs, err)
		}
		for name, value := range addSubGrades {
			if err := f.SetSubGrade(name, value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func init() {
	cardsCmd.PersistentFlags().StringVarP(&cardsGame, "game", "g", "mtg", "game: mtg, pokemon, yugioh, onepiece or fab")

	cardsShowCmd.Flags().StringVar(&cardsID, "id", "", "card id")
	_ = cardsShowCmd.MarkFlagRequired("id")
	cardsRemoveCmd.Flags().StringVar(&cardsID, "id", "", "card id")
	_ = cardsRemoveCmd.MarkFlagRequired("id")

	flags := cardsAddCmd.Flags()
	flags.StringVarP(&addName, "name", "n", "", "card name")
	flags.StringVar(&addRarity, "rarity", "", "rarity")
	flags.StringVar(&addCondition, "condition", "NM", "condition code or label")
	flags.IntVar(&addCopies, "copies", 1, "number of copies")
	flags.StringVar(&addLanguage, "language", tcg.DefaultLanguage, "printing language")
	flags.BoolVar(&addFoil, "foil", false, "foil printing")
	flags.StringVar(&addDescription, "description", "", "notes, at most 128 characters")
	flags.StringVar(&addImage, "image", "", "image url")
	flags.StringToStringVar(&addFields, "field", nil, "game-specific value, e.g. --field cardType=Instant")
	flags.StringVar(&addCompany, "company", "", "grading company: PSA, BGS, CGC or SGC")
	flags.StringVar(&addGrade, "grade", "", "grade on the company scale")
	flags.StringToStringVar(&addSubGrades, "subgrade", nil, "BGS sub-grade, e.g. --subgrade centering=9.5")
	_ = cardsAddCmd.MarkFlagRequired("name")

	cardsCmd.AddCommand(cardsListCmd, cardsShowCmd, cardsAddCmd, cardsRemoveCmd)
	rootCmd.AddCommand(cardsCmd)
}
