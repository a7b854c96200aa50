package collection

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

// nextID returns a snowflake for now that is strictly greater than every
// numeric id already present in cards.
func nextID(now time.Time, cards []tcg.CardRecord) string {
	id := snowflake.New(now)
	for _, card := range cards {
		existing, err := snowflake.Parse(card.ID)
		if err != nil {
			continue
		}
		if existing >= id {
			id = existing + 1
		}
	}
	return id.String()
}
