package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/disgoorg/card-binder/internal/domain/tcg"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestScryfall(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cards/autocomplete", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "black lo" {
			t.Errorf("autocomplete q = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		writeJSON(w, map[string]any{"data": []string{"Black Lotus"}})
	})
	mux.HandleFunc("/cards/named", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fuzzy"); got != "Black Lotus" {
			t.Errorf("named fuzzy = %q", got)
		}
		writeJSON(w, MTGCard{Name: "Black Lotus", Rarity: "rare", SetName: "Limited Edition Alpha", CollectorNumber: "232"})
	})
	mux.HandleFunc("/cards/search", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != `!"Black Lotus"` {
			t.Errorf("search q = %q", got)
		}
		if got := r.URL.Query().Get("unique"); got != "prints" {
			t.Errorf("search unique = %q", got)
		}
		writeJSON(w, map[string]any{"data": []MTGCard{
			{Name: "Black Lotus", Rarity: "rare", SetName: "Limited Edition Alpha", CollectorNumber: "232"},
			{Name: "Black Lotus", Rarity: "rare", SetName: "Limited Edition Beta", CollectorNumber: "233"},
		}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewScryfall(srv.URL, srv.Client())
	ctx := context.Background()

	names, err := p.Suggest(ctx, "black lo")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Black Lotus"}) {
		t.Errorf("Suggest() = %v", names)
	}

	card, err := p.Fetch(ctx, "Black Lotus")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if card.Game != tcg.GameMTG || card.Name != "Black Lotus" {
		t.Errorf("Fetch() = %+v", card)
	}
	labels := []string{card.Printings[0].Label, card.Printings[1].Label}
	want := []string{"Limited Edition Alpha #232", "Limited Edition Beta #233"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("printing labels = %v, want %v", labels, want)
	}
}

func TestScryfall_SearchFailureFallsBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cards/named", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, MTGCard{Name: "Lightning Bolt", Rarity: "common"})
	})
	mux.HandleFunc("/cards/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	card, err := NewScryfall(srv.URL, srv.Client()).Fetch(context.Background(), "Lightning Bolt")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(card.Printings) != 1 || card.Printings[0].MTG.Name != "Lightning Bolt" {
		t.Errorf("Printings = %+v", card.Printings)
	}
}

func TestScryfall_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewScryfall(srv.URL, srv.Client()).Fetch(context.Background(), "Nope")
	if !errors.Is(err, ErrCardNotFound) {
		t.Errorf("Fetch() error = %v, want ErrCardNotFound", err)
	}
}

func TestPokemonTCG(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/cards" {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch q := r.URL.Query().Get("q"); q {
		case "name:char*":
			writeJSON(w, map[string]any{"data": []PokemonCard{{Name: "Charizard"}, {Name: "Charmander"}}})
		case `name:"Charizard"`:
			writeJSON(w, map[string]any{"data": []PokemonCard{
				{ID: "base1-4", Name: "Charizard", Set: PokemonSet{Name: "Base"}},
				{ID: "base4-4", Name: "Charizard", Set: PokemonSet{Name: "Base Set 2"}},
			}})
		default:
			t.Errorf("unexpected q = %q", q)
			writeJSON(w, map[string]any{"data": []PokemonCard{}})
		}
	}))
	defer srv.Close()

	p := NewPokemonTCG(srv.URL, srv.Client())
	ctx := context.Background()

	names, err := p.Suggest(ctx, "char")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Charizard", "Charmander"}) {
		t.Errorf("Suggest() = %v", names)
	}

	card, err := p.Fetch(ctx, "Charizard")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(card.Printings) != 2 || card.Printings[1].Label != "Base Set 2" {
		t.Errorf("Printings = %+v", card.Printings)
	}
}

func TestYGOProDeck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("fname") == "dark mag":
			writeJSON(w, map[string]any{"data": []YuGiOhCard{{Name: "Dark Magician"}, {Name: "Dark Magician"}, {Name: "Dark Magician Girl"}}})
		case q.Get("name") == "Dark Magician":
			writeJSON(w, map[string]any{"data": []YuGiOhCard{{
				Name: "Dark Magician",
				CardSets: []YuGiOhSet{
					{SetName: "Legend of Blue Eyes", SetCode: "LOB-005", SetRarity: "Ultra Rare"},
					{SetName: "Starter Deck Yugi", SetCode: "SDY-006", SetRarity: "Ultra Rare"},
					{SetName: "Dark Legends", SetCode: "DLG1-EN001", SetRarity: "Common"},
				},
				CardImages: []YuGiOhImage{{ImageURL: "img0"}, {ImageURL: "img1"}},
			}}})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	p := NewYGOProDeck(srv.URL, srv.Client())
	ctx := context.Background()

	names, err := p.Suggest(ctx, "dark mag")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Dark Magician", "Dark Magician Girl"}) {
		t.Errorf("Suggest() = %v", names)
	}

	names, err = p.Suggest(ctx, "zzzz")
	if err != nil || len(names) != 0 {
		t.Errorf("Suggest(no match) = %v, %v", names, err)
	}

	card, err := p.Fetch(ctx, "Dark Magician")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(card.Printings) != 3 {
		t.Fatalf("got %d printings, want 3", len(card.Printings))
	}
	images := []string{
		card.Printings[0].YuGiOh.Image.ImageURL,
		card.Printings[1].YuGiOh.Image.ImageURL,
		card.Printings[2].YuGiOh.Image.ImageURL,
	}
	if !reflect.DeepEqual(images, []string{"img0", "img1", "img0"}) {
		t.Errorf("images = %v", images)
	}
	if card.Printings[2].Label != "Dark Legends (DLG1-EN001)" {
		t.Errorf("label = %q", card.Printings[2].Label)
	}
}
