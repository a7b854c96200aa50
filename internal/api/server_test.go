package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/disgoorg/card-binder/internal/api"
	"github.com/disgoorg/card-binder/internal/clock"
	"github.com/disgoorg/card-binder/internal/config"
	"github.com/disgoorg/card-binder/internal/domain/chat"
	"github.com/disgoorg/card-binder/internal/domain/collection"
	"github.com/disgoorg/card-binder/internal/domain/intake"
	"github.com/disgoorg/card-binder/internal/domain/lookup"
	"github.com/disgoorg/card-binder/internal/domain/lookup/mock"
	"github.com/disgoorg/card-binder/internal/domain/market"
	"github.com/disgoorg/card-binder/internal/domain/tcg"
	"github.com/disgoorg/card-binder/internal/gateways/storage"
	"github.com/disgoorg/card-binder/internal/notify"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *api.APIError   `json:"error"`
}

type testServer struct {
	srv      *api.Server
	clock    *clock.Fake
	provider *mock.MockProvider
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	return newTestServerWith(t, config.Default().Server)
}

func newTestServerWith(t *testing.T, cfg config.ServerConfig) testServer {
	t.Helper()

	provider := mock.NewMockProvider(gomock.NewController(t))
	provider.EXPECT().Game().Return(tcg.GameMTG).AnyTimes()
	client, err := lookup.NewClient(8, provider)
	if err != nil {
		t.Fatal(err)
	}

	fake := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	feed := notify.NewFeed(10)
	srv, err := api.New(cfg, api.Deps{
		Store:    collection.Load(context.Background(), storage.NewFile(t.TempDir())),
		Lookup:   client,
		Inbox:    chat.NewInbox(fake),
		Feed:     feed,
		Notifier: feed,
		Clock:    fake,
		Version:  "test",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return testServer{srv: srv, clock: fake, provider: provider}
}

func (ts testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	status, env := ts.do(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("GET /health = %d %+v", status, env)
	}
}

type catalog struct {
	Games []struct {
		Slug            string `json:"slug"`
		LookupSupported bool   `json:"lookupSupported"`
	} `json:"games"`
	Conditions []struct {
		Code string `json:"code"`
	} `json:"conditions"`
}

func TestGames(t *testing.T) {
	ts := newTestServer(t)
	_, env := ts.do(t, http.MethodGet, "/api/games", nil)

	got := decode[catalog](t, env)

	if len(got.Games) != len(tcg.Games) {
		t.Fatalf("games = %d, want %d", len(got.Games), len(tcg.Games))
	}
	if got.Games[0].Slug != "mtg" || !got.Games[0].LookupSupported {
		t.Errorf("first game = %+v, want mtg with lookup", got.Games[0])
	}
	if got.Games[1].LookupSupported {
		t.Errorf("pokemon lookup supported without a provider")
	}
	var codes []string
	for _, c := range got.Conditions {
		codes = append(codes, c.Code)
	}
	if want := []string{"DMG", "HP", "MP", "LP", "NM"}; !reflect.DeepEqual(codes, want) {
		t.Errorf("conditions = %v, want %v", codes, want)
	}
}

func TestCollection(t *testing.T) {
	ts := newTestServer(t)

	_, env := ts.do(t, http.MethodGet, "/api/collection/mtg", nil)
	if cards := decode[[]map[string]any](t, env); len(cards) != 2 {
		t.Fatalf("seed mtg cards = %d, want 2", len(cards))
	}

	status, env := ts.do(t, http.MethodPost, "/api/collection/pokemon", map[string]any{
		"name":        "Pikachu",
		"condition":   "Lightly Played",
		"copies":      2,
		"pokemonType": "Electric",
	})
	if status != http.StatusCreated {
		t.Fatalf("POST = %d %+v", status, env.Error)
	}
	cards := decode[[]map[string]any](t, env)
	if len(cards) != 2 || cards[1]["name"] != "Pikachu" || cards[1]["pokemonType"] != "Electric" {
		t.Errorf("pokemon cards = %v", cards)
	}

	status, env = ts.do(t, http.MethodGet, "/api/collection/mtg/1", nil)
	if status != http.StatusOK {
		t.Fatalf("GET details = %d", status)
	}
	details := decode[struct {
		Fields []tcg.DetailField `json:"fields"`
	}](t, env)
	if details.Fields[0].Value != "Jace, the Mind Sculptor" {
		t.Errorf("details = %+v", details.Fields)
	}

	status, env = ts.do(t, http.MethodDelete, "/api/collection/mtg/1", nil)
	if status != http.StatusOK {
		t.Fatalf("DELETE = %d", status)
	}
	if cards := decode[[]map[string]any](t, env); len(cards) != 1 {
		t.Errorf("after delete = %d cards, want 1", len(cards))
	}

	if status, _ := ts.do(t, http.MethodDelete, "/api/collection/mtg/1", nil); status != http.StatusNotFound {
		t.Errorf("second DELETE = %d, want 404", status)
	}
	if status, _ := ts.do(t, http.MethodGet, "/api/collection/chess", nil); status != http.StatusNotFound {
		t.Errorf("unknown game = %d, want 404", status)
	}
	if status, _ := ts.do(t, http.MethodPost, "/api/collection/mtg", map[string]any{"name": " "}); status != http.StatusUnprocessableEntity {
		t.Errorf("blank name = %d, want 422", status)
	}
}

func TestIntakeLookupAndSubmit(t *testing.T) {
	ts := newTestServer(t)
	ts.provider.EXPECT().Suggest(gomock.Any(), "bla").Return([]string{"Black Lotus"}, nil)
	ts.provider.EXPECT().Fetch(gomock.Any(), "Black Lotus").Return(&lookup.ExternalCard{
		Game: tcg.GameMTG,
		Name: "Black Lotus",
		Printings: []lookup.Printing{
			{Label: "Limited Edition Alpha", MTG: &lookup.MTGCard{Name: "Black Lotus", Rarity: "rare", TypeLine: "Artifact", ManaCost: "{0}"}},
			{Label: "Limited Edition Beta", MTG: &lookup.MTGCard{Name: "Black Lotus", Rarity: "rare", TypeLine: "Artifact", ManaCost: "{0}", ImageURIs: &lookup.MTGImageURIs{Normal: "beta.jpg"}}},
		},
	}, nil)

	status, env := ts.do(t, http.MethodPost, "/api/intake", map[string]string{"game": "mtg"})
	if status != http.StatusCreated {
		t.Fatalf("create session = %d", status)
	}
	id := decode[intake.SessionView](t, env).ID

	ts.do(t, http.MethodPost, "/api/intake/"+id+"/name", map[string]string{"name": "bla"})
	ts.clock.Advance(lookup.DebounceDelay)

	_, env = ts.do(t, http.MethodGet, "/api/intake/"+id, nil)
	view := decode[intake.SessionView](t, env)
	if !reflect.DeepEqual(view.Lookup.Suggestions, []string{"Black Lotus"}) {
		t.Fatalf("suggestions = %v", view.Lookup.Suggestions)
	}

	status, env = ts.do(t, http.MethodPost, "/api/intake/"+id+"/suggestions/select", map[string]string{"name": "Black Lotus"})
	if status != http.StatusOK {
		t.Fatalf("select suggestion = %d %+v", status, env.Error)
	}
	view = decode[intake.SessionView](t, env)
	if view.Form.Rarity != "Rare" || view.Form.Values["cardType"] != "Artifact" || len(view.Printings) != 2 {
		t.Fatalf("prefilled form = %+v printings = %v", view.Form, view.Printings)
	}

	_, env = ts.do(t, http.MethodPost, "/api/intake/"+id+"/printings/select", map[string]int{"index": 1})
	if view = decode[intake.SessionView](t, env); view.Form.Image != "beta.jpg" || !view.Printings[1].Selected {
		t.Fatalf("second printing = %+v", view.Form)
	}

	ts.do(t, http.MethodPost, "/api/intake/"+id+"/copies", map[string]string{"action": "increment"})
	status, env = ts.do(t, http.MethodPost, "/api/intake/"+id+"/submit", nil)
	if status != http.StatusCreated {
		t.Fatalf("submit = %d %+v", status, env.Error)
	}
	sub := decode[struct {
		Card    map[string]any     `json:"card"`
		Session intake.SessionView `json:"session"`
	}](t, env)
	if sub.Card["name"] != "Black Lotus" || sub.Card["copies"] != float64(2) || sub.Card["condition"] != "Near Mint" {
		t.Errorf("stored card = %v", sub.Card)
	}
	if sub.Session.Form.Name != "" || sub.Session.Form.Game != tcg.GameMTG {
		t.Errorf("form after submit = %+v", sub.Session.Form)
	}

	_, env = ts.do(t, http.MethodGet, "/api/notifications", nil)
	toasts := decode[[]notify.Toast](t, env)
	if len(toasts) != 1 || toasts[0].Title != "Card Added" {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestIntakeValidation(t *testing.T) {
	ts := newTestServer(t)
	_, env := ts.do(t, http.MethodPost, "/api/intake", nil)
	id := decode[intake.SessionView](t, env).ID

	ts.do(t, http.MethodPost, "/api/intake/"+id+"/copies", map[string]string{"action": "set", "text": ""})
	status, env := ts.do(t, http.MethodPost, "/api/intake/"+id+"/submit", nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("submit = %d, want 422", status)
	}
	if _, ok := env.Error.Details["name"]; !ok {
		t.Errorf("details = %v, want name", env.Error.Details)
	}
	if _, ok := env.Error.Details["copies"]; !ok {
		t.Errorf("details = %v, want copies", env.Error.Details)
	}

	status, env = ts.do(t, http.MethodPost, "/api/intake/"+id+"/fields", map[string]any{
		"values": map[string]string{"cardType": "Dragon"},
	})
	if status != http.StatusUnprocessableEntity || env.Error.Details["cardType"] == "" {
		t.Errorf("invalid option = %d %+v", status, env.Error)
	}

	status, _ = ts.do(t, http.MethodPost, "/api/intake/"+id+"/printings/select", map[string]int{"index": 0})
	if status != http.StatusConflict {
		t.Errorf("printing without selection = %d, want 409", status)
	}

	if status, _ := ts.do(t, http.MethodGet, "/api/intake/missing", nil); status != http.StatusNotFound {
		t.Errorf("missing session = %d, want 404", status)
	}
}

func TestIntakeGrading(t *testing.T) {
	ts := newTestServer(t)
	_, env := ts.do(t, http.MethodPost, "/api/intake", map[string]string{"game": "pokemon"})
	id := decode[intake.SessionView](t, env).ID

	status, env := ts.do(t, http.MethodPost, "/api/intake/"+id+"/grading", map[string]any{
		"graded":    true,
		"company":   "BGS",
		"grade":     "9.5",
		"subGrades": map[string]string{"centering": "10"},
	})
	if status != http.StatusOK {
		t.Fatalf("grading = %d %+v", status, env.Error)
	}
	view := decode[intake.SessionView](t, env)
	want := &tcg.GradingInfo{Company: tcg.CompanyBGS, Grade: "9.5", SubGrades: &tcg.SubGrades{Centering: "10"}}
	if !reflect.DeepEqual(view.Form.Grading, want) {
		t.Errorf("grading = %+v, want %+v", view.Form.Grading, want)
	}

	status, _ = ts.do(t, http.MethodPost, "/api/intake/"+id+"/grading", map[string]any{"company": "PSA", "grade": "9.5"})
	if status != http.StatusUnprocessableEntity {
		t.Errorf("half grade for PSA = %d, want 422", status)
	}

	_, env = ts.do(t, http.MethodPost, "/api/intake/"+id+"/grading", map[string]any{"graded": false})
	if view := decode[intake.SessionView](t, env); view.Form.Grading != nil {
		t.Errorf("grading kept after toggle off: %+v", view.Form.Grading)
	}

	status, env = ts.do(t, http.MethodPost, "/api/intake/"+id+"/suggestions/select", map[string]string{"name": "Pikachu"})
	if status != http.StatusUnprocessableEntity || env.Error.Message != lookup.Notice(tcg.GamePokemon) {
		t.Errorf("lookup without endpoint = %d %+v", status, env.Error)
	}
}

func TestMarket(t *testing.T) {
	ts := newTestServer(t)
	_, env := ts.do(t, http.MethodGet, "/api/market?game=pokemon", nil)
	if got := decode[[]map[string]any](t, env); len(got) != 1 || got[0]["cardName"] != "Charizard" {
		t.Errorf("pokemon listings = %v", got)
	}
	if status, _ := ts.do(t, http.MethodGet, "/api/market?distance=abc", nil); status != http.StatusBadRequest {
		t.Errorf("bad distance = %d, want 400", status)
	}
	if status, _ := ts.do(t, http.MethodGet, "/api/market/99", nil); status != http.StatusNotFound {
		t.Errorf("missing listing = %d, want 404", status)
	}

	status, env := ts.do(t, http.MethodGet, "/api/market/1", nil)
	if status != http.StatusOK {
		t.Fatalf("GET listing = %d", status)
	}
	got := decode[struct {
		Listing market.Listing    `json:"listing"`
		Fields  []tcg.DetailField `json:"fields"`
	}](t, env)
	if got.Listing.Location != "Brooklyn, NY" || got.Listing.Description == "" {
		t.Errorf("listing = %+v", got.Listing)
	}
	if last := got.Fields[len(got.Fields)-1]; last.Label != "Description" || last.Value != got.Listing.Description {
		t.Errorf("fields = %+v", got.Fields)
	}
}

func TestMessages(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.do(t, http.MethodPost, "/api/messages", map[string]string{"listingId": "1"})
	if status != http.StatusCreated {
		t.Fatalf("start = %d %+v", status, env.Error)
	}
	conv := decode[chat.Conversation](t, env)
	if conv.Contact != "Morgan Lee" || len(conv.Messages) != 2 {
		t.Fatalf("conversation = %+v", conv)
	}

	if status, _ := ts.do(t, http.MethodPost, "/api/messages/"+conv.ID, map[string]string{"text": "  "}); status != http.StatusUnprocessableEntity {
		t.Errorf("blank message = %d, want 422", status)
	}
	if status, _ := ts.do(t, http.MethodPost, "/api/messages/"+conv.ID, map[string]string{"text": "Still available?"}); status != http.StatusCreated {
		t.Fatalf("send = %d", status)
	}
	ts.clock.Advance(chat.ReplyDelay)

	_, env = ts.do(t, http.MethodGet, "/api/messages/"+conv.ID, nil)
	conv = decode[chat.Conversation](t, env)
	if len(conv.Messages) != 4 || conv.Messages[3].Text != chat.AutoReply {
		t.Errorf("messages = %+v", conv.Messages)
	}

	_, env = ts.do(t, http.MethodGet, "/api/messages", nil)
	if list := decode[[]chat.Summary](t, env); list[0].ID != conv.ID {
		t.Errorf("inbox head = %+v, want %s", list[0], conv.ID)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	status, env := ts.do(t, http.MethodGet, "/nope", nil)
	if status != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("GET /nope = %d %+v", status, env.Error)
	}
}

func TestIntakeRateLimit(t *testing.T) {
	cfg := config.Default().Server
	cfg.RateLimit = 2
	ts := newTestServerWith(t, cfg)

	for i := 0; i < 2; i++ {
		if status, _ := ts.do(t, http.MethodPost, "/api/intake", nil); status != http.StatusCreated {
			t.Fatalf("request %d = %d, want 201", i, status)
		}
	}
	status, env := ts.do(t, http.MethodPost, "/api/intake", nil)
	if status != http.StatusTooManyRequests || env.Error.Code != "RATE_LIMITED" {
		t.Errorf("third request = %d %+v", status, env.Error)
	}
	if status, _ := ts.do(t, http.MethodGet, "/api/market", nil); status != http.StatusOK {
		t.Errorf("market limited = %d", status)
	}
}
