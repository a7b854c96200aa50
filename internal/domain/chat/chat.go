// Package chat simulates buyer and seller conversations.
package chat

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/disgoorg/card-binder/internal/clock"
	"github.com/disgoorg/card-binder/internal/domain/market"
)

const (
	Me         = "You"
	ReplyDelay = 1500 * time.Millisecond
	AutoReply  = "Thanks for your message! I'll get back to you soon."
	Greeting   = "Hi, how can I help you today?"
)

var (
	ErrEmptyMessage         = errors.New("message is empty")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrListingNotFound      = errors.New("listing not found")
)

type Message struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
	IsMe   bool      `json:"isMe"`
}

type Conversation struct {
	ID        string          `json:"id"`
	Contact   string          `json:"contact"`
	Listing   *market.Listing `json:"listing,omitempty"`
	Messages  []Message       `json:"messages"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Summary is an inbox row.
type Summary struct {
	ID          string    `json:"id"`
	Contact     string    `json:"contact"`
	LastMessage string    `json:"lastMessage"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Inbox holds every conversation. Conversations are returned as copies.
type Inbox struct {
	mu            sync.Mutex
	clock         clock.Clock
	conversations map[string]*Conversation
	order         []string
}

func NewInbox(c clock.Clock) *Inbox {
	if c == nil {
		c = clock.Real{}
	}
	in := &Inbox{clock: c, conversations: map[string]*Conversation{}}
	in.seed()
	return in
}

func (in *Inbox) seed() {
	now := in.clock.Now()
	day := 24 * time.Hour
	for _, s := range []struct {
		contact string
		text    string
		ago     time.Duration
	}{
		{"Alex Thompson", "Hi, is the Charizard card still available?", 2 * day},
		{"Morgan Lee", "Would you take $200 for the Black Lotus?", 7 * day},
		{"Jamie Wilson", "Thanks for the trade! Great condition.", 14 * day},
	} {
		at := now.Add(-s.ago)
		in.add(&Conversation{
			ID:        uuid.NewString(),
			Contact:   s.contact,
			Messages:  []Message{{ID: uuid.NewString(), Sender: s.contact, Text: s.text, SentAt: at}},
			UpdatedAt: at,
		})
	}
}

func (in *Inbox) add(c *Conversation) {
	in.conversations[c.ID] = c
	in.order = append(in.order, c.ID)
}

// List returns inbox rows, most recent first.
func (in *Inbox) List() []Summary {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]Summary, 0, len(in.order))
	for _, id := range in.order {
		c := in.conversations[id]
		s := Summary{ID: c.ID, Contact: c.Contact, UpdatedAt: c.UpdatedAt}
		if n := len(c.Messages); n > 0 {
			s.LastMessage = c.Messages[n-1].Text
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

func (in *Inbox) Get(id string) (Conversation, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	c, ok := in.conversations[id]
	if !ok {
		return Conversation{}, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	return c.copy(), nil
}

// Start opens a conversation with contact. With a listing attached the
// buyer's enquiry and the seller's answer are prefilled.
func (in *Inbox) Start(contact string, listing *market.Listing) (Conversation, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" && listing != nil {
		contact = listing.Seller
	}
	if contact == "" {
		return Conversation{}, errors.New("contact is required")
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	now := in.clock.Now()
	c := &Conversation{ID: uuid.NewString(), Contact: contact, UpdatedAt: now}
	if listing != nil {
		l := *listing
		c.Listing = &l
		c.Messages = []Message{
			{
				ID:     uuid.NewString(),
				Sender: Me,
				Text:   fmt.Sprintf("Hi, I'm interested in your %s card that you have listed for %s.", l.CardName, l.Price()),
				SentAt: now,
				IsMe:   true,
			},
			{
				ID:     uuid.NewString(),
				Sender: contact,
				Text:   fmt.Sprintf("Hello! Yes, the %s is still available. Is there anything specific you'd like to know about it?", l.CardName),
				SentAt: now,
			},
		}
	} else {
		c.Messages = []Message{{ID: uuid.NewString(), Sender: contact, Text: Greeting, SentAt: now}}
	}
	in.add(c)
	return c.copy(), nil
}

// Send appends the user's message. The contact's canned reply arrives after
// ReplyDelay.
func (in *Inbox) Send(id, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	c, ok := in.conversations[id]
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}

	now := in.clock.Now()
	msg := Message{ID: uuid.NewString(), Sender: Me, Text: text, SentAt: now, IsMe: true}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = now

	in.clock.AfterFunc(ReplyDelay, func() { in.reply(id) })
	return msg, nil
}

func (in *Inbox) reply(id string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	c, ok := in.conversations[id]
	if !ok {
		return
	}
	now := in.clock.Now()
	c.Messages = append(c.Messages, Message{ID: uuid.NewString(), Sender: c.Contact, Text: AutoReply, SentAt: now})
	c.UpdatedAt = now
}

func (c *Conversation) copy() Conversation {
	out := *c
	out.Messages = append([]Message{}, c.Messages...)
	if c.Listing != nil {
		l := *c.Listing
		out.Listing = &l
	}
	return out
}
