package roster

import (
	"testing"
	"time"

	"github.com/dalemusser/supporthub/internal/domain/models"
	"golang.org/x/text/language"
)

func TestJoinOr(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "Not specified"},
		{[]string{}, "Not specified"},
		{[]string{"English"}, "English"},
		{[]string{"Mon", "Wed", "Fri"}, "Mon, Wed, Fri"},
	}
	for _, tt := range tests {
		if got := joinOr(tt.in); got != tt.want {
			t.Errorf("joinOr(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMessageURL(t *testing.T) {
	if got := MessageURL("alex"); got != "/messages/alex" {
		t.Errorf("got %q", got)
	}
	if got := MessageURL(""); got != "" {
		t.Errorf("empty username: got %q, want no URL", got)
	}
	if got := MessageURL("riley rae"); got != "/messages/riley%20rae" {
		t.Errorf("got %q", got)
	}
	if got := MessageURL("a/b"); got != "/messages/a%2Fb" {
		t.Errorf("got %q", got)
	}
}

func TestMenteeCards(t *testing.T) {
	since := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	cards := MenteeCards([]models.ActiveMentee{
		{MatchingRequestID: "m-1", CreatedAt: since, Mentee: models.MenteeProfile{
			Username: "alex", FullName: "Alex Kim", Location: "Denver",
			AvailableDays: []string{"Mon", "Wed"}, Languages: []string{"English"},
		}},
		{MatchingRequestID: "m-2", Mentee: models.MenteeProfile{Username: "sam"}},
	}, language.BritishEnglish)

	if len(cards) != 2 {
		t.Fatalf("cards: got %d, want 2", len(cards))
	}
	a := cards[0]
	if a.Key != "m-1" || a.DisplayName != "Alex Kim" || a.Initial != "A" {
		t.Errorf("card 0: %+v", a)
	}
	if a.Days != "Mon, Wed" || a.Languages != "English" || a.Experience != "Not specified" {
		t.Errorf("card 0 attributes: %+v", a.Profile)
	}
	if a.Since != "1 Feb 2024, 09:00" {
		t.Errorf("Since: got %q", a.Since)
	}

	b := cards[1]
	if b.DisplayName != "sam" || b.Location != "Not specified" || b.Languages != "Not specified" {
		t.Errorf("card 1 defaults: %+v", b.Profile)
	}
	if b.MessageURL != "/messages/sam" {
		t.Errorf("MessageURL: got %q", b.MessageURL)
	}
	if b.Since != "" {
		t.Errorf("Since without created_at: got %q, want empty", b.Since)
	}
}

func TestMenteeCards_Empty(t *testing.T) {
	if got := MenteeCards(nil, language.AmericanEnglish); len(got) != 0 {
		t.Errorf("got %d cards, want 0", len(got))
	}
}

func TestRequestCards(t *testing.T) {
	in := []models.RelationshipRequest{
		{
			MatchingRequestID: "req-9",
			Message:           "Hi <there>\nThanks",
			CreatedAt:         time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
			Mentee:            models.MenteeProfile{Username: "jo"},
		},
		{MatchingRequestID: "req-10", Mentee: models.MenteeProfile{Username: "lee"}},
	}

	cards := RequestCards(in, language.AmericanEnglish)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Key != "req-9" || cards[0].Received != "Mar 5, 2024, 2:30 PM" {
		t.Errorf("card 0: got key %q received %q", cards[0].Key, cards[0].Received)
	}
	if cards[0].Message != "<p>Hi &lt;there&gt;<br>Thanks</p>" {
		t.Errorf("message: got %q", cards[0].Message)
	}
	if cards[1].Message != "" {
		t.Errorf("absent message should render nothing, got %q", cards[1].Message)
	}
}
