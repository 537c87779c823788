// internal/app/features/roster/cards.go
package roster

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/dalemusser/supporthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/supporthub/internal/app/system/i18n"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"golang.org/x/text/language"
)

// NotSpecified stands in for an absent or empty profile attribute.
const NotSpecified = "Not specified"

// joinOr joins items with ", ", or returns NotSpecified when there are none.
func joinOr(items []string) string {
	if len(items) == 0 {
		return NotSpecified
	}
	return strings.Join(items, ", ")
}

func orNotSpecified(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}

// MessageURL is where the "Message" action for a mentee navigates. It is
// empty without a username; the action is not rendered then.
func MessageURL(username string) string {
	if username == "" {
		return ""
	}
	return "/messages/" + url.PathEscape(username)
}

// Profile is the display form of a mentee profile.
type Profile struct {
	Username    string
	DisplayName string
	Avatar      string
	Initial     string
	Location    string
	Days        string
	Languages   string
	Experience  string
	MessageURL  string
}

func profileOf(m models.MenteeProfile) Profile {
	name := m.FullName
	if name == "" {
		name = m.Username
	}
	initial := "?"
	if r := []rune(name); len(r) > 0 {
		initial = strings.ToUpper(string(r[0]))
	}
	return Profile{
		Username:    m.Username,
		DisplayName: name,
		Avatar:      m.Avatar,
		Initial:     initial,
		Location:    orNotSpecified(m.Location),
		Days:        joinOr(m.AvailableDays),
		Languages:   joinOr(m.Languages),
		Experience:  joinOr(m.Experience),
		MessageURL:  MessageURL(m.Username),
	}
}

// MenteeCard is one entry of the mentee roster. Key is the
// matching_request_id, which is unique per pairing.
type MenteeCard struct {
	Key   string
	Since string
	Profile
}

// MenteeCards maps the roster in API order.
func MenteeCards(in []models.ActiveMentee, loc language.Tag) []MenteeCard {
	out := make([]MenteeCard, 0, len(in))
	for _, m := range in {
		out = append(out, MenteeCard{
			Key:     m.MatchingRequestID,
			Since:   i18n.FormatDateTime(m.CreatedAt, loc),
			Profile: profileOf(m.Mentee),
		})
	}
	return out
}

// RequestCard is one pending relationship request.
type RequestCard struct {
	Key      string
	Received string
	Message  template.HTML // escaped, line breaks kept
	Profile
}

// RequestCards maps pending requests in API order.
func RequestCards(in []models.RelationshipRequest, loc language.Tag) []RequestCard {
	out := make([]RequestCard, 0, len(in))
	for _, rq := range in {
		out = append(out, RequestCard{
			Key:      rq.MatchingRequestID,
			Received: i18n.FormatDateTime(rq.CreatedAt, loc),
			Message:  template.HTML(htmlsanitize.PlainTextToHTML(rq.Message)),
			Profile:  profileOf(rq.Mentee),
		})
	}
	return out
}
