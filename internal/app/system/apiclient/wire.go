package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/supporthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/supporthub/internal/domain/models"
)

// Wire shapes mirror the API JSON. Every field the API may omit is a
// pointer or a nil-able slice; normalize* turns them into domain models so
// nothing downstream has to check for absence again.

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success"`
	Message string          `json:"message,omitempty"`
}

type wireStats struct {
	TotalUsers                 *int64 `json:"total_users"`
	TotalSponsors              *int64 `json:"total_sponsors"`
	PendingSponsorApplications *int64 `json:"pending_sponsor_applications"`
	PendingSupportGroups       *int64 `json:"pending_support_groups"`
	PendingResources           *int64 `json:"pending_resources"`
	UnresolvedReports          *int64 `json:"unresolved_reports"`

	UserCounts *struct {
		Total    *int64 `json:"total"`
		Sponsors *int64 `json:"sponsors"`
		Mentees  *int64 `json:"mentees"`
		Admins   *int64 `json:"admins"`
	} `json:"userCounts"`
	ResourceCounts *struct {
		Total    *int64 `json:"total"`
		Pending  *int64 `json:"pending"`
		Approved *int64 `json:"approved"`
	} `json:"resourceCounts"`
	SupportGroupCounts *struct {
		Total   *int64 `json:"total"`
		Pending *int64 `json:"pending"`
		Active  *int64 `json:"active"`
	} `json:"supportGroupCounts"`
	ReportCounts *struct {
		Total      *int64 `json:"total"`
		Unresolved *int64 `json:"unresolved"`
		Resolved   *int64 `json:"resolved"`
	} `json:"reportCounts"`

	UserRegistrationsByMonth []struct {
		Month *string `json:"month"`
		Count *int64  `json:"count"`
	} `json:"userRegistrationsByMonth"`
}

type wireMentee struct {
	Username      *string  `json:"username"`
	FullName      *string  `json:"full_name"`
	Avatar        *string  `json:"avatar"`
	Location      *string  `json:"location"`
	AvailableDays []string `json:"available_days"`
	Languages     []string `json:"languages"`
	Experience    []string `json:"experience"`
}

type wireRelationship struct {
	MatchingRequestID *string     `json:"matching_request_id"`
	Status            *string     `json:"status"`
	Message           *string     `json:"message"`
	CreatedAt         *time.Time  `json:"created_at"`
	Mentee            *wireMentee `json:"mentee"`
}

type wireLogin struct {
	Token *string `json:"token"`
	User  *struct {
		ID       *string `json:"id"`
		Username *string `json:"username"`
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Role     *string `json:"role"`
	} `json:"user"`
}

var errUnsuccessful = errors.New("api reported success=false")

// unwrap returns the payload of an envelope, or the body itself when the
// API answered with a bare JSON array.
func unwrap(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Success != nil && !*env.Success {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, errUnsuccessful
	}
	return env.Data, nil
}

func cleanText(s string) string {
	return htmlsanitize.PlainText(s)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return cleanText(*p)
}

func num(p *int64) int64 {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = cleanText(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalizeStats(w *wireStats) models.AggregateStats {
	if w == nil {
		return models.AggregateStats{UserRegistrationsByMonth: []models.MonthlyCount{}}
	}
	s := models.AggregateStats{
		TotalUsers:                 num(w.TotalUsers),
		TotalSponsors:              num(w.TotalSponsors),
		PendingSponsorApplications: num(w.PendingSponsorApplications),
		PendingSupportGroups:       num(w.PendingSupportGroups),
		PendingResources:           num(w.PendingResources),
		UnresolvedReports:          num(w.UnresolvedReports),
		UserRegistrationsByMonth:   make([]models.MonthlyCount, 0, len(w.UserRegistrationsByMonth)),
	}
	if c := w.UserCounts; c != nil {
		s.UserCounts = models.UserCounts{
			Total:    num(c.Total),
			Sponsors: num(c.Sponsors),
			Mentees:  num(c.Mentees),
			Admins:   num(c.Admins),
		}
	}
	if c := w.ResourceCounts; c != nil {
		s.ResourceCounts = models.ResourceCounts{
			Total:    num(c.Total),
			Pending:  num(c.Pending),
			Approved: num(c.Approved),
		}
	}
	if c := w.SupportGroupCounts; c != nil {
		s.SupportGroupCounts = models.SupportGroupCounts{
			Total:   num(c.Total),
			Pending: num(c.Pending),
			Active:  num(c.Active),
		}
	}
	if c := w.ReportCounts; c != nil {
		s.ReportCounts = models.ReportCounts{
			Total:      num(c.Total),
			Unresolved: num(c.Unresolved),
			Resolved:   num(c.Resolved),
		}
	}
	for _, m := range w.UserRegistrationsByMonth {
		s.UserRegistrationsByMonth = append(s.UserRegistrationsByMonth, models.MonthlyCount{
			Month: str(m.Month),
			Count: num(m.Count),
		})
	}
	return s
}

func normalizeMentee(w *wireMentee) models.MenteeProfile {
	if w == nil {
		return models.MenteeProfile{
			AvailableDays: []string{},
			Languages:     []string{},
			Experience:    []string{},
		}
	}
	return models.MenteeProfile{
		Username:      str(w.Username),
		FullName:      str(w.FullName),
		Avatar:        strings.TrimSpace(deref(w.Avatar)),
		Location:      str(w.Location),
		AvailableDays: cleanList(w.AvailableDays),
		Languages:     cleanList(w.Languages),
		Experience:    cleanList(w.Experience),
	}
}

// keyedRelationships keeps the records that carry a matching_request_id
// not seen earlier in the list, so every rendered card has a unique key.
// dropped counts the records left out.
func keyedRelationships(in []wireRelationship) (kept []*wireRelationship, dropped int) {
	seen := make(map[string]struct{}, len(in))
	kept = make([]*wireRelationship, 0, len(in))
	for i := range in {
		id := str(in[i].MatchingRequestID)
		if id == "" {
			dropped++
			continue
		}
		if _, dup := seen[id]; dup {
			dropped++
			continue
		}
		seen[id] = struct{}{}
		kept = append(kept, &in[i])
	}
	return kept, dropped
}

func normalizeRequests(in []wireRelationship) ([]models.RelationshipRequest, int) {
	kept, dropped := keyedRelationships(in)
	out := make([]models.RelationshipRequest, 0, len(kept))
	for _, w := range kept {
		out = append(out, models.RelationshipRequest{
			MatchingRequestID: str(w.MatchingRequestID),
			Status:            str(w.Status),
			Message:           str(w.Message),
			CreatedAt:         derefTime(w.CreatedAt),
			Mentee:            normalizeMentee(w.Mentee),
		})
	}
	return out, dropped
}

func normalizeMentees(in []wireRelationship) ([]models.ActiveMentee, int) {
	kept, dropped := keyedRelationships(in)
	out := make([]models.ActiveMentee, 0, len(kept))
	for _, w := range kept {
		out = append(out, models.ActiveMentee{
			MatchingRequestID: str(w.MatchingRequestID),
			CreatedAt:         derefTime(w.CreatedAt),
			Mentee:            normalizeMentee(w.Mentee),
		})
	}
	return out, dropped
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefTime(p *time.Time) time.Time {
	if p == nil {
		return time.Time{}
	}
	return *p
}
