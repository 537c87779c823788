// internal/app/store/queries/dashqueries/dashqueries.go
//
// Package dashqueries describes the remote reads the dashboards render.
// Keys are scoped by user where the API answer depends on who asks, so a
// cached answer is never served to another sponsor.
package dashqueries

import (
	"context"

	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/domain/models"
)

// StatsAPI is the remote read behind the admin dashboard.
type StatsAPI interface {
	AdminStats(ctx context.Context, token string) (models.AggregateStats, error)
}

// SponsorAPI is the remote reads behind the sponsor views.
type SponsorAPI interface {
	PendingRequests(ctx context.Context, token string) ([]models.RelationshipRequest, error)
	ActiveMentees(ctx context.Context, token string) ([]models.ActiveMentee, error)
}

// Key prefixes, also used for invalidation.
const AdminPrefix = "admin:"

// SponsorPrefix is the prefix of every key cached for one sponsor.
func SponsorPrefix(userID string) string {
	return "sponsor:" + userID + ":"
}

// AdminStats is the admin:stats query. Stats are global, so the key is
// shared by all admins; token only authorizes the fetch.
func AdminStats(api StatsAPI, token string) query.Descriptor[models.AggregateStats] {
	return query.Descriptor[models.AggregateStats]{
		Name: "admin_stats",
		Key:  AdminPrefix + "stats",
		Fetch: func(ctx context.Context) (models.AggregateStats, error) {
			return api.AdminStats(ctx, token)
		},
	}
}

// PendingRequests is the sponsor:{id}:requests query.
func PendingRequests(api SponsorAPI, userID, token string) query.Descriptor[[]models.RelationshipRequest] {
	return query.Descriptor[[]models.RelationshipRequest]{
		Name: "sponsor_requests",
		Key:  SponsorPrefix(userID) + "requests",
		Fetch: func(ctx context.Context) ([]models.RelationshipRequest, error) {
			return api.PendingRequests(ctx, token)
		},
	}
}

// ActiveMentees is the sponsor:{id}:mentees query.
func ActiveMentees(api SponsorAPI, userID, token string) query.Descriptor[[]models.ActiveMentee] {
	return query.Descriptor[[]models.ActiveMentee]{
		Name: "sponsor_mentees",
		Key:  SponsorPrefix(userID) + "mentees",
		Fetch: func(ctx context.Context) ([]models.ActiveMentee, error) {
			return api.ActiveMentees(ctx, token)
		},
	}
}
