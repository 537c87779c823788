// internal/domain/models/stats.go
package models

// AggregateStats is the admin statistics snapshot returned by the API,
// after normalization. Absent counters are 0 and an absent series is empty.
type AggregateStats struct {
	TotalUsers                 int64 `json:"total_users"`
	TotalSponsors              int64 `json:"total_sponsors"`
	PendingSponsorApplications int64 `json:"pending_sponsor_applications"`
	PendingSupportGroups       int64 `json:"pending_support_groups"`
	PendingResources           int64 `json:"pending_resources"`
	UnresolvedReports          int64 `json:"unresolved_reports"`

	UserCounts         UserCounts         `json:"userCounts"`
	ResourceCounts     ResourceCounts     `json:"resourceCounts"`
	SupportGroupCounts SupportGroupCounts `json:"supportGroupCounts"`
	ReportCounts       ReportCounts       `json:"reportCounts"`

	UserRegistrationsByMonth []MonthlyCount `json:"userRegistrationsByMonth"`
}

type UserCounts struct {
	Total    int64 `json:"total"`
	Sponsors int64 `json:"sponsors"`
	Mentees  int64 `json:"mentees"`
	Admins   int64 `json:"admins"`
}

type ResourceCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

type SupportGroupCounts struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Active  int64 `json:"active"`
}

type ReportCounts struct {
	Total      int64 `json:"total"`
	Unresolved int64 `json:"unresolved"`
	Resolved   int64 `json:"resolved"`
}

// MonthlyCount is one point of the registrations-by-month series.
// Month is whatever label the API sends (e.g. "2024-03" or "Mar").
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}
