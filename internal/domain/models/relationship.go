// internal/domain/models/relationship.go
package models

import "time"

// MenteeProfile is the identity and profile of the mentee side of a
// sponsor–mentee pairing. Slices are never nil after normalization.
type MenteeProfile struct {
	Username      string   `json:"username"`
	FullName      string   `json:"full_name,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	Location      string   `json:"location,omitempty"`
	AvailableDays []string `json:"available_days"`
	Languages     []string `json:"languages"`
	Experience    []string `json:"experience"`
}

// RelationshipRequest is a pending sponsor–mentee pairing.
type RelationshipRequest struct {
	MatchingRequestID string        `json:"matching_request_id"`
	Status            string        `json:"status"`
	Message           string        `json:"message,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	Mentee            MenteeProfile `json:"mentee"`
}

// ActiveMentee is an accepted sponsor–mentee pairing.
// MatchingRequestID is unique per pairing and is the list key;
// Username is not (a mentee may be re-matched).
type ActiveMentee struct {
	MatchingRequestID string        `json:"matching_request_id"`
	CreatedAt         time.Time     `json:"created_at"`
	Mentee            MenteeProfile `json:"mentee"`
}
