// internal/app/store/sessions/store.go
package sessions

// Terminology: User Identifiers
//   - UserID / user_id: the remote API's opaque user ID
//   - LoginID / login_id: the human-readable string users type to sign in

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// End reasons.
const (
	EndLogout   = "logout"
	EndInactive = "inactive"
)

// Session records one signed-in stretch of dashboard use.
type Session struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	UserID  string             `bson:"user_id"`
	LoginID string             `bson:"login_id,omitempty"`
	Role    string             `bson:"role"`

	LoginAt      time.Time  `bson:"login_at"`
	LogoutAt     *time.Time `bson:"logout_at,omitempty"`
	LastActiveAt time.Time  `bson:"last_active_at"`

	CurrentPage string `bson:"current_page,omitempty"`
	EndReason   string `bson:"end_reason,omitempty"` // "logout", "inactive", ""

	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	DurationSecs int64 `bson:"duration_secs,omitempty"`
}

// Store manages activity sessions.
type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

// New creates a new sessions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_sessions"), now: func() time.Time { return time.Now().UTC() }}
}

// EnsureIndexes creates the indexes the worker and lookups rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Open sessions by recency (inactive sweep)
		{
			Keys:    bson.D{{Key: "logout_at", Value: 1}, {Key: "last_active_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_open"),
		},
		// Per-user history
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "login_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create opens a session for userID, closing any the user left open.
func (s *Store) Create(ctx context.Context, userID, loginID, role, ip, userAgent string) (Session, error) {
	now := s.now()

	if err := s.closeWhere(ctx, bson.M{"user_id": userID, "logout_at": nil}, EndInactive, now); err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		LoginID:      loginID,
		Role:         role,
		LoginAt:      now,
		LastActiveAt: now,
		IP:           ip,
		UserAgent:    userAgent,
	}
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Touch records activity on an open session. It reports false when the
// session is unknown or already closed.
func (s *Store) Touch(ctx context.Context, id, currentPage string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	set := bson.M{"last_active_at": s.now()}
	if currentPage != "" {
		set["current_page"] = currentPage
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid, "logout_at": nil}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Close ends a session with the given reason. Closing an unknown or
// already-closed session is a no-op.
func (s *Store) Close(ctx context.Context, id, reason string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	return s.closeWhere(ctx, bson.M{"_id": oid, "logout_at": nil}, reason, s.now())
}

// GetByID retrieves a session by its hex ID.
func (s *Store) GetByID(ctx context.Context, id string) (Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Session{}, mongo.ErrNoDocuments
	}
	var sess Session
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&sess)
	return sess, err
}

// GetActiveByUser returns the user's open sessions.
func (s *Store) GetActiveByUser(ctx context.Context, userID string) ([]Session, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID, "logout_at": nil})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CloseInactive closes open sessions idle for longer than threshold and
// returns how many were closed.
func (s *Store) CloseInactive(ctx context.Context, threshold time.Duration) (int64, error) {
	now := s.now()
	filter := bson.M{"logout_at": nil, "last_active_at": bson.M{"$lt": now.Add(-threshold)}}
	n, err := s.c.CountDocuments(ctx, filter)
	if err != nil || n == 0 {
		return 0, err
	}
	if err := s.closeWhere(ctx, filter, EndInactive, now); err != nil {
		return 0, err
	}
	return n, nil
}

// closeWhere stamps logout_at, end_reason and duration_secs on every
// matching session. The update is a pipeline so duration is computed from
// each document's own login_at.
func (s *Store) closeWhere(ctx context.Context, filter bson.M, reason string, now time.Time) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "logout_at", Value: now},
			{Key: "end_reason", Value: reason},
			{Key: "duration_secs", Value: bson.D{{Key: "$toLong", Value: bson.D{
				{Key: "$divide", Value: bson.A{bson.D{{Key: "$subtract", Value: bson.A{now, "$login_at"}}}, 1000}},
			}}}},
		}}},
	}
	_, err := s.c.UpdateMany(ctx, filter, pipeline)
	return err
}
