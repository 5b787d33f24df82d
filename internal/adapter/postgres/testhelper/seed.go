package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/election-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedVoter creates an active voter. A non-empty house sets the house attribute.
func SeedVoter(t *testing.T, pool *pgxpool.Pool, house string) domain.Voter {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	voter := domain.Voter{
		ID:        uuid.New(),
		FullName:  "Voter " + uniqueSuffix(),
		Status:    domain.VoterStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if house != "" {
		voter.House = &house
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO voters (id, full_name, status, house, class_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		voter.ID, voter.FullName, string(voter.Status), voter.House, voter.Class, voter.CreatedAt, voter.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVoter: %v", err)
	}

	return voter
}

// PostOption customises a seeded post.
type PostOption func(*domain.Post)

// WithWindow sets the voting window.
func WithWindow(start, end time.Time) PostOption {
	return func(p *domain.Post) {
		s, e := start.UTC().Truncate(time.Microsecond), end.UTC().Truncate(time.Microsecond)
		p.VotingStartsAt, p.VotingEndsAt = &s, &e
	}
}

// WithHouses makes the post house-restricted to the given houses.
func WithHouses(houses ...string) PostOption {
	return func(p *domain.Post) {
		p.Type = domain.PostTypeHouse
		p.EligibleHouses = houses
	}
}

// WithPostStatus overrides the post status.
func WithPostStatus(s domain.PostStatus) PostOption {
	return func(p *domain.Post) { p.Status = s }
}

// SeedPost creates an active general post whose window is open from one hour
// ago to one hour from now, unless options say otherwise.
func SeedPost(t *testing.T, pool *pgxpool.Pool, opts ...PostOption) domain.Post {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	post := domain.Post{
		ID:             uuid.New(),
		Title:          "Post " + uniqueSuffix(),
		Status:         domain.PostStatusActive,
		Type:           domain.PostTypeGeneral,
		EligibleHouses: []string{},
		MaxVotes:       1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	WithWindow(now.Add(-time.Hour), now.Add(time.Hour))(&post)
	for _, opt := range opts {
		opt(&post)
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO posts (id, title, status, type, eligible_houses, voting_starts_at, voting_ends_at, max_votes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		post.ID, post.Title, string(post.Status), string(post.Type), post.EligibleHouses,
		post.VotingStartsAt, post.VotingEndsAt, post.MaxVotes, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPost: %v", err)
	}

	return post
}

// SeedCandidate creates an active candidate under postID.
func SeedCandidate(t *testing.T, pool *pgxpool.Pool, postID uuid.UUID) domain.Candidate {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Candidate{
		ID:        uuid.New(),
		PostID:    postID,
		FullName:  "Candidate " + uniqueSuffix(),
		Status:    domain.CandidateStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO candidates (id, post_id, full_name, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.PostID, c.FullName, string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCandidate: %v", err)
	}

	return c
}

// SetVerificationRequired writes the verification_required setting.
func SetVerificationRequired(t *testing.T, pool *pgxpool.Pool, required bool) {
	t.Helper()

	value := "false"
	if required {
		value = "true"
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO system_settings (key, value, updated_at) VALUES ('verification_required', $1, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		value,
	)
	if err != nil {
		t.Fatalf("testhelper: SetVerificationRequired: %v", err)
	}
}
