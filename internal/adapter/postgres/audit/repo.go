// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	"github.com/heartmarshall/election-backend/internal/domain"
)

var columns = []string{
	"id", "action", "severity", "actor_id", "resource_type",
	"resource_id", "old_values", "new_values", "created_at",
}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	Action       string     `db:"action"`
	Severity     string     `db:"severity"`
	ActorID      *uuid.UUID `db:"actor_id"`
	ResourceType string     `db:"resource_type"`
	ResourceID   *uuid.UUID `db:"resource_id"`
	OldValues    []byte     `db:"old_values"`
	NewValues    []byte     `db:"new_values"`
	CreatedAt    time.Time  `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit event and returns the persisted record.
func (r *Repo) Create(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	oldJSON, err := marshalValues(event.OldValues)
	if err != nil {
		return domain.AuditEvent{}, fmt.Errorf("audit_log marshal old values: %w", err)
	}
	newJSON, err := marshalValues(event.NewValues)
	if err != nil {
		return domain.AuditEvent{}, fmt.Errorf("audit_log marshal new values: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert("audit_logs").
		Columns(columns...).
		Values(event.ID, string(event.Action), string(event.Severity), event.ActorID,
			string(event.ResourceType), event.ResourceID, oldJSON, newJSON, event.CreatedAt).
		ToSql()
	if err != nil {
		return domain.AuditEvent{}, fmt.Errorf("build insert audit_log: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return domain.AuditEvent{}, postgres.MapError(err, "audit_log", event.ID)
	}

	return event, nil
}

// Log creates an audit event without returning it.
// Satisfies voting.auditLogger and tally.auditLogger.
func (r *Repo) Log(ctx context.Context, event domain.AuditEvent) error {
	_, err := r.Create(ctx, event)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByResource returns the history of one resource, newest first.
func (r *Repo) GetByResource(ctx context.Context, resourceType domain.EntityType, resourceID uuid.UUID, limit int) ([]domain.AuditEvent, error) {
	return r.list(ctx, sq.Eq{"resource_type": string(resourceType), "resource_id": resourceID}, limit)
}

// GetByAction returns the most recent events with the given action.
func (r *Repo) GetByAction(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEvent, error) {
	return r.list(ctx, sq.Eq{"action": string(action)}, limit)
}

func (r *Repo) list(ctx context.Context, where sq.Eq, limit int) ([]domain.AuditEvent, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("audit_logs").
		Where(where).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit_logs: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit_logs: %w", err)
	}

	events := make([]domain.AuditEvent, len(rows))
	for i, rw := range rows {
		ev, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		events[i] = ev
	}
	return events, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomain(r row) (domain.AuditEvent, error) {
	ev := domain.AuditEvent{
		ID:           r.ID,
		Action:       domain.AuditAction(r.Action),
		Severity:     domain.AuditSeverity(r.Severity),
		ActorID:      r.ActorID,
		ResourceType: domain.EntityType(r.ResourceType),
		ResourceID:   r.ResourceID,
		CreatedAt:    r.CreatedAt,
	}

	var err error
	if ev.OldValues, err = unmarshalValues(r.OldValues); err != nil {
		return domain.AuditEvent{}, fmt.Errorf("audit_log %s unmarshal old values: %w", r.ID, err)
	}
	if ev.NewValues, err = unmarshalValues(r.NewValues); err != nil {
		return domain.AuditEvent{}, fmt.Errorf("audit_log %s unmarshal new values: %w", r.ID, err)
	}
	return ev, nil
}

// marshalValues encodes a snapshot; nil stays NULL.
func marshalValues(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalValues(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	m := make(map[string]any)
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
