package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"gridclash/internal/adapter/repo/gorm/model"
	"gridclash/internal/domain/sim"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db, now: time.Now}
}

func (r EventRepo) Append(ctx context.Context, runID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}
	occurredAt := r.now().UTC()
	rows := make([]model.RunEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.Type, err)
		}
		rows = append(rows, model.RunEvent{
			RunID:      runID,
			Round:      int32(e.Round),
			Type:       string(e.Type),
			Payload:    b,
			OccurredAt: occurredAt,
		})
	}
	return getDBFromCtx(ctx, r.db).CreateInBatches(&rows, 500).Error
}

// ListByRunID reads newest first so the limit keeps the latest events, then
// hands them back oldest first.
func (r EventRepo) ListByRunID(ctx context.Context, runID string, limit int) ([]sim.Event, error) {
	rows := []model.RunEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.RunEvent{RunID: runID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "event_id"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	slices.Reverse(rows)

	out := make([]sim.Event, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, sim.Event{
			Type:    sim.EventType(row.Type),
			Round:   int(row.Round),
			Payload: payload,
		})
	}
	return out, nil
}
