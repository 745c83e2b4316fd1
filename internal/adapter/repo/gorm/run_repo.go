package gormrepo

import (
	"context"
	"errors"

	"gridclash/internal/adapter/repo/gorm/model"
	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) RunRepo {
	return RunRepo{db: db}
}

func (r RunRepo) Save(ctx context.Context, rec ports.RunRecord) error {
	m := model.Run{
		RunID:        rec.RunID,
		Width:        int32(rec.Width),
		Height:       int32(rec.Height),
		Seed:         rec.Seed,
		Manual:       rec.Manual,
		SimplePolicy: rec.SimplePolicy,
		Round:        int32(rec.Round),
		Status:       string(rec.Status),
		Pieces:       int32(rec.Pieces),
		Agents:       int32(rec.Agents),
		Resources:    int32(rec.Resources),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "run_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"round", "status", "pieces", "agents", "resources", "updated_at",
		}),
	}).Create(&m).Error
}

func (r RunRepo) GetByRunID(ctx context.Context, runID string) (ports.RunRecord, error) {
	var m model.Run
	if err := getDBFromCtx(ctx, r.db).Where("run_id = ?", runID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.RunRecord{}, ports.ErrNotFound
		}
		return ports.RunRecord{}, err
	}
	return ports.RunRecord{
		RunID:        m.RunID,
		Width:        int(m.Width),
		Height:       int(m.Height),
		Seed:         m.Seed,
		Manual:       m.Manual,
		SimplePolicy: m.SimplePolicy,
		Round:        int(m.Round),
		Status:       sim.Status(m.Status),
		Pieces:       int(m.Pieces),
		Agents:       int(m.Agents),
		Resources:    int(m.Resources),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
