package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mergeverse/internal/adapter/repo/gorm/model"
	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

type PlayerRecordRepo struct {
	db *gorm.DB
}

func NewPlayerRecordRepo(db *gorm.DB) PlayerRecordRepo {
	return PlayerRecordRepo{db: db}
}

var _ ports.PlayerRecordRepository = PlayerRecordRepo{}

var upsertByPlayerID = clause.OnConflict{
	Columns:   []clause.Column{{Name: "player_id"}},
	UpdateAll: true,
}

func (r PlayerRecordRepo) UpsertProfile(ctx context.Context, playerID string, p merge.Profile) error {
	m := model.PlayerProfile{
		PlayerID:     playerID,
		UserName:     p.UserName,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Avatar:       int32(p.Avatar),
		LastLogin:    p.LastLogin,
		RealLogin:    p.RealLogin,
	}
	return getDBFromCtx(ctx, r.db).Clauses(upsertByPlayerID).Create(&m).Error
}

func (r PlayerRecordRepo) UpsertGameState(ctx context.Context, playerID string, g merge.GameState) error {
	grid, err := json.Marshal(g.Grid)
	if err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	powerUps, err := json.Marshal(g.PowerUps)
	if err != nil {
		return fmt.Errorf("encode power-ups: %w", err)
	}
	m := model.PlayerGameState{
		PlayerID:    playerID,
		Grid:        string(grid),
		Inventory:   int32(g.Inventory),
		PowerUps:    string(powerUps),
		KingLevel:   int32(g.KingLevel),
		TotalMerged: int32(g.TotalMerged),
	}
	return getDBFromCtx(ctx, r.db).Clauses(upsertByPlayerID).Create(&m).Error
}

func (r PlayerRecordRepo) UpsertProgress(ctx context.Context, playerID string, p merge.Progress) error {
	badges, err := json.Marshal(p.Badges)
	if err != nil {
		return fmt.Errorf("encode badges: %w", err)
	}
	m := model.PlayerProgress{
		PlayerID:            playerID,
		IQ:                  int32(p.IQ),
		SocialScore:         int32(p.SocialScore),
		Product:             int32(p.Product),
		AllTasksDone:        p.AllTasksDone,
		Balance:             int32(p.Balance),
		TotalTasksCompleted: int32(p.TotalTasksCompleted),
		Streak:              int32(p.Streak),
		Badges:              string(badges),
	}
	return getDBFromCtx(ctx, r.db).Clauses(upsertByPlayerID).Create(&m).Error
}

func (r PlayerRecordRepo) UpsertSocial(ctx context.Context, playerID string, s merge.Social) error {
	m := model.PlayerSocial{
		PlayerID:        playerID,
		PlayersReferred: int32(s.PlayersReferred),
		ReferralCode:    s.ReferralCode,
	}
	return getDBFromCtx(ctx, r.db).Clauses(upsertByPlayerID).Create(&m).Error
}

func (r PlayerRecordRepo) UpsertLeague(ctx context.Context, playerID string, l merge.League) error {
	m := model.PlayerLeague{
		PlayerID: playerID,
		League:   string(l),
	}
	return getDBFromCtx(ctx, r.db).Clauses(upsertByPlayerID).Create(&m).Error
}

func (r PlayerRecordRepo) IsRegistered(ctx context.Context, playerID string) (bool, error) {
	var count int64
	err := getDBFromCtx(ctx, r.db).
		Model(&model.PlayerProfile{}).
		Where("player_id = ? AND password_hash IS NOT NULL", playerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetCredentials resolves the username header. Before a display name is set
// the player id itself is accepted as the username.
func (r PlayerRecordRepo) GetCredentials(ctx context.Context, username string) (ports.PlayerCredentials, error) {
	var m model.PlayerProfile
	err := getDBFromCtx(ctx, r.db).
		Where("user_name = ? OR player_id = ?", username, username).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PlayerCredentials{}, ports.ErrNotFound
		}
		return ports.PlayerCredentials{}, err
	}
	if m.PasswordHash == nil {
		return ports.PlayerCredentials{}, ports.ErrNotFound
	}
	return ports.PlayerCredentials{
		PlayerID:     m.PlayerID,
		UserName:     m.UserName,
		PasswordHash: *m.PasswordHash,
	}, nil
}

func (r PlayerRecordRepo) FindPlayerByReferralCode(ctx context.Context, code string) (string, error) {
	var m model.PlayerSocial
	err := getDBFromCtx(ctx, r.db).
		Where(&model.PlayerSocial{ReferralCode: code}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ports.ErrNotFound
		}
		return "", err
	}
	return m.PlayerID, nil
}

func (r PlayerRecordRepo) ListPlayerIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := getDBFromCtx(ctx, r.db).
		Model(&model.PlayerProfile{}).
		Pluck("player_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
