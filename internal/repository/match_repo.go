package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dameliogcand/referee-dash/internal/model"
)

// MatchRepository 比赛指派数据访问接口
type MatchRepository interface {
	Upsert(ctx context.Context, match *model.Match) error
	ListByPeriod(ctx context.Context, from, to time.Time) ([]model.Match, error)
	ListByReferee(ctx context.Context, codMecc string) ([]model.Match, error)
	ListByRefereeAndPeriod(ctx context.Context, codMecc string, from, to time.Time) ([]model.Match, error)
	ListAll(ctx context.Context) ([]model.Match, error)
}

// matchRepo MatchRepository 的 GORM 实现
type matchRepo struct {
	db *gorm.DB
}

// NewMatchRepo 创建 MatchRepository 实例
func NewMatchRepo(db *gorm.DB) MatchRepository {
	return &matchRepo{db: db}
}

// Upsert 按 (numero_gara, cod_mecc) 插入或更新
// 同一场比赛多名裁判是合法数据，只有完全相同的指派才会覆盖
func (r *matchRepo) Upsert(ctx context.Context, match *model.Match) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_gara"}, {Name: "cod_mecc"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cod_mecc_raw", "matched", "data_gara", "categoria", "girone",
			"ruolo", "cognome_arbitro", "squadra_casa", "squadra_trasferta",
			"updated_at",
		}),
	}).Create(match).Error
}

func (r *matchRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]model.Match, error) {
	var matches []model.Match
	if err := r.db.WithContext(ctx).
		Where("data_gara BETWEEN ? AND ?", from, to).
		Order("data_gara ASC, numero_gara ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepo) ListByReferee(ctx context.Context, codMecc string) ([]model.Match, error) {
	var matches []model.Match
	if err := r.db.WithContext(ctx).
		Where("cod_mecc = ?", codMecc).
		Order("data_gara ASC, numero_gara ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepo) ListByRefereeAndPeriod(ctx context.Context, codMecc string, from, to time.Time) ([]model.Match, error) {
	var matches []model.Match
	if err := r.db.WithContext(ctx).
		Where("cod_mecc = ? AND data_gara BETWEEN ? AND ?", codMecc, from, to).
		Order("data_gara ASC, numero_gara ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// ListAll 全量读取，用于全库导出
func (r *matchRepo) ListAll(ctx context.Context) ([]model.Match, error) {
	var matches []model.Match
	if err := r.db.WithContext(ctx).
		Order("data_gara ASC, numero_gara ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
