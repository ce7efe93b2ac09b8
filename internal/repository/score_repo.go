package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dameliogcand/referee-dash/internal/model"
)

// ScoreRepository 比赛评分数据访问接口
type ScoreRepository interface {
	Upsert(ctx context.Context, score *model.Score) error
	ListByNumeri(ctx context.Context, numeri []string) ([]model.Score, error)
	ListAll(ctx context.Context) ([]model.Score, error)
}

// scoreRepo ScoreRepository 的 GORM 实现
type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

// Upsert 按 numero_gara 插入或更新
func (r *scoreRepo) Upsert(ctx context.Context, score *model.Score) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_gara"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"voto_oa", "voto_ot", "note", "updated_at",
		}),
	}).Create(score).Error
}

// ListByNumeri 按比赛编号批量读取（报表把评分挂到对应场次上）
func (r *scoreRepo) ListByNumeri(ctx context.Context, numeri []string) ([]model.Score, error) {
	if len(numeri) == 0 {
		return nil, nil
	}
	var scores []model.Score
	if err := r.db.WithContext(ctx).
		Where("numero_gara IN ?", numeri).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepo) ListAll(ctx context.Context) ([]model.Score, error) {
	var scores []model.Score
	if err := r.db.WithContext(ctx).
		Order("numero_gara ASC").
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
