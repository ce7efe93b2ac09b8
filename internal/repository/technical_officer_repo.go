package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dameliogcand/referee-dash/internal/model"
)

// TechnicalOfficerRepository 技术机构指派数据访问接口
type TechnicalOfficerRepository interface {
	Upsert(ctx context.Context, officer *model.TechnicalOfficer) error
	ListByNumeri(ctx context.Context, numeri []string) ([]model.TechnicalOfficer, error)
	ListAll(ctx context.Context) ([]model.TechnicalOfficer, error)
}

// technicalOfficerRepo TechnicalOfficerRepository 的 GORM 实现
type technicalOfficerRepo struct {
	db *gorm.DB
}

// NewTechnicalOfficerRepo 创建 TechnicalOfficerRepository 实例
func NewTechnicalOfficerRepo(db *gorm.DB) TechnicalOfficerRepository {
	return &technicalOfficerRepo{db: db}
}

// Upsert 按 (numero_gara, cod_ot) 插入或更新
func (r *technicalOfficerRepo) Upsert(ctx context.Context, officer *model.TechnicalOfficer) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_gara"}, {Name: "cod_ot"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"cognome_ot", "updated_at",
		}),
	}).Create(officer).Error
}

// ListByNumeri 按比赛编号批量读取（评分展示时附上 OT 姓氏）
func (r *technicalOfficerRepo) ListByNumeri(ctx context.Context, numeri []string) ([]model.TechnicalOfficer, error) {
	if len(numeri) == 0 {
		return nil, nil
	}
	var officers []model.TechnicalOfficer
	if err := r.db.WithContext(ctx).
		Where("numero_gara IN ?", numeri).
		Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}

func (r *technicalOfficerRepo) ListAll(ctx context.Context) ([]model.TechnicalOfficer, error) {
	var officers []model.TechnicalOfficer
	if err := r.db.WithContext(ctx).
		Order("numero_gara ASC").
		Find(&officers).Error; err != nil {
		return nil, err
	}
	return officers, nil
}
