package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dameliogcand/referee-dash/internal/model"
)

// UnavailabilityRepository 不可用日数据访问接口
type UnavailabilityRepository interface {
	Upsert(ctx context.Context, unav *model.Unavailability) error
	ListByPeriod(ctx context.Context, from, to time.Time, codMecc, motivo string) ([]model.Unavailability, error)
	ListAll(ctx context.Context) ([]model.Unavailability, error)
}

// unavailabilityRepo UnavailabilityRepository 的 GORM 实现
type unavailabilityRepo struct {
	db *gorm.DB
}

// NewUnavailabilityRepo 创建 UnavailabilityRepository 实例
func NewUnavailabilityRepo(db *gorm.DB) UnavailabilityRepository {
	return &unavailabilityRepo{db: db}
}

// Upsert 按 (cod_mecc, data) 插入或更新，重复导入天然幂等
func (r *unavailabilityRepo) Upsert(ctx context.Context, unav *model.Unavailability) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cod_mecc"}, {Name: "data"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"motivo", "qualifica", "updated_at",
		}),
	}).Create(unav).Error
}

// ListByPeriod 按日期区间查询，codMecc/motivo 为空串时不过滤
func (r *unavailabilityRepo) ListByPeriod(ctx context.Context, from, to time.Time, codMecc, motivo string) ([]model.Unavailability, error) {
	db := r.db.WithContext(ctx).
		Where("data BETWEEN ? AND ?", from, to)
	if codMecc != "" {
		db = db.Where("cod_mecc = ?", codMecc)
	}
	if motivo != "" {
		db = db.Where("motivo = ?", motivo)
	}

	var list []model.Unavailability
	if err := db.Order("cod_mecc ASC, data ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *unavailabilityRepo) ListAll(ctx context.Context) ([]model.Unavailability, error) {
	var list []model.Unavailability
	if err := r.db.WithContext(ctx).
		Order("cod_mecc ASC, data ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
