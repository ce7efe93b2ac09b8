package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dameliogcand/referee-dash/internal/model"
)

// WeeklyNoteRepository 周备注数据访问接口
type WeeklyNoteRepository interface {
	Upsert(ctx context.Context, note *model.WeeklyNote) error
	Delete(ctx context.Context, codMecc string, inizio, fine time.Time) (int64, error)
	ListOverlapping(ctx context.Context, from, to time.Time, codMecc string) ([]model.WeeklyNote, error)
	ListAll(ctx context.Context) ([]model.WeeklyNote, error)
}

// weeklyNoteRepo WeeklyNoteRepository 的 GORM 实现
type weeklyNoteRepo struct {
	db *gorm.DB
}

// NewWeeklyNoteRepo 创建 WeeklyNoteRepository 实例
func NewWeeklyNoteRepo(db *gorm.DB) WeeklyNoteRepository {
	return &weeklyNoteRepo{db: db}
}

// Upsert 按 (cod_mecc, 周起, 周止) 插入或更新，重复写入覆盖内容
func (r *weeklyNoteRepo) Upsert(ctx context.Context, note *model.WeeklyNote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "cod_mecc"}, {Name: "settimana_inizio"}, {Name: "settimana_fine"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"nota", "updated_at"}),
	}).Create(note).Error
}

// Delete 删除指定周备注，返回删除行数
func (r *weeklyNoteRepo) Delete(ctx context.Context, codMecc string, inizio, fine time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("cod_mecc = ? AND settimana_inizio = ? AND settimana_fine = ?", codMecc, inizio, fine).
		Delete(&model.WeeklyNote{})
	return result.RowsAffected, result.Error
}

// ListOverlapping 查询与给定区间相交的备注
// 相交判定：settimana_inizio ≤ to 且 settimana_fine ≥ from
func (r *weeklyNoteRepo) ListOverlapping(ctx context.Context, from, to time.Time, codMecc string) ([]model.WeeklyNote, error) {
	db := r.db.WithContext(ctx).
		Where("settimana_inizio <= ? AND settimana_fine >= ?", to, from)
	if codMecc != "" {
		db = db.Where("cod_mecc = ?", codMecc)
	}

	var notes []model.WeeklyNote
	if err := db.Order("cod_mecc ASC, settimana_inizio ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *weeklyNoteRepo) ListAll(ctx context.Context) ([]model.WeeklyNote, error) {
	var notes []model.WeeklyNote
	if err := r.db.WithContext(ctx).
		Order("cod_mecc ASC, settimana_inizio ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
