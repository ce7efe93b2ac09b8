package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dameliogcand/referee-dash/config"
	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/repository"
)

// RefereeService 裁判花名册查询业务接口
// 写入只发生在导入管道，这里只读
type RefereeService interface {
	List(ctx context.Context, req *dto.RefereeListRequest) ([]dto.RefereeResponse, int64, error)
	Get(ctx context.Context, codMecc string) (*dto.RefereeResponse, error)
}

type refereeService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRefereeService 创建 RefereeService 实例
func NewRefereeService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RefereeService {
	return &refereeService{cfg: cfg, repo: repo, logger: logger}
}

func (s *refereeService) List(ctx context.Context, req *dto.RefereeListRequest) ([]dto.RefereeResponse, int64, error) {
	referees, total, err := s.repo.Referee.List(ctx, req.Sezione, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询裁判列表失败", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.RefereeResponse, 0, len(referees))
	for i := range referees {
		out = append(out, refereeResponse(&referees[i], s.cfg.Season.Anno))
	}
	return out, total, nil
}

func (s *refereeService) Get(ctx context.Context, codMecc string) (*dto.RefereeResponse, error) {
	referee, err := s.repo.Referee.GetByCodMecc(ctx, codMecc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefereeNotFound
		}
		return nil, err
	}
	resp := refereeResponse(referee, s.cfg.Season.Anno)
	return &resp, nil
}
