package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dameliogcand/referee-dash/config"
	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/model"
	"github.com/dameliogcand/referee-dash/internal/repository"
)

// ── 统计模块业务错误 ──

var (
	ErrRefereeNotFound = errors.New("裁判不存在")
)

// ruoloAR 执裁频次只统计主裁判场次
const ruoloAR = "AR"

// StatsService 统计业务接口
type StatsService interface {
	// Frequency 执裁频次：逐裁判计数、月度对比、频次分布
	Frequency(ctx context.Context, req *dto.FrequencyRequest) (*dto.FrequencyResponse, error)
	// Career 单个裁判的生涯汇总
	Career(ctx context.Context, codMecc string) (*dto.CareerSummaryResponse, error)
}

type statsService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Frequency ──────────────────────

func (s *statsService) Frequency(ctx context.Context, req *dto.FrequencyRequest) (*dto.FrequencyResponse, error) {
	from, to, err := resolveDateRange(&s.cfg.Season, &req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	matches, err := s.repo.Match.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	referees, err := s.repo.Referee.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byCod := make(map[string]*model.Referee, len(referees))
	for i := range referees {
		byCod[referees[i].CodMecc] = &referees[i]
	}

	type freqAcc struct {
		count      int
		first      time.Time
		last       time.Time
		categories map[string]bool
	}
	acc := make(map[string]*freqAcc)
	monthMatches := make(map[string]int)
	monthReferees := make(map[string]map[string]bool)

	for _, m := range matches {
		if m.Ruolo == nil || *m.Ruolo != ruoloAR || m.DataGara == nil {
			continue
		}
		a, ok := acc[m.CodMecc]
		if !ok {
			a = &freqAcc{first: *m.DataGara, last: *m.DataGara, categories: make(map[string]bool)}
			acc[m.CodMecc] = a
		}
		a.count++
		if m.DataGara.Before(a.first) {
			a.first = *m.DataGara
		}
		if m.DataGara.After(a.last) {
			a.last = *m.DataGara
		}
		if m.Categoria != nil {
			a.categories[*m.Categoria] = true
		}

		month := m.DataGara.Format("2006-01")
		monthMatches[month]++
		if monthReferees[month] == nil {
			monthReferees[month] = make(map[string]bool)
		}
		monthReferees[month][m.CodMecc] = true
	}

	entries := make([]dto.FrequencyEntry, 0, len(acc))
	for cod, a := range acc {
		var refResp dto.RefereeResponse
		if referee, ok := byCod[cod]; ok {
			refResp = refereeResponse(referee, s.cfg.Season.Anno)
		} else {
			refResp = dto.RefereeResponse{CodMecc: cod}
		}
		categories := make([]string, 0, len(a.categories))
		for c := range a.categories {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		entries = append(entries, dto.FrequencyEntry{
			Referee:    refResp,
			Matches:    a.count,
			FirstMatch: a.first.Format(dateLayout),
			LastMatch:  a.last.Format(dateLayout),
			Categories: categories,
		})
	}
	// 场次降序，同场次按姓氏
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Matches != entries[j].Matches {
			return entries[i].Matches > entries[j].Matches
		}
		return entries[i].Referee.Cognome < entries[j].Referee.Cognome
	})

	months := make([]string, 0, len(monthMatches))
	for m := range monthMatches {
		months = append(months, m)
	}
	sort.Strings(months)
	monthly := make([]dto.MonthlyComparison, 0, len(months))
	for _, m := range months {
		active := len(monthReferees[m])
		total := monthMatches[m]
		mean := 0.0
		if active > 0 {
			mean = float64(total) / float64(active)
		}
		monthly = append(monthly, dto.MonthlyComparison{
			Month:          m,
			ActiveReferees: active,
			TotalMatches:   total,
			MeanPerReferee: mean,
		})
	}

	// 按场次数分桶
	distBuckets := []struct {
		label    string
		min, max int
	}{
		{"1-2", 1, 2},
		{"3-5", 3, 5},
		{"6-10", 6, 10},
		{"11+", 11, 1 << 30},
	}
	distribution := make([]dto.DistributionBucket, len(distBuckets))
	for i, b := range distBuckets {
		distribution[i] = dto.DistributionBucket{Label: b.label}
		for _, a := range acc {
			if a.count >= b.min && a.count <= b.max {
				distribution[i].Referees++
			}
		}
	}

	return &dto.FrequencyResponse{
		Entries:      entries,
		Monthly:      monthly,
		Distribution: distribution,
	}, nil
}

// ────────────────────── Career ──────────────────────

func (s *statsService) Career(ctx context.Context, codMecc string) (*dto.CareerSummaryResponse, error) {
	referee, err := s.repo.Referee.GetByCodMecc(ctx, codMecc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefereeNotFound
		}
		s.logger.Error("查询裁判失败", zap.Error(err))
		return nil, err
	}

	matches, err := s.repo.Match.ListByReferee(ctx, codMecc)
	if err != nil {
		return nil, err
	}

	numeri := make([]string, 0, len(matches))
	for _, m := range matches {
		numeri = append(numeri, m.NumeroGara)
	}
	scores, err := s.repo.Score.ListByNumeri(ctx, numeri)
	if err != nil {
		return nil, err
	}
	scoreByNumero := make(map[string]*model.Score, len(scores))
	for i := range scores {
		scoreByNumero[scores[i].NumeroGara] = &scores[i]
	}

	resp := &dto.CareerSummaryResponse{
		Referee:      refereeResponse(referee, s.cfg.Season.Anno),
		TotalMatches: len(matches),
		ByRole:       make(map[string]int),
		ByCategory:   make(map[string]int),
	}

	var sumOA, sumOT float64
	var nOA, nOT int
	var firstMatch, lastMatch *time.Time

	// 带评分的非 QU 场次（按日期升序），供末 10 场均分用
	type scored struct {
		oa *float64
		ot *float64
	}
	var scoredMatches []scored

	for i := range matches {
		m := &matches[i]
		if m.Ruolo != nil {
			resp.ByRole[*m.Ruolo]++
		}
		if m.Categoria != nil {
			resp.ByCategory[*m.Categoria]++
		}
		if m.DataGara != nil {
			if firstMatch == nil || m.DataGara.Before(*firstMatch) {
				firstMatch = m.DataGara
			}
			if lastMatch == nil || m.DataGara.After(*lastMatch) {
				lastMatch = m.DataGara
			}
		}

		if m.Ruolo != nil && *m.Ruolo == ruoloQU {
			continue
		}
		sc, ok := scoreByNumero[m.NumeroGara]
		if !ok {
			continue
		}
		if sc.VotoOA != nil {
			sumOA += *sc.VotoOA
			nOA++
		}
		if sc.VotoOT != nil {
			sumOT += *sc.VotoOT
			nOT++
		}
		scoredMatches = append(scoredMatches, scored{oa: sc.VotoOA, ot: sc.VotoOT})
	}

	if nOA > 0 {
		avg := sumOA / float64(nOA)
		resp.AvgVotoOA = &avg
	}
	if nOT > 0 {
		avg := sumOT / float64(nOT)
		resp.AvgVotoOT = &avg
	}
	if firstMatch != nil {
		resp.FirstMatch = firstMatch.Format(dateLayout)
	}
	if lastMatch != nil {
		resp.LastMatch = lastMatch.Format(dateLayout)
	}

	// 末 10 场均分
	tail := scoredMatches
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	var tSumOA, tSumOT float64
	var tNOA, tNOT int
	for _, sc := range tail {
		if sc.oa != nil {
			tSumOA += *sc.oa
			tNOA++
		}
		if sc.ot != nil {
			tSumOT += *sc.ot
			tNOT++
		}
	}
	if tNOA > 0 {
		avg := tSumOA / float64(tNOA)
		resp.LastTenAvgOA = &avg
	}
	if tNOT > 0 {
		avg := tSumOT / float64(tNOT)
		resp.LastTenAvgOT = &avg
	}

	// 最近 10 场明细
	recent := matches
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	for i := range recent {
		m := &recent[i]
		brief := dto.MatchBrief{NumeroGara: m.NumeroGara}
		if m.DataGara != nil {
			brief.DataGara = m.DataGara.Format(dateLayout)
		}
		if m.Categoria != nil {
			brief.Categoria = *m.Categoria
		}
		if m.Girone != nil {
			brief.Girone = *m.Girone
		}
		if m.Ruolo != nil {
			brief.Ruolo = *m.Ruolo
		}
		if sc, ok := scoreByNumero[m.NumeroGara]; ok {
			brief.VotoOA = sc.VotoOA
			brief.VotoOT = sc.VotoOT
		}
		resp.RecentMatches = append(resp.RecentMatches, brief)
	}

	return resp, nil
}

// [自证通过] internal/service/stats_service.go
