package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/internal/model"
	"github.com/dameliogcand/referee-dash/internal/repository"
)

// ── 测试辅助 ──

func setupImportService() (ImportService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewImportService(testConfig(), repo, nil, zap.NewNop())
	return svc, repo
}

func seedReferee(t *testing.T, repo *repository.Repository, codMecc, cognome, nome string) {
	t.Helper()
	err := repo.Referee.Upsert(context.Background(), &model.Referee{
		CodMecc: codMecc,
		Cognome: cognome,
		Nome:    nome,
	})
	if err != nil {
		t.Fatalf("写入测试裁判失败: %v", err)
	}
}

// buildXLSX 在内存中生成单工作表 Excel
func buildXLSX(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cellName, &row); err != nil {
			t.Fatalf("写入测试工作表失败: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("生成测试 Excel 失败: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

// cra01Row 生成固定列位的 CRA01 数据行
func cra01Row(numero, cat, gir, casa, trasf, data, ruolo, cod, cognome string) []interface{} {
	row := make([]interface{}, 19)
	for i := range row {
		row[i] = ""
	}
	row[cra01ColNumero] = numero
	row[cra01ColCategoria] = cat
	row[cra01ColGirone] = gir
	row[cra01ColCasa] = casa
	row[cra01ColTrasferta] = trasf
	row[cra01ColData] = data
	row[cra01ColRuolo] = ruolo
	row[cra01ColCod] = cod
	row[cra01ColCognome] = cognome
	return row
}

func cra01Header() []interface{} {
	header := make([]interface{}, 19)
	for i := range header {
		header[i] = "Column" + strconv.Itoa(i+1)
	}
	return header
}

// ── 花名册导入 ──

func TestImportService_ImportRoster(t *testing.T) {
	svc, repo := setupImportService()

	r := buildXLSX(t, [][]interface{}{
		{"COD_MECC", "COGNOME", "NOME", "SEZIONE", "ETA"},
		{"10003456", "ROSSI", "MARIO", "MILANO", "31"},
		{"10007890", "BIANCHI", "LUCA", "TORINO", ""},
		{"nan", "nan", "", "", ""},     // pandas 空行，跳过
		{"", "VERDI", "PAOLO", "", ""}, // 缺编号，计入错误
	})

	result, err := svc.ImportRoster(context.Background(), r)
	if err != nil {
		t.Fatalf("ImportRoster 应成功: %v", err)
	}
	if result.Processed != 2 {
		t.Errorf("期望processed=2，实际=%d", result.Processed)
	}
	if result.Skipped != 1 {
		t.Errorf("期望skipped=1，实际=%d", result.Skipped)
	}
	if result.TotalErrors != 1 {
		t.Errorf("期望total_errors=1，实际=%d", result.TotalErrors)
	}

	a, err := repo.Referee.GetByCodMecc(context.Background(), "10003456")
	if err != nil {
		t.Fatalf("导入后应能查到裁判: %v", err)
	}
	if a.Cognome != "ROSSI" || a.Sezione == nil || *a.Sezione != "MILANO" {
		t.Errorf("裁判字段不符: %+v", a)
	}
	if a.Eta == nil || *a.Eta != 31 {
		t.Errorf("期望eta=31，实际=%v", a.Eta)
	}
}

func TestImportService_ImportRoster_MissingColumns(t *testing.T) {
	svc, _ := setupImportService()

	r := buildXLSX(t, [][]interface{}{
		{"QUALCOSA", "ALTRO"},
		{"x", "y"},
	})

	_, err := svc.ImportRoster(context.Background(), r)
	if !errors.Is(err, ErrImportMissingColumns) {
		t.Errorf("期望 ErrImportMissingColumns，实际: %v", err)
	}
}

// ── CRA01 指派导入 ──

func TestImportService_ImportMatches_SuffixResolution(t *testing.T) {
	svc, repo := setupImportService()
	seedReferee(t, repo, "10003456", "ROSSI", "MARIO")

	r := buildXLSX(t, [][]interface{}{
		cra01Header(),
		cra01Row("1234", "PROM", "A", "CASA FC", "OSPITE FC", "13/04/2025", "AR", "3456", "ROSSI"),
	})

	result, err := svc.ImportMatches(context.Background(), r)
	if err != nil {
		t.Fatalf("ImportMatches 应成功: %v", err)
	}
	if result.Processed != 1 || result.Unresolved != 0 {
		t.Errorf("期望processed=1/unresolved=0，实际=%d/%d", result.Processed, result.Unresolved)
	}

	matches, _ := repo.Match.ListByReferee(context.Background(), "10003456")
	if len(matches) != 1 {
		t.Fatalf("期望1条指派，实际=%d", len(matches))
	}
	m := matches[0]
	if !m.Matched {
		t.Error("后缀命中的指派应标记matched=true")
	}
	if m.CodMeccRaw != "3456" {
		t.Errorf("应保留原始编号3456，实际=%s", m.CodMeccRaw)
	}
	if m.DataGara == nil || !m.DataGara.Equal(day(2025, 4, 13)) {
		t.Errorf("日期解析不符: %v", m.DataGara)
	}
}

func TestImportService_ImportMatches_UnresolvedKept(t *testing.T) {
	svc, repo := setupImportService()
	seedReferee(t, repo, "10003456", "ROSSI", "MARIO")

	r := buildXLSX(t, [][]interface{}{
		cra01Header(),
		cra01Row("2001", "ECC", "B", "", "", "20/04/2025", "AR", "99999", "IGNOTO"),
	})

	result, err := svc.ImportMatches(context.Background(), r)
	if err != nil {
		t.Fatalf("ImportMatches 应成功: %v", err)
	}
	if result.Processed != 1 || result.Unresolved != 1 {
		t.Errorf("期望processed=1/unresolved=1，实际=%d/%d", result.Processed, result.Unresolved)
	}

	// 解析失败的指派仍然入库，保留原始编号
	matches, _ := repo.Match.ListByReferee(context.Background(), "99999")
	if len(matches) != 1 {
		t.Fatalf("未解析指派应入库，实际条数=%d", len(matches))
	}
	if matches[0].Matched {
		t.Error("未解析指派应标记matched=false")
	}
}

func TestImportService_ImportMatches_TechnicalOfficer(t *testing.T) {
	svc, repo := setupImportService()
	seedReferee(t, repo, "20001111", "BIANCHI", "LUCA")

	// ruolo 为非零数字且有姓氏 → 技术机构记录
	r := buildXLSX(t, [][]interface{}{
		cra01Header(),
		cra01Row("3001", "PROM", "A", "", "", "27/04/2025", "5", "1111", "BIANCHI"),
	})

	result, err := svc.ImportMatches(context.Background(), r)
	if err != nil {
		t.Fatalf("ImportMatches 应成功: %v", err)
	}
	if result.Processed != 1 {
		t.Errorf("期望processed=1，实际=%d", result.Processed)
	}

	officers, _ := repo.TechnicalOfficer.ListByNumeri(context.Background(), []string{"3001"})
	if len(officers) != 1 {
		t.Fatalf("期望1条OT记录，实际=%d", len(officers))
	}
	if officers[0].CodOT != "20001111" || officers[0].CognomeOT != "BIANCHI" {
		t.Errorf("OT记录不符: %+v", officers[0])
	}

	matches, _ := repo.Match.ListAll(context.Background())
	if len(matches) != 0 {
		t.Errorf("OT行不应写入gare，实际条数=%d", len(matches))
	}
}

// ── 评分文本导入 ──

func TestImportService_ImportScores(t *testing.T) {
	svc, repo := setupImportService()

	lines := []string{
		"1234 ROSSI MARIO 8,40 8,50", // 主模式，双评分
		"567 BIANCHI LUCA 7,90",      // 主模式，仅OA
		"testo senza numeri",         // 无法解析，跳过
		"",                           // 空行不计数
	}

	result, err := svc.ImportScores(context.Background(), lines)
	if err != nil {
		t.Fatalf("ImportScores 应成功: %v", err)
	}
	if result.Processed != 2 {
		t.Errorf("期望processed=2，实际=%d", result.Processed)
	}
	if result.Skipped != 1 {
		t.Errorf("期望skipped=1，实际=%d", result.Skipped)
	}

	scores, _ := repo.Score.ListByNumeri(context.Background(), []string{"1234", "567"})
	if len(scores) != 2 {
		t.Fatalf("期望2条评分，实际=%d", len(scores))
	}
	byNumero := make(map[string]model.Score)
	for _, s := range scores {
		byNumero[s.NumeroGara] = s
	}
	if s := byNumero["1234"]; s.VotoOA == nil || *s.VotoOA != 8.4 || s.VotoOT == nil || *s.VotoOT != 8.5 {
		t.Errorf("评分1234不符: %+v", s)
	}
	if s := byNumero["567"]; s.VotoOA == nil || *s.VotoOA != 7.9 || s.VotoOT != nil {
		t.Errorf("评分567不符: %+v", s)
	}
}

func TestImportService_ImportScores_OutOfRange(t *testing.T) {
	svc, repo := setupImportService()

	result, err := svc.ImportScores(context.Background(), []string{"1234 ROSSI 15,00"})
	if err != nil {
		t.Fatalf("ImportScores 应成功: %v", err)
	}
	if result.Processed != 0 || result.TotalErrors != 1 {
		t.Errorf("超范围评分应计错误，processed=%d errors=%d", result.Processed, result.TotalErrors)
	}
	scores, _ := repo.Score.ListAll(context.Background())
	if len(scores) != 0 {
		t.Errorf("超范围评分不应入库，实际条数=%d", len(scores))
	}
}

// ── 不可用日导入 ──

func TestImportService_ImportUnavailability(t *testing.T) {
	svc, repo := setupImportService()
	seedReferee(t, repo, "10003456", "ROSSI", "MARIO")

	r := buildXLSX(t, [][]interface{}{
		{"Column1", "Column2", "Column3", "Column4", "Column5"},
		{"3456", "14/04/2025", "AE", "INFORTUNIO", "16/04/2025"}, // 区间展开3天
		{"88888", "14/04/2025", "AE", "LAVORO", ""},              // 编号解析失败，跳过
	})

	result, err := svc.ImportUnavailability(context.Background(), r)
	if err != nil {
		t.Fatalf("ImportUnavailability 应成功: %v", err)
	}
	if result.Processed != 1 {
		t.Errorf("期望processed=1，实际=%d", result.Processed)
	}
	if result.Skipped != 1 {
		t.Errorf("解析失败的行应跳过，skipped=%d", result.Skipped)
	}

	entries, _ := repo.Unavailability.ListByPeriod(context.Background(),
		day(2025, 4, 1), day(2025, 4, 30), "10003456", "")
	if len(entries) != 3 {
		t.Fatalf("区间应展开为3天，实际=%d", len(entries))
	}
	for i, e := range entries {
		if !e.Data.Equal(day(2025, 4, 14+i)) {
			t.Errorf("第%d天日期不符: %v", i, e.Data)
		}
		if e.Motivo == nil || *e.Motivo != "INFORTUNIO" {
			t.Errorf("事由不符: %v", e.Motivo)
		}
	}
}
