package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/internal/repository"
)

func setupSeniorityService() (SeniorityService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewSeniorityService(testConfig(), repo, zap.NewNop())
	return svc, repo
}

func TestSeniorityService_ImportLines(t *testing.T) {
	svc, repo := setupSeniorityService()
	seedReferee(t, repo, "10003456", "BIANCHI", "LUCA")

	lines := []string{
		"intestazione pagina 1",             // 非数据行，跳过
		"1 BIANCHI LUCA MI01 ECC 28 2018",   // 姓匹配
		"2 SCONOSCIUTO X MI02 PROM 30 2012", // 姓名无法匹配，跳过
		"",
	}

	result, err := svc.ImportLines(context.Background(), lines)
	if err != nil {
		t.Fatalf("ImportLines 应成功: %v", err)
	}
	if result.Processed != 1 {
		t.Errorf("期望processed=1，实际=%d", result.Processed)
	}
	if result.Skipped != 2 {
		t.Errorf("期望skipped=2，实际=%d", result.Skipped)
	}

	a, err := repo.Referee.GetByCodMecc(context.Background(), "10003456")
	if err != nil {
		t.Fatalf("查询裁判失败: %v", err)
	}
	if a.AnnoAnzianita == nil || *a.AnnoAnzianita != 2018 {
		t.Errorf("期望anno_anzianita=2018，实际=%v", a.AnnoAnzianita)
	}
}

func TestSeniorityService_ImportLines_ReversedNameOrder(t *testing.T) {
	svc, repo := setupSeniorityService()
	seedReferee(t, repo, "30002222", "D'AMELIO", "LUCA")

	// 名在前姓在后：原词序匹配不中，反转词序重试命中
	lines := []string{"2 LUCA D'AMELIO MI02 PROM 35 2010"}

	result, err := svc.ImportLines(context.Background(), lines)
	if err != nil {
		t.Fatalf("ImportLines 应成功: %v", err)
	}
	if result.Processed != 1 {
		t.Errorf("反转词序应命中，processed=%d", result.Processed)
	}

	a, _ := repo.Referee.GetByCodMecc(context.Background(), "30002222")
	if a.AnnoAnzianita == nil || *a.AnnoAnzianita != 2010 {
		t.Errorf("期望anno_anzianita=2010，实际=%v", a.AnnoAnzianita)
	}
}

func TestSeniorityService_ImportLines_InvalidAnno(t *testing.T) {
	svc, repo := setupSeniorityService()
	seedReferee(t, repo, "10003456", "ROSSI", "MARIO")

	// 年资年份晚于赛季年份，计入错误
	result, err := svc.ImportLines(context.Background(), []string{"3 ROSSI MARIO MI01 PROM 31 2050"})
	if err != nil {
		t.Fatalf("ImportLines 应成功: %v", err)
	}
	if result.Processed != 0 || result.TotalErrors != 1 {
		t.Errorf("无效年份应计错误，processed=%d errors=%d", result.Processed, result.TotalErrors)
	}

	a, _ := repo.Referee.GetByCodMecc(context.Background(), "10003456")
	if a.AnnoAnzianita != nil {
		t.Errorf("无效年份不应写入，实际=%v", *a.AnnoAnzianita)
	}
}

func TestSeniorityService_ImportXLSX(t *testing.T) {
	svc, repo := setupSeniorityService()
	seedReferee(t, repo, "10003456", "ROSSI", "MARIO")
	seedReferee(t, repo, "10007890", "BIANCHI", "LUCA")

	r := buildXLSX(t, [][]interface{}{
		{"COGNOME", "ANNO_ANZIANITA"},
		{"ROSSI", "2015"},
		{"BIANCHI", "2019"},
		{"VERDI", "2020"}, // 花名册外，跳过
	})

	result, err := svc.ImportXLSX(context.Background(), r)
	if err != nil {
		t.Fatalf("ImportXLSX 应成功: %v", err)
	}
	if result.Processed != 2 {
		t.Errorf("期望processed=2，实际=%d", result.Processed)
	}
	if result.Skipped != 1 {
		t.Errorf("期望skipped=1，实际=%d", result.Skipped)
	}

	a, _ := repo.Referee.GetByCodMecc(context.Background(), "10007890")
	if a.AnnoAnzianita == nil || *a.AnnoAnzianita != 2019 {
		t.Errorf("期望anno_anzianita=2019，实际=%v", a.AnnoAnzianita)
	}
}
