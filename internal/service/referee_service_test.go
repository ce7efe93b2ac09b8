package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/model"
	"github.com/dameliogcand/referee-dash/internal/repository"
)

func setupRefereeService() (RefereeService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewRefereeService(testConfig(), repo, zap.NewNop())
	return svc, repo
}

func TestRefereeService_List(t *testing.T) {
	svc, repo := setupRefereeService()
	sez := "MILANO"
	anno := 2015
	repo.Referee.Upsert(context.Background(), &model.Referee{
		CodMecc: "10003456", Cognome: "ROSSI", Nome: "MARIO", Sezione: &sez, AnnoAnzianita: &anno,
	})
	seedReferee(t, repo, "10007890", "BIANCHI", "LUCA")

	list, total, err := svc.List(context.Background(), &dto.RefereeListRequest{Sezione: "MILANO"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("按组别过滤应剩1人，total=%d len=%d", total, len(list))
	}
	if list[0].CodMecc != "10003456" {
		t.Errorf("过滤结果不符: %s", list[0].CodMecc)
	}
	// 展示年资 = 赛季年份 - 年资起始年份
	if list[0].Anzianita == nil || *list[0].Anzianita != 10 {
		t.Errorf("期望anzianita=10，实际=%v", list[0].Anzianita)
	}
}

func TestRefereeService_Get(t *testing.T) {
	svc, repo := setupRefereeService()
	seedReferee(t, repo, "10003456", "ROSSI", "MARIO")

	resp, err := svc.Get(context.Background(), "10003456")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if resp.Cognome != "ROSSI" {
		t.Errorf("期望Cognome=ROSSI，实际=%s", resp.Cognome)
	}

	_, err = svc.Get(context.Background(), "00000000")
	if !errors.Is(err, ErrRefereeNotFound) {
		t.Errorf("期望 ErrRefereeNotFound，实际: %v", err)
	}
}
