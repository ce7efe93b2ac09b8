package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/repository"
)

func setupNoteService() (NoteService, *repository.Repository) {
	repo := newTestRepo()
	svc := NewNoteService(testConfig(), repo, zap.NewNop())
	return svc, repo
}

func TestNoteService_UpsertAndList(t *testing.T) {
	svc, _ := setupNoteService()

	resp, err := svc.Upsert(context.Background(), &dto.UpsertNoteRequest{
		CodMecc:         "10003456",
		SettimanaInizio: "2025-04-14",
		SettimanaFine:   "2025-04-20",
		Nota:            "convocato raduno",
	})
	if err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}
	if resp.SettimanaInizio != "2025-04-14" || resp.Nota != "convocato raduno" {
		t.Errorf("响应不符: %+v", resp)
	}

	// 同一（裁判，周）再次写入应覆盖而非新增
	_, err = svc.Upsert(context.Background(), &dto.UpsertNoteRequest{
		CodMecc:         "10003456",
		SettimanaInizio: "2025-04-14",
		SettimanaFine:   "2025-04-20",
		Nota:            "aggiornato",
	})
	if err != nil {
		t.Fatalf("重复 Upsert 应成功: %v", err)
	}

	notes, err := svc.List(context.Background(), &dto.NoteListRequest{CodMecc: "10003456"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("期望1条备注，实际=%d", len(notes))
	}
	if notes[0].Nota != "aggiornato" {
		t.Errorf("期望Nota=aggiornato，实际=%s", notes[0].Nota)
	}
}

func TestNoteService_Upsert_InvalidWeek(t *testing.T) {
	svc, _ := setupNoteService()

	_, err := svc.Upsert(context.Background(), &dto.UpsertNoteRequest{
		CodMecc:         "10003456",
		SettimanaInizio: "2025-04-20",
		SettimanaFine:   "2025-04-14", // 结束早于开始
		Nota:            "x",
	})
	if !errors.Is(err, ErrNoteInvalidWeek) {
		t.Errorf("期望 ErrNoteInvalidWeek，实际: %v", err)
	}
}

func TestNoteService_Delete(t *testing.T) {
	svc, _ := setupNoteService()

	_, err := svc.Upsert(context.Background(), &dto.UpsertNoteRequest{
		CodMecc:         "10003456",
		SettimanaInizio: "2025-04-14",
		SettimanaFine:   "2025-04-20",
		Nota:            "da cancellare",
	})
	if err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}

	err = svc.Delete(context.Background(), &dto.DeleteNoteRequest{
		CodMecc:         "10003456",
		SettimanaInizio: "2025-04-14",
		SettimanaFine:   "2025-04-20",
	})
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	// 再删一次应报不存在
	err = svc.Delete(context.Background(), &dto.DeleteNoteRequest{
		CodMecc:         "10003456",
		SettimanaInizio: "2025-04-14",
		SettimanaFine:   "2025-04-20",
	})
	if !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("期望 ErrNoteNotFound，实际: %v", err)
	}
}

func TestNoteService_List_RangeFilter(t *testing.T) {
	svc, _ := setupNoteService()

	for _, n := range []dto.UpsertNoteRequest{
		{CodMecc: "10003456", SettimanaInizio: "2025-04-07", SettimanaFine: "2025-04-13", Nota: "settimana 1"},
		{CodMecc: "10003456", SettimanaInizio: "2025-05-05", SettimanaFine: "2025-05-11", Nota: "settimana 5"},
	} {
		req := n
		if _, err := svc.Upsert(context.Background(), &req); err != nil {
			t.Fatalf("Upsert 应成功: %v", err)
		}
	}

	notes, err := svc.List(context.Background(), &dto.NoteListRequest{
		CodMecc:          "10003456",
		DateRangeRequest: dto.DateRangeRequest{From: "2025-04-01", To: "2025-04-30"},
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(notes) != 1 || notes[0].Nota != "settimana 1" {
		t.Errorf("区间过滤不符: %+v", notes)
	}
}
