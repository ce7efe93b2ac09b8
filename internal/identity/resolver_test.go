package identity

import (
	"reflect"
	"testing"
)

func testSnapshot() *Snapshot {
	return NewSnapshot([]Candidate{
		{CodMecc: "12345678", Cognome: "ROSSI", Nome: "MARIO"},
		{CodMecc: "87654321", Cognome: "BIANCHI", Nome: "LUCA"},
		{CodMecc: "11112222", Cognome: "DE LUCA", Nome: "GIOVANNI"},
		{CodMecc: "33334444", Cognome: "FERRARI", Nome: "PAOLO"},
	})
}

// ── 编号匹配 ──

func TestResolve_ExactCode(t *testing.T) {
	s := testSnapshot()

	r := s.Resolve("12345678", "", "")
	if r.Outcome != Matched || r.CodMecc != "12345678" {
		t.Fatalf("期望精确匹配 12345678，实际: %+v", r)
	}
	if r.Strategy != StrategyExactCode {
		t.Errorf("期望策略 exact_code，实际: %s", r.Strategy)
	}
}

func TestResolve_ExactCodeBeatsSurname(t *testing.T) {
	s := testSnapshot()

	// 编号指向 ROSSI，姓却写着 BIANCHI：编号精确匹配必须优先
	r := s.Resolve("12345678", "BIANCHI", "LUCA")
	if r.Outcome != Matched || r.CodMecc != "12345678" {
		t.Fatalf("编号精确匹配应优先于姓匹配，实际: %+v", r)
	}
}

func TestResolve_SuffixCode(t *testing.T) {
	s := testSnapshot()

	cases := []struct {
		rawCode string
		want    string
	}{
		{"2345678", "12345678"}, // 7 位后缀
		{"345678", "12345678"},  // 6 位后缀
		{"45678", "12345678"},   // 5 位后缀
	}
	for _, tc := range cases {
		r := s.Resolve(tc.rawCode, "", "")
		if r.Outcome != Matched || r.CodMecc != tc.want {
			t.Errorf("后缀 %s 期望匹配 %s，实际: %+v", tc.rawCode, tc.want, r)
		}
		if r.Strategy != StrategySuffixCode {
			t.Errorf("后缀 %s 期望策略 suffix_code，实际: %s", tc.rawCode, r.Strategy)
		}
	}
}

func TestResolve_SuffixCodeNumericComparison(t *testing.T) {
	// 后缀按数值比较：前导零截断后仍应命中
	s := NewSnapshot([]Candidate{
		{CodMecc: "10003456", Cognome: "VERDI", Nome: "ANNA"},
	})

	// 后缀 "0003456" 的数值是 3456
	r := s.Resolve("3456", "", "")
	if r.Outcome != Matched || r.CodMecc != "10003456" {
		t.Fatalf("数值后缀匹配失败: %+v", r)
	}
}

func TestResolve_SuffixAmbiguousNarrowedByNome(t *testing.T) {
	// 两个候选共享 4 位后缀 5678，用名字收窄
	s := NewSnapshot([]Candidate{
		{CodMecc: "11115678", Cognome: "ROSSI", Nome: "MARIO"},
		{CodMecc: "22225678", Cognome: "NERI", Nome: "FABIO"},
	})

	r := s.Resolve("5678", "", "FABIO")
	if r.Outcome != Matched || r.CodMecc != "22225678" {
		t.Fatalf("名字收窄应选中 22225678，实际: %+v", r)
	}
}

func TestResolve_UnknownCode(t *testing.T) {
	s := testSnapshot()

	r := s.Resolve("99999", "", "")
	if r.Outcome != NoMatch {
		t.Fatalf("未知编号应返回 NoMatch，实际: %+v", r)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	s := testSnapshot()

	for _, code := range []string{"", "   "} {
		r := s.Resolve(code, "", "")
		if r.Outcome != NoMatch {
			t.Errorf("空编号 %q 应返回 NoMatch，实际: %+v", code, r)
		}
	}
}

// ── 姓匹配 ──

func TestResolve_ExactSurname(t *testing.T) {
	s := testSnapshot()

	r := s.Resolve("", "  rossi ", "")
	if r.Outcome != Matched || r.CodMecc != "12345678" {
		t.Fatalf("姓精确匹配失败: %+v", r)
	}
	if r.Strategy != StrategyExactSurname {
		t.Errorf("期望策略 exact_surname，实际: %s", r.Strategy)
	}
}

func TestResolve_PartialSurname(t *testing.T) {
	s := testSnapshot()

	// PDF 抽取把名字粘进姓字段："DE LUCA GIOVANNI" → 首词 "DE" 包含匹配
	r := s.Resolve("", "DE LUCA GIOVANNI", "")
	if r.Outcome != Matched || r.CodMecc != "11112222" {
		t.Fatalf("姓部分匹配失败: %+v", r)
	}
	if r.Strategy != StrategyPartialSurname {
		t.Errorf("期望策略 partial_surname，实际: %s", r.Strategy)
	}
}

func TestResolve_HomonymNarrowedByNome(t *testing.T) {
	s := NewSnapshot([]Candidate{
		{CodMecc: "20000001", Cognome: "ESPOSITO", Nome: "MARCO"},
		{CodMecc: "20000002", Cognome: "ESPOSITO", Nome: "DAVIDE"},
	})

	r := s.Resolve("", "ESPOSITO", "DAVIDE")
	if r.Outcome != Matched || r.CodMecc != "20000002" {
		t.Fatalf("同姓候选应由名字收窄，实际: %+v", r)
	}
}

func TestResolve_HomonymAmbiguousTieBreak(t *testing.T) {
	s := NewSnapshot([]Candidate{
		{CodMecc: "30000009", Cognome: "ESPOSITO", Nome: "MARCO"},
		{CodMecc: "30000001", Cognome: "ESPOSITO", Nome: "MARIA"},
	})

	// 名字首词 "MAR" 无法区分：取最小 cod_mecc，结果标记 Ambiguous
	r := s.Resolve("", "ESPOSITO", "MAR")
	if r.Outcome != Ambiguous {
		t.Fatalf("期望 Ambiguous，实际: %+v", r)
	}
	if r.CodMecc != "30000001" {
		t.Errorf("歧义取舍应选最小 cod_mecc 30000001，实际: %s", r.CodMecc)
	}
	if !reflect.DeepEqual(r.Candidates, []string{"30000001", "30000009"}) {
		t.Errorf("候选列表应升序完整返回，实际: %v", r.Candidates)
	}
}

func TestResolve_TieBreakDeterministic(t *testing.T) {
	// 注册表构造顺序不同，歧义取舍结果必须一致
	a := NewSnapshot([]Candidate{
		{CodMecc: "40000002", Cognome: "RUSSO", Nome: "ANDREA"},
		{CodMecc: "40000001", Cognome: "RUSSO", Nome: "ANTONIO"},
	})
	b := NewSnapshot([]Candidate{
		{CodMecc: "40000001", Cognome: "RUSSO", Nome: "ANTONIO"},
		{CodMecc: "40000002", Cognome: "RUSSO", Nome: "ANDREA"},
	})

	ra := a.Resolve("", "RUSSO", "AN")
	rb := b.Resolve("", "RUSSO", "AN")
	if ra.CodMecc != rb.CodMecc || ra.CodMecc != "40000001" {
		t.Fatalf("取舍不确定: %s vs %s", ra.CodMecc, rb.CodMecc)
	}
}

func TestResolve_NoMatchNeverErrors(t *testing.T) {
	s := NewSnapshot(nil)

	r := s.Resolve("abc123", "QUALCOSA", "X Y Z")
	if r.Outcome != NoMatch {
		t.Fatalf("空注册表应返回 NoMatch，实际: %+v", r)
	}
}
