package identity

import (
	"strconv"
	"strings"
)

// ── 身份解析器 ──────────────────────────────────────────────
//
// 职责：把源文件里的 (raw_code, raw_cognome, raw_nome) 三元组映射到
// 花名册中的规范 cod_mecc。
//
// 四个来源文件的编号格式互不一致：花名册是 8 位，CRA01 截断成 7 位，
// 排名 PDF 里只有自由文本姓名（还带换行/OCR 伪影）。单一严格策略会
// 丢掉大部分记录，所以按优先级级联，宁可偶发误配也要保住召回率：
//
//   1. 编号精确匹配（去空格后字符串相等）
//   2. 编号后缀匹配：长度 {7,6,5,4,3} 从长到短，按数值比较；
//      单命中即取，多命中先用名字首词收窄，收窄失败换下一个长度
//   3. 姓精确匹配（大写去空格）；多命中用名字首词收窄
//   4. 姓部分匹配：取 raw_cognome 的第一个空白分隔词做包含匹配
//      （PDF 抽取常把名字粘进姓字段，如 "DE LUCA MARIO"）
//
// 第 3/4 步收窄后仍有多候选时不报错：取 cod_mecc 最小者并标记
// Ambiguous，把取舍留给调用方。空编号+空姓 → NoMatch。
// ─────────────────────────────────────────────────────────────

// Outcome 解析结果类别
type Outcome int

const (
	NoMatch   Outcome = iota // 无法匹配
	Matched                  // 唯一匹配
	Ambiguous                // 多候选，已按最小 cod_mecc 确定性选取
)

// Strategy 命中的匹配策略，用于日志与调试
type Strategy string

const (
	StrategyNone           Strategy = ""
	StrategyExactCode      Strategy = "exact_code"
	StrategySuffixCode     Strategy = "suffix_code"
	StrategyExactSurname   Strategy = "exact_surname"
	StrategyPartialSurname Strategy = "partial_surname"
)

// Result 一次解析的结果
type Result struct {
	Outcome    Outcome
	CodMecc    string   // Matched/Ambiguous 时的规范编号
	Candidates []string // Ambiguous 时的全部候选 cod_mecc（升序）
	Strategy   Strategy
}

// Resolve 解析一条外部身份，纯函数，无副作用
func (s *Snapshot) Resolve(rawCode, rawCognome, rawNome string) Result {
	code := strings.TrimSpace(rawCode)
	cognome := strings.ToUpper(strings.TrimSpace(rawCognome))
	nome := strings.ToUpper(strings.TrimSpace(rawNome))

	if code == "" && cognome == "" {
		return Result{Outcome: NoMatch}
	}

	// 1. 编号精确匹配
	if code != "" {
		if i, ok := s.byCode[code]; ok {
			return Result{Outcome: Matched, CodMecc: s.candidates[i].CodMecc, Strategy: StrategyExactCode}
		}

		// 2. 编号后缀匹配（数值比较，长度从长到短）
		if v, err := strconv.ParseInt(code, 10, 64); err == nil {
			for _, n := range suffixLengths {
				hits := s.bySuffix[n][v]
				switch {
				case len(hits) == 0:
					continue
				case len(hits) == 1:
					return Result{Outcome: Matched, CodMecc: s.candidates[hits[0]].CodMecc, Strategy: StrategySuffixCode}
				default:
					if narrowed := s.narrowByNome(hits, nome); len(narrowed) == 1 {
						return Result{Outcome: Matched, CodMecc: s.candidates[narrowed[0]].CodMecc, Strategy: StrategySuffixCode}
					}
					// 收窄失败，尝试更短的后缀
				}
			}
		}
	}

	if cognome == "" {
		return Result{Outcome: NoMatch}
	}

	// 3. 姓精确匹配
	var hits []int
	for i := range s.candidates {
		if s.upCognome[i] == cognome {
			hits = append(hits, i)
		}
	}
	if r, ok := s.settleSurnameHits(hits, nome, StrategyExactSurname); ok {
		return r
	}

	// 4. 姓部分匹配：取首词做包含匹配
	tok := firstToken(cognome)
	if tok != "" {
		hits = hits[:0]
		for i := range s.candidates {
			if strings.Contains(s.upCognome[i], tok) {
				hits = append(hits, i)
			}
		}
		if r, ok := s.settleSurnameHits(hits, nome, StrategyPartialSurname); ok {
			return r
		}
	}

	return Result{Outcome: NoMatch}
}

// settleSurnameHits 对姓匹配的候选集做收窄与确定性取舍
func (s *Snapshot) settleSurnameHits(hits []int, nome string, strategy Strategy) (Result, bool) {
	switch {
	case len(hits) == 0:
		return Result{}, false
	case len(hits) == 1:
		return Result{Outcome: Matched, CodMecc: s.candidates[hits[0]].CodMecc, Strategy: strategy}, true
	}

	if narrowed := s.narrowByNome(hits, nome); len(narrowed) == 1 {
		return Result{Outcome: Matched, CodMecc: s.candidates[narrowed[0]].CodMecc, Strategy: strategy}, true
	} else if len(narrowed) > 1 {
		hits = narrowed
	}

	// 仍有多候选：candidates 已按 cod_mecc 升序，取第一个
	codes := make([]string, len(hits))
	for i, h := range hits {
		codes[i] = s.candidates[h].CodMecc
	}
	return Result{Outcome: Ambiguous, CodMecc: codes[0], Candidates: codes, Strategy: strategy}, true
}

// narrowByNome 用名字首词的包含关系收窄候选集；名字为空时原样返回
func (s *Snapshot) narrowByNome(hits []int, nome string) []int {
	tok := firstToken(nome)
	if tok == "" {
		return hits
	}
	var narrowed []int
	for _, i := range hits {
		if strings.Contains(s.upNome[i], tok) {
			narrowed = append(narrowed, i)
		}
	}
	if len(narrowed) == 0 {
		return hits
	}
	return narrowed
}

func firstToken(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
