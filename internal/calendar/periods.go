package calendar

import (
	"sort"
	"time"
)

// ── 连续日期区间聚合 ────────────────────────────────────────
//
// 职责：把同一实体+类别下的零散日期（如逐日的不可用记录）归并为
// 最大化的连续区间。相邻两天（相差恰好 1 天）合并，相差 2 天及以上
// 断开。严格按自然日，不做任何"工作日"变体，也没有跨缺口容忍。
// ─────────────────────────────────────────────────────────────

// Period 一段连续自然日区间，首尾含
type Period struct {
	Start time.Time `json:"inizio"`
	End   time.Time `json:"fine"`
	Days  int       `json:"giorni"` // 含首尾的天数
}

// AggregatePeriods 把日期集合归并为有序、两两不相交的连续区间。
// 输入顺序与重复不影响结果；空输入返回空切片。
func AggregatePeriods(dates []time.Time) []Period {
	if len(dates) == 0 {
		return nil
	}

	// 去重 + 归一化到日期粒度 + 升序
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := DateOnly(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var periods []Period
	start, end := days[0], days[0]
	for _, d := range days[1:] {
		if d.Sub(end) == 24*time.Hour {
			end = d
			continue
		}
		periods = append(periods, newPeriod(start, end))
		start, end = d, d
	}
	periods = append(periods, newPeriod(start, end))
	return periods
}

func newPeriod(start, end time.Time) Period {
	return Period{
		Start: start,
		End:   end,
		Days:  int(end.Sub(start).Hours()/24) + 1,
	}
}

// DateOnly 丢弃时分秒与时区，归一化为 UTC 零点的纯日期
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
