package progress

import "time"

// DaySet 有活動的參考日集合（同日多筆只算一次）
type DaySet map[Day]struct{}

// NewDaySet 依日曆把時間戳歸入參考日
func NewDaySet(cal Calendar, times []time.Time) DaySet {
	set := make(DaySet, len(times))
	for _, t := range times {
		set[cal.DayOf(t)] = struct{}{}
	}
	return set
}

// Has 是否包含 d
func (s DaySet) Has(d Day) bool {
	_, ok := s[d]
	return ok
}

// CountFrom 計算不早於 from 的日數
func (s DaySet) CountFrom(from Day) int {
	n := 0
	for d := range s {
		if !d.Before(from) {
			n++
		}
	}
	return n
}

// Streak 計算連續天數
//
// 規則：
// - 今天有活動時從今天往回數；否則從昨天開始（今天還沒做不算中斷）
// - 遇到第一個缺口即停止
// - 最多往回數 maxDays 天
func Streak(days DaySet, today Day, maxDays int) int {
	if len(days) == 0 || maxDays <= 0 {
		return 0
	}

	cursor := today
	if !days.Has(today) {
		cursor = today.AddDays(-1)
	}

	streak := 0
	for streak < maxDays && days.Has(cursor) {
		streak++
		cursor = cursor.AddDays(-1)
	}
	return streak
}
