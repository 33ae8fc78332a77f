package progress

import (
	"fmt"
	"time"
)

// Day 參考時區中的日曆日（可比較、可當 map key）
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// String 以 YYYY-MM-DD 表示
func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays 返回 n 天後（n 可為負）的日曆日
//
// 以 UTC 正規化計算，不受日光節約時間影響。
func (d Day) AddDays(n int) Day {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before 是否早於 other
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Calendar 依參考時區切分日與週
//
// 所有時間戳以 UTC 保存，日/週邊界一律在此計算，不在 SQL 中計算。
// 週為 ISO 週：週一 00:00 至下週一 00:00。
type Calendar struct {
	loc *time.Location
}

// NewCalendar 建立日曆；loc 為 nil 時使用 UTC
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

// Location 參考時區
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// DayOf 時間戳所屬的參考日
func (c Calendar) DayOf(t time.Time) Day {
	local := t.In(c.Location())
	return Day{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// StartOf 參考日的 00:00（以 UTC 表示）
func (c Calendar) StartOf(d Day) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, c.Location()).UTC()
}

// WeekStart now 所在 ISO 週的週一
func (c Calendar) WeekStart(now time.Time) Day {
	today := c.DayOf(now)
	weekday := time.Date(today.Year, today.Month, today.Day, 0, 0, 0, 0, time.UTC).Weekday()
	// time.Sunday == 0；週日屬於上一個 ISO 週
	offset := (int(weekday) + 6) % 7
	return today.AddDays(-offset)
}

// SameDay 兩個時間戳是否落在同一參考日
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.DayOf(a) == c.DayOf(b)
}
