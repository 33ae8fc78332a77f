package progress

// DefaultWeeklyTarget 每週進度的目標天數
const DefaultWeeklyTarget = 7

// WeeklyProgress 本週進度
type WeeklyProgress struct {
	Current int // 本週有每日打卡的不同天數
	Target  int
}

// Reached 是否達到門檻
func (p WeeklyProgress) Reached(threshold int) bool {
	return p.Current >= threshold
}

// Weekly 依週一計算本週進度
func Weekly(days DaySet, weekStart Day, target int) WeeklyProgress {
	if target <= 0 {
		target = DefaultWeeklyTarget
	}
	return WeeklyProgress{
		Current: days.CountFrom(weekStart),
		Target:  target,
	}
}
