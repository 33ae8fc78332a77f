package progress_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/momentum/src/internal/domain/progress"
	"github.com/stretchr/testify/assert"
)

// 2026-03-04 是週三
var wednesdayNoon = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return wednesdayNoon.AddDate(0, 0, -n)
}

func TestCalendar_DayOf_UsesReferenceLocation(t *testing.T) {
	// Arrange
	taipei := time.FixedZone("Asia/Taipei", 8*3600)
	cal := progress.NewCalendar(taipei)
	// UTC 3/3 20:00 == 台北 3/4 04:00
	ts := time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC)

	// Act
	day := cal.DayOf(ts)

	// Assert
	assert.Equal(t, progress.Day{Year: 2026, Month: time.March, Day: 4}, day)
	assert.Equal(t, "2026-03-04", day.String())
	assert.Equal(t, time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC), cal.StartOf(day))
}

func TestCalendar_WeekStart_IsMonday(t *testing.T) {
	cal := progress.NewCalendar(nil)
	monday := progress.Day{Year: 2026, Month: time.March, Day: 2}

	tests := []struct {
		name string
		now  time.Time
	}{
		{"週一早上", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"週三", wednesdayNoon},
		{"週日深夜", time.Date(2026, 3, 8, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, cal.WeekStart(tt.now))
		})
	}

	nextMonday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, progress.Day{Year: 2026, Month: time.March, Day: 9}, cal.WeekStart(nextMonday))
}

func TestDay_AddDays_CrossesMonthAndYear(t *testing.T) {
	d := progress.Day{Year: 2026, Month: time.January, Day: 1}

	assert.Equal(t, progress.Day{Year: 2025, Month: time.December, Day: 31}, d.AddDays(-1))
	assert.Equal(t, progress.Day{Year: 2026, Month: time.February, Day: 1}, d.AddDays(31))
	assert.True(t, d.AddDays(-1).Before(d))
	assert.False(t, d.Before(d))
}

func TestStreak(t *testing.T) {
	cal := progress.NewCalendar(time.UTC)
	today := cal.DayOf(wednesdayNoon)

	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{"沒有記錄", nil, 0},
		{"連續五天含今天", []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4)}, 5},
		{"今天尚未打卡，昨天往回連續", []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}, 3},
		{"今天、昨天，缺前天", []time.Time{daysAgo(0), daysAgo(1), daysAgo(3), daysAgo(4)}, 2},
		{"同日多筆只算一次", []time.Time{daysAgo(0), daysAgo(0).Add(-time.Hour), daysAgo(1)}, 2},
		{"最後一次是前天", []time.Time{daysAgo(2), daysAgo(3)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := progress.Streak(progress.NewDaySet(cal, tt.times), today, 365)

			// Assert
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreak_BoundedByLookback(t *testing.T) {
	// Arrange
	cal := progress.NewCalendar(time.UTC)
	var times []time.Time
	for i := 0; i < 20; i++ {
		times = append(times, daysAgo(i))
	}

	// Act & Assert
	assert.Equal(t, 10, progress.Streak(progress.NewDaySet(cal, times), cal.DayOf(wednesdayNoon), 10))
}

func TestWeekly_CountsDistinctDaysSinceMonday(t *testing.T) {
	// Arrange
	cal := progress.NewCalendar(time.UTC)
	times := []time.Time{
		daysAgo(0), daysAgo(0).Add(-2 * time.Hour), // 週三兩筆
		daysAgo(1), // 週二
		daysAgo(2), // 週一
		daysAgo(3), // 上週日，不算
	}

	// Act
	got := progress.Weekly(progress.NewDaySet(cal, times), cal.WeekStart(wednesdayNoon), 0)

	// Assert
	assert.Equal(t, progress.WeeklyProgress{Current: 3, Target: 7}, got)
	assert.False(t, got.Reached(5))
	assert.True(t, got.Reached(3))
}
