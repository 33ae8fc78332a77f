package shared

import "time"

// Clock 時間來源
//
// 所有「今天」「本週」的判斷都經由 Clock 取得當下時間，
// 測試可注入固定或可推進的時鐘。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系統時間（UTC）
type SystemClock struct{}

// Now 返回當前 UTC 時間
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc 讓普通函數滿足 Clock 介面
type ClockFunc func() time.Time

// Now 呼叫底層函數
func (f ClockFunc) Now() time.Time {
	return f()
}
