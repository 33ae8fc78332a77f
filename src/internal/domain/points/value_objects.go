package points

import "fmt"

// EntryType 帳本記錄類型
//
// 類型是帳本記錄與業務事件之間的唯一關聯：
// 連續天數與每週進度只讀取 daily_checkin 記錄，不依賴外鍵。
type EntryType string

const (
	EntryDailyCheckin      EntryType = "daily_checkin"
	EntryReferralSignup    EntryType = "referral_signup"
	EntryReferralReward    EntryType = "referral_reward"
	EntryProfileCompletion EntryType = "profile_completion"
	EntryWeeklyChallenge   EntryType = "weekly_challenge"
	EntryManual            EntryType = "manual"
)

// ParseEntryType 解析帳本記錄類型
func ParseEntryType(s string) (EntryType, error) {
	switch t := EntryType(s); t {
	case EntryDailyCheckin, EntryReferralSignup, EntryReferralReward,
		EntryProfileCompletion, EntryWeeklyChallenge, EntryManual:
		return t, nil
	}
	return "", ErrInvalidEntryType.WithContext("type", s)
}

// IsCompletionOwned 由任務完成流程產生的類型
//
// 這些記錄必須與完成記錄在同一事務寫入，
// 不能透過通用入帳（AwardPoints）直接建立。
func (t EntryType) IsCompletionOwned() bool {
	switch t {
	case EntryDailyCheckin, EntryProfileCompletion, EntryWeeklyChallenge:
		return true
	}
	return false
}

func (t EntryType) String() string {
	return string(t)
}

// CompletionDescription 任務完成記錄的描述文字
func CompletionDescription(taskName string) string {
	return fmt.Sprintf("Completed: %s", taskName)
}
