package service

import (
	"fmt"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// 受け付ける日付フォーマット（フロントエンドはYYYY-MM-DDかISO文字列を送る）
var tripDateLayouts = []string{
	isoDateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// parseTripDate は日付文字列をUTCの0時に揃えた日付として解析する
func parseTripDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("日付が空です")
	}
	for _, layout := range tripDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("日付の形式が不正です: %s", value)
}

// inclusiveDays は開始日と終了日を両端含みで数えた日数を返す
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
