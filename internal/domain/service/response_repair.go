package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"TravelPlanner-App/internal/domain/model"
)

// 閉じ括弧直前のカンマ
var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// TravelPlanに必須のトップレベルキー
var requiredPlanKeys = []string{"tripOverview", "budgetBreakdown", "dailyItinerary"}

// RepairTravelPlanResponse はモデルの出力をTravelPlanとしてパースする
// JSONとして構文が不正な場合のみ、修復処理を一度だけ適用して再試行する
func RepairTravelPlanResponse(raw string) (*model.TravelPlan, error) {
	text := strings.TrimSpace(raw)

	keys, err := parsePlanObject(text)
	if err != nil {
		text = applyRepairPass(text)
		keys, err = parsePlanObject(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
		}
	}

	for _, key := range requiredPlanKeys {
		value, ok := keys[key]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("%w: %s is missing", model.ErrMalformedResponse, key)
		}
	}

	return buildTravelPlan(text, keys)
}

// applyRepairPass は修復処理を固定順で適用する
func applyRepairPass(text string) string {
	text = trailingCommaPattern.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "'", "\"")
	if start := strings.Index(text, "{"); start >= 0 {
		text = text[start:]
	}
	if end := strings.LastIndex(text, "}"); end >= 0 {
		text = text[:end+1]
	}
	return text
}

// parsePlanObject はトップレベルがJSONオブジェクトかどうかだけを判定する
func parsePlanObject(text string) (map[string]json.RawMessage, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// buildTravelPlan は構文的に正しいJSONからTravelPlanを組み立てる
// 型が合わない項目はゼロ値のまま残し、プラン全体は失敗させない
func buildTravelPlan(text string, keys map[string]json.RawMessage) (*model.TravelPlan, error) {
	var plan model.TravelPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
		}
	}
	recoverLooseFields(&plan, keys)
	return &plan, nil
}

// recoverLooseFields は文字列で返された概要・金額を読み直す
func recoverLooseFields(plan *model.TravelPlan, keys map[string]json.RawMessage) {
	var overview map[string]json.RawMessage
	if err := json.Unmarshal(keys["tripOverview"], &overview); err != nil {
		var summary string
		if json.Unmarshal(keys["tripOverview"], &summary) == nil {
			plan.TripOverview.Summary = summary
		}
	} else {
		o := &plan.TripOverview
		if v, ok := looseNumber(overview["totalBudget"]); ok && o.TotalBudget == 0 {
			o.TotalBudget, _ = v.Float64()
		}
		if v, ok := looseNumber(overview["duration"]); ok && o.Duration == 0 {
			o.Duration = int(v.IntPart())
		}
	}

	var items map[string]map[string]json.RawMessage
	_ = json.Unmarshal(keys["budgetBreakdown"], &items)
	for category, fields := range items {
		item, ok := plan.BudgetBreakdown[category]
		if !ok || item.Amount != 0 {
			continue
		}
		if v, ok := looseNumber(fields["amount"]); ok {
			item.Amount, _ = v.Float64()
			plan.BudgetBreakdown[category] = item
		}
	}
}

// looseNumber は "₹3,750" のような文字列から数値部分を取り出す
func looseNumber(raw json.RawMessage) (decimal.Decimal, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return decimal.Decimal{}, false
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}
