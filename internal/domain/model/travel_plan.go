package model

// TravelPlan はAI生成・フォールバック生成のどちらでも同じ形で返される旅行プラン
type TravelPlan struct {
	TripOverview    TripOverview          `json:"tripOverview"`
	BudgetBreakdown map[string]BudgetItem `json:"budgetBreakdown"`
	DailyItinerary  []DayPlan             `json:"dailyItinerary"`
	SafetyNotes     string                `json:"safetyNotes"`
}

// TripOverview は旅行全体の概要
type TripOverview struct {
	Destination string   `json:"destination,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	TravelStyle string   `json:"travelStyle,omitempty"`
	TravelType  string   `json:"travelType,omitempty"`
	TotalBudget float64  `json:"totalBudget,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Highlights  []string `json:"highlights"`
}

// BudgetItem は予算カテゴリごとの金額と説明
type BudgetItem struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// DayPlan は1日分の行程
type DayPlan struct {
	Day           int      `json:"day"`
	Date          string   `json:"date"`
	Activities    []string `json:"activities"`
	Meals         []string `json:"meals"`
	Accommodation string   `json:"accommodation"`
	Transport     string   `json:"transport"`
	Notes         string   `json:"notes"`
}

// 予算カテゴリ
const (
	BudgetAccommodation = "accommodation"
	BudgetFood          = "food"
	BudgetTransport     = "transport"
	BudgetActivities    = "activities"
	BudgetContingency   = "contingency"
)

// TotalAllocated は予算内訳の合計金額を返す
func (p *TravelPlan) TotalAllocated() float64 {
	var total float64
	for _, item := range p.BudgetBreakdown {
		total += item.Amount
	}
	return total
}

// Clone はマップとスライスを含めてプランを複製する
func (p TravelPlan) Clone() TravelPlan {
	p.TripOverview.Highlights = cloneStrings(p.TripOverview.Highlights)
	if p.BudgetBreakdown != nil {
		breakdown := make(map[string]BudgetItem, len(p.BudgetBreakdown))
		for k, v := range p.BudgetBreakdown {
			breakdown[k] = v
		}
		p.BudgetBreakdown = breakdown
	}
	if p.DailyItinerary != nil {
		days := make([]DayPlan, len(p.DailyItinerary))
		for i, d := range p.DailyItinerary {
			d.Activities = cloneStrings(d.Activities)
			d.Meals = cloneStrings(d.Meals)
			days[i] = d
		}
		p.DailyItinerary = days
	}
	return p
}

// cloneStrings はnilと空スライスを区別したまま複製する
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
