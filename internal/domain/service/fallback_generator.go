package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"TravelPlanner-App/internal/domain/catalog"
	"TravelPlanner-App/internal/domain/model"
)

// キュレーション済みテンプレートを使う日数
const curatedDayLimit = 2

const destinationPlaceholder = "{destination}"

// budgetShare は予算カテゴリごとの配分率
type budgetShare struct {
	category    string
	percent     int64
	description string
}

var budgetShares = []budgetShare{
	{model.BudgetAccommodation, 40, "Lodging for %d night(s) in %s"},
	{model.BudgetFood, 25, "Meals and snacks across %d day(s) in %s"},
	{model.BudgetTransport, 15, "Local transport for %d day(s) in %s"},
	{model.BudgetActivities, 15, "Entry fees, tours and experiences for %d day(s) in %s"},
	{model.BudgetContingency, 5, "Reserve for unexpected costs over %d day(s) in %s"},
}

// FallbackGenerator は生成モデルを使わずにテンプレートから旅行プランを作る
type FallbackGenerator interface {
	Generate(in *model.NormalizedInput) *model.TravelPlan
}

type fallbackGeneratorImpl struct {
	catalog *catalog.Catalog
}

// NewFallbackGenerator は新しいFallbackGeneratorを作成する
func NewFallbackGenerator(cat *catalog.Catalog) FallbackGenerator {
	return &fallbackGeneratorImpl{catalog: cat}
}

// Generate は検証済みの入力に対して常にプランを返す
// SafetyNotesは呼び出し側で埋める
func (g *fallbackGeneratorImpl) Generate(in *model.NormalizedInput) *model.TravelPlan {
	curated, hasCurated := g.catalog.FindCuratedDestination(in.Destination)
	placeName := cases.Title(language.English).String(in.Destination)
	if hasCurated {
		placeName = curated.Name
	}

	days := g.buildDays(in, placeName, curated, hasCurated)

	return &model.TravelPlan{
		TripOverview: model.TripOverview{
			Destination: in.DisplayDestination,
			Duration:    in.Duration,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			TravelStyle: in.TravelStyle,
			TravelType:  in.TravelType,
			TotalBudget: in.Budget,
			Currency:    in.Currency,
			Summary: fmt.Sprintf("A %d-day %s %s trip to %s at a %s pace.",
				in.Duration, in.TravelStyle, in.TravelType, placeName, in.Style.Pace),
			Highlights: collectHighlights(days),
		},
		BudgetBreakdown: splitBudget(in, placeName),
		DailyItinerary:  days,
		SafetyNotes:     "",
	}
}

func (g *fallbackGeneratorImpl) buildDays(in *model.NormalizedInput, placeName string, curated catalog.CuratedDestination, hasCurated bool) []model.DayPlan {
	start, err := parseTripDate(in.StartDate)
	if err != nil {
		start, _ = parseTripDate(in.EndDate)
	}

	generic := g.catalog.GenericTemplate(genericTemplateKey(in))
	days := make([]model.DayPlan, 0, in.Duration)
	for i := 0; i < in.Duration; i++ {
		tmpl := generic
		center := orb.Point{}
		if hasCurated && i < curatedDayLimit && i < len(curated.Days) {
			tmpl = curated.Days[i]
			center = curated.Center
		}

		activities := fillPlaceholders(tmpl.Activities, placeName)
		if limit := in.Style.ActivitiesPerDay; limit > 0 && len(activities) > limit {
			activities = activities[:limit]
		}

		accommodation := strings.ReplaceAll(tmpl.Accommodation, destinationPlaceholder, placeName)
		accommodation = fmt.Sprintf("%s (Map: %s)", accommodation, lodgingMapLink(placeName, center))

		days = append(days, model.DayPlan{
			Day:           i + 1,
			Date:          start.AddDate(0, 0, i).Format(isoDateLayout),
			Activities:    activities,
			Meals:         fillPlaceholders(tmpl.Meals, placeName),
			Accommodation: accommodation,
			Transport:     strings.ReplaceAll(tmpl.Transport, destinationPlaceholder, placeName),
			Notes:         strings.ReplaceAll(tmpl.Notes, destinationPlaceholder, placeName),
		})
	}
	return days
}

// genericTemplateKey は制約から汎用テンプレートを選ぶ
func genericTemplateKey(in *model.NormalizedInput) string {
	switch {
	case in.HasConstraint(model.ConstraintNoMuseums):
		return catalog.TemplateNoMuseums
	case in.HasConstraint(model.ConstraintOutdoorOnly):
		return catalog.TemplateOutdoorOnly
	case in.HasConstraint(model.ConstraintVegetarian):
		return catalog.TemplateVegetarian
	default:
		return catalog.TemplateDefault
	}
}

// splitBudget は固定の配分率で予算を分割する
// 各金額は切り捨てのため合計は総予算を超えない
func splitBudget(in *model.NormalizedInput, placeName string) map[string]model.BudgetItem {
	total := decimal.NewFromFloat(in.Budget)
	hundred := decimal.NewFromInt(100)
	nights := in.Duration - 1
	if nights < 1 {
		nights = 1
	}

	breakdown := make(map[string]model.BudgetItem, len(budgetShares))
	for _, share := range budgetShares {
		amount, _ := total.Mul(decimal.NewFromInt(share.percent)).Div(hundred).Floor().Float64()
		count := in.Duration
		if share.category == model.BudgetAccommodation {
			count = nights
		}
		breakdown[share.category] = model.BudgetItem{
			Amount:      amount,
			Description: fmt.Sprintf(share.description, count, placeName),
		}
	}
	return breakdown
}

// lodgingMapLink は宿泊エリアの地図リンクを作る
// 座標が分かっている場合は座標を優先する
func lodgingMapLink(placeName string, center orb.Point) string {
	query := "hotels in " + placeName
	if !center.Equal(orb.Point{}) {
		query = fmt.Sprintf("hotels near %.4f,%.4f", center.Lat(), center.Lon())
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

func fillPlaceholders(items []string, placeName string) []string {
	filled := make([]string, len(items))
	for i, item := range items {
		filled[i] = strings.ReplaceAll(item, destinationPlaceholder, placeName)
	}
	return filled
}

// collectHighlights は各日の最初のアクティビティを重複なしで最大3件集める
func collectHighlights(days []model.DayPlan) []string {
	highlights := []string{}
	for _, day := range days {
		if len(day.Activities) == 0 || contains(highlights, day.Activities[0]) {
			continue
		}
		highlights = append(highlights, day.Activities[0])
		if len(highlights) == 3 {
			break
		}
	}
	return highlights
}
