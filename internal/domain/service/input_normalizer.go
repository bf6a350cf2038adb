package service

import (
	"strconv"
	"strings"

	"TravelPlanner-App/internal/domain/model"
)

// NormalizeTripRequest は検証済みのリクエストを内部形式に正規化する
// ValidateTripRequestを通過したリクエストのみを渡すこと
func NormalizeTripRequest(req *model.TripRequest) *model.NormalizedInput {
	display := strings.TrimSpace(req.Destination)

	start, _ := parseTripDate(req.StartDate)
	end, _ := parseTripDate(req.EndDate)
	budget, _ := strconv.ParseFloat(strings.TrimSpace(req.Budget.String()), 64)

	style := req.TravelStyle
	if style == "" {
		style = model.TravelStyleBalanced
	}

	travelType := req.TravelType
	if travelType == "" {
		travelType = model.TravelTypeGeneral
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = model.DefaultCurrency
	}

	constraints := make([]string, len(req.Constraints))
	copy(constraints, req.Constraints)

	return &model.NormalizedInput{
		Destination:        NormalizeDestination(display),
		DisplayDestination: display,
		StartDate:          start.Format(isoDateLayout),
		EndDate:            end.Format(isoDateLayout),
		Duration:           inclusiveDays(start, end),
		Budget:             budget,
		Currency:           currency,
		TravelStyle:        style,
		Style:              model.GetStyleConfig(style),
		TravelType:         travelType,
		Constraints:        constraints,
	}
}

// NormalizeDestination は最初のカンマより前の都市名を取り出し、空白を詰めて小文字化する
func NormalizeDestination(destination string) string {
	city := destination
	if idx := strings.Index(city, ","); idx >= 0 {
		city = city[:idx]
	}
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}
