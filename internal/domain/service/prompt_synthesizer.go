package service

import (
	"fmt"
	"strconv"
	"strings"

	"TravelPlanner-App/internal/domain/model"
)

// travelPlanJSONTemplate はモデルに埋めてもらうJSONの形
const travelPlanJSONTemplate = `{
  "tripOverview": {
    "destination": "string",
    "duration": 0,
    "startDate": "YYYY-MM-DD",
    "endDate": "YYYY-MM-DD",
    "travelStyle": "string",
    "travelType": "string",
    "totalBudget": 0,
    "currency": "string",
    "summary": "string",
    "highlights": ["string"]
  },
  "budgetBreakdown": {
    "accommodation": { "amount": 0, "description": "string" },
    "food": { "amount": 0, "description": "string" },
    "transport": { "amount": 0, "description": "string" },
    "activities": { "amount": 0, "description": "string" },
    "contingency": { "amount": 0, "description": "string" }
  },
  "dailyItinerary": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "activities": ["string"],
      "meals": ["string"],
      "accommodation": "string",
      "transport": "string",
      "notes": "string"
    }
  ],
  "safetyNotes": "string"
}`

// BuildTravelPlanPrompt は正規化済み入力から生成モデル向けのプロンプトを構築する
// 同じ入力からは常に同じ文字列を返す
func BuildTravelPlanPrompt(in *model.NormalizedInput) string {
	var b strings.Builder

	budget := strconv.FormatFloat(in.Budget, 'f', -1, 64)
	constraints := "none"
	if len(in.Constraints) > 0 {
		constraints = strings.Join(in.Constraints, ", ")
	}

	b.WriteString("You are an expert travel planner. Create a detailed, realistic day-by-day travel plan for the trip described below.\n\n")

	b.WriteString("TRIP DETAILS\n")
	fmt.Fprintf(&b, "- Destination: %s (city: %s)\n", in.DisplayDestination, in.Destination)
	fmt.Fprintf(&b, "- Start date: %s\n", in.StartDate)
	fmt.Fprintf(&b, "- End date: %s\n", in.EndDate)
	fmt.Fprintf(&b, "- Duration: %d days\n", in.Duration)
	fmt.Fprintf(&b, "- Total budget: %s %s\n", budget, in.Currency)
	fmt.Fprintf(&b, "- Travel style: %s (%s pace: %s)\n", in.TravelStyle, in.Style.Pace, in.Style.Description)
	fmt.Fprintf(&b, "- Activities per day: at most %d\n", in.Style.ActivitiesPerDay)
	fmt.Fprintf(&b, "- Travel type: %s\n", in.TravelType)
	fmt.Fprintf(&b, "- Constraints: %s\n\n", constraints)

	b.WriteString("INSTRUCTIONS\n")
	for i, block := range instructionBlocks(in, budget) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, block)
	}
	if len(in.Constraints) > 0 {
		fmt.Fprintf(&b, "Every suggestion must respect these constraints: %s.\n", constraints)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "The dailyItinerary array must contain exactly %d entries, one per day from %s to %s, with day numbers starting at 1.\n", in.Duration, in.StartDate, in.EndDate)
	b.WriteString("Respond ONLY with valid JSON, without markdown fences or commentary, using exactly this structure:\n")
	b.WriteString(travelPlanJSONTemplate)
	b.WriteString("\n")

	return b.String()
}

// instructionBlocks はプロンプトに含める8つの指示を固定順で返す
func instructionBlocks(in *model.NormalizedInput, budget string) []string {
	return []string{
		"LOCATION CLUSTERING: Group each day's activities by neighbourhood so consecutive stops are close to each other and travel time is minimised.",
		fmt.Sprintf("NAMED ATTRACTIONS: Use the real names of specific attractions, landmarks and venues in %s. Never use generic placeholders such as \"visit a museum\".", in.DisplayDestination),
		fmt.Sprintf("DINING: For every meal give at least two named restaurant options with the estimated cost per person in %s and a Google Maps link (https://www.google.com/maps/search/?api=1&query=<restaurant+name+city>).", in.Currency),
		fmt.Sprintf("LOCAL TRANSPORT: Explain how to move between the day's stops using local options (metro, bus, auto-rickshaw, taxi, walking) with approximate fares in %s.", in.Currency),
		fmt.Sprintf("ACCOMMODATION: Suggest lodging in three tiers (budget, mid-range, premium) with nightly price estimates in %s and a Google Maps link for each.", in.Currency),
		fmt.Sprintf("BUDGET: Break the total budget of %s %s into accommodation, food, transport, activities and contingency. Every amount must be a plain number in %s and the amounts must not exceed the total.", budget, in.Currency, in.Currency),
		fmt.Sprintf("SAFETY: Include local safety advice, etiquette and dress expectations, and emergency contact numbers for %s.", in.DisplayDestination),
		fmt.Sprintf("PACE: Plan at most %d activities per day to match the %s travel style.", in.Style.ActivitiesPerDay, in.TravelStyle),
	}
}
