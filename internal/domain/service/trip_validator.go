package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"TravelPlanner-App/internal/domain/model"
)

// ValidateTripRequest は旅行リクエストを検証し、全ての違反をまとめて返す
func ValidateTripRequest(req *model.TripRequest) *model.ValidationResult {
	var errs []string

	if strings.TrimSpace(req.Destination) == "" {
		errs = append(errs, "Destination is required")
	}

	start, startErr := parseTripDate(req.StartDate)
	if startErr != nil {
		errs = append(errs, "Start date must be a valid date")
	}
	end, endErr := parseTripDate(req.EndDate)
	if endErr != nil {
		errs = append(errs, "End date must be a valid date")
	}

	duration := 0
	if startErr == nil && endErr == nil {
		if start.After(end) {
			errs = append(errs, "Start date must be on or before end date")
		} else {
			duration = inclusiveDays(start, end)
			if duration < 1 || duration > model.MaxTripDays {
				errs = append(errs, fmt.Sprintf("Trip duration must be between 1 and %d days", model.MaxTripDays))
			}
		}
	}

	if msg := validateBudget(req.Budget.String()); msg != "" {
		errs = append(errs, msg)
	}

	if req.Currency != "" && !isCurrencyCode(req.Currency) {
		errs = append(errs, "Currency must be a three-letter code")
	}

	if req.TravelStyle != "" && !contains(model.GetAllTravelStyles(), req.TravelStyle) {
		errs = append(errs, "Travel style must be one of: "+strings.Join(model.GetAllTravelStyles(), ", "))
	}

	if req.TravelType != "" && !contains(model.GetAllTravelTypes(), req.TravelType) {
		errs = append(errs, "Travel type must be one of: "+strings.Join(model.GetAllTravelTypes(), ", "))
	}

	allowed := model.GetAllConstraints()
	for _, c := range req.Constraints {
		if !contains(allowed, c) {
			errs = append(errs, "Unknown constraint: "+c)
		}
	}

	result := &model.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	if result.IsValid {
		result.TripDuration = &duration
	}
	return result
}

// validateBudget は予算が正の数値かどうかを検証する
func validateBudget(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Budget is required"
	}
	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return "Budget must be a valid number"
	}
	if budget <= 0 {
		return "Budget must be greater than 0"
	}
	return ""
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// contains スライスに要素が含まれているかチェック
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
