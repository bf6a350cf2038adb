package service

import (
	"fmt"
	"strings"

	"TravelPlanner-App/internal/domain/catalog"
	"TravelPlanner-App/internal/domain/model"
)

// SafetyNotesResolver は目的地と旅行タイプから安全情報の文章を組み立てる
// 失敗することはなく、情報がない場合でも汎用の案内を返す
type SafetyNotesResolver interface {
	Resolve(destination, travelType string) string
}

type safetyNotesResolverImpl struct {
	catalog *catalog.Catalog
}

// NewSafetyNotesResolver は新しいSafetyNotesResolverを作成する
func NewSafetyNotesResolver(cat *catalog.Catalog) SafetyNotesResolver {
	return &safetyNotesResolverImpl{catalog: cat}
}

// Resolve は国が不明な場合も一般的な注意事項と免責文を必ず含める
func (r *safetyNotesResolverImpl) Resolve(destination, travelType string) string {
	var sections []string

	if info, ok := r.resolveCountry(destination); ok {
		sections = append(sections, formatCountrySection(info))
	}

	sections = append(sections, formatBullets("General safety tips:", r.catalog.GeneralGuidelines()))
	if model.IsSoloTravelType(travelType) {
		sections = append(sections, formatBullets("Solo traveller tips:", r.catalog.SoloGuidelines()))
	}
	if disclaimer := r.catalog.Disclaimer(); disclaimer != "" {
		sections = append(sections, disclaimer)
	}

	return strings.Join(sections, "\n\n")
}

// resolveCountry は都市名の部分一致、次にカンマ区切りの最後の要素の順で国を決める
func (r *safetyNotesResolverImpl) resolveCountry(destination string) (catalog.CountryInfo, bool) {
	if country, ok := r.catalog.CountryForCity(destination); ok {
		return r.catalog.Country(country)
	}
	if idx := strings.LastIndex(destination, ","); idx >= 0 {
		return r.catalog.Country(destination[idx+1:])
	}
	return catalog.CountryInfo{}, false
}

func formatCountrySection(info catalog.CountryInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Emergency contacts for %s:\n", info.Name)
	fmt.Fprintf(&b, "- %s: %s\n", info.Helpline.ServiceName, info.Helpline.Number)
	if info.Helpline.Website != "" {
		fmt.Fprintf(&b, "- Website: %s\n", info.Helpline.Website)
	}
	if info.Helpline.Notes != "" {
		fmt.Fprintf(&b, "- %s\n", info.Helpline.Notes)
	}
	if info.Culture != nil {
		b.WriteString("\nLocal customs:\n")
		if info.Culture.Dress != "" {
			fmt.Fprintf(&b, "- Dress: %s\n", info.Culture.Dress)
		}
		if info.Culture.Areas != "" {
			fmt.Fprintf(&b, "- Areas: %s\n", info.Culture.Areas)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatBullets(title string, items []string) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, title)
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
