package model

import "time"

// SavedPlan はユーザーが保存した旅行プラン
type SavedPlan struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Plan        TravelPlan `json:"plan"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SavePlanRequest はプラン保存APIのリクエスト
type SavePlanRequest struct {
	Title string      `json:"title"`
	Plan  *TravelPlan `json:"plan"`
}

// PlanPatch は保存済みプランの部分更新内容（nilのフィールドは変更しない）
type PlanPatch struct {
	Title *string     `json:"title,omitempty"`
	Plan  *TravelPlan `json:"plan,omitempty"`
}

// IsEmpty は更新内容が空かどうかを判定する
func (p *PlanPatch) IsEmpty() bool {
	return p == nil || (p.Title == nil && p.Plan == nil)
}

// Apply は部分更新をプランに適用する
func (p *PlanPatch) Apply(plan *SavedPlan, now time.Time) {
	if p.Title != nil {
		plan.Title = *p.Title
	}
	if p.Plan != nil {
		plan.Plan = *p.Plan
		plan.Destination = p.Plan.TripOverview.Destination
		plan.StartDate = p.Plan.TripOverview.StartDate
		plan.EndDate = p.Plan.TripOverview.EndDate
	}
	plan.UpdatedAt = now
}

// PlanListResponse は保存済みプラン一覧のレスポンス
type PlanListResponse struct {
	Plans []SavedPlan `json:"plans"`
}

// Clone は保存済みプランを複製する
func (p SavedPlan) Clone() SavedPlan {
	p.Plan = p.Plan.Clone()
	return p
}
