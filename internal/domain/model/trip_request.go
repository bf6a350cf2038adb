package model

import "encoding/json"

// TripRequest はフロントエンドから送られる旅行プラン生成リクエスト
type TripRequest struct {
	Destination string      `json:"destination"`           // 必須：目的地（例: "Jaipur, India"）
	StartDate   string      `json:"startDate"`             // 必須：開始日（YYYY-MM-DD または RFC3339）
	EndDate     string      `json:"endDate"`               // 必須：終了日
	Budget      json.Number `json:"budget"`                // 必須：総予算（正の数値）
	Currency    string      `json:"currency,omitempty"`    // オプション：通貨コード（省略時はINR）
	TravelStyle string      `json:"travelStyle,omitempty"` // オプション：chill / balanced / fast-paced
	TravelType  string      `json:"travelType,omitempty"`  // オプション：solo / couple / family / friends / business
	Constraints []string    `json:"constraints,omitempty"` // オプション：許可リスト内の制約
}

// ValidationResult はTripRequestの検証結果
type ValidationResult struct {
	IsValid      bool     `json:"isValid"`
	Errors       []string `json:"errors"`
	TripDuration *int     `json:"tripDuration"` // IsValidの場合のみ設定される
}

// StyleConfig は旅行スタイルごとのペース設定
type StyleConfig struct {
	ActivitiesPerDay int    `json:"activitiesPerDay"`
	Pace             string `json:"pace"`
	Description      string `json:"description"`
}

// NormalizedInput は検証済みリクエストを正規化した読み取り専用ビュー
type NormalizedInput struct {
	Destination        string // 都市名のみ・小文字・空白正規化済み
	DisplayDestination string // トリムのみ行った元の目的地
	StartDate          string // YYYY-MM-DD
	EndDate            string // YYYY-MM-DD
	Duration           int    // 両端を含む日数
	Budget             float64
	Currency           string
	TravelStyle        string
	Style              StyleConfig
	TravelType         string
	Constraints        []string
}

// HasConstraint は指定された制約が含まれているかどうかを判定する
func (n *NormalizedInput) HasConstraint(constraint string) bool {
	for _, c := range n.Constraints {
		if c == constraint {
			return true
		}
	}
	return false
}
