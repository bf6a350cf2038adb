package model

// TravelStyleConstants は旅行スタイルの定数
const (
	TravelStyleChill     = "chill"
	TravelStyleBalanced  = "balanced"
	TravelStyleFastPaced = "fast-paced"
)

// TravelTypeConstants は旅行タイプの定数
const (
	TravelTypeSolo     = "solo"
	TravelTypeCouple   = "couple"
	TravelTypeFamily   = "family"
	TravelTypeFriends  = "friends"
	TravelTypeBusiness = "business"
	TravelTypeGeneral  = "general" // 未指定時のデフォルト
	TravelTypeFemale   = "female"  // 安全情報でのみ参照される
)

// ConstraintConstants は指定可能な制約の定数
const (
	ConstraintVegetarian           = "vegetarian"
	ConstraintVegan                = "vegan"
	ConstraintHalal                = "halal"
	ConstraintNoMuseums            = "no-museums"
	ConstraintOutdoorOnly          = "outdoor-only"
	ConstraintWheelchairAccessible = "wheelchair-accessible"
	ConstraintKidFriendly          = "kid-friendly"
	ConstraintPetFriendly          = "pet-friendly"
	ConstraintNoAlcohol            = "no-alcohol"
)

const (
	// MaxTripDays は1回の旅行で指定できる最大日数
	MaxTripDays = 30
	// DefaultCurrency は通貨未指定時に使用する通貨コード
	DefaultCurrency = "INR"
)

// styleConfigMap は旅行スタイルからペース設定へのマッピング
var styleConfigMap = map[string]StyleConfig{
	TravelStyleChill: {
		ActivitiesPerDay: 2,
		Pace:             "relaxed",
		Description:      "Relaxed pace with plenty of downtime, long meals and late starts",
	},
	TravelStyleBalanced: {
		ActivitiesPerDay: 3,
		Pace:             "moderate",
		Description:      "A comfortable mix of sightseeing and free time",
	},
	TravelStyleFastPaced: {
		ActivitiesPerDay: 5,
		Pace:             "fast",
		Description:      "Packed days that cover as many highlights as possible",
	},
}

// GetStyleConfig は旅行スタイルのペース設定を取得する（不明な場合はbalanced）
func GetStyleConfig(style string) StyleConfig {
	if cfg, ok := styleConfigMap[style]; ok {
		return cfg
	}
	return styleConfigMap[TravelStyleBalanced]
}

// GetAllTravelStyles は全旅行スタイルの一覧を取得する
func GetAllTravelStyles() []string {
	return []string{
		TravelStyleChill,
		TravelStyleBalanced,
		TravelStyleFastPaced,
	}
}

// GetAllTravelTypes はリクエストで指定可能な旅行タイプの一覧を取得する
func GetAllTravelTypes() []string {
	return []string{
		TravelTypeSolo,
		TravelTypeCouple,
		TravelTypeFamily,
		TravelTypeFriends,
		TravelTypeBusiness,
		TravelTypeGeneral,
	}
}

// GetAllConstraints は指定可能な制約の一覧を取得する
func GetAllConstraints() []string {
	return []string{
		ConstraintVegetarian,
		ConstraintVegan,
		ConstraintHalal,
		ConstraintNoMuseums,
		ConstraintOutdoorOnly,
		ConstraintWheelchairAccessible,
		ConstraintKidFriendly,
		ConstraintPetFriendly,
		ConstraintNoAlcohol,
	}
}

// IsSoloTravelType は一人旅向けの安全情報を追加すべき旅行タイプか判定する
func IsSoloTravelType(travelType string) bool {
	return travelType == TravelTypeSolo || travelType == TravelTypeFemale
}
