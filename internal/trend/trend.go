// Package trend defines the trending-keyword records served by the trend
// service and the pure helpers that interpret their loosely typed fields.
package trend

// Record is one trending keyword at one point in time.
// Records are never mutated after decoding; views derive new slices.
type Record struct {
	ID            int      `json:"id"`
	Region        string   `json:"region"`
	Rank          int      `json:"rank"`
	Keyword       string   `json:"keyword"`
	Description   string   `json:"description"`
	ApproxTraffic string   `json:"approx_traffic"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"createdAt"` // empty when the service sent null
}

// AIResult is the generated summary embedded in a detail response.
type AIResult struct {
	Keyword     string   `json:"keyword"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Sources     []string `json:"refered"`
}

// Detail is a single record with its AI summary.
type Detail struct {
	ID            int      `json:"id"`
	Region        string   `json:"region"`
	Rank          int      `json:"rank"`
	ApproxTraffic string   `json:"approx_traffic"`
	CreatedAt     string   `json:"createdAt"`
	AI            AIResult `json:"llmResult"`
}

// AllCategories is the filter sentinel that keeps every record.
// It is never a record's own category.
const AllCategories = "all"

// Categories is the fixed set of categories the service assigns, in the
// order the filter control presents them.
var Categories = []string{
	"건강",
	"게임",
	"과학",
	"기술",
	"기타",
	"기후",
	"미용 및 패션",
	"법률 및 정부",
	"반려동물 및 동물",
	"비즈니스 및 금융",
	"쇼핑",
	"스포츠",
	"식음료",
	"엔터테이먼트",
	"자동차",
	"정치",
	"취업 및 교육",
}

// CategoryLabel returns the display label for a filter value.
func CategoryLabel(category string) string {
	if category == AllCategories || category == "" {
		return "전체 카테고리"
	}
	return category
}
