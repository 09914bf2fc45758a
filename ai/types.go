package ai

// ExtractedKeyword is a query term with its weight.
type ExtractedKeyword struct {
	// Term is the keyword in lowercase, 1-3 words.
	Term string

	// Weight is the term's importance in [0,1]. Retrievers treat it as a
	// multiplier, so the weights of a query need not sum to 1.
	Weight float64
}

// ExtractedCategory is a classified intent category with its confidence.
type ExtractedCategory struct {
	// Name must match one of the catalog's category names.
	Name string

	// Confidence is the classifier's confidence in [0,1].
	Confidence float64
}

// Intent is the structured understanding of a query.
type Intent struct {
	Keywords   []ExtractedKeyword
	Categories []ExtractedCategory
}

// JudgeCandidate is one item submitted for relevance judgment.
type JudgeCandidate struct {
	Id         uint64
	Name       string
	OneLiner   string
	Categories []string
}

// Judgment is the relevance verdict for a single candidate.
type Judgment struct {
	Id          uint64
	Relevance   float64 // 0-10 scale
	Confidence  float64 // In [0,1]
	Explanation string  // Short natural-language match reason
}

// IntentCategories defines the valid catalog categories for intent
// classification. Extractors clamp unknown names to the closest match or
// drop them.
var IntentCategories = []string{
	"Education",
	"Entertainment",
	"Finance",
	"Fitness",
	"Food & Drink",
	"Gardening",
	"Health",
	"Lifestyle",
	"Music",
	"Navigation",
	"News",
	"Photography",
	"Productivity",
	"Shopping",
	"Social",
	"Travel",
	"Utilities",
	"Weather",
}
