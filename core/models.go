package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Catalog items and profiles use content-based hashing so that identical
// source data produces identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Method identifies the retrieval signal that produced a candidate.
type Method string

const (
	MethodSemantic      Method = "semantic"
	MethodKeyword       Method = "keyword"
	MethodCollaborative Method = "collaborative"
	MethodTrending      Method = "trending"
)

// Strategy identifies which selection bucket placed an item in the final list.
type Strategy string

const (
	StrategyExploitation Strategy = "exploitation"
	StrategyExploration  Strategy = "exploration"
	StrategySerendipity  Strategy = "serendipity"
)

// Item is a catalog entry. Items are immutable from the engine's perspective;
// the catalog is owned by an external ingestion process.
type Item struct {
	Id             ID
	Name           string
	OneLiner       string
	Description    string
	Categories     []string
	UseCases       []string
	Rating         float64            // Quality/popularity scalar, 0-5 scale
	Vector         []float32          // Embedding, unit length, fixed dimension
	Keywords       map[string]float64 // Keyword -> weight
	CategoryScores map[string]float64 // Category -> affinity score
	InsertedAt     time.Time
}

// UserProfile holds per-user preference state.
// Mutated only by the feedback recorder.
type UserProfile struct {
	Id                ID
	SessionKey        string
	LifestyleTags     []string
	PreferredUseCases []string
	Liked             []ID
	Viewed            []ID
	Rejected          []ID
	PreferenceVector  []float32 // Running average of liked items' vectors
	LikedCount        int       // Number of vectors folded into PreferenceVector
	UpdatedAt         time.Time
}

// HasHistory reports whether the profile carries enough signal to rank
// without query text.
func (p *UserProfile) HasHistory() bool {
	return p != nil && (len(p.Liked) > 0 || len(p.LifestyleTags) > 0)
}

// ContainsID reports whether id is present in ids.
func ContainsID(ids []ID, id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// AppendUniqueID appends id to ids if not already present.
func AppendUniqueID(ids []ID, id ID) []ID {
	if ContainsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// ItemMatch represents a catalog item matched by vector similarity search.
type ItemMatch struct {
	Item       *Item
	Similarity float32
}

// QueryKeyword is an extracted query term with its weight.
type QueryKeyword struct {
	Term   string
	Weight float64 // In [0,1], interpreted as a multiplier by retrievers
}

// QueryCategory is a classified intent category with its confidence.
type QueryCategory struct {
	Name       string
	Confidence float64 // In [0,1]
}

// Query is the understood form of a request. Created per request and
// discarded after the response; never persisted.
type Query struct {
	RawText    string
	Keywords   []QueryKeyword
	Categories []QueryCategory
	Profile    *UserProfile
}

// RetrievalCandidate is a single retriever's vote for an item.
type RetrievalCandidate struct {
	ItemId          ID
	Method          Method
	Score           float64
	Rank            int      // 1-based position within the method's list
	MatchedKeywords []string // Keyword method only; feeds explanations
}

// FusedCandidate is one item after reciprocal rank fusion.
// Invariant: one FusedCandidate per item id.
type FusedCandidate struct {
	ItemId          ID
	Score           float64  // RRF score, bounded by the sum of method weights
	Methods         []Method // Contributing signals, in method-table order
	MatchedKeywords []string
}

// RankedResult is the engine's output unit.
type RankedResult struct {
	ItemId      ID
	Score       float64 // In [0,1]
	Explanation string
	Confidence  float64 // In [0,1]
	Strategy    Strategy
	Rank        int // 1-based position in the final list
}

// BanditArm holds per-item Beta-distribution statistics for Thompson Sampling.
// Alpha and Beta start at 1 (uninformative prior) and only increase.
type BanditArm struct {
	ItemId      ID
	Alpha       float64
	Beta        float64
	Impressions int64
	Successes   int64
	UpdatedAt   time.Time
}

// NewBanditArm returns an arm with the uninformative prior.
func NewBanditArm(itemId ID) *BanditArm {
	return &BanditArm{ItemId: itemId, Alpha: 1, Beta: 1}
}

// EstimatedCTR returns the posterior mean click-through estimate.
func (a *BanditArm) EstimatedCTR() float64 {
	return a.Alpha / (a.Alpha + a.Beta)
}

// ShownItem records one impression within an interaction.
type ShownItem struct {
	ItemId ID
	Rank   int
	Method Method
	Score  float64
}

// InteractionEvent captures one completed session. Append-only: written once
// and never mutated.
type InteractionEvent struct {
	EventId   string // UUID
	ProfileId ID
	QueryText string
	Shown     []ShownItem
	Clicked   []ID
	Liked     []ID
	Rejected  []ID
	Rating    int // Explicit rating 1-5, 0 when unset
	Degraded  bool
	Timestamp time.Time
}
