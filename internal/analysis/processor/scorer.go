package processor

import (
	"fmt"
	"math/rand"

	"outreach-server/internal/store"
)

// RandomSource is the subset of math/rand the scorer draws from
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// lockedRand uses the package-level math/rand functions, which are safe for
// concurrent use.
type lockedRand struct{}

func (lockedRand) Intn(n int) int   { return rand.Intn(n) }
func (lockedRand) Float64() float64 { return rand.Float64() }

var cannedIssues = []store.Issue{
	{Type: "Branding", Severity: store.SeverityMedium, Description: "Logo is not prominent enough or is used inconsistently across recent posts."},
	{Type: "UX", Severity: store.SeverityHigh, Description: "The primary Call-to-Action is not immediately clear to a new visitor."},
	{Type: "Content Quality", Severity: store.SeverityLow, Description: "Text in some posts contains minor spelling or grammatical errors."},
	{Type: "Technical SEO", Severity: store.SeverityMedium, Description: "Facebook Page meta tags (og:description) are missing or too short."},
}

var cannedSuggestions = []store.Suggestion{
	{Title: "Brand Guideline Creation", Description: "We can establish a consistent brand guideline for your logo, colors, and typography.", Priority: "high"},
	{Title: "High-Resolution Post Graphics", Description: "Our team will design professional, high-resolution graphics for your future posts.", Priority: "medium"},
	{Title: "Website Landing Page", Description: "A dedicated landing page can convert your Facebook visitors into customers more effectively.", Priority: "medium"},
}

// Score is the output of one placeholder scoring run
type Score struct {
	OverallScore    int
	NeedDecision    string
	ConfidenceScore float64
	Issues          store.Issues
	Suggestions     store.Suggestions
	ImagesAnalyzed  int
	Rationale       string
}

// Scorer produces placeholder design scores. No page content is inspected.
type Scorer struct {
	rnd RandomSource
}

// NewScorer returns a Scorer over rnd, or over math/rand when rnd is nil.
func NewScorer(rnd RandomSource) Scorer {
	if rnd == nil {
		rnd = lockedRand{}
	}
	return Scorer{rnd: rnd}
}

func (s Scorer) Score() Score {
	score := 40 + s.rnd.Intn(50)
	issueCount := 2 + s.rnd.Intn(2)
	suggestionCount := 1 + s.rnd.Intn(2)
	confidence := 0.7 + s.rnd.Float64()*0.3
	decision := NeedDecision(score)

	return Score{
		OverallScore:    score,
		NeedDecision:    decision,
		ConfidenceScore: confidence,
		Issues:          append(store.Issues{}, cannedIssues[:issueCount]...),
		Suggestions:     append(store.Suggestions{}, cannedSuggestions[:suggestionCount]...),
		ImagesAnalyzed:  0,
		Rationale: fmt.Sprintf("The AI decided '%s' because the overall design score of %d indicates several areas for branding and UX improvement.",
			decision, score),
	}
}

// NeedDecision maps a score to yes (< 65), maybe (< 85) or no.
func NeedDecision(score int) string {
	switch {
	case score < 65:
		return store.DecisionYes
	case score < 85:
		return store.DecisionMaybe
	default:
		return store.DecisionNo
	}
}
