package processor

import (
	"regexp"
	"strings"

	"outreach-server/internal/store"
)

// keywordConfidence is reported for every keyword classification
const keywordConfidence = 0.6

type keywordRule struct {
	classification string
	pattern        *regexp.Regexp
}

// ordered by precedence: a reply matching spam and positive is spam
var classificationRules = []keywordRule{
	newKeywordRule(store.ReplyClassificationSpam, "unsubscribe", "viagra", "crypto", "casino", "click here", "winner"),
	newKeywordRule(store.ReplyClassificationNegative, "not interested", "no thanks", "no thank you", "stop", "remove me", "don't contact", "do not contact"),
	newKeywordRule(store.ReplyClassificationNeedsInfo, "how much", "price", "pricing", "cost", "more info", "more information", "details", "?"),
	newKeywordRule(store.ReplyClassificationPositive, "interested", "yes", "sounds good", "love to", "let's talk", "sure", "great"),
}

// newKeywordRule matches any keyword as a whole word or phrase. Keywords that
// start or end in punctuation are not anchored on that side.
func newKeywordRule(classification string, keywords ...string) keywordRule {
	alternatives := make([]string, len(keywords))
	for i, kw := range keywords {
		p := regexp.QuoteMeta(kw)
		if isWordByte(kw[0]) {
			p = `\b` + p
		}
		if isWordByte(kw[len(kw)-1]) {
			p += `\b`
		}
		alternatives[i] = p
	}
	return keywordRule{
		classification: classification,
		pattern:        regexp.MustCompile(`(?:` + strings.Join(alternatives, "|") + `)`),
	}
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Classify labels a reply by keyword. Replies that match nothing are neutral.
func Classify(content string) (string, float64) {
	text := strings.ToLower(content)
	for _, r := range classificationRules {
		if r.pattern.MatchString(text) {
			return r.classification, keywordConfidence
		}
	}
	return store.ReplyClassificationNeutral, keywordConfidence
}
