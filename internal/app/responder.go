package app

import "strings"

type KeywordRule struct {
	Keywords []string
	Reply    string
}

// KeywordResponder answers with the reply of the first rule that has a
// keyword contained in the message, or the fallback.
type KeywordResponder struct {
	rules    []KeywordRule
	fallback string
}

func NewKeywordResponder(rules []KeywordRule, fallback string) *KeywordResponder {
	normalized := make([]KeywordRule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 || strings.TrimSpace(r.Reply) == "" {
			continue
		}
		normalized = append(normalized, KeywordRule{Keywords: kws, Reply: r.Reply})
	}
	if strings.TrimSpace(fallback) == "" {
		fallback = "Sorry, I don't have an answer for that yet."
	}
	return &KeywordResponder{rules: normalized, fallback: fallback}
}

func (r *KeywordResponder) Reply(message string) string {
	text := strings.ToLower(message)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Reply
			}
		}
	}
	return r.fallback
}
