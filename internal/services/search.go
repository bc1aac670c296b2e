package services

import (
	"strings"
)

// matchesTerm checks one search term against one question. A bracketed term
// like "[go]" matches tag names only; a bare term matches title or body text.
// All comparisons are case-insensitive substring checks.
func matchesTerm(q *QuestionResponse, term string) bool {
	if strings.HasPrefix(term, "[") && strings.HasSuffix(term, "]") {
		tagTerm := term[1 : len(term)-1]
		for _, tag := range q.Tags {
			if strings.Contains(strings.ToLower(tag.Name), tagTerm) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(q.Title), term) ||
		strings.Contains(strings.ToLower(q.Text), term)
}

// filterBySearch keeps the questions satisfying at least one term of the
// query. Terms are OR-ed. An empty query returns the input unchanged.
func filterBySearch(questions []QuestionResponse, search string) []QuestionResponse {
	terms := strings.Fields(strings.ToLower(search))
	if len(terms) == 0 {
		return questions
	}

	out := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		for _, term := range terms {
			if matchesTerm(&questions[i], term) {
				out = append(out, questions[i])
				break
			}
		}
	}
	return out
}
