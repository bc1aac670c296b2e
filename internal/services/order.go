package services

import (
	"sort"
	"time"
)

// SortOrder names one of the question list orderings.
type SortOrder string

const (
	OrderNewest     SortOrder = "newest"
	OrderUnanswered SortOrder = "unanswered"
	OrderActive     SortOrder = "active"
)

// parseSortOrder validates the raw order key. Empty input defaults to newest;
// anything else unrecognized is a validation failure, not a crash.
func parseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(raw) {
	case "":
		return OrderNewest, nil
	case OrderNewest, OrderUnanswered, OrderActive:
		return SortOrder(raw), nil
	default:
		return "", ErrUnknownOrder
	}
}

// latestAnswerTime returns the most recent answer timestamp of a question.
// The second return is false when the question has no answers; that state is
// the sentinel that always loses against any real timestamp, deliberately not
// encoded as the zero time.
func latestAnswerTime(q *QuestionResponse) (time.Time, bool) {
	if len(q.Answers) == 0 {
		return time.Time{}, false
	}
	latest := q.Answers[0].AnsDateTime
	for _, a := range q.Answers[1:] {
		if a.AnsDateTime.After(latest) {
			latest = a.AnsDateTime
		}
	}
	return latest, true
}

// applyOrder rearranges a newest-first question list into the requested view.
func applyOrder(order SortOrder, questions []QuestionResponse) []QuestionResponse {
	switch order {
	case OrderUnanswered:
		out := make([]QuestionResponse, 0, len(questions))
		for _, q := range questions {
			if len(q.Answers) == 0 {
				out = append(out, q)
			}
		}
		return out
	case OrderActive:
		sort.SliceStable(questions, func(i, j int) bool {
			ti, iHas := latestAnswerTime(&questions[i])
			tj, jHas := latestAnswerTime(&questions[j])
			switch {
			case !iHas:
				return false
			case !jHas:
				return true
			default:
				return ti.After(tj)
			}
		})
		return questions
	default:
		// newest: the fetch already returns newest-first
		return questions
	}
}
