package services

import (
	"log/slog"
	"time"

	"aioverflow/internal/models"
	"aioverflow/internal/utils"
)

// TagValue is either a bare reference to a tag row or the populated record.
// Exactly one branch is set; the formatter switches on Tag being nil.
type TagValue struct {
	Ref uint
	Tag *models.Tag
}

// TagRef builds the reference branch of TagValue.
func TagRef(id uint) TagValue { return TagValue{Ref: id} }

// PopulatedTag builds the populated branch of TagValue.
func PopulatedTag(t models.Tag) TagValue { return TagValue{Ref: t.ID, Tag: &t} }

// AnswerValue is the same union for answers. A bare answer reference carries
// nothing displayable, so the formatter drops it.
type AnswerValue struct {
	Ref    uint
	Answer *models.Answer
}

// AnswerRef builds the reference branch of AnswerValue.
func AnswerRef(id uint) AnswerValue { return AnswerValue{Ref: id} }

// PopulatedAnswer builds the populated branch of AnswerValue.
func PopulatedAnswer(a models.Answer) AnswerValue { return AnswerValue{Ref: a.ID, Answer: &a} }

// RawQuestion is a fetched question before formatting, with tag and answer
// entries that may be bare references or populated records.
type RawQuestion struct {
	ID        uint
	Title     string
	Text      string
	AskedBy   string
	Views     int
	Votes     int
	Tags      []TagValue
	Answers   []AnswerValue
	Comments  []models.Comment
	CreatedAt time.Time
}

// RawFromModel wraps a fully preloaded GORM row in the union shape.
func RawFromModel(q *models.Question) *RawQuestion {
	if q == nil {
		return nil
	}
	raw := RawQuestion{
		ID:        q.ID,
		Title:     q.Title,
		Text:      q.Text,
		AskedBy:   q.AskedBy,
		Views:     q.Views,
		Votes:     q.Votes,
		Comments:  q.Comments,
		CreatedAt: q.CreatedAt,
	}
	for _, t := range q.Tags {
		raw.Tags = append(raw.Tags, PopulatedTag(t))
	}
	for _, a := range q.Answers {
		raw.Answers = append(raw.Answers, PopulatedAnswer(a))
	}
	return &raw
}

// QuestionResponse is the canonical wire shape: string identifiers,
// fully resolved tags and answers. Field names match what the SPA expects.
type QuestionResponse struct {
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Text        string            `json:"text"`
	TextHTML    string            `json:"text_html,omitempty"`
	AskedBy     string            `json:"asked_by"`
	AskDateTime time.Time         `json:"ask_date_time"`
	Views       int               `json:"views"`
	Votes       int               `json:"votes"`
	Tags        []TagResponse     `json:"tags"`
	Answers     []AnswerResponse  `json:"answers"`
	Comments    []CommentResponse `json:"comments"`
}

type TagResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type AnswerResponse struct {
	ID          string    `json:"_id"`
	Text        string    `json:"text"`
	TextHTML    string    `json:"text_html,omitempty"`
	AnsBy       string    `json:"ans_by"`
	AnsDateTime time.Time `json:"ans_date_time"`
}

type CommentResponse struct {
	Text        string    `json:"text"`
	CommentBy   string    `json:"comment_by"`
	CommentTime time.Time `json:"comment_time"`
}

func formatTag(t TagValue) TagResponse {
	if t.Tag == nil {
		// bare reference, the name is unknown
		return TagResponse{ID: utils.FormatID(t.Ref), Name: ""}
	}
	return TagResponse{ID: utils.FormatID(t.Tag.ID), Name: t.Tag.Name}
}

func formatAnswer(a AnswerValue) *AnswerResponse {
	if a.Answer == nil {
		return nil
	}
	return &AnswerResponse{
		ID:          utils.FormatID(a.Answer.ID),
		Text:        a.Answer.Text,
		AnsBy:       a.Answer.AnsBy,
		AnsDateTime: a.Answer.CreatedAt,
	}
}

// FormatQuestion converts one fetched question into the canonical shape.
// A nil input is reported and yields nil; it never panics. Bare answer
// references are dropped, bare tag references keep their ID with an empty
// name.
func FormatQuestion(raw *RawQuestion) *QuestionResponse {
	if raw == nil {
		slog.Error("cannot format question: input is nil")
		return nil
	}

	resp := QuestionResponse{
		ID:          utils.FormatID(raw.ID),
		Title:       raw.Title,
		Text:        raw.Text,
		AskedBy:     raw.AskedBy,
		AskDateTime: raw.CreatedAt,
		Views:       raw.Views,
		Votes:       raw.Votes,
		Tags:        make([]TagResponse, 0, len(raw.Tags)),
		Answers:     make([]AnswerResponse, 0, len(raw.Answers)),
		Comments:    make([]CommentResponse, 0, len(raw.Comments)),
	}
	for _, t := range raw.Tags {
		resp.Tags = append(resp.Tags, formatTag(t))
	}
	for _, a := range raw.Answers {
		if ans := formatAnswer(a); ans != nil {
			resp.Answers = append(resp.Answers, *ans)
		}
	}
	for _, c := range raw.Comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			Text:        c.Text,
			CommentBy:   c.CommentBy,
			CommentTime: c.CreatedAt,
		})
	}
	return &resp
}
