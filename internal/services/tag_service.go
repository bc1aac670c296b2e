package services

import (
	"errors"
	"strings"

	"aioverflow/internal/models"
	"aioverflow/internal/utils"

	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// FindOrCreate resolves tag names to rows, creating any name seen for the
// first time. Names are deduplicated; blanks are skipped. Tags are never
// deleted or renamed afterwards.
func (s *TagService) FindOrCreate(names []string) ([]models.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		err := s.db.Where("name = ?", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			err = s.db.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// TagCount is one row of the tag listing: a tag plus how many questions
// carry it.
type TagCount struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	QCnt int    `json:"qcnt"`
}

// TagsWithQuestionCount lists every tag with its question count, resolved in
// one grouped query over the join table rather than per tag.
func (s *TagService) TagsWithQuestionCount() ([]TagCount, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		TagID uint
		Count int
	}
	var rows []countRow
	err := s.db.Table("question_tags").
		Select("tag_id, COUNT(*) as count").
		Group("tag_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.TagID] = r.Count
	}

	out := make([]TagCount, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagCount{
			ID:   utils.FormatID(tag.ID),
			Name: tag.Name,
			QCnt: counts[tag.ID],
		})
	}
	return out, nil
}
