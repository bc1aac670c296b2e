package services

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"aioverflow/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func httpClientForTests() *http.Client {
	return &http.Client{Timeout: 500 * time.Millisecond}
}

// newTestDB opens a fresh in-memory SQLite database, named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return gdb
}

// newTestQuestionService wires a QuestionService against a test database and
// an LLM client pointing nowhere. Tests that exercise the AI path swap the
// llm field.
func newTestQuestionService(t *testing.T) (*QuestionService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	llm := &LLMService{baseURL: "http://127.0.0.1:0", client: httpClientForTests()}
	return NewQuestionService(gdb, llm), gdb
}
