package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aioverflow/internal/db"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	RegisterRoutes(r, gdb)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetQuestionsEmpty(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/question/getQuestion", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("body not a JSON array: %s", w.Body.String())
	}
	if len(got) != 0 {
		t.Errorf("expected empty list, got %d items", len(got))
	}
}

func TestGetQuestionsUnknownOrder(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/question/getQuestion?order=hot", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unknown order") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAddQuestionThenList(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"How do channels work?","text":"details here","asked_by":"alice","tags":[{"name":"go"}]}`
	w := doJSON(t, r, http.MethodPost, "/question/addQuestion", body)
	if w.Code != http.StatusOK {
		t.Fatalf("addQuestion: %d, body = %s", w.Code, w.Body.String())
	}

	var created struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Title != "How do channels work?" {
		t.Fatalf("created = %+v", created)
	}

	w = doJSON(t, r, http.MethodGet, "/question/getQuestion?order=newest&search=channels", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var listed []struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("listed = %+v", listed)
	}
}

func TestAddQuestionValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/question/addQuestion", `{"title":"only a title"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetQuestionByIDNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/question/getQuestionById/12345", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpvoteFlow(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"t","text":"x","asked_by":"u"}`
	w := doJSON(t, r, http.MethodPost, "/question/addQuestion", body)
	var created struct {
		ID string `json:"_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, r, http.MethodPost, "/question/upvoteQuestion/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("upvote: %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Votes   int    `json:"votes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != "Upvoted" || resp.Votes != 1 {
		t.Errorf("resp = %+v", resp)
	}

	w = doJSON(t, r, http.MethodPost, "/question/upvoteQuestion/99999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing question upvote = %d, want 404", w.Code)
	}
}

func TestAddCommentValidation(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"t","text":"x","asked_by":"u"}`
	w := doJSON(t, r, http.MethodPost, "/question/addQuestion", body)
	var created struct {
		ID string `json:"_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	path := "/question/addCommentToQuestion/" + created.ID

	// missing and empty text rejected before any write
	for _, bad := range []string{`{}`, `{"text":""}`, `{"text":42}`} {
		w = doJSON(t, r, http.MethodPost, path, bad)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", bad, w.Code)
		}
	}

	long := strings.Repeat("a", 1001)
	w = doJSON(t, r, http.MethodPost, path, `{"text":"`+long+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized comment = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "too long") {
		t.Errorf("body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, path, `{"text":"looks good","comment_by":"bob"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid comment = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Comment added successfully") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAddAnswerFlow(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"t","text":"x","asked_by":"u"}`
	w := doJSON(t, r, http.MethodPost, "/question/addQuestion", body)
	var created struct {
		ID string `json:"_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(t, r, http.MethodPost, "/answer/addAnswer",
		`{"qid":"`+created.ID+`","ans":{"text":"an answer","ans_by":"bob"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("addAnswer = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/answer/addAnswer",
		`{"qid":"99999","ans":{"text":"x","ans_by":"y"}}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing question = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/answer/addAnswer",
		`{"qid":"nope","ans":{"text":"x","ans_by":"y"}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id = %d, want 400", w.Code)
	}
}

func TestTagCounts(t *testing.T) {
	r := newTestRouter(t)

	body := `{"title":"t","text":"x","asked_by":"u","tags":[{"name":"go"},{"name":"sql"}]}`
	if w := doJSON(t, r, http.MethodPost, "/question/addQuestion", body); w.Code != http.StatusOK {
		t.Fatalf("addQuestion: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/tag/getTagsWithQuestionNumber", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var counts []struct {
		Name string `json:"name"`
		QCnt int    `json:"qcnt"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &counts); err != nil {
		t.Fatal(err)
	}
	byName := map[string]int{}
	for _, c := range counts {
		byName[c.Name] = c.QCnt
	}
	if byName["go"] != 1 || byName["sql"] != 1 {
		t.Errorf("counts = %v", byName)
	}
}

func TestAIAnswerRateLimited(t *testing.T) {
	r := newTestRouter(t)

	// a missing question never reaches the model, so this exercises only
	// the limiter in front of the handler
	for i := 0; i < 5; i++ {
		w := doJSON(t, r, http.MethodGet, "/question/getAIAnswer/99999", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("request %d: status = %d, want 404", i+1, w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/question/getAIAnswer/99999", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("6th request = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Too many AI requests from this IP, please try again after a minute.") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSignupAndLogin(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/user/signup",
		`{"username":"alice","email":"alice@example.com","password":"hunter22"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup = %d, body = %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "hunter22") {
		t.Error("password leaked in signup response")
	}

	// duplicate username
	w = doJSON(t, r, http.MethodPost, "/user/signup",
		`{"username":"alice","email":"other@example.com","password":"hunter22"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup = %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/user/login",
		`{"username":"alice","password":"hunter22"}`)
	if w.Code != http.StatusOK {
		t.Errorf("login = %d, body = %s", w.Code, w.Body.String())
	}

	// wrong password and unknown user read the same
	w = doJSON(t, r, http.MethodPost, "/user/login",
		`{"username":"alice","password":"wrong"}`)
	bad1 := w.Code
	w = doJSON(t, r, http.MethodPost, "/user/login",
		`{"username":"nobody","password":"hunter22"}`)
	if bad1 != http.StatusUnauthorized || w.Code != http.StatusUnauthorized {
		t.Errorf("invalid logins = %d, %d, want 401, 401", bad1, w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/user/signup",
		`{"username":"bob","email":"not-an-email","password":"hunter22"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad email signup = %d, want 400", w.Code)
	}
}
