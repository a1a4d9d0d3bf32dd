package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dilvane/internal/generator"
	"github.com/vytor/dilvane/internal/lesson"
	"github.com/vytor/dilvane/internal/llm"
	"github.com/vytor/dilvane/internal/models"
	"github.com/vytor/dilvane/internal/repository/sqlite"
	"github.com/vytor/dilvane/internal/services"
	"github.com/vytor/dilvane/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	t        *testing.T
	handler  http.Handler
	provider *llm.MockProvider
	cookie   *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	sqlDB := testutil.NewTestDB(t)
	t.Cleanup(func() { sqlDB.Close() })

	users := sqlite.NewUserRepository(sqlDB)
	sessions := sqlite.NewSessionRepository(sqlDB)
	words := sqlite.NewVocabularyRepository(sqlDB)
	notes := sqlite.NewNoteRepository(sqlDB)
	progress := sqlite.NewProgressRepository(sqlDB)
	lessons := sqlite.NewLessonRepository(sqlDB)

	provider := llm.NewMockProvider()
	srv := &Server{
		DB:         sqlDB,
		Auth:       services.NewAuthService(users, sessions, progress, services.AuthConfig{BcryptCost: bcrypt.MinCost}),
		Users:      services.NewUserService(users),
		Vocabulary: services.NewVocabularyService(words, notes),
		Progress:   services.NewProgressService(progress, words, lessons),
		Lessons: services.NewLessonService(services.LessonDeps{
			Users:     users,
			Words:     words,
			Notes:     notes,
			Progress:  progress,
			Lessons:   lessons,
			Generator: generator.New(provider, generator.DefaultConfig()),
			Store:     lesson.NewStore(time.Hour),
		}, services.LessonConfig{LessonSize: 2}),
	}

	return &testApp{t: t, handler: srv.Routes(), provider: provider}
}

func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			if c.MaxAge < 0 {
				a.cookie = nil
			} else {
				a.cookie = c
			}
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func (a *testApp) signUp(email string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/signup", credentialsRequest{Email: email, Password: "correct horse"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(a.t, a.cookie)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app := newTestApp(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/vocabulary"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/progress"},
		{http.MethodPost, "/api/lesson/generate"},
		{http.MethodPost, "/api/lesson/complete"},
	}
	for _, p := range paths {
		rec := app.do(p.method, p.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p.path)
		assert.Equal(t, "UNAUTHORIZED", decode[errorEnvelope](t, rec).Error.Code)
	}

	app.cookie = &http.Cookie{Name: sessionCookieName, Value: "forged"}
	rec := app.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, app.cookie, "stale cookie is cleared")
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	app.signUp("Ayse@Example.com")

	rec := app.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[userResponse](t, rec)
	assert.Equal(t, "ayse@example.com", me.User.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = app.do(http.MethodPost, "/api/auth/signup", credentialsRequest{Email: "ayse@example.com", Password: "another one"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(http.MethodPost, "/api/auth/signout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, app.cookie)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/auth/me", nil).Code)

	rec = app.do(http.MethodPost, "/api/auth/signin", credentialsRequest{Email: "ayse@example.com", Password: "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(http.MethodPost, "/api/auth/signin", credentialsRequest{Email: "ayse@example.com", Password: "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/auth/me", nil).Code)
}

func TestSignUpValidation(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/auth/signup", credentialsRequest{Email: "a@example.com", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodPost, "/api/auth/signup", credentialsRequest{Password: "long enough"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, app.cookie)
}

func TestSettings(t *testing.T) {
	app := newTestApp(t)
	app.signUp("s@example.com")

	rec := app.do(http.MethodGet, "/api/user/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[settingsResponse](t, rec)
	assert.Equal(t, models.DefaultNativeLanguage, got.NativeLanguage)
	assert.Len(t, got.Languages, 12)

	rec = app.do(http.MethodPut, "/api/user/settings", models.Settings{NativeLanguage: "German", CEFRLevel: "b1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[settingsResponse](t, rec)
	assert.True(t, got.Success)
	assert.Equal(t, "German", got.NativeLanguage)
	assert.Equal(t, "B1", got.CEFRLevel)

	rec = app.do(http.MethodPut, "/api/user/settings", models.Settings{NativeLanguage: "Klingon"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVocabularyAndNotes(t *testing.T) {
	app := newTestApp(t)
	app.signUp("v@example.com")

	rec := app.do(http.MethodPost, "/api/vocabulary", map[string]string{"turkish": "kedi", "english": "cat"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	word := decode[models.VocabularyItem](t, rec)
	assert.Equal(t, "cat", word.Translation)

	rec = app.do(http.MethodPost, "/api/vocabulary", map[string]string{"turkish": "kedi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(http.MethodGet, "/api/vocabulary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.VocabularyItem](t, rec), 1)

	rec = app.do(http.MethodGet, "/api/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.ProgressOverview](t, rec).TotalWordsLearned)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodDelete, "/api/vocabulary", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, "/api/vocabulary?id=999", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/api/vocabulary?id="+itoa(word.ID), nil).Code)

	rec = app.do(http.MethodPost, "/api/notes", addNoteRequest{Content: "-ler / -lar follows vowel harmony"})
	require.Equal(t, http.StatusCreated, rec.Code)
	note := decode[models.Note](t, rec)

	rec = app.do(http.MethodGet, "/api/notes", nil)
	assert.Len(t, decode[[]models.Note](t, rec), 1)
	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/api/notes?id="+itoa(note.ID), nil).Code)
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func lessonContent(t *testing.T) json.RawMessage {
	t.Helper()
	ex := func(id, typ, question, answer string) map[string]any {
		return map[string]any{
			"id": id, "type": typ, "question": question, "answer": answer,
			"wordBank": []string{}, "correctOrder": []string{}, "options": []string{},
			"hint": "", "context": "", "wordDetails": []any{},
		}
	}
	raw, err := json.Marshal(map[string]any{"exercises": []any{
		ex("e1", "translate-to-native", "kedi", "cat"),
		ex("e2", "translate-to-turkish", "water", "su"),
	}})
	require.NoError(t, err)
	return raw
}

func TestLessonFlow(t *testing.T) {
	app := newTestApp(t)
	app.signUp("l@example.com")

	rec := app.do(http.MethodPost, "/api/lesson/generate", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no vocabulary yet")

	for _, w := range []addWordRequest{{Turkish: "kedi", Translation: "cat"}, {Turkish: "su", Translation: "water"}} {
		require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/vocabulary", w).Code)
	}

	app.provider.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	rec = app.do(http.MethodPost, "/api/lesson/generate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.True(t, decode[errorEnvelope](t, rec).Error.Retryable)

	app.provider.AddResponse(llm.MockResponse{Content: lessonContent(t)})
	rec = app.do(http.MethodPost, "/api/lesson/generate", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[lesson.View](t, rec)
	assert.Equal(t, 2, view.Total)
	assert.Empty(t, view.Exercise.Answer)

	assert.Equal(t, http.StatusConflict, app.do(http.MethodPost, "/api/lesson/continue", nil).Code)

	rec = app.do(http.MethodPost, "/api/lesson/answer", answerRequest{Answer: "Cat"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[lesson.Feedback](t, rec).Attempt.IsCorrect)

	rec = app.do(http.MethodPost, "/api/lesson/continue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	step := decode[services.Step](t, rec)
	require.NotNil(t, step.Lesson)
	assert.Equal(t, "e2", step.Lesson.Exercise.ID)

	rec = app.do(http.MethodPost, "/api/lesson/answer", answerRequest{Answer: "su"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[lesson.Feedback](t, rec).IsLast)

	rec = app.do(http.MethodPost, "/api/lesson/continue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	step = decode[services.Step](t, rec)
	require.NotNil(t, step.Summary)
	assert.True(t, step.Summary.Persisted)
	assert.Equal(t, 20, step.Summary.XPEarned)
	assert.Equal(t, 1, step.Summary.NewStreak)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/lesson", nil).Code)

	rec = app.do(http.MethodGet, "/api/lesson/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]models.LessonHistory](t, rec)
	require.Len(t, history, 1)

	rec = app.do(http.MethodGet, "/api/vocabulary", nil)
	for _, w := range decode[[]models.VocabularyItem](t, rec) {
		assert.Equal(t, 1, w.MasteryLevel, w.Turkish)
		assert.Equal(t, 1, w.TimesPracticed, w.Turkish)
	}
}

func TestLessonAbandon(t *testing.T) {
	app := newTestApp(t)
	app.signUp("a@example.com")
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/vocabulary", addWordRequest{Turkish: "kedi", Translation: "cat"}).Code)

	app.provider.AddResponse(llm.MockResponse{Content: lessonContent(t)})
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/lesson/generate", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/lesson", nil).Code)

	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/api/lesson", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodDelete, "/api/lesson", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodPost, "/api/lesson/answer", answerRequest{Answer: "cat"}).Code)
}

func TestCheckAndComplete(t *testing.T) {
	app := newTestApp(t)
	app.signUp("c@example.com")

	rec := app.do(http.MethodPost, "/api/lesson/check", checkRequest{
		Exercise: models.ExerciseWire{ID: "1", Type: models.ExerciseTranslateToTurkish, Question: "thank you", Answer: "teşekkürler"},
		Answer:   "tesekkürler",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	check := decode[services.CheckResult](t, rec)
	assert.Equal(t, "close", string(check.Verdict))

	rec = app.do(http.MethodPost, "/api/lesson/complete", models.LessonCompletionRequest{TotalQuestions: 8, CorrectAnswers: 6})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[models.LessonCompletionResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 64, resp.XPEarned)
	assert.Equal(t, 1, resp.NewStreak)

	rec = app.do(http.MethodPost, "/api/lesson/complete", models.LessonCompletionRequest{TotalQuestions: 2, CorrectAnswers: 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/readyz", nil).Code)

	rec := app.do(http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestBadJSON(t *testing.T) {
	app := newTestApp(t)
	app.signUp("j@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString("{"))
	req.AddCookie(app.cookie)
	rec := httptest.NewRecorder()
	app.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decode[errorEnvelope](t, rec).Error.Code)
}
