package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/llm"
	"github.com/abhisek/mathcoach/internal/metrics"
	"github.com/abhisek/mathcoach/internal/questiongen"
	"github.com/abhisek/mathcoach/internal/session"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    session.Snapshot `json:"data"`
	Error   *struct {
		Code     string            `json:"code"`
		Message  string            `json:"message"`
		Snapshot *session.Snapshot `json:"snapshot"`
	} `json:"error"`
}

func questionReply(prompt, answer string) llm.MockResponse {
	body, _ := json.Marshal(map[string]string{
		"question":       prompt,
		"correct_answer": answer,
		"explanation":    "Work it through step by step.",
	})
	return llm.MockResponse{Content: body}
}

type testServer struct {
	srv   *Server
	creds *credential.MemoryStore
	mock  *llm.MockProvider
	rec   *metrics.Recorder
}

func newTestServer(t *testing.T, withKey bool, replies ...llm.MockResponse) *testServer {
	t.Helper()

	creds := &credential.MemoryStore{}
	if withKey {
		require.NoError(t, creds.Set(context.Background(), "sk-test"))
	}

	mock := llm.NewMockProvider(replies...)
	gen := questiongen.NewWithProvider(mock, questiongen.DefaultConfig())
	rec := metrics.NewRecorder()
	gen.SetObserver(rec)

	srv := NewServer(func() *session.Machine {
		return session.NewMachine(gen, creds, session.Options{Observer: rec})
	}, creds, Options{Metrics: rec})

	return &testServer{srv: srv, creds: creds, mock: mock, rec: rec}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (ts *testServer) createSession(t *testing.T, body any) string {
	t.Helper()
	rec, env := ts.do(t, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, env.Data.SessionID)
	return env.Data.SessionID
}

func TestServer_AdaptiveFlow(t *testing.T) {
	ts := newTestServer(t, true,
		questionReply("What is 2+2?", "4"),
		questionReply("Solve x^2 = 49 for x > 0.", "7"),
	)
	id := ts.createSession(t, map[string]any{"cycle": "junior", "topic": "algebra"})

	rec, env := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Data.Question)
	assert.Equal(t, "What is 2+2?", env.Data.Question.Prompt)
	assert.Equal(t, session.StateAwaitingAnswer, env.Data.State)
	assert.NotContains(t, rec.Body.String(), `"4"`, "accepted answer must not leak")

	rec, env = ts.do(t, http.MethodPost, "/api/sessions/"+id+"/answer", map[string]string{"answer": " x = 4 "})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Data.LastVerdict)
	assert.True(t, env.Data.LastVerdict.IsCorrect)
	assert.Equal(t, "✅ Correct! Well done.", env.Data.StatusMessage)
	assert.Equal(t, "Solve x^2 = 49 for x > 0.", env.Data.Question.Prompt)

	assert.Equal(t, 2, ts.mock.CallCount())
	assert.Contains(t, ts.mock.Calls[1].Messages[0].Content, "harder")
}

func TestServer_ValidationErrors(t *testing.T) {
	ts := newTestServer(t, false)
	id := ts.createSession(t, nil)

	rec, env := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "missing-key", env.Error.Code)
	assert.Equal(t, "❌ Please enter your API key.", env.Error.Message)
	require.NotNil(t, env.Error.Snapshot)
	assert.Equal(t, "❌ Please enter your API key.", env.Error.Snapshot.StatusMessage)

	rec, _ = ts.do(t, http.MethodPut, "/api/credential", map[string]string{"key": "sk-live"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = ts.do(t, http.MethodPost, "/api/sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "missing-cycle", env.Error.Code)
}

func TestServer_GenerationFailure(t *testing.T) {
	ts := newTestServer(t, true, llm.MockResponse{Content: json.RawMessage(`{"question":"What is 3+3?"}`)})
	id := ts.createSession(t, map[string]any{"cycle": "senior", "topic": "functions"})

	rec, env := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(questiongen.CauseMalformedResponse), env.Error.Code)
	require.NotNil(t, env.Error.Snapshot)
	assert.Nil(t, env.Error.Snapshot.Question)
	assert.Equal(t, session.StateIdle, env.Error.Snapshot.State)
}

func TestServer_FailedFollowUpStillGrades(t *testing.T) {
	ts := newTestServer(t, true, questionReply("What is 5x if x = 2?", "10"))
	id := ts.createSession(t, map[string]any{"cycle": "junior", "topic": "algebra"})

	rec, _ := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/answer", map[string]string{"answer": "12"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Data.LastVerdict)
	assert.False(t, env.Data.LastVerdict.IsCorrect)
	assert.Equal(t, "❌ Not quite. Correct answer: 10\n❌ Error fetching follow-up question.", env.Data.StatusMessage)
	assert.Equal(t, "What is 5x if x = 2?", env.Data.Question.Prompt)
}

func TestServer_AnswerWithoutQuestion(t *testing.T) {
	ts := newTestServer(t, true)
	id := ts.createSession(t, nil)

	rec, env := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/answer", map[string]string{"answer": "4"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no-active-question", env.Error.Code)
}

func TestServer_Hint(t *testing.T) {
	ts := newTestServer(t, true, questionReply("What is 2+2?", "4"))
	id := ts.createSession(t, map[string]any{"cycle": "junior", "topic": "algebra", "adaptiveMode": false})

	rec, env := ts.do(t, http.MethodPost, "/api/sessions/"+id+"/hint", nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	ts.do(t, http.MethodPost, "/api/sessions/"+id+"/next", nil)
	rec, env = ts.do(t, http.MethodPost, "/api/sessions/"+id+"/hint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Data.HintVisible)
	assert.Equal(t, "Work it through step by step.", env.Data.Question.Explanation)
}

func TestServer_SelectionUpdates(t *testing.T) {
	ts := newTestServer(t, true)
	id := ts.createSession(t, nil)

	rec, env := ts.do(t, http.MethodPut, "/api/sessions/"+id+"/selection", map[string]any{
		"cycle": "senior", "topic": "trigonometry", "difficulty": "exam", "smartMode": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "senior", string(env.Data.Selection.Cycle))
	assert.Equal(t, "exam", string(env.Data.Selection.Difficulty))
	assert.True(t, env.Data.Selection.SmartMode)
	assert.True(t, env.Data.Selection.AdaptiveMode, "omitted fields keep their value")

	rec, _ = ts.do(t, http.MethodPut, "/api/sessions/"+id+"/selection", map[string]any{"topic": "calculus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_SessionLifecycle(t *testing.T) {
	ts := newTestServer(t, true)
	id := ts.createSession(t, nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Credential(t *testing.T) {
	ts := newTestServer(t, false)

	rec, _ := ts.do(t, http.MethodGet, "/api/credential", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"present":false}}`, rec.Body.String())

	rec, _ = ts.do(t, http.MethodPut, "/api/credential", map[string]string{"key": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, http.MethodPut, "/api/credential", map[string]string{"key": "sk-secret-1234"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sk-secret")

	rec, _ = ts.do(t, http.MethodDelete, "/api/credential", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	ok, _ := ts.creds.Has(context.Background())
	assert.False(t, ok)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, true)
	ts.createSession(t, nil)

	rec, _ := ts.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	ts.srv.Router().ServeHTTP(mrec, req)
	require.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "mathcoach_http_sessions_active 1")
}

func TestRegistry_SweepExpiresIdleSessions(t *testing.T) {
	ts := newTestServer(t, true)
	reg := ts.srv.sessions

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	fresh := ts.srv.newMachine()
	stale := ts.srv.newMachine()
	reg.add(stale)
	now = now.Add(20 * time.Minute)
	reg.add(fresh)
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, reg.sweep())
	_, ok := reg.get(stale.ID())
	assert.False(t, ok)
	_, ok = reg.get(fresh.ID())
	assert.True(t, ok)
}
