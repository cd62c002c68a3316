package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/engine"
	"github.com/abhisek/intervue/internal/evaluator"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/notify"
	"github.com/abhisek/intervue/internal/store"
)

func testServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	hub := notify.NewHub(zap.NewNop())
	eng := engine.New(st.Sessions(), evaluator.NewFallback(), zap.NewNop(), engine.WithNotifier(hub))
	srv := httptest.NewServer(New(eng, hub, zap.NewNop()).Router())
	t.Cleanup(srv.Close)
	return srv, eng
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeSession(t *testing.T, resp *http.Response) *interview.Session {
	t.Helper()
	defer resp.Body.Close()
	var s interview.Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
	return &s
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInviteFlowOverHTTP(t *testing.T) {
	srv, _ := testServer(t)

	// Interviewer creates the invite.
	resp := postJSON(t, srv.URL+"/api/interviews/", map[string]string{"notes": "backend role"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeSession(t, resp)
	require.NotEmpty(t, created.InviteToken)

	base := srv.URL + "/api/invite/" + created.InviteToken

	// Candidate bootstraps the invite.
	getResp, err := http.Get(base + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	boot := decodeSession(t, getResp)
	require.Equal(t, interview.StatusWaitingProfile, boot.Status)
	require.Equal(t, []string{"name", "email", "phone", "resume"}, boot.MissingFields)

	// Starting before the profile is complete is rejected with the list of
	// missing fields and no effect on the session.
	startResp := postJSON(t, base+"/start", nil)
	require.Equal(t, http.StatusBadRequest, startResp.StatusCode)
	startResp.Body.Close()

	// Profile, then resume with embedded text for extraction.
	profResp := postJSON(t, base+"/profile", map[string]string{
		"name": "Ada Lovelace", "email": "ada@example.com", "phone": "+1 555 0100",
	})
	require.Equal(t, http.StatusOK, profResp.StatusCode)
	profResp.Body.Close()

	resumeResp := postJSON(t, base+"/resume", map[string]any{
		"originalName": "ada.pdf",
		"mimeType":     "application/pdf",
		"size":         2048,
		"text":         "Ada Lovelace\nada@example.com\n+1 555 0100\n",
	})
	require.Equal(t, http.StatusOK, resumeResp.StatusCode)
	ready := decodeSession(t, resumeResp)
	require.Equal(t, interview.StatusReady, ready.Status)

	// Start and answer all six questions.
	startResp = postJSON(t, base+"/start", nil)
	require.Equal(t, http.StatusOK, startResp.StatusCode)
	started := decodeSession(t, startResp)
	require.Equal(t, interview.StatusInProgress, started.Status)
	require.Len(t, started.Questions, 6)

	var last answerResponse
	for i := 1; i <= 6; i++ {
		ansResp := postJSON(t, base+"/answers", map[string]any{
			"answer":     fmt.Sprintf("answer %d touching React and Node in some depth", i),
			"durationMs": 12000,
		})
		require.Equal(t, http.StatusOK, ansResp.StatusCode, "answer %d", i)
		last = answerResponse{}
		require.NoError(t, json.NewDecoder(ansResp.Body).Decode(&last))
		ansResp.Body.Close()
	}

	require.True(t, last.IsComplete)
	require.Equal(t, interview.StatusCompleted, last.Session.Status)
	require.NotNil(t, last.Session.FinalScore)

	// Submitting past completion conflicts.
	lateResp := postJSON(t, base+"/answers", map[string]any{"answer": "late"})
	require.Equal(t, http.StatusConflict, lateResp.StatusCode)
	lateResp.Body.Close()
}

func TestProfileIncompleteStartPayload(t *testing.T) {
	srv, eng := testServer(t)
	s, err := eng.CreateInvite(t.Context(), engine.CreateInput{})
	require.NoError(t, err)

	// Promote the session to ready-adjacent state minus the resume so the
	// start guard itself fires.
	_, err = eng.AttachProfile(t.Context(), s.InviteToken, engine.ProfileInput{
		Name: "Ada", Email: "ada@example.com", Phone: "555",
	})
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/api/invite/"+s.InviteToken+"/start", nil)
	defer resp.Body.Close()
	// Only the resume is missing, so the rejection names exactly that field.
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error         string   `json:"error"`
		MissingFields []string `json:"missingFields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, []string{"resume"}, body.MissingFields)
}

func TestUnknownTokenIs404(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/invite/no-such-token/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExpiredSessionIs410(t *testing.T) {
	srv, eng := testServer(t)
	s, err := eng.CreateInvite(t.Context(), engine.CreateInput{})
	require.NoError(t, err)
	_, err = eng.ExpireSession(t.Context(), s.ID)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/api/invite/"+s.InviteToken+"/profile", map[string]string{"name": "late"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestListAndExpireEndpoints(t *testing.T) {
	srv, eng := testServer(t)
	s, err := eng.CreateInvite(t.Context(), engine.CreateInput{Name: "Grace Hopper", Email: "grace@example.com"})
	require.NoError(t, err)

	listResp, err := http.Get(srv.URL + "/api/interviews/?search=grace")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var sessions []*interview.Session
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&sessions))
	require.Len(t, sessions, 1)
	require.Equal(t, s.ID, sessions[0].ID)

	expResp := postJSON(t, srv.URL+"/api/interviews/"+s.ID+"/expire", nil)
	require.Equal(t, http.StatusOK, expResp.StatusCode)
	expired := decodeSession(t, expResp)
	require.Equal(t, interview.StatusExpired, expired.Status)
}

func TestMalformedBodyIs400(t *testing.T) {
	srv, eng := testServer(t)
	s, err := eng.CreateInvite(t.Context(), engine.CreateInput{})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/invite/"+s.InviteToken+"/profile", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
