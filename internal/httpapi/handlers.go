package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/engine"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/notify"
	"github.com/abhisek/intervue/internal/resume"
	"github.com/abhisek/intervue/internal/store"
)

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type resumeRequest struct {
	OriginalName string `json:"originalName"`
	StoredName   string `json:"storedName"`
	MimeType     string `json:"mimeType"`
	Size         int64  `json:"size"`
	// Text is the extracted plain text of the resume. Parsing the binary
	// document happens upstream.
	Text string `json:"text"`
}

type answerRequest struct {
	Answer     string `json:"answer"`
	DurationMs int64  `json:"durationMs"`
}

type createRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type answerResponse struct {
	Answer       interview.Answer    `json:"answer"`
	NextQuestion *interview.Question `json:"nextQuestion"`
	IsComplete   bool                `json:"isComplete"`
	Session      *interview.Session  `json:"session"`
}

func (s *Server) bootstrapInvite(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.GetByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) attachProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := s.engine.AttachProfile(r.Context(), chi.URLParam(r, "token"), engine.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) attachResume(w http.ResponseWriter, r *http.Request) {
	var req resumeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.OriginalName == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("originalName is required"))
		return
	}
	fields := resume.ExtractFields(req.Text)
	session, err := s.engine.AttachResume(r.Context(), chi.URLParam(r, "token"), engine.ResumeInput{
		Attachment: interview.ResumeAttachment{
			OriginalName: req.OriginalName,
			StoredName:   req.StoredName,
			MimeType:     req.MimeType,
			Size:         req.Size,
		},
		Extracted: engine.ProfileInput{
			Name:  fields.Name,
			Email: fields.Email,
			Phone: fields.Phone,
		},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) startInterview(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.StartInterview(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := s.engine.SubmitAnswer(r.Context(), chi.URLParam(r, "token"), engine.AnswerInput{
		Text:       req.Answer,
		DurationMs: req.DurationMs,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{
		Answer:       result.Answer,
		NextQuestion: result.NextQuestion,
		IsComplete:   result.Completed,
		Session:      result.Session,
	})
}

func (s *Server) completeInterview(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.CompleteInterview(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := s.engine.CreateInvite(r.Context(), engine.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessions, err := s.engine.List(r.Context(), store.ListFilter{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) expireSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.engine.ExpireSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// observe attaches a websocket client to a session's event room. The client
// only listens; inbound messages are drained and dropped.
func (s *Server) observe(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.engine.GetByID(r.Context(), sessionID); err != nil {
		s.writeError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := notify.NewClient(conn)
	s.hub.Join(sessionID, client)
	defer func() {
		s.hub.Leave(sessionID, client)
		client.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
