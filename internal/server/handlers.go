package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"interview-chat/internal/analytics"
	"interview-chat/internal/llm"
	"interview-chat/internal/prompt"
	"interview-chat/internal/session"
	"interview-chat/internal/storage"
)

type generateRequest struct {
	Prompt         string `json:"prompt"`
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
	// Only used to seed brand-new sessions; ignored for existing ones.
	Industry string `json:"industry"`
	Role     string `json:"role"`
}

type usagePayload struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type generateResponse struct {
	Result         string       `json:"result"`
	ConversationID string       `json:"conversationId"`
	Usage          usagePayload `json:"usage"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// handleGenerate runs one interview turn: resolve the session, append the
// candidate's message, ask the provider, store the reply.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "only POST requests are supported", nil)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON request body", err)
		return
	}
	if req.Prompt == "" || req.UserID == "" || req.ConversationID == "" {
		s.writeError(w, http.StatusBadRequest, "prompt, userId and conversationId are required", nil)
		return
	}

	key := session.Key{UserID: req.UserID, ConversationID: req.ConversationID}
	messages, err := s.store.GetOrCreate(key, prompt.Seed(req.Industry, req.Role))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid session key", err)
		return
	}

	messages = append(messages, llm.Message{Role: "user", Content: req.Prompt})

	resp, err := s.llm.Generate(r.Context(), messages)
	if err != nil {
		status := llm.StatusCode(err)
		if status == 0 {
			status = http.StatusInternalServerError
		}
		log.Printf("❌ completion failed for %s: %v", key, err)
		// The turn is not stored: the session keeps the transcript it had
		// before this request.
		s.writeError(w, status, "completion request failed", err)
		return
	}

	messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content})
	s.store.TrimAndStore(key, messages)

	s.recordTurn(key, req.Prompt, resp)

	writeJSON(w, http.StatusOK, generateResponse{
		Result:         resp.Content,
		ConversationID: req.ConversationID,
		Usage: usagePayload{
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
			TotalTokens:      resp.TotalTokens,
		},
	})
}

// recordTurn appends the turn to the journal. Best-effort: a failed write is
// logged and never fails the request.
func (s *Server) recordTurn(key session.Key, userPrompt string, resp llm.Response) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.AppendInteraction(storage.Event{
		Timestamp:        time.Now().UTC(),
		UserID:           key.UserID,
		ConversationID:   key.ConversationID,
		UserMessage:      userPrompt,
		AssistantMessage: resp.Content,
		Model:            resp.Model,
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	})
	if err != nil {
		log.Printf("⚠️ failed to record turn for %s: %v", key, err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET requests are supported", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"active_sessions": s.store.Size(),
		"uptime":          time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleStats serves daily usage aggregates from the turn journal.
// Accepts ?date=YYYY-MM-DD, defaulting to today (UTC).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET requests are supported", nil)
		return
	}
	if s.recorder == nil {
		s.writeError(w, http.StatusNotFound, "turn journal is not configured", nil)
		return
	}

	date := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD", err)
			return
		}
		date = parsed
	}

	events, err := s.recorder.LoadInteractions()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to read turn journal", err)
		return
	}

	writeJSON(w, http.StatusOK, analytics.AnalyzeDailyLogs(events, date))
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := errorResponse{Error: msg}
	// Raw error detail is only exposed in the development configuration.
	if s.dev && err != nil {
		body.Details = err.Error()
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ failed to encode response: %v", err)
	}
}
