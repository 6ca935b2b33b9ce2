// Package http implements the REST API for Skill Tracker Hub.
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/application/command"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/application/query"
	appsession "github.com/skilltrack-hub/skill-tracker-hub/internal/application/session"
	domainsession "github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/storage"
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// sessionFromRequest resolves the session cookie to an active session.
// Returns ErrSessionNotFound when the cookie is missing or stale.
func (s *Server) sessionFromRequest(r *http.Request) (*domainsession.Session, error) {
	cookie, err := r.Cookie(s.config.SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, shared.ErrSessionNotFound
	}
	return s.deps.Sessions.Current(r.Context(), cookie.Value)
}

// setSessionCookie attaches the session token to the response.
func (s *Server) setSessionCookie(w http.ResponseWriter, sess *domainsession.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie on the client.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// decodeJSONBody parses a JSON request body into dst with a size cap.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return shared.WrapError("http", "Decode", shared.ErrInvalidFormat, "invalid JSON body", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, http.StatusNotFound, "not_found", "No such endpoint")
		return
	}

	info := map[string]interface{}{
		"name":        "Skill Tracker Hub API",
		"description": "REST API for tracking and validating student skills",
		"endpoints": map[string]string{
			"health":      "/health",
			"register":    "/api/register",
			"login":       "/api/login",
			"skills":      "/api/skills",
			"submissions": "/api/submissions",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	// Default health response
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": s.Uptime().String(),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// registerRequest mirrors the registration form fields.
type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// handleRegister handles POST /api/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	sess, err := s.deps.Sessions.Register(r.Context(), appsession.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, sess)
	writeJSON(w, http.StatusCreated, sess.Account)
}

// loginRequest mirrors the login form fields. Role must match the stored
// account's role; a mismatch reads as not-found.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// handleLogin handles POST /api/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	sess, err := s.deps.Sessions.Login(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, sess.Account)
}

// handleLogout handles POST /api/logout. Logout is idempotent: a missing
// or stale cookie still yields success.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.config.SessionCookie); err == nil && cookie.Value != "" {
		if err := s.deps.Sessions.Logout(r.Context(), cookie.Value); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
	}

	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// handleCurrentUser handles GET /api/current_user
func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.Account)
}

// handleDepartments handles GET /api/departments
func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments": shared.Departments,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetSkills handles GET /api/skills
func (s *Server) handleGetSkills(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.deps.GetMySkillsHandler.Handle(r.Context(), query.GetMySkillsQuery{Actor: sess})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// skillResponse mirrors the read-side DTO keys so write responses look the
// same as listings to the client.
type skillResponse struct {
	ID          int64     `json:"id"`
	SkillName   string    `json:"skillName"`
	Level       string    `json:"level"`
	Evidence    string    `json:"evidence,omitempty"`
	Status      string    `json:"status"`
	Feedback    string    `json:"feedback"`
	ReviewedBy  string    `json:"reviewed_by,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newSkillResponse(s *submission.Submission) skillResponse {
	return skillResponse{
		ID:          s.ID.Int64(),
		SkillName:   s.SkillName,
		Level:       string(s.Level),
		Evidence:    s.Evidence,
		Status:      string(s.Status),
		Feedback:    s.Feedback,
		ReviewedBy:  string(s.ReviewedBy),
		SubmittedAt: s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// handleAddSkill handles POST /api/skills. The request is a multipart form
// with skillName and level fields plus an optional evidence file.
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Expected multipart form data")
		return
	}

	evidence, err := s.storeEvidence(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	cmd := command.AddSkillCommand{
		Actor:     sess,
		SkillName: r.FormValue("skillName"),
		Level:     r.FormValue("level"),
		Evidence:  evidence,
	}

	result, err := s.deps.AddSkillHandler.Handle(r.Context(), cmd)
	if err != nil {
		// Orphaned evidence files are cheap; still tidy up on rejection.
		if evidence != "" && s.deps.Evidence != nil {
			if rerr := s.deps.Evidence.Remove(evidence); rerr != nil {
				s.logger.Warn("failed to remove orphaned evidence", logger.Err(rerr))
			}
		}
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newSkillResponse(result.Submission))
}

// storeEvidence saves an optional evidence upload and returns its stored
// reference. A request without an evidence part returns an empty reference.
func (s *Server) storeEvidence(r *http.Request) (string, error) {
	if s.deps.Evidence == nil {
		return "", nil
	}

	file, header, err := r.FormFile("evidence")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", shared.WrapError("http", "Upload", shared.ErrInvalidFormat, "malformed evidence upload", err)
	}
	defer file.Close()

	if !storage.IsAllowed(header.Filename) {
		return "", shared.ErrEvidenceRejected
	}

	return s.deps.Evidence.Save(header.Filename, file)
}

// handleSkillSummary handles GET /api/skills/summary
func (s *Server) handleSkillSummary(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	result, err := s.deps.GetSkillSummaryHandler.Handle(r.Context(), query.GetSkillSummaryQuery{Actor: sess})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleDashboard handles GET /api/dashboard. Students get their own card,
// faculty get the review dashboard for their department.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if sess.IsFaculty() {
		if s.deps.FacultyDashboard == nil {
			writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Dashboard not configured")
			return
		}
		dashboard, err := s.deps.FacultyDashboard.Build(r.Context(), sess.Account.Department)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
		return
	}

	if s.deps.StudentDashboard == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Dashboard not configured")
		return
	}

	email, err := shared.NewEmail(string(sess.Account.Email))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	dashboard, err := s.deps.StudentDashboard.Build(r.Context(), email)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// ══════════════════════════════════════════════════════════════════════════════
// FACULTY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetSubmissions handles GET /api/submissions
func (s *Server) handleGetSubmissions(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	q := query.GetAllSubmissionsQuery{
		Actor:          sess,
		DepartmentOnly: getQueryParamBool(r, "department_only"),
	}

	result, err := s.deps.GetAllSubmissionsHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// submissionIDFromPath parses the {id} path segment.
func submissionIDFromPath(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.WrapError("http", "ParseID", shared.ErrInvalidID, "submission id must be a positive integer", err)
	}
	return id, nil
}

// statusRequest carries the review verdict.
type statusRequest struct {
	Status string `json:"status"`
}

// handleValidationStatus handles PUT /api/validation/{id}/status
func (s *Server) handleValidationStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	id, err := submissionIDFromPath(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	cmd := command.ReviewSubmissionCommand{
		Actor:        sess,
		SubmissionID: id,
		Status:       req.Status,
	}

	result, err := s.deps.ReviewSubmissionHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		skillResponse
		PreviousStatus string `json:"previous_status"`
	}{newSkillResponse(result.Submission), string(result.PreviousStatus)})
}

// feedbackRequest carries faculty remarks. An empty string clears feedback.
type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

// handleValidationFeedback handles POST /api/validation/{id}/feedback
func (s *Server) handleValidationFeedback(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionFromRequest(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	id, err := submissionIDFromPath(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	var req feedbackRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	cmd := command.LeaveFeedbackCommand{
		Actor:        sess,
		SubmissionID: id,
		Feedback:     req.Feedback,
	}

	result, err := s.deps.LeaveFeedbackHandler.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSkillResponse(result.Submission))
}

// ══════════════════════════════════════════════════════════════════════════════
// EVIDENCE FILE HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// handleGetEvidence handles GET /uploads/{filename}. Requires an active
// session; evidence references are only handed out through the API.
func (s *Server) handleGetEvidence(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessionFromRequest(r); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if s.deps.Evidence == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Evidence storage not configured")
		return
	}

	f, err := s.deps.Evidence.Open(r.PathValue("filename"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		s.writeDomainError(w, r, shared.WrapError("http", "Serve", shared.ErrStoreUnavailable, "failed to stat evidence file", err))
		return
	}

	http.ServeContent(w, r, stat.Name(), stat.ModTime(), f)
}
