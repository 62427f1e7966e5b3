package http

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/contactx"
	"github.com/fwojciec/contactx/session"
	"github.com/go-chi/chi/v5"
)

// MaxInputBytes bounds the pasted text accepted by extraction routes.
const MaxInputBytes = 1 << 20

// ExtractRequest is the body of POST /api/extract.
type ExtractRequest struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// ExtractResponse is the body returned by POST /api/extract.
type ExtractResponse struct {
	Contacts    []contactx.Contact `json:"contacts"`
	Message     string             `json:"message,omitempty"`
	Recipients  string             `json:"recipients"`
	Details     string             `json:"details"`
	DetailsHTML string             `json:"details_html"`
	DetailLines string             `json:"detail_lines"`
}

// ErrorResponse represents an error.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	StatusCode int    `json:"status_code"`
}

type pageData struct {
	session.View
	Styles  []contactx.DetailStyle
	Refresh int
}

var templateFuncs = template.FuncMap{
	"dash": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "-"
		}
		return s
	},
	"safe": func(s string) template.HTML {
		// Markup comes from the renderer's sanitizing policy.
		return template.HTML(s)
	},
}

// handleIndex handles GET / requests.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c := s.sessions.Controller(w, r)
	v := c.Snapshot()

	data := pageData{View: v, Styles: contactx.DetailStyles}
	switch {
	case v.Loading:
		data.Refresh = 1
	case v.RecipientsCopied || v.DetailsCopied:
		data.Refresh = int(session.CopiedWindow / time.Second)
	}

	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Set("Vary", "Sec-CH-Prefers-Color-Scheme")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

// handleExtract handles POST /extract form submissions. The request blocks
// until the extraction finishes; a submission while another is in flight
// for the same session is ignored.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	c := s.sessions.Controller(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, MaxInputBytes)
	if err := r.ParseForm(); err != nil {
		s.sendError(w, contactx.Errorf(contactx.EINVALID, "invalid form: %v", err))
		return
	}

	if !c.Loading() {
		c.SetInput(r.PostForm.Get("text"))
	}
	// A client that navigates away must not abort the attempt.
	c.Extract(context.WithoutCancel(r.Context()))

	redirectHome(w, r)
}

// handleClear handles POST /clear.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.sessions.Controller(w, r).Clear()
	redirectHome(w, r)
}

// handleTheme handles POST /theme. A failed save is logged by the
// controller; the page still switches theme.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	_, _ = s.sessions.Controller(w, r).ToggleTheme(r.Context())
	redirectHome(w, r)
}

// handleFormat handles POST /format.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	c := s.sessions.Controller(w, r)

	style, err := contactx.ParseDetailStyle(r.FormValue("style"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	c.SelectStyle(style)
	redirectHome(w, r)
}

// handleCopy handles POST /copy/{target}. The clipboard written is the one
// of the machine running the server.
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	c := s.sessions.Controller(w, r)

	target, err := session.ParseTarget(chi.URLParam(r, "target"))
	if err != nil {
		s.sendError(w, err)
		return
	}
	c.Copy(target)
	redirectHome(w, r)
}

// handleAPIExtract handles POST /api/extract. It is stateless: no session
// is created and the result is returned in every format.
func (s *Server) handleAPIExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxInputBytes)

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, contactx.Errorf(contactx.EINVALID, "Invalid JSON"))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		s.sendError(w, contactx.Errorf(contactx.EINVALID, "text is required"))
		return
	}

	style := contactx.DetailSimple
	if req.Style != "" {
		var err error
		if style, err = contactx.ParseDetailStyle(req.Style); err != nil {
			s.sendError(w, err)
			return
		}
	}

	res, err := s.cfg.Extractor.Extract(context.WithoutCancel(r.Context()), text)
	if err != nil {
		s.sendError(w, err)
		return
	}

	resp := ExtractResponse{Contacts: []contactx.Contact{}}
	if res != nil && len(res.Contacts) > 0 {
		d := contactx.BuildDetail(res.Contacts, style)
		resp.Contacts = res.Contacts
		resp.Recipients = contactx.RecipientList(res.Contacts)
		resp.Details = d.Text()
		resp.DetailLines = contactx.DetailLines(res.Contacts)
		if s.cfg.Renderer != nil {
			if resp.DetailsHTML, err = s.cfg.Renderer.Render(d); err != nil {
				s.sendError(w, err)
				return
			}
		}
	} else {
		resp.Message = session.NoContactsMessage
	}

	writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) sendError(w http.ResponseWriter, err error) {
	code, message := contactx.ErrorCode(err), contactx.ErrorMessage(err)
	if code == contactx.EINTERNAL {
		s.logger.Error("internal error", "error", err)
	}
	status := ErrorStatusCode(code)
	writeJSON(w, ErrorResponse{Error: message, Code: code, StatusCode: status}, status)
}

func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(data)
}

var codes = map[string]int{
	contactx.EINVALID:      http.StatusBadRequest,
	contactx.EUNAUTHORIZED: http.StatusUnauthorized,
	contactx.ENOTFOUND:     http.StatusNotFound,
	contactx.EUNAVAILABLE:  http.StatusServiceUnavailable,
	contactx.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
