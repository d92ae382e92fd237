package server

// handlers module holds common HTTP handlers and helper functions
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// HTTPError represents HTTP error record
type HTTPError struct {
	Method     string       `json:"method"`           // HTTP method
	HTTPCode   int          `json:"http_code"`        // HTTP error code
	Code       int          `json:"code"`             // server status code
	Timestamp  string       `json:"timestamp"`        // timestamp of the error
	Path       string       `json:"path"`             // URL path
	UserAgent  string       `json:"user_agent"`       // http user-agent field
	RemoteAddr string       `json:"remote_addr"`      // http.Request remote address
	Reason     string       `json:"reason"`           // error code reason
	Error      string       `json:"error"`            // error message
	Detail     []FieldError `json:"detail,omitempty"` // validation details
}

// StatusRecord represents service status
type StatusRecord struct {
	Service  string    `json:"service"`  // service name
	Artifact string    `json:"artifact"` // artifact file
	Version  string    `json:"version"`  // server version
	Started  time.Time `json:"started"`  // start time of the service
	Uptime   string    `json:"uptime"`   // service uptime
}

// helper function to check if client asks for HTML content
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// WriteJSON writes given data as JSON with provided HTTP code
func WriteJSON(w http.ResponseWriter, httpCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Println("ERROR: unable to marshal data", err)
		httpCode = http.StatusInternalServerError
		body, _ = json.Marshal(HTTPError{HTTPCode: httpCode, Code: JsonMarshal, Reason: errorMessage(JsonMarshal), Error: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	w.Write(body)
}

// ReplyError provides standard HTTP error reply, validation errors carry
// details about failed fields. Browsers get HTML error page.
func ReplyError(w http.ResponseWriter, r *http.Request, code int, err error, httpCode int) {
	if wantsHTML(r) {
		tmpl := MakeTmpl("", "Error")
		tmpl["Code"] = code
		tmpl["Reason"] = errorMessage(code)
		tmpl["Error"] = err
		tmpl["HttpCode"] = httpCode
		Page(w, r, "error.tmpl", tmpl, 0)
		return
	}
	hrec := HTTPError{
		Method:     r.Method,
		HTTPCode:   httpCode,
		Code:       code,
		Timestamp:  time.Now().String(),
		Path:       r.RequestURI,
		UserAgent:  r.Header.Get("User-Agent"),
		RemoteAddr: r.RemoteAddr,
		Reason:     errorMessage(code),
		Error:      err.Error(),
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		hrec.Detail = verr.Fields
	}
	if Config.Verbose > 0 {
		log.Printf("HTTPError: %+v", hrec)
	}
	WriteJSON(w, httpCode, hrec)
}

// ReplyValidationError replies with 422 for request which failed validation
func ReplyValidationError(w http.ResponseWriter, r *http.Request, err error) {
	ReplyError(w, r, ValidationFailed, err, http.StatusUnprocessableEntity)
}

// MakeTmpl makes initial template record
func MakeTmpl(name, title string) TmplRecord {
	tmpl := make(TmplRecord)
	tmpl["Title"] = title
	tmpl["Base"] = Config.Base
	tmpl["ServerInfo"] = Info(name)
	tmpl["StartTime"] = time.Now().Unix()
	return tmpl
}

// Page writes HTML page composed from top, given template and bottom parts
func Page(w http.ResponseWriter, r *http.Request, tfile string, tmpl TmplRecord, httpCode int) {
	var html strings.Builder
	for _, t := range []string{"top.tmpl", tfile, "bottom.tmpl"} {
		page, err := templates.Tmpl(t, tmpl)
		if err != nil {
			log.Printf("ERROR: unable to render %s template, error %v", t, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		html.WriteString(page)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if httpCode == 0 {
		httpCode = tmpl.GetInt("HttpCode")
	}
	if httpCode == 0 {
		httpCode = http.StatusOK
	}
	w.WriteHeader(httpCode)
	w.Write([]byte(html.String()))
}

// StatusHandler provides status of given service
func StatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := StatusRecord{
			Service:  svc.Name,
			Artifact: svc.Artifact,
			Version:  Version,
			Started:  svc.Started,
			Uptime:   time.Since(svc.Started).Round(time.Second).String(),
		}
		if !wantsHTML(r) {
			WriteJSON(w, http.StatusOK, rec)
			return
		}
		tmpl := MakeTmpl(svc.Name, svc.Title+" status")
		tmpl["Status"] = rec
		Page(w, r, "status.tmpl", tmpl, http.StatusOK)
	}
}

// DocsHandler provides documentation page of given service
func DocsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := mdToHTML(svc.Docs)
		if err != nil {
			ReplyError(w, r, FileIOError, err, http.StatusInternalServerError)
			return
		}
		tmpl := MakeTmpl(svc.Name, svc.Title+" documentation")
		tmpl["Content"] = template.HTML(content)
		Page(w, r, "docs.tmpl", tmpl, http.StatusOK)
	}
}
