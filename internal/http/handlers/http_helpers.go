package handlers

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/rogerio-castellano/seller-dashboard/internal/logx"
	"github.com/rogerio-castellano/seller-dashboard/internal/view"
)

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.TemplateData) {
	data.CurrentPath = r.URL.Path
	if sc := SessionFromContext(r.Context()); sc != nil {
		cur := sc.Current()
		data.User = cur.User
		data.LoggedIn = cur.LoggedIn()
		if data.Theme == "" {
			data.Theme = cur.Theme
		}
	}
	if err := h.views.Render(w, status, page, data); err != nil {
		logx.Error().Err(err).Str("page", page).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.render(w, r, status, "pages/error.html", view.TemplateData{
		Title: http.StatusText(status),
		Data:  view.ErrorPage{Status: status, Message: message},
	})
}

// ClientIP is the remote host without port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func seeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
