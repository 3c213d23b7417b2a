package web

import (
	"errors"
	"net/http"

	"github.com/abacusweb/abacus/internal/calc"
	"github.com/abacusweb/abacus/internal/services/shared/htmx"
	"github.com/abacusweb/abacus/internal/services/web/templates"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Handler serves the calculator pages and key-press endpoints.
type Handler struct {
	sessions *sessionStore
	tracer   trace.Tracer
}

// NewHandler builds the HTTP handler for the web server.
func NewHandler() http.Handler {
	h := newHandler()
	return h.routes()
}

func newHandler() *Handler {
	return &Handler{
		sessions: newSessionStore(),
		tracer:   otel.Tracer("abacusweb/web"),
	}
}

// routes wires the handler endpoints.
func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handleHome)
	mux.HandleFunc("/keys", h.handleKeys)
	mux.HandleFunc("/ws", h.handleWS)
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// handleHome renders the calculator page with the session's current display.
func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, err := h.ensureSession(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	view := displayView(sess)
	lang := resolveLanguage(r).String()
	if err := htmx.RenderPage(w, r, templates.Calculator(view), templates.Home(view, lang)); err != nil {
		http.Error(w, "render page", http.StatusInternalServerError)
	}
}

// handleKeys applies one key press to the session engine and re-renders the
// display.
func (h *Handler) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "parse form", http.StatusBadRequest)
		return
	}
	key := r.PostForm.Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	sess, err := h.ensureSession(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "web.key_press",
		trace.WithAttributes(attribute.String("calc.key", key)))
	defer span.End()
	r = r.WithContext(ctx)

	var applyErr error
	sess.withEngine(func(e *calc.Engine) {
		applyErr = applyKey(e, key)
	})
	if applyErr != nil {
		if errors.Is(applyErr, errUnknownKey) {
			http.Error(w, "unknown key", http.StatusBadRequest)
			return
		}
		http.Error(w, "apply key", http.StatusInternalServerError)
		return
	}

	view := displayView(sess)
	lang := resolveLanguage(r).String()
	if err := htmx.RenderPage(w, r, templates.Display(view), templates.Home(view, lang)); err != nil {
		http.Error(w, "render display", http.StatusInternalServerError)
	}
}

// ensureSession resolves the request's calculator session, creating one and
// setting the cookie when absent.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) (*session, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return h.sessions.get(cookie.Value, resolveLanguage(r)), nil
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	writeSessionCookie(w, id)
	return h.sessions.get(id, resolveLanguage(r)), nil
}

// displayView snapshots the session display under its lock.
func displayView(sess *session) templates.DisplayView {
	var view templates.DisplayView
	sess.withEngine(func(e *calc.Engine) {
		view = templates.DisplayView{
			Previous: e.PreviousLine(),
			Current:  e.CurrentLine(),
			Errored:  e.Errored(),
		}
	})
	return view
}
