package server

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/gamegraf/pkg/theme"
	"github.com/umputun/gamegraf/pkg/view"
)

const (
	// template names
	templatePage  = "page.html"
	templateShell = "shell"
	templateFeed  = "feed"
)

// tabLink is a tab selector entry
type tabLink struct {
	Index  int
	Label  string
	Active bool
}

// shellData is the template data of the shell fragment
type shellData struct {
	Title      string
	SID        string
	State      view.ViewState
	Scheme     theme.Scheme
	Tabs       []tabLink
	ThemeIcon  string
	ThemeLabel string
	Feed       feedData
}

// feedData is the template data of the feed area. While the view is loading only
// Loading, SID and Tab are set and the fragment polls the feed endpoint.
type feedData struct {
	SID     string
	Tab     int
	Loading bool
	News    []view.NewsCard
	Deals   *view.DealsModel
}

// indexHandler starts a new session. Every full page load resets the view state.
func (s *Server) indexHandler(w http.ResponseWriter, _ *http.Request) {
	shell := view.NewShell(s.ctx, s.source, s.viewOpts)
	sid := s.sessions.add(shell)
	log.Printf("[DEBUG] session %s started", sid)

	w.Header().Set("Cache-Control", "no-store")
	if err := s.templates.ExecuteTemplate(w, templatePage, s.shellData(sid, shell)); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "failed to render page", err)
	}
}

// tabHandler switches the active tab and renders the shell
func (s *Server) tabHandler(w http.ResponseWriter, r *http.Request) {
	sid, shell, ok := s.session(w, r)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "invalid tab index", err)
		return
	}
	tab, err := view.ParseTab(idx)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, "unknown tab", err)
		return
	}
	if err := shell.SelectTab(tab); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "can't select tab", err)
		return
	}

	s.renderShell(w, sid, shell)
}

// themeHandler toggles light/dark mode and renders the shell from the already loaded data
func (s *Server) themeHandler(w http.ResponseWriter, r *http.Request) {
	sid, shell, ok := s.session(w, r)
	if !ok {
		return
	}
	mode := shell.ToggleTheme()
	log.Printf("[DEBUG] session %s theme %s", sid, mode)
	s.renderShell(w, sid, shell)
}

// feedHandler blocks until the active view settles and renders the feed area.
// A request issued for a tab which is no longer active gets 204 and swaps nothing.
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	sid, shell, ok := s.session(w, r)
	if !ok {
		return
	}

	active := shell.Active()
	if want := r.URL.Query().Get("tab"); want != "" && want != strconv.Itoa(active.Tab().Index()) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := active.Wait(r.Context()); err != nil {
		if errors.Is(err, view.ErrUnmounted) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		log.Printf("[DEBUG] feed wait for session %s interrupted: %v", sid, err)
		return // client is gone
	}

	data := s.feedData(sid, active, shell.State().Mode)
	if err := s.templates.ExecuteTemplate(w, templateFeed, data); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "failed to render feed", err)
	}
}

// session looks up the shell of the request. Unknown or expired sessions are sent
// to a fresh page load.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (string, *view.Shell, bool) {
	sid := r.PathValue("sid")
	shell, ok := s.sessions.get(sid)
	if ok {
		return sid, shell, true
	}

	log.Printf("[DEBUG] unknown session %q, redirecting", sid)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return "", nil, false
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return "", nil, false
}

// renderShell writes the shell fragment
func (s *Server) renderShell(w http.ResponseWriter, sid string, shell *view.Shell) {
	if err := s.templates.ExecuteTemplate(w, templateShell, s.shellData(sid, shell)); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "failed to render shell", err)
	}
}

func (s *Server) shellData(sid string, shell *view.Shell) shellData {
	state, active := shell.Snapshot()

	tabs := make([]tabLink, 0, len(view.Tabs))
	for _, t := range view.Tabs {
		tabs = append(tabs, tabLink{Index: t.Index(), Label: t.String(), Active: t == state.Tab})
	}

	data := shellData{
		Title:  s.config.GetUIConfig().Title,
		SID:    sid,
		State:  state,
		Scheme: shell.Palette().Scheme(state.Mode),
		Tabs:   tabs,
		Feed:   s.feedData(sid, active, state.Mode),
	}

	// the toggle shows the mode it switches to
	data.ThemeIcon, data.ThemeLabel = "🌙", "Switch to dark theme"
	if state.Mode == theme.Dark {
		data.ThemeIcon, data.ThemeLabel = "☀", "Switch to light theme"
	}
	return data
}

// feedData builds feed area data from the active view's current state without waiting
func (s *Server) feedData(sid string, active view.FeedView, mode theme.Mode) feedData {
	data := feedData{SID: sid, Tab: active.Tab().Index()}
	switch v := active.(type) {
	case *view.NewsFeedView:
		if !v.State().Settled() {
			data.Loading = true
			return data
		}
		data.News = v.Cards()
	case *view.DealsFeedView:
		if !v.State().Settled() {
			data.Loading = true
			return data
		}
		model := v.Model(mode)
		data.Deals = &model
	default:
		data.Loading = true
	}
	return data
}

// respondWithError logs the error and sends a plain text error response
func (s *Server) respondWithError(w http.ResponseWriter, code int, msg string, err error) {
	log.Printf("[WARN] %s: %v", msg, err)
	http.Error(w, msg, code)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// palette colors are derived or validated hex values, rgba() would not pass the css filter
		"css": func(s string) template.CSS { return template.CSS(s) }, //nolint:gosec // derived colors only
		"feedURL": func(sid string, tab int) string {
			return fmt.Sprintf("/ui/%s/feed?tab=%d", sid, tab)
		},
		"tabURL": func(sid string, idx int) string {
			return fmt.Sprintf("/ui/%s/tab/%d", sid, idx)
		},
		"themeURL": func(sid string) string {
			return fmt.Sprintf("/ui/%s/theme", sid)
		},
	}
}
