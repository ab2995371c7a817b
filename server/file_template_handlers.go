package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/campusmate/dashboard"
	"github.com/jrsteele09/campusmate/disputes"
	"github.com/jrsteele09/campusmate/internal/utils"
	"github.com/jrsteele09/campusmate/verification"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	contentTypeHTML = "text/html; charset=utf-8"
	layoutTemplate  = "layout.html"
)

var pagesFS = mustSub(templateFiles, "templates")

var templateFuncs = template.FuncMap{
	"taskStatusClass":      dashboard.TaskStatusClass,
	"urgencyClass":         dashboard.UrgencyClass,
	"appStatusClass":       dashboard.ApplicationStatusClass,
	"userStatusClass":      dashboard.UserStatusClass,
	"disputePriorityClass": dashboard.DisputePriorityClass,
	"disputeStatusClass":   dashboard.DisputeStatusClass,
	"nextAction":           func(s disputes.Status) string { return s.NextAction() },
	"scoreLabel":           verification.ScoreLabel,
	"scoreBand":            verification.ScoreBand,
	"rupees":               rupees,
	"date":                 func(t time.Time) string { return t.Format("2 Jan 2006") },
	"deref":                func(s *string) string { return utils.Value(s) },
	"percent":              func(v int) int { return utils.Clamp(v, 0, 100) },
	"nav": func(base string, current dashboard.Section, list []dashboard.Section) sectionNav {
		return sectionNav{Base: base, Current: current, Sections: list}
	},
	"firstName": func(name string) string {
		if f := strings.Fields(name); len(f) > 0 {
			return f[0]
		}
		return name
	},
}

// sectionNav feeds the shared section selector template
type sectionNav struct {
	Base     string
	Current  dashboard.Section
	Sections []dashboard.Section
}

// rupees formats an amount with Indian-style thousands grouping, e.g. ₹15,200
func rupees(amount int) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	digits := strconv.Itoa(amount)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}

// pages holds each page parsed together with the shared layout
type pages struct {
	byName map[string]*template.Template
}

var pageFiles = []string{"index.html", "auth.html", "student.html", "mentor.html", "admin.html", "not_found.html"}

func parsePages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template)}
	for _, name := range pageFiles {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(pagesFS, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

// render executes a full page through the layout
func (p *pages) render(w http.ResponseWriter, status int, page string, data PageData) {
	p.execute(w, status, page, "layout", data)
}

// renderFragment executes one named block of a page, used for HTMX swaps
func (p *pages) renderFragment(w http.ResponseWriter, page, block string, data PageData) {
	p.execute(w, http.StatusOK, page, block, data)
}

func (p *pages) execute(w http.ResponseWriter, status int, page, block string, data PageData) {
	tmpl, ok := p.byName[page]
	if !ok {
		log.Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, block, data); err != nil {
		log.Err(err).Str("page", page).Str("block", block).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
