package web

import (
	"go-jobboard-web/internal/domain"
	"html/template"
	"strings"
	"time"
)

var funcMap = template.FuncMap{
	"salary":      salary,
	"companyName": companyName,
	"appTitle":    appTitle,
	"date":        formatDate,
	"statusClass": statusClass,
	"label":       label,
	"selected":    selected,
	"list":        list,
}

func salary(j domain.Job) string {
	return j.SalaryRange()
}

func companyName(j domain.Job) string {
	return j.CompanyName()
}

func appTitle(a domain.Application) string {
	return a.Title()
}

// formatDate renders API timestamps as "Jan 2, 2006". Unparseable input is
// returned unchanged.
func formatDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

func statusClass(status string) string {
	switch status {
	case domain.ApplicationStatusAccepted, domain.JobStatusOpen:
		return "badge-green"
	case domain.ApplicationStatusRejected, domain.JobStatusClosed:
		return "badge-red"
	case domain.ApplicationStatusInterview:
		return "badge-purple"
	case domain.ApplicationStatusReviewing, domain.JobStatusOnHold:
		return "badge-yellow"
	default:
		return "badge-blue"
	}
}

// label turns "in_person" into "In person".
func label(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func selected(a, b string) template.HTMLAttr {
	if a == b {
		return "selected"
	}
	return ""
}

func list(items ...string) []string {
	return items
}
