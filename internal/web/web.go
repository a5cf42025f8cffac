package web

import (
	"embed"
	"html/template"
	"time"

	"gorm.io/datatypes"
)

//go:embed templates/*.html
var templates embed.FS

// Templates parses the page templates shipped with the binary
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"date":  formatDate,
		"deref": deref,
	}).ParseFS(templates, "templates/*.html")
}

func formatDate(v interface{}) string {
	switch t := v.(type) {
	case datatypes.Date:
		return time.Time(t).Format("2006-01-02")
	case time.Time:
		return t.Format("2006-01-02 15:04")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
