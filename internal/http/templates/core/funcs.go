package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	// FilesBaseURL prefixes relative document paths returned by the API.
	FilesBaseURL string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"formatVND":    formatVND,
		"formatAmount": formatAmount,
		"formatDate":   formatDate,
		"formatScore":  formatScore,
		"scoreValue":   scoreValue,
		"numberValue":  numberValue,
		"paidAt":       paidAt,
		"examDate":     examDate,
		"fileURL":      func(path string) string { return FileURL(deps.FilesBaseURL, path) },
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"contains":     strings.Contains,
		"eqID":         func(a, b model.ID) bool { return a == b },
		"hasID":        func(ids []model.ID, id model.ID) bool { return slices.Contains(ids, id) },
		"truncateText": uiutil.TruncateWithEllipsis,
		"statusClass":  statusClass,
		"dict":         dict,
	}

	addRenderFuncs(funcs, deps)
	return funcs
}

func addRenderFuncs(funcs template.FuncMap, deps Deps) {
	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own html/template set, already escaped.
		return template.HTML(buf.String()), nil
	}

	funcs["toJSON"] = func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case model.Number:
		return float64(x), true
	case *model.Number:
		if x == nil {
			return 0, false
		}
		return float64(*x), true
	default:
		return 0, false
	}
}

func formatVND(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return fmt.Sprint(v)
	}
	return uiutil.FormatVND(f)
}

func formatAmount(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return fmt.Sprint(v)
	}
	return uiutil.FormatAmount(f)
}

func asTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case *time.Time:
		if x != nil {
			return *x
		}
	case model.Timestamp:
		return x.Time
	case *model.Timestamp:
		if x != nil {
			return x.Time
		}
	}
	return time.Time{}
}

func formatDate(v any) string {
	return uiutil.FormatDate(asTime(v))
}

// paidAt renders a payment date, "-" while unpaid.
func paidAt(v any) string {
	if s := formatDate(v); s != "" {
		return s
	}
	return "-"
}

func examDate(v any) string {
	if s := formatDate(v); s != "" {
		return s
	}
	return "N/A"
}

func formatScore(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return uiutil.FormatScore(nil)
	}
	return uiutil.FormatScore(&f)
}

// scoreValue fills a grade input; an ungraded score stays empty.
func scoreValue(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return ""
	}
	return uiutil.FormatScore(&f)
}

// numberValue fills a numeric input without exponent notation.
func numberValue(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func statusClass(status model.TuitionStatus) string {
	if status == model.TuitionPaid {
		return "badge-success"
	}
	return "badge-danger"
}

// FileURL joins a document path with the files host. Absolute URLs pass through.
func FileURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// dict builds a map from alternating key/value arguments for sub-template calls.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict requires an even number of arguments")
	}
	out := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		out[k] = kv[i+1]
	}
	return out, nil
}
