package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ghugn/chem-class-git/internal/domain/model"
)

// queryValue returns a trimmed query parameter.
func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// filterValue returns a dropdown filter, defaulting to "ALL".
func filterValue(r *http.Request, key string) string {
	if v := queryValue(r, key); v != "" {
		return v
	}
	return model.FilterAll
}

// localReferer returns the path of the Referer header when it points back at
// this host, or fallback. Only relative targets are ever redirected to.
func localReferer(r *http.Request, fallback string) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}

// withQuery appends non-empty params to path.
func withQuery(path string, kv ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
