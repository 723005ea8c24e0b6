// Package respond centralizes JSON responses, error mapping and the
// ETag/If-Match header conventions of the API.
package respond

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tierlab/ranklist/pkg/errmap"
	"github.com/tierlab/ranklist/pkg/etag"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONWithETag writes v with an ETag header derived from its content.
func JSONWithETag(w http.ResponseWriter, status int, v any) error {
	token, err := etag.Digest(v)
	if err != nil {
		return err
	}
	w.Header().Set("ETag", `"`+token+`"`)
	JSON(w, status, v)
	return nil
}

// Error maps err to its code and status. Internal causes are logged, not
// leaked.
func Error(w http.ResponseWriter, log *slog.Logger, r *http.Request, err error) {
	mapped := errmap.Map(err)
	body := errorBody{Code: string(mapped.Code), Detail: mapped.Detail}
	if mapped.Code == errmap.CodeInternal {
		log.ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		body.Message = "internal error"
	} else {
		body.Message = mapped.Error()
	}
	JSON(w, mapped.Status, body)
}

// IfMatch returns the expected version token from the If-Match header, with
// surrounding quotes removed. ok is false when the header is absent.
func IfMatch(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("If-Match"))
	if header == "" {
		return "", false
	}
	return strings.Trim(header, `"`), true
}
