package api

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// maxBodyBytes matches the usual 100kb default of JSON body parsers.
const maxBodyBytes = 100 << 10

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errBodyTooLarge is reported by decodeJSON when the body exceeds maxBodyBytes.
var errBodyTooLarge = errors.New("request entity too large")

// errMalformedBody is reported by decodeJSON for syntactically invalid JSON.
var errMalformedBody = errors.New("malformed JSON body")

// errorBody is the shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}

// decodeJSON fills v from a JSON request body. Bodies that are empty or not
// declared as JSON leave v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if !isJSON(r.Header.Get("Content-Type")) {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if !json.Valid(data) {
		return errMalformedBody
	}
	return json.Unmarshal(data, v)
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
