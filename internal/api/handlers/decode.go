package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"restaurant-api/internal/api/utils"
)

const maxBodyBytes = 1 << 20

// decodeBody reads exactly one JSON value into dst. It writes the 400 itself
// and returns false when the body is missing, malformed or oversized.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large", "BODY_TOO_LARGE", nil)
			return false
		}
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_JSON", map[string]any{"reason": err.Error()})
		return false
	}
	if err := ensureEOF(dec); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid JSON body", "INVALID_JSON", nil)
		return false
	}
	return true
}

func ensureEOF(dec *json.Decoder) error {
	var extra any
	if err := dec.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return errors.New("extra data")
}
