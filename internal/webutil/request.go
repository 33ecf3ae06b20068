package webutil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go_5_kanji_keep/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。不明なフィールドは拒否します。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is required.", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON.", "",
			fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return nil
}
