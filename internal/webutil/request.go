package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"perapera/internal/model"
)

// maxBodyBytes はリクエストボディの上限サイズです。
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドは拒否します。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errors.Join(model.ErrInvalidInput, err)
	}
	return nil
}

// ParseUintParam は URL パラメータなどの文字列を正の整数IDに変換します。
func ParseUintParam(raw, field string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, model.NewAppError("INVALID_URL_PARAM", field+"の形式が正しくありません。", field, model.ErrInvalidInput)
	}
	return uint(id), nil
}
