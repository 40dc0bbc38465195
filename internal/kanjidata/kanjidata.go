// Package kanjidata は kanji-kyouiku.json 形式の漢字データセットを読み込みます。
//
// データは漢字をキーとする JSON オブジェクトで、各値は strokes, grade, freq, jlpt_new,
// meanings[], readings_on[], readings_kun[] を持ちます (いずれも null の可能性あり)。
package kanjidata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"perapera/internal/model"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ErrMalformed はデータセットの形式が不正な場合に返されます。
var ErrMalformed = errors.New("kanjidata: malformed dataset")

type entry struct {
	Strokes     flexInt  `json:"strokes"`
	Grade       flexInt  `json:"grade"`
	Freq        flexInt  `json:"freq"`
	JLPTNew     flexInt  `json:"jlpt_new"`
	Meanings    []string `json:"meanings"`
	ReadingsOn  []string `json:"readings_on"`
	ReadingsKun []string `json:"readings_kun"`
}

// flexInt は数値・数値文字列・null を受け付け、変換できない値は0にします。
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = flexInt(int(v))
	return nil
}

// Load はデータセットを先頭から limit 件読み込みます (limit <= 0 で全件)。ファイル内の順序は保持されます。
func Load(r io.Reader, limit int) ([]model.Card, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	var cards []model.Card
	for dec.More() {
		if limit > 0 && len(cards) >= limit {
			break
		}
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		kanji, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected key %v", ErrMalformed, keyTok)
		}

		var e entry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, kanji, err)
		}

		kanji = Normalize(kanji)
		if kanji == "" {
			continue
		}
		cards = append(cards, model.Card{
			Kanji:       kanji,
			Strokes:     int(e.Strokes),
			Grade:       int(e.Grade),
			Freq:        int(e.Freq),
			JLPTNew:     int(e.JLPTNew),
			Meanings:    first(e.Meanings),
			ReadingsOn:  first(e.ReadingsOn),
			ReadingsKun: first(e.ReadingsKun),
		})
	}
	return cards, nil
}

// LoadFile はファイルからデータセットを読み込みます。
func LoadFile(path string, limit int) ([]model.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kanjidata.LoadFile: %w", err)
	}
	defer f.Close()
	return Load(f, limit)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return Normalize(values[0])
}

// Normalize は前後の空白を除去し、全角英数字を半角に畳み込み、NFC 正規化します。
// 半角カナは全角に変換されます。
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return norm.NFC.String(width.Fold.String(s))
}
