package kanjidata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"perapera/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "一": {"strokes": 1, "grade": 1, "freq": 2, "jlpt_old": 4, "jlpt_new": 5,
         "meanings": ["One", "One Radical (no.1)"], "readings_on": ["いち", "いつ"], "readings_kun": ["ひと-", "ひと.つ"]},
  "九": {"strokes": 2, "grade": 1, "freq": "55", "jlpt_new": 5,
         "meanings": ["Nine"], "readings_on": ["きゅう", "く"], "readings_kun": ["ここの"]},
  "七": {"strokes": 2, "grade": 1, "freq": null, "jlpt_new": null,
         "meanings": ["Seven"], "readings_on": ["しち"], "readings_kun": []},
  "二": {"strokes": 2, "grade": 1, "freq": 9, "jlpt_new": 5,
         "meanings": null, "readings_on": null, "readings_kun": null}
}`

func TestLoad(t *testing.T) {
	t.Run("正常系: ファイル内の順序を保持する", func(t *testing.T) {
		cards, err := Load(strings.NewReader(sample), 0)
		require.NoError(t, err)
		require.Len(t, cards, 4)

		kanji := make([]string, len(cards))
		for i, c := range cards {
			kanji[i] = c.Kanji
		}
		assert.Equal(t, []string{"一", "九", "七", "二"}, kanji)
	})

	t.Run("正常系: リストの先頭要素を使う", func(t *testing.T) {
		cards, err := Load(strings.NewReader(sample), 1)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		want := model.Card{
			Kanji: "一", Strokes: 1, Grade: 1, Freq: 2, JLPTNew: 5,
			Meanings: "One", ReadingsOn: "いち", ReadingsKun: "ひと-",
		}
		if diff := cmp.Diff(want, cards[0]); diff != "" {
			t.Errorf("Load() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("正常系: null や文字列の数値を変換する", func(t *testing.T) {
		cards, err := Load(strings.NewReader(sample), 0)
		require.NoError(t, err)
		assert.Equal(t, 55, cards[1].Freq)
		assert.Equal(t, 0, cards[2].Freq)
		assert.Equal(t, 0, cards[2].JLPTNew)
		assert.Equal(t, "", cards[2].ReadingsKun)
		assert.Equal(t, "", cards[3].Meanings)
	})

	t.Run("異常系: トップレベルが配列", func(t *testing.T) {
		_, err := Load(strings.NewReader(`[1,2]`), 0)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("異常系: 壊れたJSON", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"一": {"strokes": }`), 0)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanji.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cards, err := LoadFile(path, 2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"), 0)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "空白の除去", in: "  水  ", want: "水"},
		{name: "全角英字を半角に", in: "Ｗａｔｅｒ", want: "Water"},
		{name: "半角カナを全角に", in: "ｽｲ", want: "スイ"},
		{name: "空文字", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
