package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"
	"unicode"

	"perapera/internal/model"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"kanji":        "漢字",
	"strokes":      "画数",
	"grade":        "学年",
	"freq":         "頻度",
	"jlpt_new":     "JLPTレベル",
	"meanings":     "意味",
	"readings_on":  "音読み",
	"readings_kun": "訓読み",
	"rating":       "評価",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// han: 漢字を1文字以上含むこと
	if err := Validator.RegisterValidation("han", validateHan); err != nil {
		log.Fatal(err)
	}

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("han", "{0}には漢字を含めてください。")
	registerParamTranslation("max", "{0}は{1}文字以下で入力してください。")
	registerParamTranslation("gte", "{0}は{1}以上で入力してください。")
	registerParamTranslation("lte", "{0}は{1}以下で入力してください。")
}

func validateHan(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func registerTranslation(tag, msg string) {
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, translatedField(fe))
		return t
	})
}

func registerParamTranslation(tag, msg string) {
	Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, translatedField(fe), fe.Param())
		return t
	})
}

// ValidateStruct は構造体を検証し、最初のエラーを日本語メッセージ付きの AppError として返します。
func ValidateStruct(v interface{}) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		firstErr := validationErrors[0]
		return model.NewAppError(
			"VALIDATION_ERROR",
			firstErr.Translate(Trans),
			firstErr.Field(),
			model.ErrUnprocessable,
		)
	}
	return model.NewAppError("VALIDATION_ERROR", "入力内容を検証できませんでした。", "", errors.Join(model.ErrInvalidInput, err))
}
