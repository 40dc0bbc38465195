package middleware

import (
	"testing"

	"go.uber.org/goleak"
)

// ミドルウェアがゴルーチンを残さないことを確認する
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
