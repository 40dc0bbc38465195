// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"perapera/internal/config"
	"perapera/internal/handlers"
	"perapera/internal/model"
	"perapera/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

// newTestServer はモックサービスを注入したルーターでテストサーバーを起動します。
func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *mocks.MockCardService, *mocks.MockReviewService) {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	cards := mocks.NewMockCardService(t)
	reviews := mocks.NewMockReviewService(t)
	router := handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Logger:  testLogger,
		DB:      fakePinger{},
		Cards:   cards,
		Reviews: reviews,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, cards, reviews
}

// sendRequest はHTTPリクエストを送信し、基本的なレスポンス情報を返します。
// ステータスコードとエラーコードのアサーションもここで行います。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) (int, []byte) {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")

	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch")

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return resp.StatusCode, respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのボディを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "raw body: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code, "message: %s", errResp.Error.Message)
}
