package gateway_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"overcooked-pos/api-gateway/internal/gateway"
	"overcooked-pos/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_ProxiesAPIWithSession(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{PosSvcURL: "http://pos-svc/"}, mockClient, zap.NewNop())

	mockResp := &http.Response{
		StatusCode: http.StatusCreated,
		Body:       io.NopCloser(strings.NewReader(`{"id":3,"table_no":4}`)),
		Header:     make(http.Header),
	}
	mockResp.Header.Set("Content-Type", "application/json")
	mockResp.Header.Set("Set-Cookie", "qid=abc; Path=/; HttpOnly")
	mockResp.Header.Set("Connection", "close")

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		cookie, err := req.Cookie("qid")
		return req.Method == http.MethodPost &&
			req.URL.String() == "http://pos-svc/api/bills?x=1" &&
			err == nil && cookie.Value == "abc" &&
			req.Header.Get("Connection") == "" &&
			req.Header.Get("X-Forwarded-For") == "192.0.2.1"
	})).Return(mockResp, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/bills?x=1", strings.NewReader(`{"table_no":4}`))
	req.AddCookie(&http.Cookie{Name: "qid", Value: "abc"})
	req.Header.Set("Connection", "keep-alive")
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"table_no":4`)
	assert.Equal(t, "qid=abc; Path=/; HttpOnly", rr.Header().Get("Set-Cookie"))
	assert.Empty(t, rr.Header().Get("Connection"))
}

func TestGateway_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{PosSvcURL: "http://invalid"}, mockClient, zap.NewNop())

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_ProxiesToRealUpstream(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer upstream.Close()

	gw := gateway.NewGateway(gateway.Config{PosSvcURL: upstream.URL}, upstream.Client(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/bills/9/qrcode", nil)
	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/api/bills/9/qrcode", gotPath)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
}

func TestGateway_Frontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receipt.html"), []byte("<html>receipt</html>"), 0o644))

	gw := gateway.NewGateway(gateway.Config{StaticDir: dir}, nil, zap.NewNop())
	router := gw.SetupRoutes()

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{name: "receipt page", path: "/receipt.html?bill_id=9", wantBody: "receipt"},
		{name: "client route falls back to index", path: "/user/change-password/token", wantBody: "app"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, testCase.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), testCase.wantBody)
		})
	}
}
