package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "bridgewatch/internal/platform/errors"
	pnet "bridgewatch/internal/platform/net"
	phttp "bridgewatch/internal/platform/net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithReqID("GET", "/x", "rid-1"), map[string]string{"a": "b"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	env := decode(t, rec)
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, "rid-1", env.RequestID)
	assert.Equal(t, map[string]any{"a": "b"}, env.Data)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.NotFoundf("no snapshot"), http.StatusNotFound},
		{perr.TooManyf("slow down"), http.StatusTooManyRequests},
		{perr.Upstreamf("bad gateway"), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		phttp.RespondError(rec, reqWithReqID("GET", "/x", "rid-2"), tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
		env := decode(t, rec)
		assert.Equal(t, tc.err.Error(), env.Error)
		assert.Equal(t, "rid-2", env.RequestID)
		assert.Nil(t, env.Data)
	}
}

func TestHandle_Responses(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.OK(1) }).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 1, decode(t, rec).Data)
	})
	t.Run("accepted with header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response {
			return phttp.Accepted("queued").WithHeader("X-Run-ID", "r1")
		}).ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "r1", rec.Header().Get("X-Run-ID"))
	})
	t.Run("no content", func(t *testing.T) {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() }).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
	t.Run("error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response {
			return phttp.Error(perr.InvalidArgf("bad at"))
		}).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "bad at", decode(t, rec).Error)
	})
}

func TestWithHeader_DoesNotMutateOriginal(t *testing.T) {
	base := phttp.OK(nil).WithHeader("A", "1")
	_ = base.WithHeader("B", "2")
	assert.Empty(t, base.Header.Get("B"))
}
