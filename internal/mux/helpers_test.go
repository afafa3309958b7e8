package mux

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokertable-server/internal/jwt"
	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/room"
)

func setupServer(t *testing.T) (*httptest.Server, *room.Casino) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwt.UseKeys(key)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	casino := room.NewCasino(logger, chips.NewBank(1), quartz.NewReal(), nil)
	ts := httptest.NewServer(NewMux(casino, "v-test"))
	t.Cleanup(ts.Close)

	return ts, casino
}

func signedToken(t *testing.T, playerID string, admin bool) string {
	t.Helper()

	token, err := jwt.Sign(playerID, admin)
	require.NoError(t, err)
	return token
}

func testTableOptions() holdem.Options {
	return holdem.Options{
		SmallBlind:   1,
		BigBlind:     2,
		MinBuyIn:     2,
		MaxBuyIn:     10000,
		CommitWindow: time.Second * 30,
		RevealWindow: time.Second * 30,
		ActionWindow: time.Second * 30,
	}
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	assertDo(t, req, respObj, statusCode, signedJWT...)
}
