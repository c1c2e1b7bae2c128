package wallet_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-session/internal/api"
	"github/chapool/wallet-session/internal/provider"
	"github/chapool/wallet-session/internal/test"
	"github/chapool/wallet-session/internal/types"
)

const addrA = "0xABCDEF1234567890"

func TestGetSessionInitial(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/session", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		assert.Equal(t, s.Session.ID(), response.ID)
		assert.Equal(t, "disconnected", response.State)
		assert.Empty(t, response.Address)
		assert.Equal(t, "MetaMask", response.Provider)
		assert.True(t, response.ProviderAvailable)
		assert.Nil(t, response.LastError)
	})
}

func TestPostConnectSuccess(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Respond([]string{addrA, "0xother"}, nil)

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		assert.Equal(t, "connected", response.State)
		assert.Equal(t, addrA, response.Address)
		assert.Equal(t, "0xABCD...7890", response.DisplayAddress)
		assert.Nil(t, response.LastError)

		res = test.PerformRequest(t, s, "GET", "/api/v1/wallet/session", nil, nil)
		test.ParseResponse(t, res, &response)
		assert.Equal(t, "connected", response.State)
	})
}

func TestPostConnectUserRejected(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Reject(provider.CodeUserRejected, "User rejected the request.")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		assert.Equal(t, "disconnected", response.State)
		require.NotNil(t, response.LastError)
		assert.Equal(t, "user_rejected", response.LastError.Kind)
		assert.Equal(t, "Connection request was rejected.", response.LastError.Message)
		assert.True(t, response.LastError.Retryable)
		assert.Empty(t, response.LastError.InstallURL)
	})
}

func TestPostConnectProviderBusy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Reject(provider.CodeRequestPending, "Request already pending")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		require.NotNil(t, response.LastError)
		assert.Equal(t, "provider_busy", response.LastError.Kind)
		assert.Equal(t, "MetaMask is already processing a connection request. Please check your extension.", response.LastError.Message)
	})
}

func TestPostConnectUnknownKeepsWalletMessage(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Reject(-32603, "Internal JSON-RPC error.")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		require.NotNil(t, response.LastError)
		assert.Equal(t, "unknown", response.LastError.Kind)
		assert.Equal(t, "Internal JSON-RPC error.", response.LastError.Message)
	})
}

func TestPostConnectProviderMissing(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		mock := test.MockProvider(t, s)
		mock.SetPresent(false)

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		assert.Equal(t, "disconnected", response.State)
		assert.False(t, response.ProviderAvailable)
		require.NotNil(t, response.LastError)
		assert.Equal(t, "provider_missing", response.LastError.Kind)
		assert.Equal(t, "MetaMask not detected. Please install it.", response.LastError.Message)
		assert.Equal(t, "https://metamask.io/download/", response.LastError.InstallURL)
		assert.False(t, response.LastError.Retryable)
		assert.Equal(t, 0, mock.Calls())
	})
}

func TestPostConnectTranslated(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Reject(provider.CodeUserRejected, "User rejected the request.")

		headers := http.Header{}
		headers.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, headers)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		require.NotNil(t, response.LastError)
		assert.Equal(t, "连接请求已被拒绝。", response.LastError.Message)
	})
}

func TestPostConnectTranslatesGenericFailure(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		mock := test.MockProvider(t, s)
		mock.Respond(nil, provider.NewError(4100, ""))

		headers := http.Header{}
		headers.Set("Accept-Language", "zh")

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, headers)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		require.NotNil(t, response.LastError)
		assert.Equal(t, "unknown", response.LastError.Kind)
		assert.Equal(t, "钱包连接失败。", response.LastError.Message)

		mock.Respond(nil, errors.New("Wallet is locked"))

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, headers)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		response = types.SessionResponse{}
		test.ParseResponse(t, res, &response)

		require.NotNil(t, response.LastError)
		assert.Equal(t, "Wallet is locked", response.LastError.Message)
	})
}

func TestPostConnectNoAccounts(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Respond([]string{}, nil)

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponse(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeNOACCOUNTS, response.Type)

		snap := s.Session.Snapshot()
		assert.Equal(t, "disconnected", snap.State.String())
		assert.Nil(t, snap.LastError)
	})
}

func TestPostConnectAfterClose(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		s.Session.Close()

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusServiceUnavailable, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponse(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeSESSIONCLOSED, response.Type)
	})
}

func TestPostDisconnect(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		test.MockProvider(t, s).Respond([]string{addrA}, nil)

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/connect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/disconnect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		assert.Equal(t, "disconnected", response.State)
		assert.Empty(t, response.Address)
		assert.Empty(t, response.DisplayAddress)
		assert.Nil(t, response.LastError)
	})
}

func TestPostProbe(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		mock := test.MockProvider(t, s)
		mock.SetPresent(false)

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/probe", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponse(t, res, &response)

		assert.False(t, response.ProviderAvailable)
		require.NotNil(t, response.LastError)
		assert.Equal(t, "provider_missing", response.LastError.Kind)

		mock.SetPresent(true)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/probe", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		response = types.SessionResponse{}
		test.ParseResponse(t, res, &response)
		assert.True(t, response.ProviderAvailable)
	})
}

func TestGetEventsStreamsTransitions(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		srv := httptest.NewServer(s.Echo)
		defer srv.Close()

		ctx, cancel := context.WithCancel(testContext(t))
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/wallet/events", nil)
		require.NoError(t, err)

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

		reader := bufio.NewReader(res.Body)

		initial := readEvent(t, reader)
		assert.Equal(t, "disconnected", initial.State)

		test.MockProvider(t, s).EmitAccountsChanged([]string{addrA})

		changed := readEvent(t, reader)
		assert.Equal(t, "connected", changed.State)
		assert.Equal(t, addrA, changed.Address)

		test.MockProvider(t, s).EmitAccountsChanged([]string{})

		revoked := readEvent(t, reader)
		assert.Equal(t, "disconnected", revoked.State)
		assert.Empty(t, revoked.Address)
	})
}

func readEvent(t *testing.T, reader *bufio.Reader) types.SessionResponse {
	t.Helper()

	var (
		event string
		data  string
	)
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)

		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && data != "":
			require.Equal(t, "session", event)

			var response types.SessionResponse
			require.NoError(t, json.Unmarshal([]byte(data), &response))
			return response
		}
	}
}
