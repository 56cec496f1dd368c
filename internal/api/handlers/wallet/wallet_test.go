package wallet_test

import (
	"math/big"
	"net/http"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/test"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/wallet/session"
)

func TestGetStatusUninitialized(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/status", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.WalletStatus
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "uninitialized", swag.StringValue(body.State))
		assert.Empty(t, body.Address)
	})
}

func TestGetNetworks(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/wallet/networks", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.GetNetworksResponse
		test.ParseResponseAndValidate(t, res, &body)
		require.Len(t, body.Networks, 3)
		assert.Equal(t, "local", swag.StringValue(body.Networks[0].ID))
		assert.Equal(t, int64(43113), swag.Int64Value(body.Networks[1].ChainID))
		assert.Empty(t, body.Selected)
	})
}

func TestPostCreate(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/create", nil, nil)
		require.Equal(t, http.StatusCreated, res.Result().StatusCode)

		var body types.PostCreateWalletResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Len(t, strings.Fields(swag.StringValue(body.Mnemonic)), 12)
		assert.Equal(t, "unlocked", swag.StringValue(body.Status.State))
		assert.Equal(t, "local", body.Status.Network)
		assert.Equal(t, test.DefaultBalance.String(), body.Status.Balance)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/create", nil, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDTRANSITION, *errBody.Type)
	})
}

func TestPostImport(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/import", test.GenericPayload{
			"mnemonic": test.TestMnemonic,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.WalletStatus
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "unlocked", swag.StringValue(body.State))
		assert.Equal(t, test.TestAddress, body.Address)
	})
}

func TestPostImportValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/import", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var valErr types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &valErr)
		require.Len(t, valErr.ValidationErrors, 1)
		assert.Equal(t, "mnemonic", swag.StringValue(valErr.ValidationErrors[0].Key))

		eleven := strings.Join(strings.Fields(test.TestMnemonic)[:11], " ")
		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/import", test.GenericPayload{
			"mnemonic": eleven,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeINVALIDSEED, *errBody.Type)

		// twelve words that fail the BIP39 checksum
		bad := strings.Repeat("abandon ", 12)
		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/import", test.GenericPayload{
			"mnemonic": bad,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
		assert.Equal(t, session.StateUninitialized, s.Wallet.State())
	})
}

func TestLockUnlock(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/lock", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.WalletStatus
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "locked", swag.StringValue(body.State))
		assert.Empty(t, body.Address)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/unlock", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "unlocked", swag.StringValue(body.State))
		assert.Equal(t, test.TestAddress, body.Address)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/unlock", nil, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)
	})
}

func TestUnlockWithoutWallet(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/unlock", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeNOSEEDSTORED, *errBody.Type)
	})
}

func TestUnlockRPCUnreachable(t *testing.T) {
	test.WithTestServerAndChain(t, test.NewTestConfig(t), func(s *api.Server, chain *test.ChainStub) {
		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))
		require.NoError(t, s.Wallet.LockWallet(t.Context()))

		chain.FailDial(assert.AnError)

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/unlock", nil, nil)
		require.Equal(t, http.StatusBadGateway, res.Result().StatusCode)
		assert.Equal(t, session.StateLocked, s.Wallet.State())
	})
}

func TestPostDisconnectRequiresConfirmation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/disconnect", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeCONFIRMATIONREQUIRED, *errBody.Type)
		assert.Equal(t, session.StateUnlocked, s.Wallet.State())

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/disconnect", test.GenericPayload{"confirm": true}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.WalletStatus
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "uninitialized", swag.StringValue(body.State))

		exists, err := s.Vault.Exists(t.Context())
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestPostExport(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/export", test.GenericPayload{"confirm": true}, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/export", test.GenericPayload{"confirm": false}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/export", test.GenericPayload{"confirm": true}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Equal(t, "no-store", res.Header().Get("Cache-Control"))

		var body types.PostExportSeedResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, test.TestMnemonic, swag.StringValue(body.Mnemonic))
	})
}

func TestPostSwitchNetwork(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/network", test.GenericPayload{"network": "fuji"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.WalletStatus
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "fuji", body.Network)
		assert.Equal(t, test.TestAddress, body.Address)

		id, found, err := s.Vault.LoadNetwork(t.Context())
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "fuji", id)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/network", test.GenericPayload{"network": "sepolia"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeUNKNOWNNETWORK, *errBody.Type)

		res = test.PerformRequest(t, s, "GET", "/api/v1/wallet/networks", nil, nil)
		var networks types.GetNetworksResponse
		test.ParseResponseAndValidate(t, res, &networks)
		assert.Equal(t, "fuji", networks.Selected)
	})
}

func TestPostRefreshBalance(t *testing.T) {
	test.WithTestServerAndChain(t, test.NewTestConfig(t), func(s *api.Server, chain *test.ChainStub) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/balance/refresh", nil, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))
		chain.SetBalance(test.TestAddress, big.NewInt(7))

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/balance/refresh", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.PostRefreshBalanceResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, "7", swag.StringValue(body.Balance))
		assert.Equal(t, test.TestAddress, swag.StringValue(body.Address))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))

		res := test.PerformRequest(t, s, "GET", "/metrics", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)
		assert.Contains(t, res.Body.String(), `wallet_session_transitions_total{op="import",result="ok"} 1`)
		assert.Contains(t, res.Body.String(), "wallet_session_state 2")
	})
}

func TestPostSignMessage(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/sign", test.GenericPayload{"message": "hello"}, nil)
		require.Equal(t, http.StatusConflict, res.Result().StatusCode)

		require.NoError(t, s.Wallet.ImportWallet(t.Context(), test.TestMnemonic))

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/sign", test.GenericPayload{"message": ""}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/wallet/sign", test.GenericPayload{"message": "hello"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.PostSignMessageResponse
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, test.TestAddress, swag.StringValue(body.Address))

		sig, err := hexutil.Decode(swag.StringValue(body.Signature))
		require.NoError(t, err)
		require.Len(t, sig, crypto.SignatureLength)
		sig[crypto.RecoveryIDOffset] -= 27

		pub, err := crypto.SigToPub(accounts.TextHash([]byte("hello")), sig)
		require.NoError(t, err)
		assert.Equal(t, test.TestAddress, crypto.PubkeyToAddress(*pub).Hex())
	})
}
