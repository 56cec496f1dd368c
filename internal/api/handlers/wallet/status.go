package wallet

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/types"
	"github/chapool/quickpay-wallet/internal/wallet/session"
)

func toWalletStatus(s *api.Server, st session.Status) *types.WalletStatus {
	res := &types.WalletStatus{
		State:            swag.String(st.State.String()),
		Network:          st.Network,
		Address:          st.Address,
		SwitchingNetwork: st.SwitchingNetwork,
		Busy:             st.Busy,
		CheckedAt:        strfmt.DateTime(s.Clock.Now()),
	}

	if st.Balance != nil {
		res.Balance = st.Balance.String()
	}

	return res
}
