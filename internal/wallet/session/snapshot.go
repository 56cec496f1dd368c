package session

import (
	"math/big"

	"github.com/rs/zerolog/log"
	"github/chapool/quickpay-wallet/internal/wallet/account"
	"github/chapool/quickpay-wallet/internal/wallet/network"
)

// snapshot is an immutable session value. Transitions build a new one and
// swap it in whole.
type snapshot struct {
	state   State
	net     network.Network
	account account.Account
	address string
	balance *big.Int
}

func (s *snapshot) withBalance(balance *big.Int) *snapshot {
	next := *s
	next.balance = balance
	return &next
}

func (s *snapshot) withAddress(address string) *snapshot {
	next := *s
	next.address = address
	return &next
}

func (s *snapshot) status() Status {
	st := Status{
		State:   s.state,
		Network: s.net.ID,
		Address: s.address,
	}
	if s.balance != nil {
		st.Balance = new(big.Int).Set(s.balance)
	}

	return st
}

// discard releases the account handle of a session that is being dropped.
func (s *snapshot) discard() {
	if s == nil || s.account == nil {
		return
	}

	closeAccount(s.account)
}

func closeAccount(acct account.Account) {
	if err := acct.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close account handle")
	}
}
