package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// WalletStatus is the externally visible state of the wallet session
type WalletStatus struct {
	// Required: true
	// Enum: [uninitialized locked unlocked]
	State *string `json:"state"`

	// Network id of the live session
	Network string `json:"network,omitempty"`

	// Address of the live session account
	Address string `json:"address,omitempty"`

	// Native balance in wei, decimal encoded
	Balance string `json:"balance,omitempty"`

	SwitchingNetwork bool `json:"switchingNetwork"`

	Busy bool `json:"busy"`

	// Time the status was read
	// Format: date-time
	CheckedAt strfmt.DateTime `json:"checkedAt,omitempty"`
}

var walletStatusStateEnum = []interface{}{"uninitialized", "locked", "unlocked"}

// Validate validates this wallet status
func (m *WalletStatus) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("state", "body", m.State); err != nil {
		res = append(res, err)
	} else if err := validate.EnumCase("state", "body", *m.State, walletStatusStateEnum, true); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// NetworkItem is one entry of the network table
type NetworkItem struct {
	// Required: true
	ID *string `json:"id"`

	// Required: true
	DisplayName *string `json:"displayName"`

	// Required: true
	ChainID *int64 `json:"chainId"`

	RPCURL string `json:"rpcUrl,omitempty"`

	BlockExplorer string `json:"blockExplorer,omitempty"`

	CurrencySymbol string `json:"currencySymbol,omitempty"`

	CurrencyDecimals int64 `json:"currencyDecimals,omitempty"`
}

// Validate validates this network item
func (m *NetworkItem) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("id", "body", m.ID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("displayName", "body", m.DisplayName); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("chainId", "body", m.ChainID); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetNetworksResponse lists the networks and the selected one
type GetNetworksResponse struct {
	// Required: true
	Networks []*NetworkItem `json:"networks"`

	Selected string `json:"selected,omitempty"`
}

// Validate validates this get networks response
func (m *GetNetworksResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("networks", "body", m.Networks); err != nil {
		res = append(res, err)
	}

	for i, n := range m.Networks {
		if swag.IsZero(n) {
			continue
		}
		if err := n.Validate(formats); err != nil {
			if ve, ok := err.(*errors.Validation); ok {
				return ve.ValidateName("networks." + swag.FormatInt64(int64(i)))
			}
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostImportWalletPayload carries the mnemonic to import
type PostImportWalletPayload struct {
	// Required: true
	// Min Length: 1
	Mnemonic *string `json:"mnemonic"`
}

// Validate validates this post import wallet payload
func (m *PostImportWalletPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("mnemonic", "body", m.Mnemonic); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("mnemonic", "body", *m.Mnemonic, 1); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostConfirmPayload gates destructive or secret-revealing operations
type PostConfirmPayload struct {
	Confirm *bool `json:"confirm,omitempty"`
}

// Validate validates this post confirm payload
func (m *PostConfirmPayload) Validate(formats strfmt.Registry) error {
	return nil
}

// PostSwitchNetworkPayload selects the network to switch to
type PostSwitchNetworkPayload struct {
	// Required: true
	Network *string `json:"network"`
}

// Validate validates this post switch network payload
func (m *PostSwitchNetworkPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("network", "body", m.Network); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostCreateWalletResponse returns the new mnemonic once, for backup
type PostCreateWalletResponse struct {
	// Required: true
	Mnemonic *string `json:"mnemonic"`

	// Required: true
	Status *WalletStatus `json:"status"`
}

// Validate validates this post create wallet response
func (m *PostCreateWalletResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("mnemonic", "body", m.Mnemonic); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	} else if err := m.Status.Validate(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostExportSeedResponse returns the stored mnemonic
type PostExportSeedResponse struct {
	// Required: true
	Mnemonic *string `json:"mnemonic"`
}

// Validate validates this post export seed response
func (m *PostExportSeedResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("mnemonic", "body", m.Mnemonic); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostRefreshBalanceResponse returns the freshly read balance
type PostRefreshBalanceResponse struct {
	// Native balance in wei, decimal encoded
	// Required: true
	Balance *string `json:"balance"`

	// Required: true
	Address *string `json:"address"`
}

// Validate validates this post refresh balance response
func (m *PostRefreshBalanceResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("balance", "body", m.Balance); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostSignMessagePayload carries the message to sign with the wallet account
type PostSignMessagePayload struct {
	// UTF-8 message, signed as an EIP-191 personal message
	// Required: true
	// Min Length: 1
	Message *string `json:"message"`
}

// Validate validates this post sign message payload
func (m *PostSignMessagePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("message", "body", m.Message); err != nil {
		res = append(res, err)
	} else if err := validate.MinLength("message", "body", *m.Message, 1); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PostSignMessageResponse returns the signature and the signing address
type PostSignMessageResponse struct {
	// 65 byte signature, 0x-prefixed hex, V in {27, 28}
	// Required: true
	Signature *string `json:"signature"`

	// Required: true
	Address *string `json:"address"`
}

// Validate validates this post sign message response
func (m *PostSignMessageResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("signature", "body", m.Signature); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
