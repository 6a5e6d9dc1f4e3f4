// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package messages

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tochemey/goakt-bankaccount/domain"
)

// Rejection codes carried by Rejected
const (
	CodeInvalidAmount     = "invalid_amount"
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidArgument   = "invalid_argument"
	CodeInsufficientFunds = "insufficient_funds"
	CodeAccountExists     = "account_exists"
	CodeAccountNotCreated = "account_not_created"
	CodeReferenceVoided   = "reference_voided"
	CodeInternal          = "internal"
)

var (
	// ErrAccountExists is returned when CreateAccount reaches an account that has already been created
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotCreated is returned when an account actor receives a command before CreateAccount
	ErrAccountNotCreated = errors.New("account not created")
	// ErrReferenceVoided is returned when a Withdraw arrives after the Reverse of its reference
	ErrReferenceVoided = errors.New("reference voided")
	// ErrRejected is matched by every rejection that carries no known code
	ErrRejected = errors.New("command rejected")
)

// AccountMessage is implemented by every account command and reply.
// Register this interface with WithSerializers to use CBOR for all of them.
type AccountMessage interface {
	accountMessage()
}

// CreateAccount is the actor command to create an account
type CreateAccount struct {
	Email   string          `cbor:"email,omitempty"`
	Balance decimal.Decimal `cbor:"balance"`
}

func (*CreateAccount) accountMessage() {}

// Deposit is the actor command to credit an account.
// A non-empty Reference is applied at most once by the account.
type Deposit struct {
	Email     string          `cbor:"email,omitempty"`
	Amount    decimal.Decimal `cbor:"amount"`
	Reference string          `cbor:"reference,omitempty"`
}

func (*Deposit) accountMessage() {}

// Withdraw is the actor command to debit an account.
// A non-empty Reference is applied at most once by the account.
type Withdraw struct {
	Email     string          `cbor:"email,omitempty"`
	Amount    decimal.Decimal `cbor:"amount"`
	Reference string          `cbor:"reference,omitempty"`
}

func (*Withdraw) accountMessage() {}

// Reverse undoes the Withdraw identified by Reference. When that Withdraw has
// not reached the account yet it is voided and will not be applied.
type Reverse struct {
	Email     string          `cbor:"email,omitempty"`
	Amount    decimal.Decimal `cbor:"amount"`
	Reference string          `cbor:"reference,omitempty"`
}

func (*Reverse) accountMessage() {}

// GetAccount is the actor command to get an account
type GetAccount struct {
	Email string `cbor:"email,omitempty"`
}

func (*GetAccount) accountMessage() {}

// Account is the reply to every successful command
type Account struct {
	Email   string          `cbor:"email,omitempty"`
	Balance decimal.Decimal `cbor:"balance"`
}

func (*Account) accountMessage() {}

// Rejected is the reply to a command the account refused.
// The account state is unchanged when Rejected is returned.
type Rejected struct {
	Code   string `cbor:"code,omitempty"`
	Reason string `cbor:"reason,omitempty"`
}

func (*Rejected) accountMessage() {}

// RejectionOf builds the Rejected reply for err
func RejectionOf(err error) *Rejected {
	return &Rejected{Code: codeOf(err), Reason: err.Error()}
}

// Err turns the rejection back into an error matching the domain sentinels
func (x *Rejected) Err() error {
	var sentinel error
	switch x.Code {
	case CodeInvalidAmount:
		sentinel = domain.ErrInvalidAmount
	case CodeInvalidEmail:
		sentinel = domain.ErrInvalidEmail
	case CodeInvalidArgument:
		sentinel = domain.ErrInvalidArgument
	case CodeInsufficientFunds:
		sentinel = domain.ErrInsufficientFunds
	case CodeAccountExists:
		sentinel = ErrAccountExists
	case CodeAccountNotCreated:
		sentinel = ErrAccountNotCreated
	case CodeReferenceVoided:
		sentinel = ErrReferenceVoided
	default:
		sentinel = ErrRejected
	}
	return &rejectionError{sentinel: sentinel, reason: x.Reason}
}

// IsRejection reports whether err is a reply of the account, as opposed to a
// delivery failure such as an ask timeout. A rejected command was not applied.
func IsRejection(err error) bool {
	var rejection *rejectionError
	return errors.As(err, &rejection)
}

func codeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, domain.ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, domain.ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, domain.ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrAccountExists):
		return CodeAccountExists
	case errors.Is(err, ErrAccountNotCreated):
		return CodeAccountNotCreated
	case errors.Is(err, ErrReferenceVoided):
		return CodeReferenceVoided
	default:
		return CodeInternal
	}
}

// rejectionError keeps the reason text produced by the account while
// matching the sentinel of its code
type rejectionError struct {
	sentinel error
	reason   string
}

func (e *rejectionError) Error() string { return e.reason }

func (e *rejectionError) Unwrap() error { return e.sentinel }
