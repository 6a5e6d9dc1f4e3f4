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

package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tochemey/goakt-bankaccount/domain"
	"github.com/tochemey/goakt-bankaccount/messages"
)

var (
	// ErrAccountNotFound is returned when no account actor exists for an email
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists is returned when opening an account twice
	ErrAccountExists = messages.ErrAccountExists
	// ErrTransferInDoubt is matched by TransferInDoubtError
	ErrTransferInDoubt = errors.New("transfer in doubt")
)

const (
	codeAccountNotFound = "account_not_found"
	codeInvalidRequest  = "invalid_request"
	codeTransferInDoubt = "transfer_in_doubt"
)

// TransferInDoubtError is returned when a transfer leg was sent but its outcome
// is unknown. Legs carry the transfer reference and are applied at most once,
// so the accounts settle without the caller: a debit in doubt is reversed and
// a credit in doubt is delivered.
type TransferInDoubtError struct {
	Reference string
	Err       error
}

func (e *TransferInDoubtError) Error() string {
	return fmt.Sprintf("transfer=%s in doubt: %v", e.Reference, e.Err)
}

func (e *TransferInDoubtError) Unwrap() []error {
	return []error{ErrTransferInDoubt, e.Err}
}

// errorCode returns the stable code reported to clients and used as metric outcome
func errorCode(err error) string {
	if errors.Is(err, ErrTransferInDoubt) {
		return codeTransferInDoubt
	}
	if errors.Is(err, ErrAccountNotFound) || errors.Is(err, messages.ErrAccountNotCreated) {
		return codeAccountNotFound
	}
	return messages.RejectionOf(err).Code
}

// httpStatus maps an error to its HTTP status code
func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrTransferInDoubt):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, messages.ErrAccountNotCreated):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, ErrAccountExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
