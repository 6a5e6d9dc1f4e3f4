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

// Package domain holds the bank account entity and the rules that guard it.
//
// An Account is not safe for concurrent use. Hosts that share an account
// between goroutines serialize access themselves; see the actors package for
// the single-writer actor used by the service.
package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Account is a bank account identified by an email address.
// Every mutation is validated before the balance changes, so a failed call
// leaves the account exactly as it was.
type Account struct {
	email   string
	balance decimal.Decimal
}

// NewAccount creates an Account. The starting balance is validated before the
// email, so when both are invalid ErrInvalidAmount is returned.
func NewAccount(email string, startingBalance decimal.Decimal) (*Account, error) {
	if !IsAmountValid(startingBalance) {
		return nil, errors.Wrapf(ErrInvalidAmount, "starting balance %s", startingBalance)
	}

	if !IsEmailValid(email) {
		return nil, errors.Wrapf(ErrInvalidEmail, "email address %q cannot be used to create an account", email)
	}

	return &Account{
		email:   email,
		balance: startingBalance,
	}, nil
}

// Email returns the account identifier
func (a *Account) Email() string {
	return a.email
}

// Balance returns the current balance
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Withdraw reduces the balance by amount.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if err := ValidateAmount("withdrawal", amount); err != nil {
		return err
	}

	if amount.GreaterThan(a.balance) {
		return errors.Wrapf(ErrInsufficientFunds, "cannot withdraw %s from a balance of %s", amount, a.balance)
	}

	a.balance = a.balance.Sub(amount)
	return nil
}

// Deposit increases the balance by amount.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := ValidateAmount("deposit", amount); err != nil {
		return err
	}

	a.balance = a.balance.Add(amount)
	return nil
}

// Transfer moves amount from a to target.
func (a *Account) Transfer(target *Account, amount decimal.Decimal) error {
	if target == nil {
		return errors.Wrap(ErrInvalidArgument, "transfer target is nil")
	}

	if err := ValidateAmount("transfer", amount); err != nil {
		return err
	}

	if amount.GreaterThan(a.balance) {
		return errors.Wrapf(ErrInsufficientFunds, "cannot transfer %s from a balance of %s", amount, a.balance)
	}

	// both legs are already validated and cannot fail
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	return target.Deposit(amount)
}

// ValidateAmount checks an amount used by operation. Negative amounts are
// rejected first, then amounts with too many decimal places.
func ValidateAmount(operation string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.Wrapf(ErrInvalidAmount, "negative %s of %s", operation, amount)
	}

	if !IsAmountValid(amount) {
		return errors.Wrapf(ErrInvalidAmount, "%s of %s has more than %d decimal places", operation, amount, amountPlaces)
	}
	return nil
}
