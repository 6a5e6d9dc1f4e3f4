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
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goakt-bankaccount/domain"
)

func TestRejection(t *testing.T) {
	account, err := domain.NewAccount("a@b.com", decimal.NewFromInt(10))
	require.NoError(t, err)

	t.Run("insufficient funds", func(t *testing.T) {
		cause := account.Withdraw(decimal.NewFromInt(11))
		rejected := RejectionOf(cause)
		assert.Equal(t, CodeInsufficientFunds, rejected.Code)
		assert.Equal(t, cause.Error(), rejected.Reason)

		err := rejected.Err()
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, cause.Error(), err.Error())
	})
	t.Run("invalid amount keeps invalid argument", func(t *testing.T) {
		rejected := RejectionOf(account.Deposit(decimal.NewFromInt(-1)))
		assert.Equal(t, CodeInvalidAmount, rejected.Code)
		require.ErrorIs(t, rejected.Err(), domain.ErrInvalidAmount)
		require.ErrorIs(t, rejected.Err(), domain.ErrInvalidArgument)
	})
	t.Run("invalid email", func(t *testing.T) {
		_, cause := domain.NewAccount("nope", decimal.Zero)
		rejected := RejectionOf(cause)
		assert.Equal(t, CodeInvalidEmail, rejected.Code)
		require.ErrorIs(t, rejected.Err(), domain.ErrInvalidEmail)
	})
	t.Run("nil target", func(t *testing.T) {
		rejected := RejectionOf(account.Transfer(nil, decimal.NewFromInt(1)))
		assert.Equal(t, CodeInvalidArgument, rejected.Code)
		require.ErrorIs(t, rejected.Err(), domain.ErrInvalidArgument)
	})
	t.Run("account lifecycle", func(t *testing.T) {
		assert.Equal(t, CodeAccountExists, RejectionOf(ErrAccountExists).Code)
		require.ErrorIs(t, RejectionOf(ErrAccountNotCreated).Err(), ErrAccountNotCreated)
	})
	t.Run("unknown error", func(t *testing.T) {
		rejected := RejectionOf(errors.New("boom"))
		assert.Equal(t, CodeInternal, rejected.Code)
		err := rejected.Err()
		assert.EqualError(t, err, "boom")
		assert.NotErrorIs(t, err, domain.ErrInvalidArgument)
		require.ErrorIs(t, err, ErrRejected)
	})
}

func TestIsRejection(t *testing.T) {
	rejected := RejectionOf(domain.ErrInsufficientFunds).Err()
	assert.True(t, IsRejection(rejected))
	assert.True(t, IsRejection(fmt.Errorf("transfer=ref: %w", rejected)))
	assert.True(t, IsRejection(RejectionOf(errors.New("boom")).Err()))

	assert.False(t, IsRejection(domain.ErrInsufficientFunds))
	assert.False(t, IsRejection(errors.New("request timed out")))
	assert.False(t, IsRejection(nil))
}
