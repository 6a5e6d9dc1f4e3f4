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

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func requireBalance(t *testing.T, want string, account *Account) {
	t.Helper()
	require.Truef(t, account.Balance().Equal(amount(want)), "balance=%s want=%s", account.Balance(), want)
}

func TestNewAccount(t *testing.T) {
	t.Run("with valid email and balance", func(t *testing.T) {
		account, err := NewAccount("a@b.com", amount("200"))
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", account.Email())
		requireBalance(t, "200", account)
	})
	t.Run("with zero balance", func(t *testing.T) {
		account, err := NewAccount("z@h.com", decimal.Zero)
		require.NoError(t, err)
		requireBalance(t, "0", account)
	})
	t.Run("with small decimal balance", func(t *testing.T) {
		account, err := NewAccount("v@l.com", decimal.NewFromFloat(.30))
		require.NoError(t, err)
		requireBalance(t, "0.3", account)
	})
	t.Run("with empty email", func(t *testing.T) {
		account, err := NewAccount("", amount("100"))
		require.ErrorIs(t, err, ErrInvalidEmail)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Nil(t, account)
	})
	t.Run("with more than two decimal places", func(t *testing.T) {
		_, err := NewAccount("a@bcd.com", decimal.NewFromFloat(200.6578))
		require.ErrorIs(t, err, ErrInvalidAmount)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("with negative balance", func(t *testing.T) {
		_, err := NewAccount("d@ef.net", amount("-40"))
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
	t.Run("amount is checked before email", func(t *testing.T) {
		_, err := NewAccount("not an email", amount("-1"))
		require.ErrorIs(t, err, ErrInvalidAmount)
		assert.NotErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("middle range then entire balance", func(t *testing.T) {
		account, err := NewAccount("a@b.com", amount("200"))
		require.NoError(t, err)

		require.NoError(t, account.Withdraw(amount("100")))
		requireBalance(t, "100", account)

		err = account.Withdraw(amount("300"))
		require.ErrorIs(t, err, ErrInsufficientFunds)
		requireBalance(t, "100", account)

		require.NoError(t, account.Withdraw(amount("100")))
		requireBalance(t, "0", account)
	})
	t.Run("zero is a no-op", func(t *testing.T) {
		account, err := NewAccount("c@ab.com", amount("150"))
		require.NoError(t, err)
		require.NoError(t, account.Withdraw(decimal.Zero))
		requireBalance(t, "150", account)
	})
	t.Run("repeated small withdrawals do not drift", func(t *testing.T) {
		account, err := NewAccount("d@c.com", amount("1.0"))
		require.NoError(t, err)
		for range 10 {
			require.NoError(t, account.Withdraw(decimal.NewFromFloat(0.1)))
		}
		requireBalance(t, "0", account)
		assert.True(t, account.Balance().IsZero())
	})
	t.Run("small decimal then just over balance", func(t *testing.T) {
		account, err := NewAccount("e@f.com", amount("50"))
		require.NoError(t, err)
		require.NoError(t, account.Withdraw(decimal.NewFromFloat(.60)))
		requireBalance(t, "49.40", account)

		require.ErrorIs(t, account.Withdraw(decimal.NewFromFloat(49.80)), ErrInsufficientFunds)
		requireBalance(t, "49.40", account)
	})
	t.Run("negative amount", func(t *testing.T) {
		account, err := NewAccount("abc@def.com", amount("500"))
		require.NoError(t, err)
		for _, value := range []string{"-50", "-30"} {
			require.ErrorIs(t, account.Withdraw(amount(value)), ErrInvalidAmount)
		}
		requireBalance(t, "500", account)
	})
	t.Run("more than two decimal places", func(t *testing.T) {
		account, err := NewAccount("abc@def.com", amount("500"))
		require.NoError(t, err)
		require.ErrorIs(t, account.Withdraw(decimal.NewFromFloat(300.6789)), ErrInvalidAmount)
		requireBalance(t, "500", account)
	})
	t.Run("invalid amount wins over insufficient funds", func(t *testing.T) {
		account, err := NewAccount("abc@def.com", amount("1"))
		require.NoError(t, err)
		require.ErrorIs(t, account.Withdraw(amount("1000.001")), ErrInvalidAmount)
	})
}

func TestDeposit(t *testing.T) {
	account, err := NewAccount("a@b.com", amount("10.50"))
	require.NoError(t, err)

	require.NoError(t, account.Deposit(amount("0.25")))
	requireBalance(t, "10.75", account)

	require.NoError(t, account.Deposit(decimal.Zero))
	requireBalance(t, "10.75", account)

	require.NoError(t, account.Deposit(amount("4.2500")))
	requireBalance(t, "15", account)

	require.ErrorIs(t, account.Deposit(amount("-1")), ErrInvalidAmount)
	require.ErrorIs(t, account.Deposit(amount("0.333")), ErrInvalidAmount)
	requireBalance(t, "15", account)
	assert.Equal(t, "a@b.com", account.Email())
}

func TestTransfer(t *testing.T) {
	t.Run("conserves the total", func(t *testing.T) {
		from, err := NewAccount("a@b.com", amount("200"))
		require.NoError(t, err)
		to, err := NewAccount("c@d.com", amount("50.50"))
		require.NoError(t, err)

		total := from.Balance().Add(to.Balance())
		require.NoError(t, from.Transfer(to, amount("75.25")))

		requireBalance(t, "124.75", from)
		requireBalance(t, "125.75", to)
		assert.True(t, total.Equal(from.Balance().Add(to.Balance())))
	})
	t.Run("insufficient funds leaves both untouched", func(t *testing.T) {
		from, err := NewAccount("a@b.com", amount("10"))
		require.NoError(t, err)
		to, err := NewAccount("c@d.com", amount("5"))
		require.NoError(t, err)

		require.ErrorIs(t, from.Transfer(to, amount("10.01")), ErrInsufficientFunds)
		requireBalance(t, "10", from)
		requireBalance(t, "5", to)
	})
	t.Run("invalid amounts leave both untouched", func(t *testing.T) {
		from, err := NewAccount("a@b.com", amount("10"))
		require.NoError(t, err)
		to, err := NewAccount("c@d.com", amount("5"))
		require.NoError(t, err)

		require.ErrorIs(t, from.Transfer(to, amount("-1")), ErrInvalidAmount)
		require.ErrorIs(t, from.Transfer(to, amount("1.005")), ErrInvalidAmount)
		requireBalance(t, "10", from)
		requireBalance(t, "5", to)
	})
	t.Run("entire balance", func(t *testing.T) {
		from, err := NewAccount("a@b.com", amount("10"))
		require.NoError(t, err)
		to, err := NewAccount("c@d.com", decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, from.Transfer(to, amount("10")))
		requireBalance(t, "0", from)
		requireBalance(t, "10", to)
	})
	t.Run("to itself", func(t *testing.T) {
		account, err := NewAccount("a@b.com", amount("10"))
		require.NoError(t, err)
		require.NoError(t, account.Transfer(account, amount("4")))
		requireBalance(t, "10", account)
	})
	t.Run("nil target", func(t *testing.T) {
		account, err := NewAccount("a@b.com", amount("10"))
		require.NoError(t, err)
		err = account.Transfer(nil, amount("4"))
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.NotErrorIs(t, err, ErrInvalidAmount)
		requireBalance(t, "10", account)
	})
}

func TestBalanceStaysValid(t *testing.T) {
	account, err := NewAccount("a@b.com", amount("100"))
	require.NoError(t, err)

	operations := []func() error{
		func() error { return account.Withdraw(amount("33.33")) },
		func() error { return account.Deposit(amount("0.01")) },
		func() error { return account.Withdraw(amount("100")) },
		func() error { return account.Withdraw(amount("66.68")) },
		func() error { return account.Deposit(amount("0.009")) },
		func() error { return account.Withdraw(amount("-2")) },
	}

	for _, operation := range operations {
		_ = operation()
		assert.False(t, account.Balance().IsNegative())
		assert.True(t, IsAmountValid(account.Balance()))
	}
	requireBalance(t, "0", account)
}
