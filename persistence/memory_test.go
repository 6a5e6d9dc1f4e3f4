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

package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.TODO()

	t.Run("requires a connection", func(t *testing.T) {
		store := NewMemoryStore()
		assert.Equal(t, MemoryStoreID, store.ID())

		err := store.WriteState(ctx, "id", &Snapshot{Email: "a@b.com"})
		require.ErrorIs(t, err, ErrNotConnected)

		_, err = store.GetLatestState(ctx, "id")
		require.ErrorIs(t, err, ErrNotConnected)
	})
	t.Run("write then read", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Connect(ctx))

		state, err := store.GetLatestState(ctx, "id")
		require.NoError(t, err)
		assert.Nil(t, state)

		written := &Snapshot{
			Email:      "a@b.com",
			Balance:    decimal.RequireFromString("12.50"),
			References: map[string]string{"ref/debit": "applied"},
		}
		require.NoError(t, store.WriteState(ctx, "id", written))

		// mutating the caller copy does not leak into the store
		written.Balance = decimal.Zero
		written.References["ref/credit"] = "applied"

		state, err = store.GetLatestState(ctx, "id")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "a@b.com", state.Email)
		assert.True(t, state.Balance.Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, map[string]string{"ref/debit": "applied"}, state.References)

		state.References["ref/refund"] = "applied"
		again, err := store.GetLatestState(ctx, "id")
		require.NoError(t, err)
		assert.Len(t, again.References, 1)

		require.Error(t, store.WriteState(ctx, "id", nil))
	})
	t.Run("disconnect drops snapshots", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Connect(ctx))
		require.NoError(t, store.WriteState(ctx, "id", &Snapshot{Email: "a@b.com"}))

		require.NoError(t, store.Disconnect(ctx))
		require.NoError(t, store.Disconnect(ctx))
		require.NoError(t, store.Connect(ctx))

		state, err := store.GetLatestState(ctx, "id")
		require.NoError(t, err)
		assert.Nil(t, state)
	})
}
