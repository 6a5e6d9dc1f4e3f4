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

package actors

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v4/actor"

	"github.com/tochemey/goakt-bankaccount/domain"
	"github.com/tochemey/goakt-bankaccount/messages"
	"github.com/tochemey/goakt-bankaccount/persistence"
)

// ActorName returns the name of the actor owning the account identified by email.
// Names are derived from the email so that any valid email maps to a valid actor name.
func ActorName(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

// AccountEntity is the single writer of one account.
// The actor mailbox serializes every command, which makes the account safe
// to use from concurrent callers.
type AccountEntity struct {
	name    string
	account *domain.Account
	store   persistence.Store
	// references maps each command reference seen to its state
	references map[string]string
}

// reference states
const (
	referenceApplied  = "applied"
	referenceVoided   = "voided"
	referenceReversed = "reversed"
)

var _ actor.Actor = (*AccountEntity)(nil)

// NewAccountEntity creates an instance of AccountEntity
func NewAccountEntity() *AccountEntity {
	return &AccountEntity{references: make(map[string]string)}
}

// PreStart recovers the account from the state store when the actor is restarted
func (x *AccountEntity) PreStart(ctx *actor.Context) error {
	x.name = ctx.ActorName()
	store, ok := ctx.Extension(persistence.MemoryStoreID).(persistence.Store)
	if !ok {
		return fmt.Errorf("extension %s is not registered", persistence.MemoryStoreID)
	}
	x.store = store

	latestState, err := x.store.GetLatestState(ctx.Context(), x.name)
	if err != nil {
		return fmt.Errorf("failed to get the latest state: %w", err)
	}

	if latestState != nil {
		account, err := domain.NewAccount(latestState.Email, latestState.Balance)
		if err != nil {
			return fmt.Errorf("failed to recover account=%s: %w", latestState.Email, err)
		}
		x.account = account
		if latestState.References != nil {
			x.references = latestState.References
		}
	}
	return nil
}

// Receive handles the messages sent to the actor
func (x *AccountEntity) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:
		ctx.Logger().Infof("account entity=(%s) successfully started", x.name)
	case *messages.CreateAccount:
		if x.account != nil {
			ctx.Logger().Infof("account=%s has been created already", x.account.Email())
			ctx.Response(messages.RejectionOf(fmt.Errorf("%w: %s", messages.ErrAccountExists, x.account.Email())))
			return
		}

		account, err := domain.NewAccount(msg.Email, msg.Balance)
		if err != nil {
			ctx.Response(messages.RejectionOf(err))
			return
		}

		x.account = account
		x.persist(ctx)
		ctx.Response(x.reply())
	case *messages.Deposit:
		if !x.created(ctx) || x.replayed(ctx, msg.Reference) {
			return
		}

		if err := x.account.Deposit(msg.Amount); err != nil {
			ctx.Response(messages.RejectionOf(err))
			return
		}

		x.mark(msg.Reference, referenceApplied)
		x.persist(ctx)
		ctx.Response(x.reply())
	case *messages.Withdraw:
		if !x.created(ctx) || x.replayed(ctx, msg.Reference) {
			return
		}

		if err := x.account.Withdraw(msg.Amount); err != nil {
			ctx.Response(messages.RejectionOf(err))
			return
		}

		x.mark(msg.Reference, referenceApplied)
		x.persist(ctx)
		ctx.Response(x.reply())
	case *messages.Reverse:
		if !x.created(ctx) {
			return
		}
		if msg.Reference == "" {
			ctx.Response(messages.RejectionOf(fmt.Errorf("%w: reverse requires a reference", domain.ErrInvalidArgument)))
			return
		}

		switch x.references[msg.Reference] {
		case referenceApplied:
			if err := x.account.Deposit(msg.Amount); err != nil {
				ctx.Response(messages.RejectionOf(err))
				return
			}
			x.mark(msg.Reference, referenceReversed)
		case "":
			x.mark(msg.Reference, referenceVoided)
		}

		x.persist(ctx)
		ctx.Response(x.reply())
	case *messages.GetAccount:
		if !x.created(ctx) {
			return
		}
		ctx.Response(x.reply())
	default:
		ctx.Unhandled()
	}
}

// PostStop writes the final state of the account
func (x *AccountEntity) PostStop(ctx *actor.Context) error {
	if x.account == nil {
		return nil
	}
	return x.store.WriteState(ctx.Context(), x.name, x.snapshot())
}

// created replies with a rejection when the account does not exist yet
func (x *AccountEntity) created(ctx *actor.ReceiveContext) bool {
	if x.account != nil {
		return true
	}
	ctx.Response(messages.RejectionOf(fmt.Errorf("%w: actor=%s", messages.ErrAccountNotCreated, x.name)))
	return false
}

// replayed replies without applying the command when its reference was seen before
func (x *AccountEntity) replayed(ctx *actor.ReceiveContext, reference string) bool {
	if reference == "" {
		return false
	}
	switch x.references[reference] {
	case "":
		return false
	case referenceVoided:
		ctx.Response(messages.RejectionOf(fmt.Errorf("%w: reference=%s", messages.ErrReferenceVoided, reference)))
	default:
		ctx.Response(x.reply())
	}
	return true
}

func (x *AccountEntity) mark(reference, state string) {
	if reference != "" {
		x.references[reference] = state
	}
}

// persist writes a snapshot after a successful mutation. The in-memory account
// stays the source of truth, so a failed write is only logged.
func (x *AccountEntity) persist(ctx *actor.ReceiveContext) {
	if err := x.store.WriteState(ctx.Context(), x.name, x.snapshot()); err != nil {
		ctx.Logger().Errorf("failed to write state for account=%s: %v", x.account.Email(), err)
	}
}

func (x *AccountEntity) snapshot() *persistence.Snapshot {
	return &persistence.Snapshot{
		Email:      x.account.Email(),
		Balance:    x.account.Balance(),
		References: x.references,
	}
}

func (x *AccountEntity) reply() *messages.Account {
	return &messages.Account{
		Email:   x.account.Email(),
		Balance: x.account.Balance(),
	}
}
