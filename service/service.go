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
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	goakt "github.com/tochemey/goakt/v4/actor"
	gerrors "github.com/tochemey/goakt/v4/errors"
	"github.com/tochemey/goakt/v4/log"
	"github.com/tochemey/goakt/v4/supervisor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tochemey/goakt-bankaccount/actors"
	"github.com/tochemey/goakt-bankaccount/domain"
	"github.com/tochemey/goakt-bankaccount/messages"
)

const (
	tracerName       = "github.com/tochemey/goakt-bankaccount/service"
	deliveryAttempts = 3
)

// Transfer is the outcome of a successful transfer
type Transfer struct {
	Reference string
	From      *messages.Account
	To        *messages.Account
}

// AccountService exposes the account actors through an HTTP API.
// Every account is owned by one AccountEntity, so concurrent requests on the
// same account are serialized by the actor mailbox.
type AccountService struct {
	actorSystem goakt.ActorSystem
	logger      log.Logger
	config      *Config
	metrics     *Metrics
	tracer      trace.Tracer
	server      *serverState
}

// NewAccountService creates an instance of AccountService
func NewAccountService(system goakt.ActorSystem, config *Config, logger log.Logger, metrics *Metrics) *AccountService {
	return &AccountService{
		actorSystem: system,
		logger:      logger,
		config:      config,
		metrics:     metrics,
		tracer:      otel.Tracer(tracerName),
		server:      new(serverState),
	}
}

// OpenAccount creates the account identified by email with the given starting balance
func (s *AccountService) OpenAccount(ctx context.Context, email string, balance decimal.Decimal) (account *messages.Account, err error) {
	ctx, span := s.tracer.Start(ctx, "OpenAccount")
	defer span.End()
	defer s.record(ctx, "open", time.Now(), &err)

	// nothing is spawned for input the account would reject anyway
	if _, err := domain.NewAccount(email, balance); err != nil {
		return nil, err
	}

	name := actors.ActorName(email)
	if _, err := s.locate(ctx, email); err == nil {
		return nil, errors.Wrapf(ErrAccountExists, "email=%s", email)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	s.logger.Infof("creating actor with id=%s for account=%s", name, email)
	pid, err := s.actorSystem.Spawn(ctx, name, actors.NewAccountEntity(),
		goakt.WithLongLived(),
		goakt.WithSupervisor(
			supervisor.NewSupervisor(
				supervisor.WithStrategy(supervisor.OneForOneStrategy),
				supervisor.WithAnyErrorDirective(supervisor.ResumeDirective),
			)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to spawn account actor")
	}

	account, err = s.ask(ctx, pid, &messages.CreateAccount{Email: email, Balance: balance})
	if err != nil && !errors.Is(err, ErrAccountExists) {
		// an actor without an account would report the email as taken
		if serr := pid.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			s.logger.Errorf("failed to stop actor=%s for account=%s: %v", name, email, serr)
		}
		return nil, err
	}
	return account, err
}

// GetAccount returns the current state of the account identified by email
func (s *AccountService) GetAccount(ctx context.Context, email string) (account *messages.Account, err error) {
	ctx, span := s.tracer.Start(ctx, "GetAccount")
	defer span.End()
	defer s.record(ctx, "get", time.Now(), &err)

	pid, err := s.locate(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.ask(ctx, pid, &messages.GetAccount{Email: email})
}

// Deposit credits the account identified by email
func (s *AccountService) Deposit(ctx context.Context, email string, amount decimal.Decimal) (account *messages.Account, err error) {
	ctx, span := s.tracer.Start(ctx, "Deposit")
	defer span.End()
	defer s.record(ctx, "deposit", time.Now(), &err)

	pid, err := s.locate(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.ask(ctx, pid, &messages.Deposit{Email: email, Amount: amount})
}

// Withdraw debits the account identified by email
func (s *AccountService) Withdraw(ctx context.Context, email string, amount decimal.Decimal) (account *messages.Account, err error) {
	ctx, span := s.tracer.Start(ctx, "Withdraw")
	defer span.End()
	defer s.record(ctx, "withdraw", time.Now(), &err)

	pid, err := s.locate(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.ask(ctx, pid, &messages.Withdraw{Email: email, Amount: amount})
}

// Transfer moves amount from one account to another.
//
// The source is debited first, then the target is credited. The two steps run
// on two actors and are not atomic: a concurrent reader can observe the
// amount in flight. Each leg carries the transfer reference and is retried
// until the account replies. A credit rejected by the target reverses the
// debit. A leg that never gets a reply returns a TransferInDoubtError.
func (s *AccountService) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) (transfer *Transfer, err error) {
	reference := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "Transfer", trace.WithAttributes(attribute.String("transfer.reference", reference)))
	defer span.End()
	defer s.record(ctx, "transfer", time.Now(), &err)

	if err := domain.ValidateAmount("transfer", amount); err != nil {
		return nil, err
	}

	source, err := s.locate(ctx, from)
	if err != nil {
		return nil, err
	}
	target, err := s.locate(ctx, to)
	if err != nil {
		return nil, err
	}

	// once the debit is sent the legs run to the end even when the caller gives up
	legs := context.WithoutCancel(ctx)
	debit := &messages.Withdraw{Email: from, Amount: amount, Reference: reference + "/debit"}
	reverse := &messages.Reverse{Email: from, Amount: amount, Reference: debit.Reference}

	debited, err := s.deliver(legs, source, debit)
	if err != nil {
		if messages.IsRejection(err) {
			return nil, errors.Wrapf(err, "transfer=%s", reference)
		}
		s.logger.Errorf("transfer=%s debit of account=%s in doubt, reversing: %v", reference, from, err)
		s.tell(legs, source, reverse)
		return nil, &TransferInDoubtError{Reference: reference, Err: err}
	}

	credit := &messages.Deposit{Email: to, Amount: amount, Reference: reference + "/credit"}
	credited, err := s.deliver(legs, target, credit)
	switch {
	case err == nil:
	case messages.IsRejection(err):
		s.logger.Errorf("transfer=%s credit of account=%s rejected, refunding account=%s: %v", reference, to, from, err)
		if _, rerr := s.deliver(legs, source, reverse); rerr != nil {
			s.logger.Errorf("transfer=%s refund of account=%s in doubt: %v", reference, from, rerr)
			s.tell(legs, source, reverse)
			return nil, &TransferInDoubtError{Reference: reference, Err: rerr}
		}
		return nil, errors.Wrapf(err, "transfer=%s refunded", reference)
	default:
		s.logger.Errorf("transfer=%s credit of account=%s in doubt: %v", reference, to, err)
		s.tell(legs, target, credit)
		return nil, &TransferInDoubtError{Reference: reference, Err: err}
	}

	s.logger.Infof("transfer=%s moved %s from account=%s to account=%s", reference, amount, from, to)
	return &Transfer{Reference: reference, From: debited, To: credited}, nil
}

// locate returns the PID of the actor owning the account identified by email
func (s *AccountService) locate(ctx context.Context, email string) (*goakt.PID, error) {
	pid, err := s.actorSystem.ActorOf(ctx, actors.ActorName(email))
	if err != nil {
		if errors.Is(err, gerrors.ErrActorNotFound) {
			return nil, errors.Wrapf(ErrAccountNotFound, "email=%s", email)
		}
		s.logger.Errorf("error locating actor: %v", err)
		return nil, errors.Wrap(err, "failed to locate account actor")
	}
	return pid, nil
}

// ask sends command to pid and turns the reply into an account or an error
func (s *AccountService) ask(ctx context.Context, pid *goakt.PID, command messages.AccountMessage) (*messages.Account, error) {
	reply, err := goakt.Ask(ctx, pid, command, s.config.AskTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to send %T", command)
	}

	switch x := reply.(type) {
	case *messages.Account:
		return x, nil
	case *messages.Rejected:
		return nil, x.Err()
	default:
		return nil, fmt.Errorf("invalid reply=%T", reply)
	}
}

// deliver asks command until the account replies. Only commands carrying a
// reference are safe to deliver: the account applies a reference at most once.
func (s *AccountService) deliver(ctx context.Context, pid *goakt.PID, command messages.AccountMessage) (*messages.Account, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond
	return backoff.Retry(ctx, func() (*messages.Account, error) {
		account, err := s.ask(ctx, pid, command)
		if err != nil && messages.IsRejection(err) {
			return nil, backoff.Permanent(err)
		}
		return account, err
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(deliveryAttempts))
}

// tell queues command without waiting for the reply
func (s *AccountService) tell(ctx context.Context, pid *goakt.PID, command messages.AccountMessage) {
	if err := goakt.Tell(ctx, pid, command); err != nil {
		s.logger.Errorf("failed to send %T to actor=%s: %v", command, pid.Name(), err)
	}
}

func (s *AccountService) record(ctx context.Context, operation string, start time.Time, err *error) {
	if *err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(*err)
		span.SetAttributes(attribute.String("account.outcome", errorCode(*err)))
	}
	if s.metrics != nil {
		s.metrics.Record(ctx, operation, start, *err)
	}
}
