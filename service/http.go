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
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tochemey/goakt-bankaccount/domain"
	"github.com/tochemey/goakt-bankaccount/messages"
)

// AccountResponse is the JSON form of an account
type AccountResponse struct {
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// OpenAccountRequest is the body of POST /accounts
type OpenAccountRequest struct {
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// AmountRequest is the body of the deposit and withdraw routes
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// TransferRequest is the body of POST /accounts/{email}/transfer
type TransferRequest struct {
	To     string           `json:"to"`
	Amount *decimal.Decimal `json:"amount"`
}

// TransferResponse is the JSON form of a completed transfer
type TransferResponse struct {
	Reference string          `json:"reference"`
	From      AccountResponse `json:"from"`
	To        AccountResponse `json:"to"`
}

// ValidationResponse is the reply of the validation routes
type ValidationResponse struct {
	Valid bool `json:"valid"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type serverState struct {
	mu     sync.Mutex
	server *http.Server
}

// Handler returns the HTTP handler of the service
func (s *AccountService) Handler() http.Handler {
	router := chi.NewRouter()
	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", s.handleOpenAccount)
		r.Get("/{email}", s.handleGetAccount)
		r.Post("/{email}/deposit", s.handleDeposit)
		r.Post("/{email}/withdraw", s.handleWithdraw)
		r.Post("/{email}/transfer", s.handleTransfer)
	})
	router.Get("/validation/email", s.handleValidateEmail)
	router.Get("/validation/amount", s.handleValidateAmount)
	return otelhttp.NewHandler(router, "accounts")
}

// Start starts the service
func (s *AccountService) Start() {
	serverAddr := fmt.Sprintf(":%d", s.config.Port)
	server := &http.Server{
		Addr:              serverAddr,
		ReadTimeout:       3 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      s.config.AskTimeout + time.Second,
		IdleTimeout:       1200 * time.Second,
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{
			IdleTimeout: 1200 * time.Second,
		}),
	}

	s.server.mu.Lock()
	s.server.server = server
	s.server.mu.Unlock()

	go func() {
		s.logger.Infof("Account service listening on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				s.logger.Errorf("failed to start account service: %v", errors.Wrap(err, "listen error"))
			}
		}
	}()
}

// Stop stops the service
func (s *AccountService) Stop(ctx context.Context) error {
	s.server.mu.Lock()
	server := s.server.server
	s.server.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *AccountService) handleOpenAccount(w http.ResponseWriter, r *http.Request) {
	var req OpenAccountRequest
	if !decode(w, r, &req) {
		return
	}

	account, err := s.OpenAccount(r.Context(), req.Email, req.Balance)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (s *AccountService) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.GetAccount(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *AccountService) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if !decode(w, r, &req) || !requireAmount(w, req.Amount) {
		return
	}

	account, err := s.Deposit(r.Context(), chi.URLParam(r, "email"), *req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *AccountService) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req AmountRequest
	if !decode(w, r, &req) || !requireAmount(w, req.Amount) {
		return
	}

	account, err := s.Withdraw(r.Context(), chi.URLParam(r, "email"), *req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (s *AccountService) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if !decode(w, r, &req) || !requireAmount(w, req.Amount) {
		return
	}

	transfer, err := s.Transfer(r.Context(), chi.URLParam(r, "email"), req.To, *req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TransferResponse{
		Reference: transfer.Reference,
		From:      toAccountResponse(transfer.From),
		To:        toAccountResponse(transfer.To),
	})
}

func (s *AccountService) handleValidateEmail(w http.ResponseWriter, r *http.Request) {
	valid := domain.IsEmailValid(r.URL.Query().Get("value"))
	writeJSON(w, http.StatusOK, ValidationResponse{Valid: valid})
}

func (s *AccountService) handleValidateAmount(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("value"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: codeInvalidRequest, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ValidationResponse{Valid: domain.IsAmountValid(amount)})
}

func (s *AccountService) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Errorf("account request failed: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: errorCode(err), Message: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   codeInvalidRequest,
			Message: fmt.Sprintf("invalid request: %v", err),
		})
		return false
	}
	return true
}

func requireAmount(w http.ResponseWriter, amount *decimal.Decimal) bool {
	if amount == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   codeInvalidRequest,
			Message: "invalid request: amount is required",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func toAccountResponse(account *messages.Account) AccountResponse {
	return AccountResponse{
		Email:   account.Email,
		Balance: account.Balance,
	}
}
