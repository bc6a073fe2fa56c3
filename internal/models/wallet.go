/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a ledger entry
type TransactionKind string

const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

// WithdrawalStatus tracks a payout request
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// ApprovalMode selects whether withdrawals settle immediately or wait for an operator
type ApprovalMode string

const (
	ApprovalAuto   ApprovalMode = "auto"
	ApprovalManual ApprovalMode = "manual"
)

// Transaction represents immutable ledger history. Timestamps are unix milliseconds.
type Transaction struct {
	Id          int64           `json:"id"`
	Type        TransactionKind `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Timestamp   int64           `json:"timestamp"`
}

// Time returns the transaction timestamp as a time.Time
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Withdrawal represents a payout request recorded against the wallet
type Withdrawal struct {
	Id        int64            `json:"id"`
	Amount    int64            `json:"amount"`
	UsdAmount decimal.Decimal  `json:"usdAmount"`
	Method    string           `json:"method"`
	Details   string           `json:"details"`
	Status    WithdrawalStatus `json:"status"`
	Reference string           `json:"reference,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

// Time returns the withdrawal timestamp as a time.Time
func (w Withdrawal) Time() time.Time {
	return time.UnixMilli(w.Timestamp)
}

// PayoutMethod is the destination of a withdrawal. Implemented by UPIMethod,
// BankMethod and CardMethod only.
type PayoutMethod interface {
	// Label is the short descriptor stored on the withdrawal, e.g. "UPI: name@upi"
	Label() string
	// Details is the human readable payout description
	Details() string
	payoutMethod()
}

// UPIMethod pays out to a UPI virtual payment address
type UPIMethod struct {
	VPA string
}

func (m UPIMethod) Label() string   { return "UPI: " + m.VPA }
func (m UPIMethod) Details() string { return "Withdrawal to UPI: " + m.VPA }
func (UPIMethod) payoutMethod()     {}

// BankMethod pays out to a bank account
type BankMethod struct {
	AccountNumber string
	IFSC          string
	Holder        string
}

func (m BankMethod) Label() string { return "Bank: " + m.AccountNumber }
func (m BankMethod) Details() string {
	return fmt.Sprintf("Withdrawal to Bank: %s | IFSC: %s", m.AccountNumber, m.IFSC)
}
func (BankMethod) payoutMethod() {}

// CardMethod pays out to a debit/credit card
type CardMethod struct {
	Number string
	Holder string
	Expiry string // MM/YY
	CVV    string
}

// Last4 returns the last four digits of the card number with spaces removed
func (m CardMethod) Last4() string {
	raw := strings.ReplaceAll(m.Number, " ", "")
	if len(raw) < 4 {
		return raw
	}
	return raw[len(raw)-4:]
}

func (m CardMethod) Label() string   { return "Card: ****" + m.Last4() }
func (m CardMethod) Details() string { return "Card payout to **** **** **** " + m.Last4() }
func (CardMethod) payoutMethod()     {}
