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

import "github.com/shopspring/decimal"

// WalletResult represents the result of a wallet mutation
type WalletResult struct {
	Success       bool            `json:"success"`
	Amount        int64           `json:"amount,omitempty"`
	NewBalance    int64           `json:"new_balance"`
	NewBalanceUsd decimal.Decimal `json:"new_balance_usd"`
	TransactionId int64           `json:"transaction_id,omitempty"`
	WithdrawalId  int64           `json:"withdrawal_id,omitempty"`
	Status        string          `json:"status,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// BetResult represents the result of placing a bet
type BetResult struct {
	Success      bool         `json:"success"`
	GameId       string       `json:"game_id,omitempty"`
	BetType      BetType      `json:"bet_type,omitempty"`
	BetNumber    string       `json:"bet_number,omitempty"`
	Amount       int64        `json:"amount,omitempty"`
	PotentialWin int64        `json:"potential_win,omitempty"`
	MarketStatus MarketStatus `json:"market_status,omitempty"`
	NewBalance   int64        `json:"new_balance"`
	Error        string       `json:"error,omitempty"`
}
