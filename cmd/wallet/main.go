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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"matka-ledger-go/internal/common"
	"matka-ledger-go/internal/config"
	"matka-ledger-go/internal/models"

	"go.uber.org/zap"
)

type walletRequest struct {
	action string
	amount int64
	method models.PayoutMethod
	limit  int
	offset int
}

func parseAndValidateFlags() (*walletRequest, error) {
	actionFlag := flag.String("action", "balance", "One of: balance, add, withdraw, history, withdrawals, reconcile")
	amountFlag := flag.Int64("amount", 0, "Amount in rupees for add/withdraw")
	methodFlag := flag.String("method", "upi", "Payout method for withdraw: upi, bank or card")
	upiFlag := flag.String("upi", "", "UPI ID (e.g. name@okbank)")
	accountFlag := flag.String("account", "", "Bank account number")
	ifscFlag := flag.String("ifsc", "", "Bank IFSC code")
	holderFlag := flag.String("holder", "", "Account or card holder name")
	cardFlag := flag.String("card", "", "16 digit card number")
	expiryFlag := flag.String("expiry", "", "Card expiry MM/YY")
	cvvFlag := flag.String("cvv", "", "Card CVV")
	limitFlag := flag.Int("limit", 20, "Rows to show for history/withdrawals")
	offsetFlag := flag.Int("offset", 0, "Rows to skip for history/withdrawals")
	flag.Parse()

	req := &walletRequest{
		action: *actionFlag,
		amount: *amountFlag,
		limit:  *limitFlag,
		offset: *offsetFlag,
	}

	switch req.action {
	case "balance", "history", "withdrawals", "reconcile":
		return req, nil
	case "add":
		if req.amount <= 0 {
			return nil, fmt.Errorf("--amount is required and must be greater than zero")
		}
		return req, nil
	case "withdraw":
		if req.amount <= 0 {
			return nil, fmt.Errorf("--amount is required and must be greater than zero")
		}
	default:
		return nil, fmt.Errorf("unknown action %q", req.action)
	}

	switch *methodFlag {
	case "upi":
		req.method = models.UPIMethod{VPA: *upiFlag}
	case "bank":
		req.method = models.BankMethod{AccountNumber: *accountFlag, IFSC: *ifscFlag, Holder: *holderFlag}
	case "card":
		req.method = models.CardMethod{Number: *cardFlag, Holder: *holderFlag, Expiry: *expiryFlag, CVV: *cvvFlag}
	default:
		return nil, fmt.Errorf("unknown payout method %q, expected upi, bank or card", *methodFlag)
	}
	return req, nil
}

func printResult(title string, res *models.WalletResult) {
	common.PrintHeader(title, common.DefaultWidth)
	if !res.Success {
		fmt.Printf("Failed: %s\n", res.Error)
		return
	}
	fmt.Printf("Amount:       %s\n", common.Rupees(res.Amount))
	if res.TransactionId != 0 {
		fmt.Printf("Transaction:  %d\n", res.TransactionId)
	}
	if res.WithdrawalId != 0 {
		fmt.Printf("Withdrawal:   %d (%s)\n", res.WithdrawalId, res.Status)
	}
	fmt.Printf("New balance:  %s\n", common.RupeesWithUsd(res.NewBalance, res.NewBalanceUsd))
}

func printHistory(txs []models.Transaction) {
	common.PrintHeader("TRANSACTION HISTORY", common.WideWidth)
	if len(txs) == 0 {
		fmt.Println("No transactions yet")
		return
	}
	for i, tx := range txs {
		fmt.Printf("%s %s  %-12s %s\n",
			common.BoxPrefix(i == len(txs)-1),
			common.Timestamp(tx.Time()),
			common.SignedRupees(tx.Type, tx.Amount),
			tx.Description)
	}
}

func printWithdrawals(ws []models.Withdrawal) {
	common.PrintHeader("WITHDRAWALS", common.WideWidth)
	if len(ws) == 0 {
		fmt.Println("No withdrawals yet")
		return
	}
	for i, w := range ws {
		isLast := i == len(ws)-1
		fmt.Printf("%s #%d  %s  %s  [%s]\n",
			common.BoxPrefix(isLast), w.Id, common.RupeesWithUsd(w.Amount, w.UsdAmount), w.Method, w.Status)
		fmt.Printf("%s   %s | %s | ref %s\n",
			common.BoxDetailPrefix(isLast), common.Timestamp(w.Time()), w.Details, w.Reference)
	}
}

func run(ctx context.Context, services *common.Services, req *walletRequest) error {
	svc := services.LedgerService

	switch req.action {
	case "balance":
		balance, usd, err := svc.GetBalance(ctx)
		if err != nil {
			return err
		}
		common.PrintHeader("WALLET BALANCE", common.DefaultWidth)
		fmt.Printf("Balance:     %s\n", common.RupeesWithUsd(balance, usd))
		fmt.Printf("Withdrawals: %s approval\n", services.Ledger.ApprovalMode())
	case "add":
		res, err := svc.AddMoney(ctx, req.amount)
		if err != nil {
			return err
		}
		printResult("ADD MONEY", res)
	case "withdraw":
		res, err := svc.Withdraw(ctx, req.amount, req.method)
		if err != nil {
			return err
		}
		printResult("WITHDRAWAL REQUEST", res)
	case "history":
		printHistory(svc.GetTransactionHistory(ctx, req.limit, req.offset))
	case "withdrawals":
		printWithdrawals(svc.GetWithdrawals(ctx, req.limit, req.offset))
	case "reconcile":
		r, err := svc.Reconcile(ctx)
		common.PrintHeader("RECONCILIATION", common.DefaultWidth)
		fmt.Printf("Initial:  %s\nCredits:  %s\nDebits:   %s\nExpected: %s\nStored:   %s\n",
			common.Rupees(r.InitialBalance), common.Rupees(r.Credits), common.Rupees(r.Debits),
			common.Rupees(r.Expected), common.Rupees(r.Actual))
		if err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	req, err := parseAndValidateFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if err := run(ctx, services, req); err != nil {
		logger.Error("Wallet command failed", zap.String("action", req.action), zap.Error(err))
		common.PrintFooter("FAILED: "+err.Error(), common.DefaultWidth)
		os.Exit(1)
	}
	common.PrintFooter("Done", common.DefaultWidth)
}
