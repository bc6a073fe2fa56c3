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

func printPending(pending []models.Withdrawal) {
	common.PrintHeader("PENDING WITHDRAWALS", common.WideWidth)
	if len(pending) == 0 {
		fmt.Println("Nothing awaiting approval")
		return
	}
	for i, w := range pending {
		isLast := i == len(pending)-1
		fmt.Printf("%s #%d  %s  %s\n",
			common.BoxPrefix(isLast), w.Id, common.RupeesWithUsd(w.Amount, w.UsdAmount), w.Details)
		fmt.Printf("%s   requested %s, ref %s\n",
			common.BoxDetailPrefix(isLast), common.Timestamp(w.Time()), w.Reference)
	}
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	approveFlag := flag.Int64("approve", 0, "Withdrawal id to approve")
	rejectFlag := flag.Int64("reject", 0, "Withdrawal id to reject and refund")
	flag.Parse()

	if *approveFlag != 0 && *rejectFlag != 0 {
		fmt.Fprintln(os.Stderr, "Error: use only one of --approve or --reject")
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

	if mode := services.Ledger.ApprovalMode(); mode != models.ApprovalManual {
		logger.Warn("Withdrawals are auto-approved; nothing will be pending",
			zap.String("approval_mode", string(mode)))
	}

	svc := services.LedgerService

	var res *models.WalletResult
	switch {
	case *approveFlag != 0:
		res, err = svc.ApproveWithdrawal(ctx, *approveFlag)
	case *rejectFlag != 0:
		res, err = svc.RejectWithdrawal(ctx, *rejectFlag)
	default:
		printPending(svc.GetPendingWithdrawals(ctx))
		common.PrintFooter("Use --approve <id> or --reject <id> to settle", common.WideWidth)
		return
	}
	if err != nil {
		logger.Error("Failed to settle withdrawal", zap.Error(err))
		os.Exit(1)
	}

	if !res.Success {
		common.PrintFooter(fmt.Sprintf("FAILED: withdrawal %d: %s", res.WithdrawalId, res.Error), common.DefaultWidth)
		os.Exit(1)
	}
	common.PrintFooter(fmt.Sprintf("Withdrawal %d %s, balance now %s", res.WithdrawalId, res.Status, common.Rupees(res.NewBalance)), common.DefaultWidth)
}
