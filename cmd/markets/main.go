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
	"os/signal"
	"syscall"

	"matka-ledger-go/internal/api"
	"matka-ledger-go/internal/common"
	"matka-ledger-go/internal/config"
	"matka-ledger-go/internal/market"
	"matka-ledger-go/internal/models"

	"go.uber.org/zap"
)

type boardRequest struct {
	session string
	search  string
	watch   bool
	gameId  string
	betType string
	number  string
	amount  int64
}

func parseFlags() *boardRequest {
	sessionFlag := flag.String("session", models.SessionAll, "Session tab: All, Morning, Day or Night")
	searchFlag := flag.String("search", "", "Filter games by name")
	watchFlag := flag.Bool("watch", false, "Redraw the board on MARKET_WATCH_SCHEDULE until interrupted")
	gameFlag := flag.String("game", "", "Game id to bet on")
	typeFlag := flag.String("type", string(models.BetOpen), "Bet type: open, close, jodi or panel")
	numberFlag := flag.String("number", "", "Number to bet on")
	amountFlag := flag.Int64("amount", 0, "Bet amount in rupees")
	flag.Parse()

	return &boardRequest{
		session: *sessionFlag,
		search:  *searchFlag,
		watch:   *watchFlag,
		gameId:  *gameFlag,
		betType: *typeFlag,
		number:  *numberFlag,
		amount:  *amountFlag,
	}
}

func printBoard(board *market.Board, entries []models.BoardEntry, games []models.Game) {
	clock := board.Clock()
	now := board.Now()

	common.PrintHeader(fmt.Sprintf("MARKETS  %s", clock.Current().Format("Mon 02 Jan 15:04")), common.WideWidth)
	fmt.Println(board.Ticker(games, now))
	common.PrintBoxSeparator(common.WideWidth - 2)

	if len(entries) == 0 {
		fmt.Println("No games match")
		return
	}
	for i, e := range entries {
		isLast := i == len(entries)-1
		fmt.Printf("%s %-20s %-16s %s - %s   %s\n",
			common.BoxPrefix(isLast),
			e.Game.Name,
			common.StatusBadge(e.Status),
			market.FormatMinutes(clock.ScheduleMinutes(e.Game.Schedule.OpenTime)),
			market.FormatMinutes(clock.ScheduleMinutes(e.Game.Schedule.CloseTime)),
			market.FormatResult(e.Result))
	}
}

func placeBet(ctx context.Context, svc *api.LedgerService, games *common.GamesConfig, req *boardRequest) error {
	game, ok := games.FindGame(req.gameId)
	if !ok {
		return fmt.Errorf("unknown game %q", req.gameId)
	}

	res, err := svc.PlaceBet(ctx, game, models.BetType(req.betType), req.number, req.amount)
	if err != nil {
		return err
	}

	common.PrintHeader("BET", common.DefaultWidth)
	fmt.Printf("Game:    %s (%s)\n", game.Name, res.MarketStatus)
	fmt.Printf("Bet:     %s %s for %s\n", res.BetType, res.BetNumber, common.Rupees(res.Amount))
	if !res.Success {
		common.PrintFooter("REJECTED: "+res.Error, common.DefaultWidth)
		return nil
	}
	fmt.Printf("Win:     %s\n", common.Rupees(res.PotentialWin))
	common.PrintFooter("Bet placed! Balance now "+common.Rupees(res.NewBalance), common.DefaultWidth)
	return nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	req := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	games, err := common.LoadGamesConfig(cfg.Market.GamesFile)
	if err != nil {
		logger.Fatal("Failed to load games", zap.String("file", cfg.Market.GamesFile), zap.Error(err))
	}
	results := games.ResultsByGame()

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	svc := services.LedgerService

	if req.gameId != "" {
		if err := placeBet(ctx, svc, games, req); err != nil {
			logger.Error("Failed to place bet", zap.String("game_id", req.gameId), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	draw := func() {
		printBoard(services.Board, svc.MarketBoard(games.Games, results, req.session, req.search), games.Games)
	}
	draw()

	if !req.watch {
		return
	}

	stopMetrics := services.StartMetrics(cfg.Metrics)
	defer stopMetrics()

	scheduler := common.NewScheduler(cfg.Market.Location)
	if err := scheduler.Every(cfg.Market.WatchSchedule, "market-board", draw); err != nil {
		logger.Fatal("Failed to schedule board refresh", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("Watching markets", zap.String("schedule", cfg.Market.WatchSchedule))
	logger.Info("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received, stopping market watch")
}
