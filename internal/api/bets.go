package api

import (
	"context"
	"errors"
	"fmt"

	"matka-ledger-go/internal/market"
	"matka-ledger-go/internal/metrics"
	"matka-ledger-go/internal/models"
	"matka-ledger-go/internal/wallet"

	"go.uber.org/zap"
)

// PlaceBet checks the market is open and the bet is well formed, then debits
// the stake. Results are settled elsewhere.
func (s *LedgerService) PlaceBet(ctx context.Context, game models.Game, betType models.BetType, number string, amount int64) (*models.BetResult, error) {
	status := s.board.Status(game)
	result := &models.BetResult{
		GameId:       game.Id,
		BetType:      betType,
		BetNumber:    number,
		Amount:       amount,
		MarketStatus: status,
	}

	if err := market.ValidateBet(status, betType, number, amount, s.minBet); err != nil {
		metrics.BetsPlaced.WithLabelValues(string(betType), metrics.OutcomeRejected).Inc()
		zap.L().Info("Bet rejected",
			zap.String("game_id", game.Id),
			zap.String("bet_type", string(betType)),
			zap.String("status", string(status)),
			zap.Error(err))
		result.Error = err.Error()
		return result, nil
	}

	description := fmt.Sprintf("Bet on %s %s %s", game.Name, betType, number)
	if _, err := s.ledger.Spend(ctx, amount, description); err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			metrics.BetsPlaced.WithLabelValues(string(betType), metrics.OutcomeRejected).Inc()
			result.Error = err.Error()
			return result, nil
		}
		metrics.BetsPlaced.WithLabelValues(string(betType), metrics.OutcomeError).Inc()
		zap.L().Error("Bet debit failed", zap.String("game_id", game.Id), zap.Error(err))
		return nil, err
	}

	newBalance, err := s.ledger.Balance(ctx)
	if err != nil {
		return nil, err
	}

	metrics.BetsPlaced.WithLabelValues(string(betType), metrics.OutcomeOk).Inc()
	metrics.WalletAmount.WithLabelValues("bet").Add(float64(amount))
	s.observeBalance(newBalance)

	zap.L().Info("Bet placed",
		zap.String("game_id", game.Id),
		zap.String("bet_type", string(betType)),
		zap.String("bet_number", number),
		zap.Int64("amount", amount),
		zap.Int64("new_balance", newBalance))

	result.Success = true
	result.PotentialWin = market.PotentialWin(betType, amount)
	result.NewBalance = newBalance
	return result, nil
}

// MarketBoard evaluates the games matching session and query at the current
// time. The status gauges always count every game, whatever the filter.
func (s *LedgerService) MarketBoard(games []models.Game, results map[string]models.GameResult, session, query string) []models.BoardEntry {
	now := s.board.Now()
	for status, n := range s.board.Counts(games, now) {
		metrics.MarketsByStatus.WithLabelValues(string(status)).Set(float64(n))
	}
	return s.board.Entries(games, results, session, query, now)
}
