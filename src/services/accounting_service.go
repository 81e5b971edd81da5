package services

import (
	"fmt"
	"sort"

	"github.com/patrickmn/go-cache"

	"github.com/username/acctfolio/src/logger"
	"github.com/username/acctfolio/src/models"
	"github.com/username/acctfolio/src/processors"
	"github.com/username/acctfolio/src/security/validation"
	"github.com/username/acctfolio/src/utils"
)

// Report-cache key patterns. Keys are derived from a digest of the request
// payload: the engine is stateless, so identical payloads always produce
// identical reports.
const (
	ckCostBasis   = "res_cost_basis_%s"
	ckFifo        = "res_fifo_performance_%s"
	ckTrades      = "res_trades_%s"
	ckTwr         = "res_twr_%s"
	ckProjection  = "res_projection_%s"
	ckPerformance = "res_performance_%s"
)

type accountingServiceImpl struct {
	costBasisProcessor  processors.CostBasisProcessor
	fifoProcessor       processors.FifoProcessor
	tradeProcessor      processors.TradeProcessor
	twrProcessor        processors.TwrProcessor
	projectionProcessor processors.ProjectionProcessor
	reportCache         *cache.Cache
}

func NewAccountingService(
	costBasisProcessor processors.CostBasisProcessor,
	fifoProcessor processors.FifoProcessor,
	tradeProcessor processors.TradeProcessor,
	twrProcessor processors.TwrProcessor,
	projectionProcessor processors.ProjectionProcessor,
	reportCache *cache.Cache,
) AccountingService {
	return &accountingServiceImpl{
		costBasisProcessor:  costBasisProcessor,
		fifoProcessor:       fifoProcessor,
		tradeProcessor:      tradeProcessor,
		twrProcessor:        twrProcessor,
		projectionProcessor: projectionProcessor,
		reportCache:         reportCache,
	}
}

func (s *accountingServiceImpl) ComputeCostBasis(req models.CostBasisRequest) (models.CostBasisResult, error) {
	if err := validation.ValidateTransactions(req.Transactions); err != nil {
		return models.CostBasisResult{}, err
	}
	req.Transactions = normalizeSymbols(req.Transactions)

	cacheKey := s.cacheKey(ckCostBasis, req)
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(models.CostBasisResult), nil
	}

	result, err := s.costBasisProcessor.Process(req.Transactions, req.CurrentPrice)
	if err != nil {
		return models.CostBasisResult{}, err
	}
	s.cacheSet(cacheKey, result)
	return result, nil
}

func (s *accountingServiceImpl) ComputeFifoPerformance(req models.TransactionsRequest) ([]models.ClosedTradePerformance, error) {
	if err := validation.ValidateTransactions(req.Transactions); err != nil {
		return nil, err
	}
	req.Transactions = normalizeSymbols(req.Transactions)

	cacheKey := s.cacheKey(ckFifo, req)
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.([]models.ClosedTradePerformance), nil
	}

	results, err := s.fifoProcessor.Process(req.Transactions)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKey, results)
	return results, nil
}

func (s *accountingServiceImpl) GroupTrades(req models.TransactionsRequest) ([]models.Trade, error) {
	if err := validation.ValidateTransactions(req.Transactions); err != nil {
		return nil, err
	}
	req.Transactions = normalizeSymbols(req.Transactions)

	cacheKey := s.cacheKey(ckTrades, req)
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.([]models.Trade), nil
	}

	trades, err := s.tradeProcessor.Process(req.Transactions)
	if err != nil {
		return nil, err
	}
	s.cacheSet(cacheKey, trades)
	return trades, nil
}

func (s *accountingServiceImpl) ComputeTwr(req models.TwrRequest) ([]models.TwrPoint, error) {
	if err := validation.ValidateSnapshotSeries(req.Series); err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(ckTwr, req)
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.([]models.TwrPoint), nil
	}

	points := s.twrProcessor.Process(req.Series)
	s.cacheSet(cacheKey, points)
	return points, nil
}

func (s *accountingServiceImpl) Project(input models.ProjectionInput) (models.ProjectionResult, error) {
	if err := validation.ValidateProjectionInput(input); err != nil {
		return models.ProjectionResult{}, err
	}

	cacheKey := s.cacheKey(ckProjection, input)
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(models.ProjectionResult), nil
	}

	result, err := s.projectionProcessor.Process(input)
	if err != nil {
		return models.ProjectionResult{}, err
	}
	s.cacheSet(cacheKey, result)
	return result, nil
}

// SummarizePerformance ranks best and worst performers, keeping the two
// performance definitions separate: open positions are ranked by the
// weighted-average unrealized percent at current prices, closed trades by
// FIFO profit percent. Symbols without a supplied price cannot be ranked as
// open positions and are left out.
func (s *accountingServiceImpl) SummarizePerformance(req models.PerformanceRequest) (models.PerformanceSummary, error) {
	if err := validation.ValidateTransactions(req.Transactions); err != nil {
		return models.PerformanceSummary{}, err
	}
	req.Transactions = normalizeSymbols(req.Transactions)

	prices := make(map[string]float64, len(req.CurrentPrices))
	for symbol, price := range req.CurrentPrices {
		prices[validation.NormalizeSymbol(symbol)] = price
	}
	req.CurrentPrices = prices

	cacheKey := s.cacheKey(ckPerformance, req)
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(models.PerformanceSummary), nil
	}

	closedResults, err := s.fifoProcessor.Process(req.Transactions)
	if err != nil {
		return models.PerformanceSummary{}, err
	}
	closed := make([]models.SymbolPerformance, 0, len(closedResults))
	for _, result := range closedResults {
		closed = append(closed, models.SymbolPerformance(result))
	}

	var open []models.SymbolPerformance
	for symbol, txs := range processors.GroupBySymbol(req.Transactions) {
		price, ok := req.CurrentPrices[symbol]
		if !ok {
			logger.L.Debug("No current price for symbol, excluded from open ranking", "symbol", symbol)
			continue
		}
		result, err := s.costBasisProcessor.Process(txs, price)
		if err != nil {
			return models.PerformanceSummary{}, err
		}
		if result.Quantity <= utils.Epsilon {
			continue // fully liquidated, ranked on the closed side
		}
		open = append(open, models.SymbolPerformance{Symbol: symbol, ProfitPercent: result.PercentChange})
	}
	sort.Slice(open, func(i, j int) bool { return open[i].Symbol < open[j].Symbol })

	summary := models.PerformanceSummary{
		BestOpen:    bestOf(open),
		WorstOpen:   worstOf(open),
		BestClosed:  bestOf(closed),
		WorstClosed: worstOf(closed),
	}
	s.cacheSet(cacheKey, summary)
	return summary, nil
}

// cacheKey derives the report-cache key from a digest of the request payload.
// A marshaling failure just disables caching for that request.
func (s *accountingServiceImpl) cacheKey(pattern string, payload interface{}) string {
	digest, err := utils.GenerateETag(payload)
	if err != nil {
		logger.L.Warn("Failed to digest request payload, skipping cache", "error", err)
		return ""
	}
	return fmt.Sprintf(pattern, digest)
}

func (s *accountingServiceImpl) cacheGet(key string) (interface{}, bool) {
	if key == "" || s.reportCache == nil {
		return nil, false
	}
	cached, found := s.reportCache.Get(key)
	if found {
		logger.L.Debug("Report cache hit", "key", key)
	}
	return cached, found
}

func (s *accountingServiceImpl) cacheSet(key string, value interface{}) {
	if key == "" || s.reportCache == nil {
		return
	}
	s.reportCache.Set(key, value, cache.DefaultExpiration)
}

// normalizeSymbols returns a copy of the transactions with sanitized,
// upper-cased symbols so mixed-case payloads key the same inventory.
func normalizeSymbols(transactions []models.Transaction) []models.Transaction {
	normalized := make([]models.Transaction, len(transactions))
	copy(normalized, transactions)
	for i := range normalized {
		normalized[i].Symbol = validation.NormalizeSymbol(normalized[i].Symbol)
	}
	return normalized
}

func bestOf(entries []models.SymbolPerformance) *models.SymbolPerformance {
	var best *models.SymbolPerformance
	for i := range entries {
		if best == nil || entries[i].ProfitPercent > best.ProfitPercent {
			best = &entries[i]
		}
	}
	return best
}

func worstOf(entries []models.SymbolPerformance) *models.SymbolPerformance {
	var worst *models.SymbolPerformance
	for i := range entries {
		if worst == nil || entries[i].ProfitPercent < worst.ProfitPercent {
			worst = &entries[i]
		}
	}
	return worst
}
