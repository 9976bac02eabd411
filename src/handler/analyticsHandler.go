package handler

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/analytics"
	"tradejournal/src/auth"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type tradeLister interface {
	ListAll(ctx context.Context, userID uint) ([]model.Trade, error)
}

// analyticsHandler loads the authenticated user's full trade history and
// renders the given aggregation over it. All analytics endpoints share this
// shape; only the compute step differs.
func analyticsHandler(repo tradeLister, compute func([]model.Trade) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		trades, err := repo.ListAll(r.Context(), user.ID)
		if err != nil {
			logger.WithFields(logger.Fields{"user_id": user.ID}).
				WithError(err).Error("failed to load trades for analytics")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, compute(trades))
	}
}

func SummaryHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ComputeSummary(trades)
	})
}

func EquityCurveHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.EquityCurve(trades)
	})
}

func MonthlyPerformanceHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.MonthlyPerformance(trades)
	})
}

func DayOfWeekHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.DayOfWeekPerformance(trades)
	})
}

func AssetClassesHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ByAssetClass(trades)
	})
}

func PairsHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ByPair(trades)
	})
}

func StrategiesHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ByStrategy(trades)
	})
}

func ExitReasonsHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ByExitReason(trades)
	})
}

func RulesHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ByRule(trades)
	})
}

func EmotionsHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.ByEmotion(trades)
	})
}

func SetupQualityHandler(repo tradeLister) http.HandlerFunc {
	return analyticsHandler(repo, func(trades []model.Trade) interface{} {
		return analytics.BySetupQuality(trades)
	})
}

// Analytics reads go to the read-only replica when one is configured.
func DefaultSummaryHandler() http.HandlerFunc {
	return SummaryHandler(repository.NewTradeReadRepository())
}

func DefaultEquityCurveHandler() http.HandlerFunc {
	return EquityCurveHandler(repository.NewTradeReadRepository())
}

func DefaultMonthlyPerformanceHandler() http.HandlerFunc {
	return MonthlyPerformanceHandler(repository.NewTradeReadRepository())
}

func DefaultDayOfWeekHandler() http.HandlerFunc {
	return DayOfWeekHandler(repository.NewTradeReadRepository())
}

func DefaultAssetClassesHandler() http.HandlerFunc {
	return AssetClassesHandler(repository.NewTradeReadRepository())
}

func DefaultPairsHandler() http.HandlerFunc {
	return PairsHandler(repository.NewTradeReadRepository())
}

func DefaultStrategiesHandler() http.HandlerFunc {
	return StrategiesHandler(repository.NewTradeReadRepository())
}

func DefaultExitReasonsHandler() http.HandlerFunc {
	return ExitReasonsHandler(repository.NewTradeReadRepository())
}

func DefaultRulesHandler() http.HandlerFunc {
	return RulesHandler(repository.NewTradeReadRepository())
}

func DefaultEmotionsHandler() http.HandlerFunc {
	return EmotionsHandler(repository.NewTradeReadRepository())
}

func DefaultSetupQualityHandler() http.HandlerFunc {
	return SetupQualityHandler(repository.NewTradeReadRepository())
}
