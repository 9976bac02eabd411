package handler

import (
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/analytics"
	"tradejournal/src/auth"
	"tradejournal/src/export"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

// ExportTradesCSVHandler streams the user's full trade history as a CSV
// file. The columns mirror the import format, so an export can be re-imported
// as-is.
func ExportTradesCSVHandler(repo tradeLister) http.HandlerFunc {
	return csvHandler(repo, "trades.csv", func(w http.ResponseWriter, trades []model.Trade) error {
		return export.WriteTradesCSV(w, trades)
	})
}

// ExportSummaryCSVHandler renders the performance summary as metric/value
// rows.
func ExportSummaryCSVHandler(repo tradeLister) http.HandlerFunc {
	return csvHandler(repo, "summary.csv", func(w http.ResponseWriter, trades []model.Trade) error {
		return export.WriteSummaryCSV(w, analytics.ComputeSummary(trades))
	})
}

// ExportMonthlyCSVHandler renders the monthly performance buckets.
func ExportMonthlyCSVHandler(repo tradeLister) http.HandlerFunc {
	return csvHandler(repo, "monthly.csv", func(w http.ResponseWriter, trades []model.Trade) error {
		return export.WriteMonthlyCSV(w, analytics.MonthlyPerformance(trades))
	})
}

func csvHandler(repo tradeLister, filename string, write func(http.ResponseWriter, []model.Trade) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		trades, err := repo.ListAll(r.Context(), user.ID)
		if err != nil {
			logger.WithFields(logger.Fields{"user_id": user.ID}).
				WithError(err).Error("failed to load trades for export")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

		if err := write(w, trades); err != nil {
			logger.WithError(err).Error("failed to write csv export")
		}
	}
}

func DefaultExportTradesCSVHandler() http.HandlerFunc {
	return ExportTradesCSVHandler(repository.NewTradeReadRepository())
}

func DefaultExportSummaryCSVHandler() http.HandlerFunc {
	return ExportSummaryCSVHandler(repository.NewTradeReadRepository())
}

func DefaultExportMonthlyCSVHandler() http.HandlerFunc {
	return ExportMonthlyCSVHandler(repository.NewTradeReadRepository())
}
