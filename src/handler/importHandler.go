package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/mapper"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

const maxImportSize = 10 << 20 // 10 MB

type tradeBulkCreator interface {
	BulkCreate(ctx context.Context, trades []model.Trade) error
}

type importResult struct {
	Imported int               `json:"imported"`
	Skipped  int               `json:"skipped"`
	Errors   []mapper.RowError `json:"errors,omitempty"`
}

// ImportCSVHandler bulk-loads trades from an uploaded CSV file. The file is
// sent either as a multipart form field named "file" or as the raw request
// body. Bad rows are skipped and reported; good rows are still imported.
func ImportCSVHandler(repo tradeBulkCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		body, err := importBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer body.Close()

		trades, rowErrs, err := mapper.ParseTradesCSV(io.LimitReader(body, maxImportSize), user.ID)
		if err != nil {
			logger.WithError(err).Warn("csv import rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if len(trades) > 0 {
			if err := repo.BulkCreate(r.Context(), trades); err != nil {
				logger.WithError(err).WithFields(logger.Fields{"user_id": user.ID}).
					Error("failed to import trades")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}

		result := importResult{Imported: len(trades), Skipped: len(rowErrs), Errors: rowErrs}

		logger.WithFields(logger.Fields{
			"user_id":  user.ID,
			"imported": result.Imported,
			"skipped":  result.Skipped,
		}).Info("csv import finished")

		writeJSON(w, result)
	}
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return r.Body, nil
	}
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	return file, nil
}

func DefaultImportCSVHandler() http.HandlerFunc {
	return ImportCSVHandler(repository.NewTradeRepository())
}
