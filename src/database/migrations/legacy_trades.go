package migrations

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/model"
)

// backfillEmotionTags rewrites every legacy serialized emotions value
// (Postgres braces, comma lists, bare tokens) into the canonical JSON array
// form. Loading through model.TagList already parses any shape, so a plain
// read-save round trip normalizes the column.
func backfillEmotionTags(db *gorm.DB) error {
	var trades []model.Trade
	if err := db.
		Where("emotions IS NOT NULL AND emotions NOT LIKE '[%'").
		Find(&trades).Error; err != nil {
		return err
	}

	for i := range trades {
		t := &trades[i]
		if err := db.Model(&model.Trade{}).
			Where("id = ?", t.ID).
			Update("emotions", t.Emotions).Error; err != nil {
			return err
		}
	}

	logrus.WithField("rows", len(trades)).Info("[migrations] emotion tags normalized")
	return nil
}

// backfillOpenStatus makes the open/completed state machine explicit: trades
// from the generation that left status NULL while running get the first-class
// "open" status when they have no exit date yet.
func backfillOpenStatus(db *gorm.DB) error {
	res := db.Model(&model.Trade{}).
		Where("status IS NULL AND exit_date IS NULL").
		Update("status", model.StatusOpen)
	if res.Error != nil {
		return res.Error
	}

	logrus.WithField("rows", res.RowsAffected).Info("[migrations] open statuses backfilled")
	return nil
}
