package models

import "time"

// CountEntry records expected versus physically counted quantity for one item.
type CountEntry struct {
	ItemID           string `bson:"item_id" json:"itemId"`
	ExpectedQuantity int    `bson:"expected_quantity" json:"expectedQuantity"`
	CountedQuantity  int    `bson:"counted_quantity" json:"countedQuantity"`
	Variance         int    `bson:"variance" json:"variance"`
}

// DailyCountLog is the immutable audit record of a vehicle stock count.
type DailyCountLog struct {
	ID        string       `bson:"_id" json:"id"`
	VehicleID string       `bson:"vehicle_id" json:"vehicleId"`
	Timestamp time.Time    `bson:"timestamp" json:"timestamp"`
	CountedBy string       `bson:"counted_by" json:"countedBy"`
	Entries   []CountEntry `bson:"entries" json:"entries"`
}

// NetVariance sums the variance of every entry.
func (l DailyCountLog) NetVariance() int {
	total := 0
	for _, e := range l.Entries {
		total += e.Variance
	}
	return total
}

// Discrepancies returns the entries whose counted quantity differs from the expected one.
func (l DailyCountLog) Discrepancies() []CountEntry {
	out := make([]CountEntry, 0)
	for _, e := range l.Entries {
		if e.Variance != 0 {
			out = append(out, e)
		}
	}
	return out
}
