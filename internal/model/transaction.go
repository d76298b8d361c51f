package model

import "time"

// RawTransaction is one row of a venue transaction log after positional column assignment.
type RawTransaction struct {
	SourceID  string    // per-source transaction id, dropped once the surrogate key is assigned
	Timestamp time.Time
	Drink     string
	Cost      float64 // already rounded to two decimals
	Venue     Venue
}

// Transaction is the unified transactions table.
type Transaction struct {
	ID        uint64    `gorm:"column:unique_transaction_id;primaryKey;autoIncrement:false" json:"unique_transaction_id"`
	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	Drink     string    `gorm:"column:drink;type:varchar(255);not null" json:"drink"`
	Cost      float64   `gorm:"column:cost;not null" json:"cost"`
	Location  Venue     `gorm:"column:location;type:varchar(32);not null;index" json:"location"`
	DrinkID   uint64    `gorm:"column:drink_id;not null;default:0;index" json:"drink_id"` // 0 = no catalog match
}

func (Transaction) TableName() string { return "transactions" }

// Unify concatenates the per-venue logs in the given order and assigns surrogate keys 1..n.
func Unify(logs ...[]RawTransaction) []*Transaction {
	n := 0
	for _, l := range logs {
		n += len(l)
	}
	out := make([]*Transaction, 0, n)
	var next uint64
	for _, l := range logs {
		for _, r := range l {
			next++
			out = append(out, &Transaction{
				ID:        next,
				Timestamp: r.Timestamp,
				Drink:     r.Drink,
				Cost:      r.Cost,
				Location:  r.Venue,
			})
		}
	}
	return out
}
