package models

import (
	"time"

	"gorm.io/gorm"
)

// TradeSide is the direction of a trade.
type TradeSide string

const (
	SideLong  TradeSide = "long"
	SideShort TradeSide = "short"
)

// Trade is a journal entry for a single position. Pnl is set when the
// trade is closed and feeds the team leaderboard.
type Trade struct {
	gorm.Model
	UserID     uint      `gorm:"not null;index"`
	Symbol     string    `gorm:"size:20;not null"`
	Side       TradeSide `gorm:"type:varchar(10);not null"`
	Quantity   float64   `gorm:"not null"`
	EntryPrice float64   `gorm:"not null"`
	ExitPrice  *float64
	Pnl        *float64
	OpenedAt   time.Time `gorm:"not null"`
	ClosedAt   *time.Time
	Notes      string `gorm:"size:2000"`

	User User `gorm:"foreignKey:UserID"`
}

// ComputePnl returns the realized profit for the trade, or nil while it
// is still open.
func (t *Trade) ComputePnl() *float64 {
	if t.ExitPrice == nil {
		return nil
	}
	var pnl float64
	if t.Side == SideShort {
		pnl = (t.EntryPrice - *t.ExitPrice) * t.Quantity
	} else {
		pnl = (*t.ExitPrice - t.EntryPrice) * t.Quantity
	}
	return &pnl
}
