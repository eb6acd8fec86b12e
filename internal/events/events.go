// Package events broadcasts vault activity to websocket subscribers.
package events

import (
	"time"

	"github.com/fundvault/fundvaultd/internal/core/types"
)

// Type discriminates event payloads.
type Type string

const (
	TypeContribution Type = "contribution"
	TypeWithdrawal   Type = "withdrawal"
)

// Event is one vault state change, as delivered to subscribers.
type Event struct {
	Seq       uint64        `json:"seq"`
	Type      Type          `json:"type"`
	Account   types.Address `json:"account"`
	Native    string        `json:"native"`              // native base units, decimal
	Reference string        `json:"reference,omitempty"` // reference base units (contributions only)
	Funders   int           `json:"funders,omitempty"`   // funder entries cleared (withdrawals only)
	Time      time.Time     `json:"time"`
}

// Publisher is the side the vault writes through.
type Publisher interface {
	Publish(ev Event)
}

// NopPublisher drops every event. Used when the event hub is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

var _ Publisher = NopPublisher{}
