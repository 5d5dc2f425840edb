package model

import (
	"fmt"
	"time"
)

// CentralLocation is the location requests are fulfilled from.
const CentralLocation = "NSTC"

// StockItem represents one (item name, location) inventory row.
type StockItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

// Stock item statuses.
const (
	StockStatusAvailable = "Available"
	StockStatusDepleted  = "Depleted"
)

// Stock log action kinds. The counterparty location (transfer source or
// destination) is stored separately; display text is rendered from the
// pair only at the presentation boundary.
const (
	ActionIssued       = "issued"
	ActionTransferOut  = "transfer_out"
	ActionTransferIn   = "transfer_in"
	ActionManualAdjust = "manual_adjust"
)

// StockLog is an immutable audit record of one quantity change.
type StockLog struct {
	ID           int64     `json:"id"`
	ActionBy     string    `json:"action_by"`
	ActionKind   string    `json:"action_kind"`
	Counterparty string    `json:"counterparty,omitempty"`
	ItemName     string    `json:"item_name"`
	Location     string    `json:"location"`
	ChangeAmount int       `json:"change_amount"`
	NewQuantity  int       `json:"new_quantity"`
	Unit         string    `json:"unit"`
	LogDate      time.Time `json:"log_date"`
}

// ActionLabel renders the action kind and counterparty as display text,
// e.g. "Transfer Out to SNC".
func (l *StockLog) ActionLabel() string {
	switch l.ActionKind {
	case ActionIssued:
		return "Issued"
	case ActionTransferOut:
		return fmt.Sprintf("Transfer Out to %s", l.Counterparty)
	case ActionTransferIn:
		return fmt.Sprintf("Transfer In from %s", l.Counterparty)
	case ActionManualAdjust:
		return "Manual Adjust"
	}
	return l.ActionKind
}

// TransferSummary describes a completed stock transfer.
type TransferSummary struct {
	ItemName        string `json:"item_name"`
	Unit            string `json:"unit"`
	Quantity        int    `json:"quantity"`
	FromLocation    string `json:"from_location"`
	ToLocation      string `json:"to_location"`
	SourceRemaining int    `json:"source_remaining"`
	DestQuantity    int    `json:"dest_quantity"`
}
