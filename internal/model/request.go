package model

import "time"

// Request is a supervisor's ask for stock from the central location,
// moving through Pending/Approved/Rejected/Issued.
type Request struct {
	ReqID          int64     `json:"req_id"`
	SupervisorName string    `json:"supervisor_name"`
	Region         string    `json:"region"`
	ItemName       string    `json:"item_name"`
	Category       string    `json:"category"`
	Quantity       int       `json:"quantity"`
	Unit           string    `json:"unit"`
	Status         string    `json:"status"`
	RequestDate    time.Time `json:"request_date"`
	Notes          string    `json:"notes,omitempty"`
}

// Request statuses.
const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestRejected = "Rejected"
	RequestIssued   = "Issued"
)

// CanTransition reports whether a request may move from one status to
// another. Rejected and Issued are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case RequestPending:
		return to == RequestApproved || to == RequestRejected
	case RequestApproved:
		return to == RequestIssued
	}
	return false
}
