package node

import "time"

// for mongo
type CheckRecord struct {
	Login   int64     `bson:"login"`
	Server  string    `bson:"server"`
	Balance float64   `bson:"balance"`
	Equity  float64   `bson:"equity"`
	Time    time.Time `bson:"time"`
}

type OrderRecord struct {
	Ticket  uint64    `bson:"ticket,omitempty"`
	Volume  float64   `bson:"volume,omitempty"`
	Price   float64   `bson:"price,omitempty"`
	Comment string    `bson:"comment,omitempty"`
	Signal  string    `bson:"signal"`
	Success bool      `bson:"success"`
	Error   string    `bson:"error,omitempty"`
	Time    time.Time `bson:"time"`
}

// stdout shapes for the connection checker

type accountOut struct {
	Login   int64   `json:"login"`
	Server  string  `json:"server"`
	Balance float64 `json:"balance"`
	Equity  float64 `json:"equity"`
}

// account_info is rendered even when null
type checkResponse struct {
	Success     bool        `json:"success"`
	AccountInfo *accountOut `json:"account_info"`
}
