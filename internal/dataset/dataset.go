//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dataset loads a transactional sales export into memory, derives
// calendar and status features for every row, and exposes the status
// cohorts the reports are computed from.
package dataset

import (
	"time"
)

// Canonical status values after normalization.
const (
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
	StatusReturned  = "Returned"
)

// Record is one line item of the sales export. Categorical fields hold the
// empty string when the source cell was blank or a recognised null marker.
type Record struct {
	InvoiceNo   string
	CustomerID  string
	Description string
	Category    string
	SubCategory string
	Country     string

	// RawDate and Time are the source cells as read.
	RawDate string
	Time    string

	// Status is trimmed and title-cased.
	Status string

	Sales             float64
	GrossSales        float64
	LostOnCancels     float64
	LostOnReturns     float64
	DeliveredQuantity float64

	Features
}

// Features are the attributes derived from a record's own Date and Time.
type Features struct {
	// Date is the parsed calendar date; valid only when HasDate is set.
	Date    time.Time
	HasDate bool

	// DateTime combines Date with the raw Time; valid only when HasDateTime is set.
	DateTime    time.Time
	HasDateTime bool

	Year      int
	Month     int
	YearMonth string
	Weekday   string

	// Hour is the hour of day parsed from Time; valid only when HasHour is set.
	Hour    int
	HasHour bool
}

// Dataset is the full set of records of one export.
type Dataset struct {
	// Source is the path the records were loaded from, if any.
	Source string

	// Columns are the normalized header labels in file order.
	Columns []string

	Records []Record
}

// Stats summarizes a loaded dataset for logging.
type Stats struct {
	Rows           int
	Delivered      int
	Cancelled      int
	Returned       int
	DateFailures   int
	TimeFailures   int
	DistinctStatus int
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Delivered returns the records whose status is Delivered.
func (d *Dataset) Delivered() []Record {
	return d.WithStatus(StatusDelivered)
}

// Cancelled returns the records whose status is Cancelled.
func (d *Dataset) Cancelled() []Record {
	return d.WithStatus(StatusCancelled)
}

// Returned returns the records whose status is Returned.
func (d *Dataset) Returned() []Record {
	return d.WithStatus(StatusReturned)
}

// WithStatus returns a new slice holding the records with the given
// normalized status. The dataset itself is not modified.
func (d *Dataset) WithStatus(status string) []Record {
	var out []Record
	for _, r := range d.Records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Stats computes summary counts over the dataset.
func (d *Dataset) Stats() Stats {
	s := Stats{Rows: len(d.Records)}
	statuses := make(map[string]struct{})
	for _, r := range d.Records {
		switch r.Status {
		case StatusDelivered:
			s.Delivered++
		case StatusCancelled:
			s.Cancelled++
		case StatusReturned:
			s.Returned++
		}
		if r.Status != "" {
			statuses[r.Status] = struct{}{}
		}
		if !r.HasDate {
			s.DateFailures++
		}
		if !r.HasHour {
			s.TimeFailures++
		}
	}
	s.DistinctStatus = len(statuses)
	return s
}
