//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package profiles implements shopping activity profiles that shape when
// synthetic orders are placed over the day and week.
package profiles

import (
	"fmt"
	"sort"
	"time"
)

// Profile describes how order volume varies over time.
type Profile interface {
	// Name returns the profile name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Activity returns the relative order volume at t. 1.0 is a weekday
	// peak; weekends may exceed it.
	Activity(t time.Time) float64

	// Peak returns the largest value Activity can return.
	Peak() float64

	// Location returns the timezone the profile's hours are expressed in.
	Location() *time.Location
}

// Default is the profile used when none is configured.
const Default = "store-regional"

var registry = make(map[string]func(tz *time.Location) Profile)

// Register adds a profile constructor to the registry.
func Register(name string, constructor func(tz *time.Location) Profile) {
	registry[name] = constructor
}

// Get retrieves a profile by name with the specified timezone.
func Get(name, timezone string) (Profile, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}

	var loc *time.Location
	var err error

	if timezone == "" || timezone == "UTC" {
		loc = time.UTC
	} else if timezone == "Local" {
		loc = time.Local
	} else {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone: %w", err)
		}
	}

	return constructor(loc), nil
}

// List returns all registered profile names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("local-office", NewLocalOffice)
	Register("global", NewGlobal)
	Register("store-regional", NewStoreRegional)
	Register("store-global", NewStoreGlobal)
}

// hourly is a profile defined by one activity level per hour of the day
// and a weekend multiplier.
type hourly struct {
	name        string
	description string
	loc         *time.Location
	hours       [24]float64
	weekend     float64
}

func (p *hourly) Name() string {
	return p.name
}

func (p *hourly) Description() string {
	return p.description
}

func (p *hourly) Location() *time.Location {
	return p.loc
}

func (p *hourly) Activity(t time.Time) float64 {
	t = t.In(p.loc)
	level := p.hours[t.Hour()]
	if isWeekend(t.Weekday()) {
		level *= p.weekend
	}
	return level
}

func (p *hourly) Peak() float64 {
	var peak float64
	for _, h := range p.hours {
		peak = max(peak, h)
	}
	return peak * max(1, p.weekend)
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// fill sets hours [from, to) to level.
func fill(hours *[24]float64, from, to int, level float64) {
	for h := from; h < to; h++ {
		hours[h] = level
	}
}

// window returns 1 for hours inside [start, end) on a 24 hour clock,
// ramp[n-1] for hours n hours outside the window, and 0 otherwise.
// Windows may wrap past midnight.
func window(hour, start, end int, ramp ...float64) float64 {
	inside := hour >= start && hour < end
	if start > end {
		inside = hour >= start || hour < end
	}
	if inside {
		return 1
	}

	before := (start - hour + 24) % 24
	after := (hour-end+24)%24 + 1
	var level float64
	for _, d := range []int{before, after} {
		if d >= 1 && d <= len(ramp) {
			level = max(level, ramp[d-1])
		}
	}
	return level
}
