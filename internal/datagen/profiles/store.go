package profiles

import (
	"time"
)

// NewStoreRegional returns a profile for a consumer web store serving one
// region.
// Night: 12AM - 6AM (15%)
// Morning: 6AM - 12PM (40%)
// Afternoon: 12PM - 5PM (60%)
// Evening peak: 5PM - 10PM (100%)
// Late night: 10PM - 12AM (70%)
// Weekend: 120% of weekday
func NewStoreRegional(tz *time.Location) Profile {
	p := &hourly{
		name:        "store-regional",
		description: "Online store, regional (evening peak)",
		loc:         tz,
		weekend:     1.20,
	}
	fill(&p.hours, 0, 6, 0.15)
	fill(&p.hours, 6, 12, 0.40)
	fill(&p.hours, 12, 17, 0.60)
	fill(&p.hours, 17, 22, 1.0)
	fill(&p.hours, 22, 24, 0.70)
	return p
}

// NewStoreGlobal returns a profile for a consumer web store selling
// worldwide, with evening peaks in each major market in UTC.
// Minimum activity: 40%
// Weekend: 110% of weekday
func NewStoreGlobal(_ *time.Location) Profile {
	p := &hourly{
		name:        "store-global",
		description: "Online store, global (24/7 multi-region)",
		loc:         time.UTC,
		weekend:     1.10,
	}
	for h := range p.hours {
		combined := max(
			window(h, 22, 3, 0.6, 0.3),  // Americas 5PM-10PM EST
			window(h, 16, 21, 0.6, 0.3), // Europe 5PM-10PM CET
			window(h, 8, 13, 0.6, 0.3),  // Asia 5PM-10PM JST
		)
		p.hours[h] = 0.40 + 0.60*combined
	}
	return p
}
