package profiles

import (
	"time"
)

// NewLocalOffice returns a profile for business buyers ordering during
// office hours in one timezone.
// Peak: 8AM - 6PM with a lunch dip at noon
// Evening: ramps down to 20% by 10PM
// Night: 5%
// Weekend: 10% of weekday
func NewLocalOffice(tz *time.Location) Profile {
	p := &hourly{
		name:        "local-office",
		description: "Business buyers, local office hours (8AM-6PM, weekday focus)",
		loc:         tz,
		weekend:     0.10,
	}
	fill(&p.hours, 0, 6, 0.05)
	p.hours[6] = 0.30
	p.hours[7] = 0.75
	fill(&p.hours, 8, 18, 1.0)
	p.hours[10] = 0.85
	p.hours[12] = 0.50
	p.hours[15] = 0.85
	p.hours[18] = 0.90
	p.hours[19] = 0.70
	p.hours[20] = 0.50
	p.hours[21] = 0.30
	fill(&p.hours, 22, 24, 0.05)
	return p
}

// NewGlobal returns a profile for business buyers across the Americas,
// Europe and Asia, following office hours around the clock in UTC.
// Minimum activity: 30%
// Quiet hours: 2AM - 4AM UTC at 80%
// Weekend: 60% of weekday
func NewGlobal(_ *time.Location) Profile {
	p := &hourly{
		name:        "global",
		description: "Business buyers, global (24/7 with rolling peaks)",
		loc:         time.UTC,
		weekend:     0.60,
	}
	for h := range p.hours {
		combined := max(
			window(h, 14, 22, 0.5), // Americas 9AM-5PM EST
			window(h, 8, 16, 0.5),  // Europe 9AM-5PM CET
			window(h, 0, 8, 0.5),   // Asia 9AM-5PM JST
		)
		if h >= 2 && h < 4 {
			combined *= 0.80
		}
		p.hours[h] = 0.30 + 0.70*combined
	}
	return p
}
