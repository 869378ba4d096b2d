package cache

import "time"

// quotationHour is when the daily indicator is usually published (Brasília time).
const quotationHour = 18

// TimeUntilNextQuotation returns the time from now until the next 18:00 in São Paulo.
func TimeUntilNextQuotation(now time.Time) time.Duration {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Brazil has no DST since 2019
		loc = time.FixedZone("BRT", -3*60*60)
	}
	local := now.In(loc)

	next := time.Date(local.Year(), local.Month(), local.Day(), quotationHour, 0, 0, 0, loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}
