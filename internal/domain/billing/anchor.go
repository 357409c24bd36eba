package billing

import "time"

// anchorDay is the shared day-of-month every subscription bills on.
const anchorDay = 28

// NextBillingAnchor returns the next 28th-of-month boundary at midnight in
// now's location. When today is the 28th or later the anchor moves to the
// 28th of the following month, so a customer signing up on the 28th is never
// charged the same day.
func NextBillingAnchor(now time.Time) time.Time {
	anchor := time.Date(now.Year(), now.Month(), anchorDay, 0, 0, 0, 0, now.Location())
	if now.Day() >= anchorDay {
		anchor = time.Date(now.Year(), now.Month()+1, anchorDay, 0, 0, 0, 0, now.Location())
	}
	return anchor
}
