package service

// PricePerGuestCents is the flat per-guest rate (50.00 in the minor
// unit) charged when a booking is created.
const PricePerGuestCents uint32 = 5000

// Price returns the booking total in cents for a party of the given
// size.  Pure arithmetic; guest-count validation happens upstream in
// the create handler.
func Price(guests uint32) uint32 {
	return guests * PricePerGuestCents
}
