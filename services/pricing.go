package services

// Quote is the price breakdown for a candidate stay. Currency formatting is
// the presentation layer's concern.
type Quote struct {
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`
}

// TotalPrice derives the stay total from the nightly rate.
func TotalPrice(pricePerNight float64, nights int) float64 {
	return pricePerNight * float64(nights)
}
