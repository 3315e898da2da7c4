package models

// Balance - остатки реферера в одной валюте.
// Инвариант: Available == Earned - Withdrawn.
type Balance struct {
	Currency  string  `json:"currency"`
	Available float64 `json:"available"`
	Earned    float64 `json:"earned"`
	Withdrawn float64 `json:"withdrawn"`
}
