package services

import (
	"strconv"
	"strings"

	"reserve-assistant/models/shop"
)

// ParseCapacity reads a declared party capacity; anything that is not a plain
// integer counts as 0.
func ParseCapacity(c shop.Capacity) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(c)))
	if err != nil {
		return 0
	}
	return n
}

// AcceptsCapacity reports whether the shop can seat partySize guests.
func AcceptsCapacity(s shop.Shop, partySize int) bool {
	return ParseCapacity(s.PartyCapacity) >= partySize
}
