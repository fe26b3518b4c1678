package shop

import (
	"encoding/json"
	"fmt"
)

// Shop represents a restaurant as returned by the gourmet directory search.
type Shop struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`

	Open  string `json:"open"`
	Close string `json:"close"`

	PartyCapacity Capacity `json:"party_capacity"`

	Budget Budget `json:"budget"`
	Genre  Genre  `json:"genre"`
	Access string `json:"access,omitempty"`
	Catch  string `json:"catch,omitempty"`
	Photo  Photo  `json:"photo"`
	URLs   URLs   `json:"urls"`
}

type Budget struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Average string `json:"average"`
}

type Genre struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

type Photo struct {
	PC PhotoSizes `json:"pc"`
}

type PhotoSizes struct {
	L string `json:"l"`
	M string `json:"m,omitempty"`
	S string `json:"s,omitempty"`
}

type URLs struct {
	PC string `json:"pc"`
}

// PhotoURL returns the large photo reference, if any.
func (s *Shop) PhotoURL() string {
	return s.Photo.PC.L
}

// BookingURL returns the page the user is sent to for the reservation itself.
func (s *Shop) BookingURL() string {
	return s.URLs.PC
}

func (s *Shop) ToString() string {
	return fmt.Sprintf("Shop(id=%s, name=%s, address=%s, capacity=%s)",
		s.ID, s.Name, s.Address, s.PartyCapacity)
}

// Capacity is the declared maximum party size as raw text. The directory
// sends it either as a number or as a string, and sometimes as "".
type Capacity string

// UnmarshalJSON accepts numbers, strings and null.
func (c *Capacity) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case float64:
		*c = Capacity(fmt.Sprintf("%d", int(val)))
	case string:
		*c = Capacity(val)
	default:
		*c = ""
	}
	return nil
}
