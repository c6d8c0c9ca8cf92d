// Package queue defines the payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// ReservationConfirmedEvent is published after a reservation commits.
// It carries the denormalized stay details so downstream consumers can
// log or notify without reading the primary database.
type ReservationConfirmedEvent struct {
	ReservationCode string `json:"reservation_code"`
	UserID          uint64 `json:"user_id"`
	RoomID          uint64 `json:"room_id"`
	RoomTitle       string `json:"room_title"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Days            int    `json:"days"`
	Adult           int    `json:"adult"`
	Children        int    `json:"children"`
	ConfirmedAt     string `json:"confirmed_at"`
}
