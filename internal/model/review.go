package model

import "time"

// Review is a guest's rating of a room.  The booking core only reads
// reviews to compute the per-room average and count shown in listings;
// review authoring lives outside this service.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room the review is about.
//  UserID    – author of the review.
//  Title     – short headline.
//  Content   – review body.
//  Rating    – numeric score.
//  CreatedAt – creation timestamp.
//  DeletedAt – soft-delete marker (nullable).
type Review struct {
	ID        uint64     // reviews.id
	RoomID    uint64     // reviews.room_id
	UserID    uint64     // reviews.user_id
	Title     string     // reviews.title
	Content   string     // reviews.content
	Rating    float64    // reviews.rating
	CreatedAt time.Time  // reviews.created_at
	DeletedAt *time.Time // reviews.deleted_at (nullable)
}
