package repository

import (
	"context"
	"database/sql"
	"time"
)

// ReviewRepo provides read access to reviews and their per-room
// aggregates.  The booking core consumes only the average and count;
// the list queries back the room-detail and profile views.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// AverageAndCount returns the average rating and review count for a
// room.  A room with no reviews yields (0, 0) and no error.
func (r *ReviewRepo) AverageAndCount(ctx context.Context, roomID uint64) (float64, int, error) {
	const q = `SELECT COALESCE(AVG(rating), 0), COUNT(id) FROM reviews WHERE room_id = ?`
	var (
		avg   float64
		count int
	)
	err := r.db.QueryRowContext(ctx, q, roomID).Scan(&avg, &count)
	return avg, count, err
}

// RoomReview is one review as shown on the room-detail page.
type RoomReview struct {
	Username    string  `json:"username"`
	UserProfile *string `json:"user_profile"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Rating      float64 `json:"rating"`
	Date        string  `json:"date"`
}

// ListByRoom returns the reviews for a room with author display fields,
// newest first.  The date is formatted as year/month for display.
func (r *ReviewRepo) ListByRoom(ctx context.Context, roomID uint64) ([]RoomReview, error) {
	const q = `SELECT u.name, u.profile_image_url, rv.title, rv.content, rv.rating, rv.created_at
	           FROM reviews rv
	           JOIN users u ON u.id = rv.user_id
	           WHERE rv.room_id = ?
	           ORDER BY rv.created_at DESC, rv.id DESC`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []RoomReview{}
	for rows.Next() {
		var (
			rv        RoomReview
			profile   sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(&rv.Username, &profile, &rv.Title, &rv.Content, &rv.Rating, &createdAt); err != nil {
			return nil, err
		}
		if profile.Valid {
			rv.UserProfile = &profile.String
		}
		rv.Date = createdAt.Format("2006/01")
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// UserReview is one review written by a user, joined with the room
// title for the profile view.
type UserReview struct {
	ReviewID  uint64    `json:"review_id"`
	UserName  string    `json:"user_name"`
	Room      string    `json:"room"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListByUser returns the reviews a user has written, oldest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]UserReview, error) {
	const q = `SELECT rv.id, u.name, rm.title, rv.title, rv.content, rv.created_at
	           FROM reviews rv
	           JOIN users u ON u.id = rv.user_id
	           JOIN rooms rm ON rm.id = rv.room_id
	           WHERE rv.user_id = ?
	           ORDER BY rv.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []UserReview{}
	for rows.Next() {
		var rv UserReview
		if err := rows.Scan(&rv.ReviewID, &rv.UserName, &rv.Room, &rv.Title, &rv.Content, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
