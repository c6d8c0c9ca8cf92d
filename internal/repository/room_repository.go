package repository

import (
	"context"
	"database/sql"
	"log"
	"strconv"

	"github.com/minjbak/wearebnb-server/internal/model"
)

// RoomRepo provides read access to the room catalog: rooms joined with
// their type, location, options, images and review aggregates.  Rooms
// are never written by the booking core, so this repository exposes
// only queries.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// GetByID loads a bare room row.  ErrRoomNotFound is returned when the
// id does not resolve; the booking path uses this to reject
// reservations against unknown rooms.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	const q = `SELECT id, host_user_id, room_type_id, title, description,
	                  max_guest, price, bedroom, bed, bath, created_at
	           FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.HostUserID, &room.RoomTypeID, &room.Title,
		&room.Description, &room.MaxGuest, &room.Price,
		&room.Bedroom, &room.Bed, &room.Bath, &room.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Room{}, ErrRoomNotFound
	}
	if err != nil {
		return model.Room{}, err
	}
	return room, nil
}

// ListListings loads every room in listing shape: the room row joined
// with type name, location, review aggregates, plus the option names
// and image URLs collected in follow-up queries.  The result is ordered
// by room id so the availability pipeline starts from a stable base
// order.
func (r *RoomRepo) ListListings(ctx context.Context) ([]model.RoomListing, error) {
	return r.listListings(ctx, 0)
}

// GetListing loads a single room in listing shape.  ErrRoomNotFound is
// returned when the id does not resolve.
func (r *RoomRepo) GetListing(ctx context.Context, roomID uint64) (model.RoomListing, error) {
	listings, err := r.listListings(ctx, roomID)
	if err != nil {
		return model.RoomListing{}, err
	}
	if len(listings) == 0 {
		return model.RoomListing{}, ErrRoomNotFound
	}
	return listings[0], nil
}

// listListings is the shared loader.  roomID 0 loads all rooms.
func (r *RoomRepo) listListings(ctx context.Context, roomID uint64) ([]model.RoomListing, error) {
	q := `SELECT r.id, r.host_user_id, r.room_type_id, r.title, r.description,
	             r.max_guest, r.price, r.bedroom, r.bed, r.bath, r.created_at,
	             rt.name, u.name,
	             l.address, l.latitude, l.longitude,
	             COUNT(rv.id), COALESCE(AVG(rv.rating), 0)
	      FROM rooms r
	      JOIN room_types rt ON rt.id = r.room_type_id
	      JOIN users u       ON u.id = r.host_user_id
	      JOIN room_locations l ON l.room_id = r.id
	      LEFT JOIN reviews rv ON rv.room_id = r.id`
	args := []any{}
	if roomID != 0 {
		q += ` WHERE r.id = ?`
		args = append(args, roomID)
	}
	q += ` GROUP BY r.id, rt.name, u.name, l.address, l.latitude, l.longitude
	       ORDER BY r.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []model.RoomListing{}
	index := map[uint64]int{}
	for rows.Next() {
		var (
			l        model.RoomListing
			lat, lng string
		)
		if err := rows.Scan(
			&l.Room.ID, &l.Room.HostUserID, &l.Room.RoomTypeID, &l.Room.Title,
			&l.Room.Description, &l.Room.MaxGuest, &l.Room.Price,
			&l.Room.Bedroom, &l.Room.Bed, &l.Room.Bath, &l.Room.CreatedAt,
			&l.RoomType, &l.HostName,
			&l.Address, &lat, &lng,
			&l.ReviewCount, &l.ReviewRating,
		); err != nil {
			return nil, err
		}
		if v, err := strconv.ParseFloat(lat, 64); err == nil {
			l.Latitude = v
		} else {
			log.Printf("rooms: room %d has malformed latitude %q", l.Room.ID, lat)
		}
		if v, err := strconv.ParseFloat(lng, 64); err == nil {
			l.Longitude = v
		} else {
			log.Printf("rooms: room %d has malformed longitude %q", l.Room.ID, lng)
		}
		index[l.Room.ID] = len(listings)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return listings, nil
	}

	if err := r.attachOptions(ctx, roomID, listings, index); err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, roomID, listings, index); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *RoomRepo) attachOptions(ctx context.Context, roomID uint64, listings []model.RoomListing, index map[uint64]int) error {
	q := `SELECT ro.room_id, o.name
	      FROM room_options ro
	      JOIN options o ON o.id = ro.option_id`
	args := []any{}
	if roomID != 0 {
		q += ` WHERE ro.room_id = ?`
		args = append(args, roomID)
	}
	q += ` ORDER BY ro.room_id, ro.id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rid  uint64
			name string
		)
		if err := rows.Scan(&rid, &name); err != nil {
			return err
		}
		if i, ok := index[rid]; ok {
			listings[i].Options = append(listings[i].Options, name)
		}
	}
	return rows.Err()
}

func (r *RoomRepo) attachImages(ctx context.Context, roomID uint64, listings []model.RoomListing, index map[uint64]int) error {
	q := `SELECT room_id, image_url FROM room_images WHERE image_url IS NOT NULL`
	args := []any{}
	if roomID != 0 {
		q += ` AND room_id = ?`
		args = append(args, roomID)
	}
	q += ` ORDER BY room_id, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rid uint64
			url string
		)
		if err := rows.Scan(&rid, &url); err != nil {
			return err
		}
		if i, ok := index[rid]; ok {
			listings[i].Images = append(listings[i].Images, url)
		}
	}
	return rows.Err()
}
