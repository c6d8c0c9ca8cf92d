package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/minjbak/wearebnb-server/internal/model"
)

// ReservationRepo provides CRUD operations for the reservations table.
// All date columns are DATE values interpreted at UTC midnight; the
// derived days column is always written by the caller from the bounds,
// never independently.  Mutations run inside caller-owned transactions
// so the ownership lookup and the write happen atomically.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, reservation_code, user_id, room_id,
	check_in, check_out, days, adult, children, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
		&res.ID, &res.ReservationCode, &res.UserID, &res.RoomID,
		&res.CheckIn, &res.CheckOut, &res.Days, &res.Adult, &res.Children,
		&res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

// CreateTx inserts a reservation within an existing transaction and
// populates the generated id on the record.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (reservation_code, user_id, room_id, check_in, check_out, days, adult, children)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.ReservationCode, res.UserID, res.RoomID,
		res.CheckIn, res.CheckOut, res.Days, res.Adult, res.Children)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// CountOverlappingTx counts reservations for a room whose stay overlaps
// the half-open [checkIn, checkOut) window, locking the matching rows
// so a concurrent booking for the same room serializes behind this
// transaction.  The predicate is the canonical interval test written in
// SQL: existing.check_in < candidate.check_out AND
// existing.check_out > candidate.check_in.
//
// excludeID names a reservation to leave out of the count.  Modifying
// a stay must not collide with the row being modified; creation passes
// zero, which matches no row.
func (r *ReservationRepo) CountOverlappingTx(ctx context.Context, tx *sql.Tx, roomID, excludeID uint64, checkIn, checkOut time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE room_id = ? AND id <> ? AND check_in < ? AND check_out > ?
	           FOR UPDATE`
	var n int
	err := tx.QueryRowContext(ctx, q, roomID, excludeID, checkOut, checkIn).Scan(&n)
	return n, err
}

// CodeExists reports whether a reservation code is already in use.
// Creation loops on this until a fresh code is found.
func (r *ReservationRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE reservation_code = ?", code).Scan(&n)
	return n > 0, err
}

// GetByCodeForUserTx looks a reservation up by its owner and code
// within a transaction.  Both must match: another user's code yields
// ErrReservationNotFound.  More than one matching row is a
// data-integrity error reported as ErrMultipleReservations, never
// silently disambiguated.
func (r *ReservationRepo) GetByCodeForUserTx(ctx context.Context, tx *sql.Tx, userID uint64, code string) (model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE user_id = ? AND reservation_code = ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, userID, code)
	if err != nil {
		return model.Reservation{}, err
	}
	defer rows.Close()

	matches := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return model.Reservation{}, err
		}
		matches = append(matches, res)
	}
	if err := rows.Err(); err != nil {
		return model.Reservation{}, err
	}
	switch len(matches) {
	case 0:
		return model.Reservation{}, ErrReservationNotFound
	case 1:
		return matches[0], nil
	default:
		return model.Reservation{}, ErrMultipleReservations
	}
}

// UpdateTx rewrites the mutable fields of a reservation: the stay
// bounds, the recomputed days and the party counts.  The code and room
// are never touched.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET check_in = ?, check_out = ?, days = ?, adult = ?, children = ?,
	               updated_at = UTC_TIMESTAMP()
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q,
		res.CheckIn, res.CheckOut, res.Days, res.Adult, res.Children, res.ID)
	return err
}

// DeleteTx removes a reservation row.  Cancellation is a hard delete;
// the deleted_at column stays untouched on this path.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	return err
}

// BookedDate is one calendar entry for a room: a stay window plus its
// night count.  This is public data shown to prospective guests.
type BookedDate struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Days     int    `json:"days"`
}

// ListByRoom returns every reservation against a room as calendar
// entries, ordered by check-in then id so repeated calls render the
// same calendar.
func (r *ReservationRepo) ListByRoom(ctx context.Context, roomID uint64) ([]BookedDate, error) {
	const q = `SELECT check_in, check_out, days FROM reservations
	           WHERE room_id = ? ORDER BY check_in, id`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []BookedDate{}
	for rows.Next() {
		var in, out time.Time
		var d BookedDate
		if err := rows.Scan(&in, &out, &d.Days); err != nil {
			return nil, err
		}
		d.CheckIn = in.Format("2006-01-02")
		d.CheckOut = out.Format("2006-01-02")
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// ListAll loads every reservation, ordered by id.  The room listing
// pipeline feeds these through the overlap filter in memory.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Trip is a reservation summary for the owner's trip list, joined with
// the denormalized room display fields.
type Trip struct {
	ReservationID   uint64  `json:"reservation_id"`
	ReservationCode string  `json:"reservation_code"`
	Address         string  `json:"address"`
	Title           string  `json:"title"`
	ImageURL        *string `json:"image_url"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
}

// ListByUser returns the reservations a user owns in booking order
// (reservation id ascending), each joined with the room title, address
// and cover image.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]Trip, error) {
	const q = `SELECT res.id, res.reservation_code, res.check_in, res.check_out,
	                  rm.title, l.address,
	                  (SELECT ri.image_url FROM room_images ri
	                   WHERE ri.room_id = rm.id ORDER BY ri.id LIMIT 1)
	           FROM reservations res
	           JOIN rooms rm ON rm.id = res.room_id
	           JOIN room_locations l ON l.room_id = rm.id
	           WHERE res.user_id = ?
	           ORDER BY res.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var (
			t        Trip
			in, out  time.Time
			imageURL sql.NullString
		)
		if err := rows.Scan(&t.ReservationID, &t.ReservationCode, &in, &out,
			&t.Title, &t.Address, &imageURL); err != nil {
			return nil, err
		}
		t.CheckIn = in.Format("2006-01-02")
		t.CheckOut = out.Format("2006-01-02")
		if imageURL.Valid {
			t.ImageURL = &imageURL.String
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
