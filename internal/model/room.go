package model

import "time"

// Room represents a bookable listing owned by a host user.  A room is
// effectively immutable for the booking core: reservation and
// availability logic read rooms but never mutate them.  This struct
// corresponds to a row in the `rooms` table.
//
// Fields:
//  ID          – primary key identifier.
//  HostUserID  – user ID of the hosting owner.
//  RoomTypeID  – foreign key into the room_types table.
//  Title       – listing title shown in search results.
//  Description – free-form listing description.
//  MaxGuest    – maximum party size (adults + children) allowed.
//  Price       – nightly price.  DECIMAL(9,2) in the database, scanned
//                as float64 for comparison and display.
//  Bedroom     – number of bedrooms.
//  Bed         – number of beds.
//  Bath        – number of bathrooms.
//  CreatedAt   – timestamp when the listing was created.
type Room struct {
	ID          uint64    // rooms.id
	HostUserID  uint64    // rooms.host_user_id
	RoomTypeID  uint64    // rooms.room_type_id
	Title       string    // rooms.title
	Description string    // rooms.description
	MaxGuest    int       // rooms.max_guest
	Price       float64   // rooms.price (DECIMAL(9,2))
	Bedroom     int       // rooms.bedroom
	Bed         int       // rooms.bed
	Bath        int       // rooms.bath
	CreatedAt   time.Time // rooms.created_at
}

// RoomType maps a room to a display category such as "entire place",
// "private room" or "hotel room".
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique type name.
type RoomType struct {
	ID   uint64 // room_types.id
	Name string // room_types.name
}

// Option is an amenity that rooms can offer (wifi, kitchen, ...).
// Rooms and options are linked through the room_options join table.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – amenity name.
//  ImageURL – icon URL for the amenity (nullable).
type Option struct {
	ID       uint64  // options.id
	Name     string  // options.name
	ImageURL *string // options.image_url (nullable)
}

// RoomImage is one photo attached to a room.  Images are returned in
// insertion order; the first image acts as the cover photo.
//
// Fields:
//  ID       – primary key identifier.
//  RoomID   – room the image belongs to.
//  ImageURL – location of the image (nullable in the schema).
type RoomImage struct {
	ID       uint64  // room_images.id
	RoomID   uint64  // room_images.room_id
	ImageURL *string // room_images.image_url (nullable)
}

// RoomLocation stores the address and coordinates of a room.  Latitude
// and longitude are DECIMAL columns in the database and are carried as
// strings so the repository does not round them; rendering converts to
// float64 at the edge.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room this location belongs to.
//  Country   – country name.
//  City      – city name.
//  Address   – full display address, searched by the location facet.
//  Latitude  – DECIMAL(16,14) as string.
//  Longitude – DECIMAL(17,14) as string.
type RoomLocation struct {
	ID        uint64 // room_locations.id
	RoomID    uint64 // room_locations.room_id
	Country   string // room_locations.country
	City      string // room_locations.city
	Address   string // room_locations.address
	Latitude  string // room_locations.latitude
	Longitude string // room_locations.longitude
}

// RoomListing is the denormalized shape the availability pipeline and
// the list view operate on: one room joined with its type, location,
// options, images and review aggregates.  Repositories build these in
// a single pass so the filter stage never goes back to the database.
type RoomListing struct {
	Room         Room
	RoomType     string   // room_types.name
	HostName     string   // users.name of the hosting owner
	Address      string   // room_locations.address
	Latitude     float64  // parsed from room_locations.latitude
	Longitude    float64  // parsed from room_locations.longitude
	Options      []string // option names, any-of facet target
	Images       []string // image URLs in insertion order
	ReviewCount  int      // COUNT(reviews.id)
	ReviewRating float64  // AVG(reviews.rating), 0 when no reviews
}
