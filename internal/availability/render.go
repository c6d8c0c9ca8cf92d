package availability

import "github.com/minjbak/wearebnb-server/internal/model"

// CapacityDetail is the nested capacity block of a room summary.
type CapacityDetail struct {
	MaxGuest int `json:"max_guest"`
	Bedroom  int `json:"bedroom"`
	Bed      int `json:"bed"`
	Bath     int `json:"bath"`
}

// Summary is the list-view projection of a room.  Days is a display
// value for the number of nights the caller selected, not a property
// of the room, and is 0 when no window was supplied.  Rating is null
// when the room has no reviews.
type Summary struct {
	RoomID      uint64         `json:"room_id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Days        int            `json:"days"`
	RoomDetail  CapacityDetail `json:"room_detail"`
	RoomType    string         `json:"room_type"`
	RoomOptions []string       `json:"room_options"`
	Review      int            `json:"review"`
	Rating      *float64       `json:"rating"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Address     string         `json:"address"`
	Images      []string       `json:"images"`
}

// Render projects one listing into the summary shape.
func Render(l model.RoomListing, window *DateRange) Summary {
	days := 0
	if window != nil {
		days = window.Days()
	}
	var rating *float64
	if l.ReviewCount > 0 {
		r := l.ReviewRating
		rating = &r
	}
	options := l.Options
	if options == nil {
		options = []string{}
	}
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return Summary{
		RoomID: l.Room.ID,
		Title:  l.Room.Title,
		Price:  l.Room.Price,
		Days:   days,
		RoomDetail: CapacityDetail{
			MaxGuest: l.Room.MaxGuest,
			Bedroom:  l.Room.Bedroom,
			Bed:      l.Room.Bed,
			Bath:     l.Room.Bath,
		},
		RoomType:    l.RoomType,
		RoomOptions: options,
		Review:      l.ReviewCount,
		Rating:      rating,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Address:     l.Address,
		Images:      images,
	}
}

// RenderAll projects a page of listings in order.
func RenderAll(rooms []model.RoomListing, window *DateRange) []Summary {
	out := make([]Summary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, Render(room, window))
	}
	return out
}
