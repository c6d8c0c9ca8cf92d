package availability

import (
	"testing"

	"github.com/minjbak/wearebnb-server/internal/model"
)

func TestRender(t *testing.T) {
	l := model.RoomListing{
		Room: model.Room{
			ID: 7, Title: "Garden studio", Price: 85.5,
			MaxGuest: 2, Bedroom: 1, Bed: 1, Bath: 1,
		},
		RoomType:     "private room",
		Address:      "Mapo-gu, Seoul",
		Latitude:     37.55,
		Longitude:    126.9,
		Options:      []string{"wifi"},
		Images:       []string{"https://img.example.com/7-1.jpg"},
		ReviewCount:  4,
		ReviewRating: 4.25,
	}

	t.Run("with window", func(t *testing.T) {
		w := DateRange{date("2021-11-01"), date("2021-11-04")}
		s := Render(l, &w)
		if s.RoomID != 7 || s.Title != "Garden studio" {
			t.Errorf("identity fields wrong: %+v", s)
		}
		if s.Days != 3 {
			t.Errorf("Days = %d, want 3", s.Days)
		}
		if s.Rating == nil || *s.Rating != 4.25 {
			t.Errorf("Rating = %v, want 4.25", s.Rating)
		}
		if s.Review != 4 {
			t.Errorf("Review = %d, want 4", s.Review)
		}
		if s.RoomDetail.MaxGuest != 2 || s.RoomDetail.Bedroom != 1 {
			t.Errorf("RoomDetail = %+v", s.RoomDetail)
		}
	})

	t.Run("no window means zero days", func(t *testing.T) {
		if s := Render(l, nil); s.Days != 0 {
			t.Errorf("Days = %d, want 0", s.Days)
		}
	})

	t.Run("no reviews renders null rating", func(t *testing.T) {
		bare := l
		bare.ReviewCount = 0
		bare.ReviewRating = 0
		s := Render(bare, nil)
		if s.Rating != nil {
			t.Errorf("Rating = %v, want nil", *s.Rating)
		}
	})

	t.Run("nil slices render as empty", func(t *testing.T) {
		bare := l
		bare.Options = nil
		bare.Images = nil
		s := Render(bare, nil)
		if s.RoomOptions == nil || s.Images == nil {
			t.Error("RoomOptions and Images must be non-nil so JSON shows [] not null")
		}
	})
}

func TestRenderAllPreservesOrder(t *testing.T) {
	rooms := []model.RoomListing{
		{Room: model.Room{ID: 2}},
		{Room: model.Room{ID: 1}},
	}
	out := RenderAll(rooms, nil)
	if len(out) != 2 || out[0].RoomID != 2 || out[1].RoomID != 1 {
		t.Errorf("RenderAll reordered rooms: %+v", out)
	}
}
