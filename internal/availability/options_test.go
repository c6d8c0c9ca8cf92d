package availability

import (
	"net/url"
	"testing"
	"time"

	"github.com/minjbak/wearebnb-server/internal/model"
)

func TestParseOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := ParseOptions(url.Values{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Window != nil {
			t.Error("Window should be nil with no date parameters")
		}
		if opts.Sort != "id" {
			t.Errorf("Sort = %q, want id", opts.Sort)
		}
		if opts.Page != nil {
			t.Error("Page should be nil with no pagination parameters")
		}
	})

	t.Run("full window", func(t *testing.T) {
		opts, err := ParseOptions(url.Values{
			"check_in": {"2021-11-01"}, "check_out": {"2021-11-03"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Window == nil || opts.Window.Days() != 2 {
			t.Fatalf("Window = %+v, want a 2-night range", opts.Window)
		}
	})

	t.Run("half window fails", func(t *testing.T) {
		if _, err := ParseOptions(url.Values{"check_in": {"2021-11-01"}}); err == nil {
			t.Error("check_in without check_out must fail")
		}
		if _, err := ParseOptions(url.Values{"check_out": {"2021-11-03"}}); err == nil {
			t.Error("check_out without check_in must fail")
		}
	})

	t.Run("reversed window fails", func(t *testing.T) {
		_, err := ParseOptions(url.Values{
			"check_in": {"2021-11-03"}, "check_out": {"2021-11-01"},
		})
		if err == nil {
			t.Error("reversed window must fail")
		}
	})

	t.Run("sort whitelist", func(t *testing.T) {
		opts, _ := ParseOptions(url.Values{"sort": {"-price"}})
		if opts.Sort != "-price" {
			t.Errorf("Sort = %q, want -price", opts.Sort)
		}
		opts, _ = ParseOptions(url.Values{"sort": {"name; DROP TABLE rooms"}})
		if opts.Sort != "id" {
			t.Errorf("unknown sort key must fall back to id, got %q", opts.Sort)
		}
	})

	t.Run("pagination defaults", func(t *testing.T) {
		opts, _ := ParseOptions(url.Values{"offset": {"30"}})
		if opts.Page == nil || opts.Page.Offset != 30 || opts.Page.Limit != DefaultPageSize {
			t.Errorf("Page = %+v, want offset 30 limit %d", opts.Page, DefaultPageSize)
		}
		opts, _ = ParseOptions(url.Values{"limit": {"5"}})
		if opts.Page == nil || opts.Page.Offset != 0 || opts.Page.Limit != 5 {
			t.Errorf("Page = %+v, want offset 0 limit 5", opts.Page)
		}
	})
}

func reservation(roomID uint64, checkIn, checkOut string) model.Reservation {
	return model.Reservation{RoomID: roomID, CheckIn: date(checkIn), CheckOut: date(checkOut)}
}

func TestFilterAvailable(t *testing.T) {
	rooms := []model.RoomListing{
		{Room: model.Room{ID: 1}},
		{Room: model.Room{ID: 2}},
		{Room: model.Room{ID: 3}},
	}
	reservations := []model.Reservation{
		reservation(1, "2021-11-01", "2021-11-03"),
		reservation(2, "2021-11-03", "2021-11-05"),
		reservation(2, "2021-11-10", "2021-11-12"),
	}

	t.Run("nil window keeps everything", func(t *testing.T) {
		got := FilterAvailable(rooms, reservations, nil)
		if len(got) != 3 {
			t.Fatalf("got %d rooms, want 3", len(got))
		}
	})

	t.Run("overlap excludes the room", func(t *testing.T) {
		w := DateRange{date("2021-11-02"), date("2021-11-04")}
		got := FilterAvailable(rooms, reservations, &w)
		// Room 1 overlaps on the night of the 2nd, room 2 on the 3rd.
		if len(got) != 1 || got[0].Room.ID != 3 {
			t.Fatalf("got %v, want only room 3", ids(got))
		}
	})

	t.Run("back-to-back is available", func(t *testing.T) {
		w := DateRange{date("2021-11-03"), date("2021-11-05")}
		got := FilterAvailable(rooms, reservations, &w)
		// Room 1's stay ends exactly when the window starts.
		// Room 2 has an identical stay and is excluded.
		if len(got) != 2 || got[0].Room.ID != 1 || got[1].Room.ID != 3 {
			t.Fatalf("got %v, want rooms 1 and 3", ids(got))
		}
	})

	t.Run("every reservation is tested", func(t *testing.T) {
		w := DateRange{date("2021-11-11"), date("2021-11-13")}
		got := FilterAvailable(rooms, reservations, &w)
		// Only room 2's second stay overlaps this window.
		if len(got) != 2 || got[0].Room.ID != 1 || got[1].Room.ID != 3 {
			t.Fatalf("got %v, want rooms 1 and 3", ids(got))
		}
	})
}

func ids(rooms []model.RoomListing) []uint64 {
	out := make([]uint64, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Room.ID)
	}
	return out
}

func TestSortAndPaginate(t *testing.T) {
	day := func(d int) time.Time { return date("2021-11-01").AddDate(0, 0, d) }
	rooms := []model.RoomListing{
		{Room: model.Room{ID: 3, Price: 100, CreatedAt: day(2)}},
		{Room: model.Room{ID: 1, Price: 300, CreatedAt: day(0)}},
		{Room: model.Room{ID: 2, Price: 100, CreatedAt: day(1)}},
	}

	tests := []struct {
		name string
		sort string
		page *Pagination
		want []uint64
	}{
		{"id ascending", "id", nil, []uint64{1, 2, 3}},
		{"id descending", "-id", nil, []uint64{3, 2, 1}},
		{"price with id tiebreak", "price", nil, []uint64{2, 3, 1}},
		{"price descending", "-price", nil, []uint64{1, 3, 2}},
		{"created_at", "created_at", nil, []uint64{1, 2, 3}},
		{"created_at descending", "-created_at", nil, []uint64{3, 2, 1}},
		{"page slice", "id", &Pagination{Offset: 1, Limit: 1}, []uint64{2}},
		{"page past end", "id", &Pagination{Offset: 10, Limit: 5}, []uint64{}},
		{"page clipped at end", "id", &Pagination{Offset: 2, Limit: 10}, []uint64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(SortAndPaginate(rooms, tt.sort, tt.page))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}

	t.Run("input is not mutated", func(t *testing.T) {
		_ = SortAndPaginate(rooms, "-id", nil)
		if rooms[0].Room.ID != 3 {
			t.Error("SortAndPaginate must sort a copy")
		}
	})
}
