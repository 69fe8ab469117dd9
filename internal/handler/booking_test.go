package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func strptr(s string) *string { return &s }

func TestBookingReqParse(t *testing.T) {
	valid := bookingReq{
		BookingDate:   "2025-07-04",
		BookingTime:   "18:30",
		GuestCount:    4,
		CustomerName:  "Alice Smith",
		CustomerPhone: strptr("072 123 4567"),
		TableID:       3,
	}

	t.Run("valid request", func(t *testing.T) {
		rec, date, errs := valid.parse()
		if len(errs) != 0 {
			t.Fatalf("errs = %v", errs)
		}
		if date.Format("2006-01-02") != "2025-07-04" {
			t.Errorf("date = %v", date)
		}
		if rec.BookingTime != "18:30" || rec.GuestCount != 4 || rec.TableID != 3 {
			t.Errorf("record = %+v", rec)
		}
		if rec.CustomerPhone == nil || *rec.CustomerPhone != "0721234567" {
			t.Errorf("phone = %v, want normalized 0721234567", rec.CustomerPhone)
		}
	})

	t.Run("seconds in time accepted", func(t *testing.T) {
		r := valid
		r.BookingTime = "18:30:00"
		if _, _, errs := r.parse(); len(errs) != 0 {
			t.Fatalf("errs = %v", errs)
		}
	})

	t.Run("phone omitted", func(t *testing.T) {
		r := valid
		r.CustomerPhone = nil
		rec, _, errs := r.parse()
		if len(errs) != 0 {
			t.Fatalf("errs = %v", errs)
		}
		if rec.CustomerPhone != nil {
			t.Errorf("phone = %v, want nil", rec.CustomerPhone)
		}
	})

	bad := []struct {
		name   string
		mutate func(*bookingReq)
		substr string
	}{
		{"bad date", func(r *bookingReq) { r.BookingDate = "04-07-2025" }, "booking_date"},
		{"bad time", func(r *bookingReq) { r.BookingTime = "6pm" }, "booking_time"},
		{"zero guests", func(r *bookingReq) { r.GuestCount = 0 }, "guest_count"},
		{"too many guests", func(r *bookingReq) { r.GuestCount = 21 }, "guest_count"},
		{"blank name", func(r *bookingReq) { r.CustomerName = "   " }, "customer_name"},
		{"long name", func(r *bookingReq) { r.CustomerName = strings.Repeat("x", 101) }, "customer_name"},
		{"bad phone", func(r *bookingReq) { r.CustomerPhone = strptr("not a phone") }, "customer_phone"},
		{"missing table", func(r *bookingReq) { r.TableID = 0 }, "table_id"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			_, _, errs := r.parse()
			if len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.substr) {
					found = true
				}
			}
			if !found {
				t.Fatalf("errs %v do not mention %q", errs, tt.substr)
			}
		})
	}

	t.Run("errors accumulate", func(t *testing.T) {
		r := bookingReq{}
		_, _, errs := r.parse()
		if len(errs) < 4 {
			t.Fatalf("errs = %v, want every field reported", errs)
		}
	})
}

func TestPathID(t *testing.T) {
	e := echo.New()
	tests := []struct {
		in     string
		wantID uint64
		wantOK bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tt.in)
		id, err := pathID(c)
		if tt.wantOK && (err != nil || id != tt.wantID) {
			t.Errorf("pathID(%q) = %d, %v", tt.in, id, err)
		}
		if !tt.wantOK && err == nil {
			t.Errorf("pathID(%q) succeeded with %d", tt.in, id)
		}
	}
}

func TestGetAccountID(t *testing.T) {
	e := echo.New()
	newCtx := func(v interface{}) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if v != nil {
			c.Set("account_id", v)
		}
		return c
	}

	if id, err := getAccountID(newCtx(float64(42))); err != nil || id != 42 {
		t.Errorf("float64 claim: %d, %v", id, err)
	}
	if id, err := getAccountID(newCtx("17")); err != nil || id != 17 {
		t.Errorf("string claim: %d, %v", id, err)
	}
	if _, err := getAccountID(newCtx(nil)); err == nil {
		t.Error("missing claim accepted")
	}
	if _, err := getAccountID(newCtx("not-a-number")); err == nil {
		t.Error("garbage claim accepted")
	}
}
