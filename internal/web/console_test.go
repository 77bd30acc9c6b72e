package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/export"
	"github.com/Domenick1991/flightdb/internal/middleware"
	"github.com/Domenick1991/flightdb/internal/service/dashboard"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memRepo[T any, In any] struct {
	mu     sync.Mutex
	rows   []T
	err    error
	create func(In) T
}

func (r *memRepo[T, In]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]T, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *memRepo[T, In]) Create(_ context.Context, in In) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	row := r.create(in)
	r.rows = append(r.rows, row)
	return &row, nil
}

type stubDashboard struct {
	stats []dashboard.Stat
}

func (s stubDashboard) Stats(context.Context) []dashboard.Stat { return s.stats }

type fixture struct {
	router   *gin.Engine
	flights  *memRepo[domain.Flight, domain.NewFlight]
	airlines *memRepo[domain.Airline, domain.NewAirline]
	airports *memRepo[domain.Airport, domain.NewAirport]
	bookings *memRepo[domain.Booking, domain.NewBooking]
}

func newFixture(t *testing.T, stats ...dashboard.Stat) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		flights: &memRepo[domain.Flight, domain.NewFlight]{
			rows: []domain.Flight{
				{ID: "f1", FlightNumber: "BA123", SourceAirport: "LHR", DestinationAirport: "JFK", Airline: &domain.AirlineRef{Name: "British Airways", Code: "BA"}},
				{ID: "f2", FlightNumber: "AF456", SourceAirport: "CDG", DestinationAirport: "NCE"},
			},
			create: func(in domain.NewFlight) domain.Flight {
				return domain.Flight{
					ID:                 "f-new",
					AirlineID:          in.AirlineID,
					FlightNumber:       in.FlightNumber,
					SourceAirport:      in.SourceAirport,
					DestinationAirport: in.DestinationAirport,
					DepartureTime:      in.DepartureTime,
					ArrivalTime:        in.ArrivalTime,
					Aircraft:           in.Aircraft,
					TotalSeats:         in.TotalSeats,
					AvailableSeats:     in.AvailableSeats,
					Price:              in.Price,
					Status:             in.StatusOrDefault(),
				}
			},
		},
		airlines: &memRepo[domain.Airline, domain.NewAirline]{
			create: func(in domain.NewAirline) domain.Airline {
				return domain.Airline{ID: "a-" + in.Code, Name: in.Name, Code: in.Code, Logo: in.LogoPtr()}
			},
		},
		airports: &memRepo[domain.Airport, domain.NewAirport]{
			rows: []domain.Airport{{AirportCode: "LHR", Name: "Heathrow", City: "London", Location: "51.47,-0.45"}},
			create: func(in domain.NewAirport) domain.Airport {
				return domain.Airport{AirportCode: in.AirportCode, Name: in.Name, City: in.City, Location: in.Location}
			},
		},
		bookings: &memRepo[domain.Booking, domain.NewBooking]{},
	}

	opts := listing.Options{Logger: zerolog.Nop()}
	views := Views{
		Flights:  listing.NewView[domain.Flight, domain.NewFlight](domain.TableFlight, f.flights, opts),
		Airlines: listing.NewView[domain.Airline, domain.NewAirline](domain.TableAirline, f.airlines, opts),
		Airports: listing.NewView[domain.Airport, domain.NewAirport](domain.TableAirport, f.airports, opts),
		Bookings: listing.NewView[domain.Booking, domain.NewBooking](domain.TableBooking, f.bookings, opts),
	}

	manager := session.NewManager(session.NewMemoryStorage(), zerolog.Nop())
	f.router = gin.New()
	group := f.router.Group("", middleware.Session(manager, config.SessionConfig{CookieName: "flightdb_sid"}))
	console := NewConsole(views, stubDashboard{stats: stats}, zerolog.Nop())
	require.NoError(t, console.Register(f.router, group))
	return f
}

func (f *fixture) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHome(t *testing.T) {
	f := newFixture(t,
		dashboard.Stat{Table: domain.TableFlight, Label: "Total Flights", Value: 12, Ready: true},
		dashboard.Stat{Table: domain.TableBooking, Label: "Total Bookings"},
	)

	w := f.do(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Total Flights")
	assert.Contains(t, body, ">12<")
	assert.Contains(t, body, "Loading...")
	assert.Contains(t, body, `action="/login"`)
}

func TestFlightsFilter(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/flights?q=ba", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "BA123")
	assert.NotContains(t, body, "AF456")
	assert.Contains(t, body, `value="ba"`)
	assert.Contains(t, body, "LHR - London")
}

func TestFlightsEmptyFilterShowsAll(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/flights", nil))

	body := w.Body.String()
	assert.Contains(t, body, "BA123")
	assert.Contains(t, body, "AF456")
	assert.NotContains(t, body, "Loading...")
}

func TestFlightsLoadingWhenFetchFails(t *testing.T) {
	f := newFixture(t)
	f.flights.err = errors.New("connection refused")

	w := f.do(httptest.NewRequest(http.MethodGet, "/flights", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loading...")
}

func TestFlightsKeepPreviousRowsWhenRefetchFails(t *testing.T) {
	f := newFixture(t)
	f.do(httptest.NewRequest(http.MethodGet, "/flights", nil))
	f.flights.err = errors.New("connection refused")

	w := f.do(httptest.NewRequest(http.MethodGet, "/flights", nil))

	body := w.Body.String()
	assert.Contains(t, body, "BA123")
	assert.NotContains(t, body, "Loading...")
}

func TestCreateAirline(t *testing.T) {
	f := newFixture(t)

	w := f.do(postForm("/airlines?q=brit", url.Values{
		"name": {"British Airways"},
		"code": {"BA"},
		"logo": {"https://example.com/ba.png"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/airlines?q=brit", w.Header().Get("Location"))

	w = f.do(httptest.NewRequest(http.MethodGet, "/airlines?q=brit", nil))
	body := w.Body.String()
	assert.Contains(t, body, "British Airways")
	assert.Contains(t, body, `<img src="https://example.com/ba.png"`)
}

func TestCreateAirlineRejected(t *testing.T) {
	f := newFixture(t)

	w := f.do(postForm("/airlines", url.Values{"name": {"British Airways"}}))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<details open>")
	assert.Contains(t, body, `value="British Airways"`)
	assert.Empty(t, f.airlines.rows)
}

func TestCreateAirlineStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.airlines.err = errors.New("duplicate key")

	w := f.do(postForm("/airlines", url.Values{"name": {"British Airways"}, "code": {"BA"}}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "<details open>")
	assert.NotContains(t, w.Body.String(), "duplicate key")
}

func TestCreateFlight(t *testing.T) {
	f := newFixture(t)

	w := f.do(postForm("/flights", url.Values{
		"airline_id":          {"a-BA"},
		"flight_number":       {"BA999"},
		"source_airport":      {"LHR"},
		"destination_airport": {"JFK"},
		"departure_time":      {"2025-03-01T10:00"},
		"arrival_time":        {"2025-03-01T18:30"},
		"aircraft":            {"A350"},
		"total_seats":         {"300"},
		"available_seats":     {""},
		"price":               {"499.99"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/flights", w.Header().Get("Location"))
	require.Len(t, f.flights.rows, 3)
	created := f.flights.rows[2]
	assert.Equal(t, "BA999", created.FlightNumber)
	assert.Equal(t, 300, created.TotalSeats)
	assert.Equal(t, 0, created.AvailableSeats)
	assert.Equal(t, 499.99, created.Price)
	assert.Equal(t, domain.FlightStatusScheduled, created.Status)
	assert.Equal(t, 10, created.DepartureTime.Hour())
	assert.Equal(t, time.March, created.DepartureTime.Month())
}

func TestBookingsHaveNoForm(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/bookings", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No Bookings found.")
	assert.NotContains(t, w.Body.String(), "<details")

	w = f.do(postForm("/bookings", url.Values{"seat_number": {"1A"}}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginLogout(t *testing.T) {
	f := newFixture(t)

	w := f.do(postForm("/login", url.Values{"role": {"admin"}, "next": {"/flights"}}))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/flights", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	w = f.do(httptest.NewRequest(http.MethodGet, "/", nil), cookies...)
	assert.Contains(t, w.Body.String(), "Signed in as admin")

	w = f.do(postForm("/logout", url.Values{"next": {"/"}}), cookies...)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = f.do(httptest.NewRequest(http.MethodGet, "/", nil), cookies...)
	assert.NotContains(t, w.Body.String(), "Signed in as")
	assert.Contains(t, w.Body.String(), `action="/login"`)
}

func TestLoginRejectsUnknownRoleAndForeignRedirect(t *testing.T) {
	f := newFixture(t)

	w := f.do(postForm("/login", url.Values{"role": {"root"}, "next": {"//evil.example"}}))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookies := w.Result().Cookies()

	w = f.do(httptest.NewRequest(http.MethodGet, "/", nil), cookies...)
	assert.NotContains(t, w.Body.String(), "Signed in as")
}

func TestExport(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/flights/export.xlsx?q=ba", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "flight.xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("flight")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BA123", rows[1][0])
	assert.Equal(t, "British Airways", rows[1][1])
}
