// Package web serves the server-rendered administration console.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/export"
	"github.com/Domenick1991/flightdb/internal/middleware"
	"github.com/Domenick1991/flightdb/internal/service/dashboard"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views groups the list views the console renders.
type Views struct {
	Flights  *listing.View[domain.Flight, domain.NewFlight]
	Airlines *listing.View[domain.Airline, domain.NewAirline]
	Airports *listing.View[domain.Airport, domain.NewAirport]
	Bookings *listing.View[domain.Booking, domain.NewBooking]
}

type Console struct {
	views     Views
	dashboard dashboard.DashboardUseCase
	logger    zerolog.Logger
}

func NewConsole(views Views, dash dashboard.DashboardUseCase, logger zerolog.Logger) *Console {
	return &Console{
		views:     views,
		dashboard: dash,
		logger:    logger.With().Str("component", "console").Logger(),
	}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// Register installs the templates on engine and mounts the console routes
// on router. router must carry the session middleware.
func (con *Console) Register(engine *gin.Engine, router gin.IRoutes) error {
	tmpl, err := Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	router.GET("/", con.home)
	router.POST("/login", con.login)
	router.POST("/logout", con.logout)

	flights := page[domain.Flight, domain.NewFlight]{
		table:       domain.TableFlight,
		path:        "/flights",
		title:       "Flights",
		placeholder: "Search flights...",
		addLabel:    "Add Flight",
		form:        "flight",
		imageColumn: -1,
		view:        con.views.Flights,
	}
	airlines := page[domain.Airline, domain.NewAirline]{
		table:       domain.TableAirline,
		path:        "/airlines",
		title:       "Airlines",
		placeholder: "Search airlines...",
		addLabel:    "Add Airline",
		form:        "airline",
		imageColumn: 2,
		view:        con.views.Airlines,
	}
	airports := page[domain.Airport, domain.NewAirport]{
		table:       domain.TableAirport,
		path:        "/airports",
		title:       "Airports",
		placeholder: "Search airports...",
		addLabel:    "Add Airport",
		form:        "airport",
		imageColumn: -1,
		view:        con.views.Airports,
	}
	bookings := page[domain.Booking, domain.NewBooking]{
		table:       domain.TableBooking,
		path:        "/bookings",
		title:       "Bookings",
		placeholder: "Search bookings...",
		imageColumn: -1,
		view:        con.views.Bookings,
	}

	mount(con, router, flights)
	mount(con, router, airlines)
	mount(con, router, airports)
	mount(con, router, bookings)
	return nil
}

type navData struct {
	Path          string
	Authenticated bool
	Role          string
}

func (con *Console) nav(c *gin.Context) navData {
	state := middleware.SessionFrom(c).State()
	return navData{
		Path:          c.Request.URL.Path,
		Authenticated: state.Authenticated,
		Role:          state.Role.String(),
	}
}

type homeData struct {
	Nav   navData
	Title string
	Stats []dashboard.Stat
}

func (con *Console) home(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard", homeData{
		Nav:   con.nav(c),
		Title: "Dashboard",
		Stats: con.dashboard.Stats(c.Request.Context()),
	})
}

func (con *Console) login(c *gin.Context) {
	s := middleware.SessionFrom(c)
	role := domain.Role(strings.TrimSpace(c.PostForm("role")))

	if err := s.Login(c.Request.Context(), role); err != nil {
		if errors.Is(err, session.ErrInvalidRole) {
			con.logger.Warn().Str("role", string(role)).Msg("login with unknown role")
		} else {
			con.logger.Error().Err(err).Msg("login failed")
		}
	}
	c.Redirect(http.StatusSeeOther, returnPath(c))
}

func (con *Console) logout(c *gin.Context) {
	if err := middleware.SessionFrom(c).Logout(c.Request.Context()); err != nil {
		con.logger.Error().Err(err).Msg("logout failed")
	}
	c.Redirect(http.StatusSeeOther, returnPath(c))
}

// returnPath reads the "next" form field and only accepts local paths.
func returnPath(c *gin.Context) string {
	next := c.PostForm("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	return next
}

// page describes one entity list page.
type page[T domain.Record, In domain.Input] struct {
	table       domain.Table
	path        string
	title       string
	placeholder string
	addLabel    string
	// form names the form partial; empty means the page has no create form.
	form        string
	imageColumn int
	view        *listing.View[T, In]
}

type cell struct {
	Text  string
	Image bool
}

type listData struct {
	Nav         navData
	Title       string
	Path        string
	Query       string
	Placeholder string
	AddLabel    string
	Form        string
	FormAction  string
	FormOpen    bool
	Values      map[string]string
	Options     formOptions
	Headers     []string
	Rows        [][]cell
	Loading     bool
	ExportURL   string
}

type formOptions struct {
	Airlines []domain.Airline
	Airports []domain.Airport
}

func mount[T domain.Record, In domain.Input](con *Console, router gin.IRoutes, p page[T, In]) {
	router.GET(p.path, listHandler(con, p))
	router.GET(p.path+"/export.xlsx", exportHandler(con, p))
	if p.form != "" {
		router.POST(p.path, createHandler(con, p))
	}
}

func listHandler[T domain.Record, In domain.Input](con *Console, p page[T, In]) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "list", buildList(con, c, p, c.Query("q")))
	}
}

func createHandler[T domain.Record, In domain.Input](con *Console, p page[T, In]) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")

		var input In
		if err := c.ShouldBind(&input); err != nil {
			con.logger.Warn().Err(err).Str("table", string(p.table)).Msg("rejected form")
			renderOpenForm(con, c, p, query, http.StatusUnprocessableEntity)
			return
		}

		if _, err := p.view.Create(c.Request.Context(), input); err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, domain.ErrValidation) {
				status = http.StatusUnprocessableEntity
			}
			con.logger.Warn().Err(err).Str("table", string(p.table)).Msg("create failed")
			renderOpenForm(con, c, p, query, status)
			return
		}

		c.Redirect(http.StatusSeeOther, withQuery(p.path, query))
	}
}

func exportHandler[T domain.Record, In domain.Input](con *Console, p page[T, In]) gin.HandlerFunc {
	return func(c *gin.Context) {
		// On a failed refetch the previous rows are exported; Search logs it.
		rows, _ := p.view.Search(c.Request.Context(), c.Query("q"))

		var zero T
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, string(p.table), zero.Headers(), rows); err != nil {
			con.logger.Error().Err(err).Str("table", string(p.table)).Msg("export failed")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName(p.table)))
		c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
	}
}

// renderOpenForm shows the page again with the create form expanded and the
// submitted values filled in. No error text is rendered.
func renderOpenForm[T domain.Record, In domain.Input](con *Console, c *gin.Context, p page[T, In], query string, status int) {
	data := buildList(con, c, p, query)
	data.FormOpen = true
	data.Values = formValues(c)
	c.HTML(status, "list", data)
}

func buildList[T domain.Record, In domain.Input](con *Console, c *gin.Context, p page[T, In], query string) listData {
	ctx := c.Request.Context()
	// Search logs fetch failures and still returns the previous rows.
	rows, _ := p.view.Search(ctx, query)
	snap := p.view.Snapshot()

	var zero T
	data := listData{
		Nav:         con.nav(c),
		Title:       p.title,
		Path:        p.path,
		Query:       query,
		Placeholder: p.placeholder,
		AddLabel:    p.addLabel,
		Form:        p.form,
		FormAction:  withQuery(p.path, query),
		Headers:     zero.Headers(),
		Values:      map[string]string{},
		Rows:        make([][]cell, 0, len(rows)),
		Loading:     !snap.Loaded,
		ExportURL:   withQuery(p.path+"/export.xlsx", query),
	}
	for _, row := range rows {
		texts := row.Cells()
		cells := make([]cell, len(texts))
		for i, text := range texts {
			cells[i] = cell{Text: text, Image: i == p.imageColumn && text != ""}
		}
		data.Rows = append(data.Rows, cells)
	}
	if p.form == "flight" {
		data.Options = con.flightOptions(c)
	}
	return data
}

// flightOptions feeds the airline and airport pickers of the flight form.
func (con *Console) flightOptions(c *gin.Context) formOptions {
	ctx := c.Request.Context()
	airlines, _ := con.views.Airlines.Load(ctx)
	airports, _ := con.views.Airports.Load(ctx)
	return formOptions{Airlines: airlines, Airports: airports}
}

func formValues(c *gin.Context) map[string]string {
	values := make(map[string]string)
	if err := c.Request.ParseForm(); err != nil {
		return values
	}
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}
	return values
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + url.Values{"q": {query}}.Encode()
}
