package records_service_api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type memAirlines struct {
	mu   sync.Mutex
	rows []domain.Airline
	err  error
}

func (r *memAirlines) List(context.Context) ([]domain.Airline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Airline, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *memAirlines) Create(_ context.Context, in domain.NewAirline) (*domain.Airline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	a := domain.Airline{ID: "a-" + in.Code, Name: in.Name, Code: in.Code, Logo: in.LogoPtr()}
	r.rows = append(r.rows, a)
	return &a, nil
}

type fakeCounter map[domain.Table]int64

func (f fakeCounter) Count(_ context.Context, table domain.Table) (int64, error) {
	if !table.Valid() {
		return 0, fmt.Errorf("%w: %q", repository.ErrUnknownTable, table)
	}
	n, ok := f[table]
	if !ok {
		return 0, errors.New("connection refused")
	}
	return n, nil
}

func startServer(t *testing.T, repo *memAirlines, counter repository.Counter) RecordsServiceClient {
	t.Helper()

	view := listing.NewView[domain.Airline, domain.NewAirline](domain.TableAirline, repo, listing.Options{Logger: zerolog.Nop()})
	catalog := listing.NewCatalog(view)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterRecordsServiceServer(srv, NewServer(catalog, counter, zerolog.Nop()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewRecordsServiceClient(conn)
}

func listRequest(t *testing.T, table, query string) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(map[string]interface{}{"table": table, "query": query})
	require.NoError(t, err)
	return req
}

func TestServer_ListRecords(t *testing.T) {
	repo := &memAirlines{rows: []domain.Airline{
		{ID: "1", Name: "British Airways", Code: "BA"},
		{ID: "2", Name: "Air France", Code: "AF"},
	}}
	client := startServer(t, repo, fakeCounter{})

	var header metadata.MD
	resp, err := client.ListRecords(context.Background(), listRequest(t, "airline", "brit"), grpc.Header(&header))

	require.NoError(t, err)
	require.Len(t, resp.GetValues(), 1)
	assert.Equal(t, "BA", resp.GetValues()[0].GetStructValue().GetFields()["code"].GetStringValue())
	assert.Empty(t, header.Get(StaleHeader))
}

func TestServer_ListRecordsStale(t *testing.T) {
	repo := &memAirlines{rows: []domain.Airline{{ID: "1", Name: "KLM", Code: "KL"}}}
	client := startServer(t, repo, fakeCounter{})

	_, err := client.ListRecords(context.Background(), listRequest(t, "airline", ""))
	require.NoError(t, err)

	repo.err = errors.New("connection refused")
	var header metadata.MD
	resp, err := client.ListRecords(context.Background(), listRequest(t, "airline", ""), grpc.Header(&header))

	require.NoError(t, err)
	assert.Len(t, resp.GetValues(), 1)
	assert.Equal(t, []string{"true"}, header.Get(StaleHeader))
}

func TestServer_ListRecordsStaleWithoutStream(t *testing.T) {
	repo := &memAirlines{rows: []domain.Airline{{ID: "1", Name: "KLM", Code: "KL"}}}
	view := listing.NewView[domain.Airline, domain.NewAirline](domain.TableAirline, repo, listing.Options{Logger: zerolog.Nop()})
	_, err := view.Load(context.Background())
	require.NoError(t, err)
	repo.err = errors.New("connection refused")

	var buf bytes.Buffer
	srv := NewServer(listing.NewCatalog(view), fakeCounter{}, zerolog.New(&buf).Level(zerolog.DebugLevel))

	resp, err := srv.ListRecords(context.Background(), listRequest(t, "airline", ""))

	require.NoError(t, err)
	assert.Len(t, resp.GetValues(), 1)
	assert.Contains(t, buf.String(), "set stale header")
	assert.Contains(t, buf.String(), `"table":"airline"`)
}

func TestServer_ListRecordsErrors(t *testing.T) {
	client := startServer(t, &memAirlines{}, fakeCounter{})

	_, err := client.ListRecords(context.Background(), listRequest(t, "ticket", ""))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.ListRecords(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_CountRecords(t *testing.T) {
	client := startServer(t, &memAirlines{}, fakeCounter{domain.TableFlight: 7})
	ctx := context.Background()

	resp, err := client.CountRecords(ctx, wrapperspb.String("flight"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.GetValue())

	_, err = client.CountRecords(ctx, wrapperspb.String("users"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.CountRecords(ctx, wrapperspb.String("booking"))
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestServer_CreateRecord(t *testing.T) {
	repo := &memAirlines{}
	client := startServer(t, repo, fakeCounter{})
	ctx := context.Background()

	req, err := structpb.NewStruct(map[string]interface{}{
		"table":  "airline",
		"record": map[string]interface{}{"name": "Lufthansa", "code": "LH"},
	})
	require.NoError(t, err)

	resp, err := client.CreateRecord(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "a-LH", resp.GetFields()["id"].GetStringValue())
	assert.Len(t, repo.rows, 1)

	invalid, err := structpb.NewStruct(map[string]interface{}{
		"table":  "airline",
		"record": map[string]interface{}{"name": "Lufthansa"},
	})
	require.NoError(t, err)
	_, err = client.CreateRecord(ctx, invalid)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.CreateRecord(ctx, listRequest(t, "airline", ""))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	repo.err = errors.New("connection refused")
	_, err = client.CreateRecord(ctx, req)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestGateway(t *testing.T) {
	repo := &memAirlines{rows: []domain.Airline{{ID: "1", Name: "British Airways", Code: "BA"}}}
	client := startServer(t, repo, fakeCounter{domain.TableAirline: 1})

	mux, err := NewGateway(client)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/records/airline?q=ba", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "BA", rows[0]["code"])

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/records/airline/count", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var count string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, "1", count)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/records/airline", strings.NewReader(`{"name":"Iberia","code":"IB"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "a-IB", created["id"])

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/records/airline", strings.NewReader(`{"name":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/records/users", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
