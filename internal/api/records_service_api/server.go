package records_service_api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/repository"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// StaleHeader is set to "true" on ListRecords responses served from the
// previous fetch after a failed refetch.
const StaleHeader = "x-flightdb-stale"

type RecordCatalog interface {
	Get(table domain.Table) (listing.Entry, error)
}

// Server implements RecordsServiceServer over the listing catalog.
type Server struct {
	catalog RecordCatalog
	counter repository.Counter
	logger  zerolog.Logger
}

func NewServer(catalog RecordCatalog, counter repository.Counter, logger zerolog.Logger) *Server {
	return &Server{
		catalog: catalog,
		counter: counter,
		logger:  logger.With().Str("component", "records_service").Logger(),
	}
}

func (s *Server) ListRecords(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	entry, err := s.entry(req)
	if err != nil {
		return nil, err
	}

	result := entry.List(ctx, req.GetFields()["query"].GetStringValue())
	if result.Stale {
		if err := grpc.SetHeader(ctx, metadata.Pairs(StaleHeader, "true")); err != nil {
			s.logger.Debug().Err(err).Str("table", string(entry.Table())).Msg("set stale header")
		}
	}

	var rows []interface{}
	if err := roundTrip(result.Rows, &rows); err != nil {
		return nil, status.Errorf(codes.Internal, "encode rows: %v", err)
	}
	list, err := structpb.NewList(rows)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode rows: %v", err)
	}
	return list, nil
}

func (s *Server) CountRecords(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	n, err := s.counter.Count(ctx, domain.Table(req.GetValue()))
	if err != nil {
		if errors.Is(err, repository.ErrUnknownTable) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Errorf(codes.Unavailable, "count %s: %v", req.GetValue(), err)
	}
	return wrapperspb.Int64(n), nil
}

func (s *Server) CreateRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	entry, err := s.entry(req)
	if err != nil {
		return nil, err
	}

	record := req.GetFields()["record"].GetStructValue()
	if record == nil {
		return nil, status.Error(codes.InvalidArgument, "record is required")
	}
	raw, err := record.MarshalJSON()
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "record: %v", err)
	}

	created, err := entry.CreateJSON(ctx, raw)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Unavailable, "store unavailable")
	}

	var fields map[string]interface{}
	if err := roundTrip(created, &fields); err != nil {
		return nil, status.Errorf(codes.Internal, "encode record: %v", err)
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode record: %v", err)
	}
	return out, nil
}

func (s *Server) entry(req *structpb.Struct) (listing.Entry, error) {
	table := req.GetFields()["table"].GetStringValue()
	if table == "" {
		return nil, status.Error(codes.InvalidArgument, "table is required")
	}
	entry, err := s.catalog.Get(domain.Table(table))
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	return entry, nil
}

// roundTrip converts v into the generic JSON shape structpb accepts.
func roundTrip(v interface{}, dest interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

var _ RecordsServiceServer = (*Server)(nil)

func invalidBody(err error) error {
	return status.Errorf(codes.InvalidArgument, "invalid body: %v", err)
}
