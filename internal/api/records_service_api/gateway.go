package records_service_api

import (
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// NewGateway returns a grpc-gateway mux that transcodes
//
//	GET  /v1/records/{table}?q=   -> ListRecords
//	GET  /v1/records/{table}/count -> CountRecords
//	POST /v1/records/{table}      -> CreateRecord (body is the record)
//
// onto client.
func NewGateway(client RecordsServiceClient) (*runtime.ServeMux, error) {
	mux := runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions:   protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true},
			UnmarshalOptions: protojson.UnmarshalOptions{DiscardUnknown: false},
		}),
	)

	if err := mux.HandlePath(http.MethodGet, "/v1/records/{table}", func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		_, outbound := runtime.MarshalerForRequest(mux, r)
		req, err := structpb.NewStruct(map[string]interface{}{
			"table": params["table"],
			"query": r.URL.Query().Get("q"),
		})
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, err)
			return
		}
		resp, err := client.ListRecords(r.Context(), req)
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, err)
			return
		}
		runtime.ForwardResponseMessage(r.Context(), mux, outbound, w, r, resp)
	}); err != nil {
		return nil, fmt.Errorf("register list route: %w", err)
	}

	if err := mux.HandlePath(http.MethodGet, "/v1/records/{table}/count", func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		_, outbound := runtime.MarshalerForRequest(mux, r)
		resp, err := client.CountRecords(r.Context(), wrapperspb.String(params["table"]))
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, err)
			return
		}
		runtime.ForwardResponseMessage(r.Context(), mux, outbound, w, r, resp)
	}); err != nil {
		return nil, fmt.Errorf("register count route: %w", err)
	}

	if err := mux.HandlePath(http.MethodPost, "/v1/records/{table}", func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		inbound, outbound := runtime.MarshalerForRequest(mux, r)
		record := &structpb.Struct{}
		if err := inbound.NewDecoder(r.Body).Decode(record); err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, invalidBody(err))
			return
		}
		req := &structpb.Struct{Fields: map[string]*structpb.Value{
			"table":  structpb.NewStringValue(params["table"]),
			"record": structpb.NewStructValue(record),
		}}
		resp, err := client.CreateRecord(r.Context(), req)
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, err)
			return
		}
		runtime.ForwardResponseMessage(r.Context(), mux, outbound, w, r, resp)
	}); err != nil {
		return nil, fmt.Errorf("register create route: %w", err)
	}

	return mux, nil
}
