package iconik

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Result pairs the raw HTTP response with the decoded payload. Data is
// non-nil only when the response was 2xx and the body validated into T.
type Result[T any] struct {
	Raw  *RawResponse
	Data *T
}

// validate is the shared payload validator. Response payloads declare
// field constraints through `validate:` struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// strictDecoder is the capability a payload implements to reject unknown
// fields during decoding.
type strictDecoder interface {
	StrictDecoding() bool
}

// doRequest runs one endpoint call end to end: normalise the body for the
// verb, execute through the transport, and decode the 2xx body into T.
// Every resource method is a thin wrapper around this.
func doRequest[T any](ctx context.Context, tr *Transport, method, path string, body any, params url.Values, opts ...RequestOption) (*Result[T], error) {
	raw, err := send(ctx, tr, method, path, body, params, opts...)
	res := &Result[T]{Raw: raw}
	if err != nil {
		return res, err
	}
	if !raw.OK() {
		return res, nil
	}

	data, err := decodeInto[T](raw)
	if err != nil {
		return res, err
	}
	res.Data = data
	return res, nil
}

// doNoContent is doRequest for endpoints that declare no response payload.
func doNoContent(ctx context.Context, tr *Transport, method, path string, body any, params url.Values, opts ...RequestOption) (*RawResponse, error) {
	return send(ctx, tr, method, path, body, params, opts...)
}

func send(ctx context.Context, tr *Transport, method, path string, body any, params url.Values, opts ...RequestOption) (*RawResponse, error) {
	normalized, err := normalizeBody(body, method)
	if err != nil {
		return nil, err
	}

	reqOpts := make([]RequestOption, 0, len(opts)+2)
	if len(params) > 0 {
		reqOpts = append(reqOpts, WithQuery(params))
	}
	switch b := normalized.(type) {
	case nil:
	case []byte:
		reqOpts = append(reqOpts, WithRawBody(b, "application/json"))
	default:
		reqOpts = append(reqOpts, WithJSONBody(b))
	}
	reqOpts = append(reqOpts, opts...)

	return tr.Send(ctx, method, path, reqOpts...)
}

// mergeValues overlays the engine-owned pagination parameters onto the
// caller's filters without mutating either.
func mergeValues(base, overlay url.Values) url.Values {
	merged := url.Values{}
	for k, vs := range base {
		merged[k] = append([]string(nil), vs...)
	}
	for k, vs := range overlay {
		merged[k] = append([]string(nil), vs...)
	}
	return merged
}

// decodeInto unmarshals and validates a 2xx body into T. Failures wrap
// ErrInvalidResponse; the raw response stays available to the caller.
func decodeInto[T any](raw *RawResponse) (*T, error) {
	var data T
	dec := json.NewDecoder(bytes.NewReader(raw.Body))
	if sd, ok := any(&data).(strictDecoder); ok && sd.StrictDecoding() {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if reflect.ValueOf(data).Kind() == reflect.Struct {
		if err := validate.Struct(&data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return &data, nil
}
