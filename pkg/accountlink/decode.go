package accountlink

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/vjeantet/jodaTime"
)

// LinkDateFormat is the Joda pattern of the "date" field returned by the
// info endpoint. The wire value carries no offset and is read as UTC.
const LinkDateFormat = "yyyy-MM-dd HH:mm:ss"

var errNotJSON = errors.New("response body is not valid JSON")

func parseObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, errNotJSON
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("response body is not a JSON object")
	}
	return root, nil
}

func requireString(root gjson.Result, field string) (string, error) {
	v := root.Get(field)
	if !v.Exists() {
		return "", fmt.Errorf("missing field %q", field)
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return v.Str, nil
}

// requireStrings decodes a string array, keeping order and duplicates.
func requireStrings(root gjson.Result, field string) ([]string, error) {
	v := root.Get(field)
	if !v.Exists() {
		return nil, fmt.Errorf("missing field %q", field)
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("field %q is not an array", field)
	}

	items := v.Array()
	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("field %q[%d] is not a string", field, i)
		}
		out = append(out, item.Str)
	}
	return out, nil
}

func parseLinkDate(value string) (time.Time, error) {
	t, err := jodaTime.Parse(LinkDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s: %v", ErrMalformedTimestamp, value, LinkDateFormat, err)
	}
	// time.Parse tolerates fractional seconds and single-digit hours.
	if jodaTime.Format(LinkDateFormat, t) != value {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrMalformedTimestamp, value, LinkDateFormat)
	}
	return t.UTC(), nil
}

// failureFromBody turns a non-2xx answer into a RemoteError, surfacing the
// remote "error" field when the body carries one.
func failureFromBody(op Endpoint, endpoint string, status int, body []byte) *RemoteError {
	rerr := &RemoteError{
		Op:         op.String(),
		Endpoint:   endpoint,
		StatusCode: status,
	}

	if !gjson.ValidBytes(body) {
		rerr.Err = fmt.Errorf("unexpected status %d %s: %w", status, http.StatusText(status), errNotJSON)
		return rerr
	}

	msg := gjson.GetBytes(body, "error")
	if msg.Type != gjson.String {
		rerr.Err = fmt.Errorf("unexpected status %d %s without error message", status, http.StatusText(status))
		return rerr
	}

	rerr.Remote = msg.Str
	rerr.Err = fmt.Errorf("unexpected status %d %s", status, http.StatusText(status))
	return rerr
}
