package events

import (
	"strconv"
	"testing"
)

// stringify mimics what XREADGROUP returns for the values we wrote.
func stringify(values map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		switch t := v.(type) {
		case int64:
			out[k] = strconv.FormatInt(t, 10)
		default:
			out[k] = v
		}
	}
	return out
}

func TestViewEvent_StreamRoundTrip(t *testing.T) {
	in := &ViewEvent{
		PostID:    "65f0c0ffee",
		Timestamp: 1700000000123,
		IP:        "203.0.113.9",
		UserAgent: "Mozilla/5.0",
	}

	values := in.Values()
	if _, ok := values["referer"]; ok {
		t.Error("empty referer should not be written")
	}

	out, err := ParseViewEvent(stringify(values))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out != *in {
		t.Errorf("got %+v, want %+v", out, in)
	}
	if out.Time().UnixMilli() != in.Timestamp {
		t.Errorf("unexpected time %v", out.Time())
	}
}

func TestParseViewEvent_Malformed(t *testing.T) {
	cases := []map[string]interface{}{
		{},
		{"post_id": "p"},
		{"post_id": "p", "timestamp": "yesterday"},
		{"post_id": 42, "timestamp": "1"},
	}

	for i, values := range cases {
		if _, err := ParseViewEvent(values); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}
