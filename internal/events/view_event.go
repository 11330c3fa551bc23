package events

import (
	"fmt"
	"strconv"
	"time"
)

// ViewEvent records one read of a post.
type ViewEvent struct {
	PostID    string
	Timestamp int64
	IP        string
	UserAgent string
	Referer   string
}

const (
	fieldPostID    = "post_id"
	fieldTimestamp = "timestamp"
	fieldIP        = "ip"
	fieldUserAgent = "user_agent"
	fieldReferer   = "referer"
)

func (e *ViewEvent) Values() map[string]interface{} {
	fields := map[string]interface{}{
		fieldPostID:    e.PostID,
		fieldTimestamp: e.Timestamp,
	}
	if e.IP != "" {
		fields[fieldIP] = e.IP
	}
	if e.UserAgent != "" {
		fields[fieldUserAgent] = e.UserAgent
	}
	if e.Referer != "" {
		fields[fieldReferer] = e.Referer
	}
	return fields
}

func (e *ViewEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// ParseViewEvent rebuilds an event from stream values. Redis hands every
// value back as a string.
func ParseViewEvent(values map[string]interface{}) (*ViewEvent, error) {
	postID, _ := values[fieldPostID].(string)
	if postID == "" {
		return nil, fmt.Errorf("missing %s", fieldPostID)
	}

	rawTS, _ := values[fieldTimestamp].(string)
	ts, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", fieldTimestamp, rawTS)
	}

	e := &ViewEvent{PostID: postID, Timestamp: ts}
	e.IP, _ = values[fieldIP].(string)
	e.UserAgent, _ = values[fieldUserAgent].(string)
	e.Referer, _ = values[fieldReferer].(string)
	return e, nil
}
