package validation

import (
	"errors"
	"testing"
)

func TestNumeric(t *testing.T) {
	valid := []string{"5", "5.5", ".5", "-3", "+12", " 7 "}
	invalid := []string{"", "abc", "5min", "1e3", "Infinity", "NaN", "1.2.3"}

	for _, v := range valid {
		if !Numeric(v) {
			t.Errorf("Numeric(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if Numeric(v) {
			t.Errorf("Numeric(%q) = true, want false", v)
		}
	}
	if Numeric([]string{"5"}) {
		t.Error("a list should not be numeric")
	}
}

func TestURL(t *testing.T) {
	valid := []string{
		"https://example.com/a.png",
		"http://img.cdn.example.org/x?y=1",
		"example.com/avatar.jpg",
		"http://localhost:3000/pic.png",
		"http://127.0.0.1/pic.png",
	}
	invalid := []string{
		"",
		"not a url",
		"javascript:alert(1)",
		"http://",
		"http://nodot",
		"ssh://example.com",
	}

	for _, v := range valid {
		if !URL(v) {
			t.Errorf("URL(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if URL(v) {
			t.Errorf("URL(%q) = true, want false", v)
		}
	}
}

func TestISO8601(t *testing.T) {
	valid := []string{"2024-03-01", "2024-03-01T10:00:00Z", "2024-03-01T10:00:00.123+02:00", "2024-03-01T10:00"}
	invalid := []string{"", "yesterday", "01/03/2024", "2024-13-01"}

	for _, v := range valid {
		if !ISO8601(v) {
			t.Errorf("ISO8601(%q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if ISO8601(v) {
			t.Errorf("ISO8601(%q) = true, want false", v)
		}
	}
}

func TestEmail(t *testing.T) {
	if !Email("user@example.com") {
		t.Error("expected valid email")
	}
	for _, v := range []string{"", "user", "user@", "user@example", "a b@example.com"} {
		if Email(v) {
			t.Errorf("Email(%q) = true, want false", v)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" go, web ,, backend ")
	want := []string{"go", "web", "backend"}
	if len(got) != len(want) {
		t.Fatalf("SplitTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d = %q, want %q", i, got[i], want[i])
		}
	}

	if got := SplitTags([]string{" a ", "", "b"}); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SplitTags(list) = %v", got)
	}
	if got := SplitTags(""); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
}

func TestCreatePostRules_Aggregates(t *testing.T) {
	err := CreatePostRules.Validate(Values{
		"title":    "Hello",
		"readTime": "soon",
	})

	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}

	for _, path := range []string{"body", "category", "readTime", "excerpt", "authorName", "authorImageURL"} {
		if !verrs.Has(path) {
			t.Errorf("expected an error for %s", path)
		}
	}
	if verrs.Has("title") {
		t.Error("title was supplied and should pass")
	}
	if verrs.Has("postDate") || verrs.Has("tags") {
		t.Error("optional fields should be skipped when absent")
	}

	for _, fe := range verrs {
		if fe.Type != "field" || fe.Location != "body" {
			t.Errorf("unexpected error shape %+v", fe)
		}
		if fe.Path == "readTime" && fe.Msg != "ReadTime must be a number" {
			t.Errorf("unexpected readTime message %q", fe.Msg)
		}
		if fe.Path == "readTime" && fe.Value != "soon" {
			t.Errorf("expected offending value to be echoed, got %v", fe.Value)
		}
	}
}

func TestCreatePostRules_Valid(t *testing.T) {
	err := CreatePostRules.Validate(Values{
		"title":          "Hello",
		"body":           "World",
		"category":       "Tech",
		"readTime":       "4",
		"excerpt":        "Short",
		"authorName":     "Ann",
		"authorImageURL": "https://example.com/ann.png",
		"tags":           []string{"go"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePostRules_PresenceOnly(t *testing.T) {
	if err := UpdatePostRules.Validate(Values{}); err != nil {
		t.Fatalf("empty update should be valid, got %v", err)
	}

	err := UpdatePostRules.Validate(Values{"title": "", "postDate": "nope"})
	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if len(verrs) != 2 || !verrs.Has("title") || !verrs.Has("postDate") {
		t.Errorf("unexpected errors %+v", verrs)
	}
}

func TestErrors_Error(t *testing.T) {
	e := Errors{Field("title", "", "Title is required")}
	if e.Error() != "validation failed: title: Title is required" {
		t.Errorf("unexpected message %q", e.Error())
	}
}

func TestValues_String(t *testing.T) {
	v := Values{"tags": []string{"a", "b"}, "title": "x"}

	if s, ok := v.String("tags"); !ok || s != "a,b" {
		t.Errorf("String(tags) = %q, %v", s, ok)
	}
	if _, ok := v.String("missing"); ok {
		t.Error("missing field should report absent")
	}
}
