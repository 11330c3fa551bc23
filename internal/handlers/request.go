package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/JosephKS10/blog-backend/internal/media"
	"github.com/JosephKS10/blog-backend/internal/validation"
)

const (
	maxJSONBody     = 1 << 20
	multipartMemory = 8 << 20
)

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

// readFields decodes a JSON, urlencoded or multipart body into validation
// Values. When fileField is set and a file was sent under that name it is
// returned fully buffered.
func readFields(w http.ResponseWriter, r *http.Request, fileField string, maxUpload int64) (validation.Values, *media.File, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUpload+maxJSONBody)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, nil, &badRequestError{msg: "Invalid form data"}
		}
		values := formValues(r.MultipartForm.Value)
		if fileField == "" {
			return values, nil, nil
		}
		file, err := formFile(r, fileField)
		if err != nil {
			return nil, nil, err
		}
		return values, file, nil

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			return nil, nil, &badRequestError{msg: "Invalid form data"}
		}
		return formValues(r.PostForm), nil, nil

	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		values, err := jsonValues(r.Body)
		return values, nil, err
	}
}

func formFile(r *http.Request, field string) (*media.File, error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &badRequestError{msg: "Invalid file upload"}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &badRequestError{msg: "Invalid file upload"}
	}

	return &media.File{
		Filename: header.Filename,
		Size:     header.Size,
		Reader:   bytes.NewReader(data),
	}, nil
}

// formValues keeps single values as strings. Repeated keys and keys sent
// as "name[]" become lists.
func formValues(form url.Values) validation.Values {
	values := make(validation.Values, len(form))
	for key, vals := range form {
		if name, isList := strings.CutSuffix(key, "[]"); isList {
			values[name] = append([]string(nil), vals...)
			continue
		}
		if len(vals) == 1 {
			values[key] = vals[0]
		} else {
			values[key] = append([]string(nil), vals...)
		}
	}
	return values
}

// jsonValues flattens a JSON object into strings and string lists so the
// same rules apply to JSON and form bodies. null counts as absent.
func jsonValues(body io.Reader) (validation.Values, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.Values{}, nil
		}
		return nil, &badRequestError{msg: "Invalid JSON body"}
	}

	values := make(validation.Values, len(raw))
	for key, v := range raw {
		switch t := v.(type) {
		case nil:
		case []any:
			list := make([]string, 0, len(t))
			for _, item := range t {
				list = append(list, scalarString(item))
			}
			values[key] = list
		default:
			values[key] = scalarString(t)
		}
	}
	return values, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return fmt.Sprint(t)
	case nil:
		return ""
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}
