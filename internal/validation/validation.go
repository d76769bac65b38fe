// Package validation decodes chat payloads and rejects any whose fields are
// missing or of the wrong primitive type. It checks types only; field
// semantics are left to the model.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"gymlog-backend/internal/models"
)

// Pointer fields distinguish an absent key from an empty value.
type rowBody struct {
	Exercise  *string `json:"exercise" validate:"required"`
	Set       *int    `json:"set" validate:"required"`
	WeightLbs *string `json:"weightLbs" validate:"required"`
	Reps      *string `json:"reps" validate:"required"`
	Notes     *string `json:"notes" validate:"required"`
}

type requestBody struct {
	Message *string   `json:"message" validate:"required"`
	Rows    []rowBody `json:"rows" validate:"dive"`
}

type responseBody struct {
	Rows []rowBody `json:"rows" validate:"required,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Errors lists every rejected field of one payload.
type Errors struct {
	Fields []models.FieldError
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%v: %s", f.Loc, f.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DecodeChatRequest reads a chat request body. Omitted rows become an empty
// slice. Unknown keys are ignored.
func DecodeChatRequest(r io.Reader) (models.ChatRequest, error) {
	var body requestBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return models.ChatRequest{}, decodeError(err)
	}
	if err := check(&body); err != nil {
		return models.ChatRequest{}, err
	}

	return models.ChatRequest{
		Message: *body.Message,
		Rows:    toRows(body.Rows),
	}, nil
}

// DecodeChatResponse checks structured model output against the same row
// shape the endpoint accepts. The rows key must be present.
func DecodeChatResponse(data []byte) (models.ChatResponse, error) {
	var body responseBody
	if err := json.Unmarshal(data, &body); err != nil {
		return models.ChatResponse{}, decodeError(err)
	}
	if err := check(&body); err != nil {
		return models.ChatResponse{}, err
	}
	return models.ChatResponse{Rows: toRows(body.Rows)}, nil
}

func toRows(in []rowBody) []models.WorkoutRow {
	rows := make([]models.WorkoutRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, models.WorkoutRow{
			Exercise:  *r.Exercise,
			Set:       *r.Set,
			WeightLbs: *r.WeightLbs,
			Reps:      *r.Reps,
			Notes:     *r.Notes,
		})
	}
	return rows
}

func check(body any) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, models.FieldError{
			Type: "missing",
			Loc:  namespaceLoc(fe.Namespace()),
			Msg:  "Field required",
		})
	}
	return out
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.Is(err, io.EOF):
		return &Errors{Fields: []models.FieldError{{
			Type: "missing",
			Loc:  []any{"body"},
			Msg:  "Field required",
		}}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &Errors{Fields: []models.FieldError{{
			Type: "json_invalid",
			Loc:  []any{"body"},
			Msg:  "JSON decode error",
		}}}
	case errors.As(err, &typeErr):
		loc := []any{"body"}
		if typeErr.Field != "" {
			for _, p := range strings.Split(typeErr.Field, ".") {
				loc = append(loc, p)
			}
		}
		kind, msg := describeType(typeErr.Type)
		return &Errors{Fields: []models.FieldError{{Type: kind, Loc: loc, Msg: msg}}}
	default:
		return err
	}
}

func describeType(t reflect.Type) (string, string) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "model_type", "Input should be a valid dictionary or object to extract fields from"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int_type", "Input should be a valid integer"
	case reflect.String:
		return "string_type", "Input should be a valid string"
	case reflect.Slice:
		return "list_type", "Input should be a valid list"
	default:
		return "model_type", "Input should be a valid dictionary or object to extract fields from"
	}
}

// namespaceLoc turns "requestBody.rows[1].set" into ["body", "rows", 1, "set"].
func namespaceLoc(ns string) []any {
	loc := []any{"body"}
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}

	for _, seg := range strings.Split(ns, ".") {
		name, rest, hasIndex := strings.Cut(seg, "[")
		loc = append(loc, name)
		if !hasIndex {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
		if err != nil {
			loc = append(loc, strings.TrimSuffix(rest, "]"))
			continue
		}
		loc = append(loc, idx)
	}
	return loc
}
