package failure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTranslate_NotFoundExactShape(t *testing.T) {
	got := Translate(NewNotFound("No value present"))
	want := Response{
		Status:  404,
		Message: "No value present",
		Error:   "404: Not Found. System error: No value present",
	}
	if got != want {
		t.Fatalf("translate mismatch:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestTranslate_ConflictAndBadInputAre400(t *testing.T) {
	for _, err := range []error{NewConflict(MsgDuplicate), NewBadInput("Required request body is missing")} {
		got := Translate(err)
		if got.Status != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", err, got.Status)
		}
	}
	got := Translate(NewConflict(MsgDuplicate))
	if got.Error != "400: Bad Request. System error: User with current id already exists." {
		t.Fatalf("unexpected error string: %q", got.Error)
	}
}

func TestTranslate_UnknownErrorIs500(t *testing.T) {
	got := Translate(errors.New("Connection refused"))
	if got.Status != 500 || got.Message != "Connection refused" {
		t.Fatalf("unexpected: %+v", got)
	}
	if got.Error != "500: Internal Server Error. System error: Connection refused" {
		t.Fatalf("unexpected error string: %q", got.Error)
	}
}

func TestTranslate_WrappedFailureKeepsKind(t *testing.T) {
	err := fmt.Errorf("get user 7: %w", NewNotFound(MsgNoValue))
	got := Translate(err)
	if got.Status != 404 || got.Message != MsgNoValue {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestErrorsIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewConflict("dup"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected errors.Is to match ErrConflict")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("conflict must not match ErrNotFound")
	}
	if KindOf(err) != Conflict {
		t.Fatalf("KindOf: got %v", KindOf(err))
	}
	if KindOf(errors.New("x")) != Unexpected {
		t.Fatalf("plain errors must be Unexpected")
	}
}

func TestNewResponse_RawPair(t *testing.T) {
	got := NewResponse(http.StatusUnsupportedMediaType, "Content type 'text/plain' not supported")
	if got.Error != "415: Unsupported Media Type. System error: Content type 'text/plain' not supported" {
		t.Fatalf("unexpected: %q", got.Error)
	}
}
