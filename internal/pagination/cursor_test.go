package pagination

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	out, err := DecodeCursor(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("timestamp %v != %v", out.CreatedAt, in.CreatedAt)
	}
	if out.ID != in.ID {
		t.Fatalf("id %v != %v", out.ID, in.ID)
	}
}

func TestCursorEncodeNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	in := Cursor{CreatedAt: time.Date(2025, 6, 1, 15, 0, 0, 0, loc), ID: uuid.New()}

	out, err := DecodeCursor(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	// один и тот же момент времени, независимо от исходной зоны
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("instant changed: %v vs %v", out.CreatedAt, in.CreatedAt)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"not base64":      "!!!не-base64!!!",
		"not json":        base64.StdEncoding.EncodeToString([]byte("plain text")),
		"missing fields":  base64.StdEncoding.EncodeToString([]byte(`{}`)),
		"empty id":        base64.StdEncoding.EncodeToString([]byte(`{"created_at":"2025-06-01T00:00:00Z","id":""}`)),
		"bad timestamp":   base64.StdEncoding.EncodeToString([]byte(`{"created_at":"yesterday","id":"` + uuid.NewString() + `"}`)),
		"bad uuid":        base64.StdEncoding.EncodeToString([]byte(`{"created_at":"2025-06-01T00:00:00Z","id":"nope"}`)),
		"truncated token": "eyJjcmVhdGVkX2F0",
	}
	for name, token := range cases {
		if _, err := DecodeCursor(token); !errors.Is(err, ErrInvalidCursor) {
			t.Errorf("%s: got %v, want ErrInvalidCursor", name, err)
		}
	}
}

func TestParamsNormalize(t *testing.T) {
	for _, tc := range []struct {
		in        Params
		wantLimit int
		wantOrder Order
	}{
		{Params{}, DefaultLimit, OrderDesc},
		{Params{Limit: -5}, DefaultLimit, OrderDesc},
		{Params{Limit: MaxLimit + 1}, DefaultLimit, OrderDesc},
		{Params{Limit: 100}, 100, OrderDesc},
		{Params{Limit: 1, Order: OrderAsc}, 1, OrderAsc},
		{Params{Order: "sideways"}, DefaultLimit, OrderDesc},
	} {
		got := tc.in.Normalize()
		if got.Limit != tc.wantLimit || got.Order != tc.wantOrder {
			t.Errorf("%+v -> %+v, want limit=%d order=%s", tc.in, got, tc.wantLimit, tc.wantOrder)
		}
	}
}

func TestParamsCursorObj(t *testing.T) {
	c, err := Params{}.CursorObj()
	if err != nil || c != nil {
		t.Fatalf("empty cursor: got %v, %v", c, err)
	}

	if _, err := (Params{Cursor: "junk"}).CursorObj(); !errors.Is(err, ErrInvalidCursor) {
		t.Fatalf("got %v, want ErrInvalidCursor", err)
	}

	want := Cursor{CreatedAt: time.Now().UTC().Truncate(time.Microsecond), ID: uuid.New()}
	got, err := (Params{Cursor: want.Encode()}).CursorObj()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
