package utils

import (
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
}

func decodeAll(body string) ([]item, error) {
	var out []item
	for v, err := range DecodeJSONStream[item](strings.NewReader(body)) {
		if err != nil {
			return out, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func TestDecodeJSONStream(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []item
	}{
		{"single object", `{"name":"a"}`, []item{{"a"}}},
		{"array", ` [ {"name":"a"}, {"name":"b"} ] `, []item{{"a"}, {"b"}}},
		{"empty array", `[]`, nil},
		{"ndjson", "{\"name\":\"a\"}\n{\"name\":\"b\"}\n", []item{{"a"}, {"b"}}},
		{"empty body", "", nil},
		{"whitespace body", " \n\t", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAll(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSONStreamMalformed(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantItems int
	}{
		{"broken object", `{"name":`, 0},
		{"broken second element", `[{"name":"a"},{"name":}]`, 1},
		{"unterminated array", `[{"name":"a"}`, 1},
		{"trailing garbage", `{"name":"a"} nope`, 1},
		{"null body", `null`, 0},
		{"null element", `[null]`, 0},
		{"null after object", "{\"name\":\"a\"}\nnull", 1},
		{"junk after array", `[{"name":"a"}] trailing junk`, 1},
		{"value after array", `[{"name":"a"}] {"name":"b"}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAll(tt.body)
			assert.ErrorIs(t, err, ErrMalformedBody)
			assert.Len(t, got, tt.wantItems)
		})
	}
}

func itemsOf(items ...item) iter.Seq2[item, error] {
	return func(yield func(item, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
	}
}

func TestStreamJSONArray(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	n, err := StreamJSON(rec, req, http.StatusOK, itemsOf(item{"a"}, item{"b"}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []item{{"a"}, {"b"}}, got)
}

func TestStreamJSONEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	n, err := StreamJSON(rec, req, http.StatusOK, itemsOf())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestStreamJSONNDJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/x-ndjson")

	_, err := StreamJSON(rec, req, http.StatusOK, itemsOf(item{"a"}, item{"b"}))
	require.NoError(t, err)
	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))
	assert.Equal(t, "{\"name\":\"a\"}\n{\"name\":\"b\"}\n", rec.Body.String())
}

func TestStreamJSONErrors(t *testing.T) {
	boom := errors.New("store down")

	t.Run("before first item", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var seq iter.Seq2[item, error] = func(yield func(item, error) bool) { yield(item{}, boom) }
		_, err := StreamJSON(rec, req, http.StatusOK, seq)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrStreamInterrupted)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("mid stream", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		var seq iter.Seq2[item, error] = func(yield func(item, error) bool) {
			if !yield(item{"a"}, nil) {
				return
			}
			yield(item{}, boom)
		}
		n, err := StreamJSON(rec, req, http.StatusOK, seq)
		assert.Equal(t, 1, n)
		assert.ErrorIs(t, err, ErrStreamInterrupted)
		assert.ErrorIs(t, err, boom)
	})
}

func TestWantsNDJSON(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", false},
		{"application/x-ndjson", true},
		{"application/stream+json", true},
		{"text/html, application/x-ndjson;q=0.9", true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", tt.accept)
		assert.Equal(t, tt.want, WantsNDJSON(req), tt.accept)
	}
}
