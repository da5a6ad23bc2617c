package utils

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"mime"
	"net/http"
	"strings"
)

var (
	// ErrMalformedBody marks request bodies that could not be decoded.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrStreamInterrupted is returned once part of a streamed response has
	// been written and the status can no longer be changed.
	ErrStreamInterrupted = errors.New("response stream interrupted")
)

const (
	contentTypeJSON   = "application/json"
	contentTypeNDJSON = "application/x-ndjson"
)

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

// DecodeJSONStream lazily decodes body as a JSON array of T, or as a sequence
// of whitespace separated JSON objects (one object and NDJSON included). An
// empty body yields nothing.
func DecodeJSONStream[T any](body io.Reader) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		br := bufio.NewReader(body)
		first, err := peekNonSpace(br)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, malformed(err))
			return
		}

		dec := json.NewDecoder(br)
		if first == '[' {
			if _, err := dec.Token(); err != nil {
				yield(nil, malformed(err))
				return
			}
			for dec.More() {
				v, err := decodeElement[T](dec)
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(v, nil) {
					return
				}
			}
			if _, err := dec.Token(); err != nil {
				yield(nil, malformed(err))
				return
			}
			if tok, err := dec.Token(); err == nil {
				yield(nil, malformed(fmt.Errorf("unexpected %v after array", tok)))
			} else if !errors.Is(err, io.EOF) {
				yield(nil, malformed(err))
			}
			return
		}

		for {
			v, err := decodeElement[T](dec)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// decodeElement decodes the next value and rejects a JSON null. io.EOF is
// returned unwrapped.
func decodeElement[T any](dec *json.Decoder) (*T, error) {
	var v *T
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, malformed(err)
	}
	if v == nil {
		return nil, malformed(errors.New("null element"))
	}
	return v, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := br.ReadByte(); err != nil {
				return 0, err
			}
		default:
			return b[0], nil
		}
	}
}

// WantsNDJSON reports whether the client asked for newline-delimited JSON.
func WantsNDJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == contentTypeNDJSON || mediaType == "application/stream+json" {
			return true
		}
	}
	return false
}

// StreamJSON writes seq as a JSON array, or as NDJSON when the client asked for
// it, flushing after every element. An error raised before anything was
// written is returned as is so the caller can still send an error response;
// later errors are wrapped in ErrStreamInterrupted.
func StreamJSON[T any](w http.ResponseWriter, r *http.Request, status int, seq iter.Seq2[T, error]) (int, error) {
	ndjson := WantsNDJSON(r)
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	count := 0
	started := false
	start := func() {
		started = true
		if ndjson {
			w.Header().Set("Content-Type", contentTypeNDJSON)
		} else {
			w.Header().Set("Content-Type", contentTypeJSON)
		}
		w.WriteHeader(status)
		if !ndjson {
			_, _ = io.WriteString(w, "[")
		}
	}

	for item, err := range seq {
		if err != nil {
			if !started {
				return 0, err
			}
			return count, fmt.Errorf("%w after %d items: %w", ErrStreamInterrupted, count, err)
		}
		if !started {
			start()
		} else if !ndjson {
			_, _ = io.WriteString(w, ",")
		}
		if err := enc.Encode(item); err != nil {
			return count, fmt.Errorf("%w: %w", ErrStreamInterrupted, err)
		}
		count++
		if flusher != nil {
			flusher.Flush()
		}
	}

	if !started {
		start()
	}
	if !ndjson {
		_, _ = io.WriteString(w, "]")
	}
	return count, nil
}
