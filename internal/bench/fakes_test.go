package bench

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/thingstodo/internal/todo"
)

// plainCodec writes "name\tbool\n" lines in name order.
type plainCodec struct{}

func (plainCodec) Name() string { return "plain" }
func (plainCodec) Ext() string  { return "txt" }

func (plainCodec) Encode(items map[string]bool) ([]byte, error) {
	names := make([]string, 0, len(items))
	for n := range items {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, n := range names {
		fmt.Fprintf(&buf, "%s\t%t\n", n, items[n])
	}
	return buf.Bytes(), nil
}

func (plainCodec) Decode(data []byte) (map[string]bool, error) {
	out := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		name, val, ok := strings.Cut(sc.Text(), "\t")
		if !ok {
			return nil, errors.New("missing tab")
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, err
		}
		out[name] = b
	}
	return out, sc.Err()
}

// lossyCodec forgets every status.
type lossyCodec struct{}

func (lossyCodec) Name() string { return "lossy" }
func (lossyCodec) Ext() string  { return "lossy" }

func (lossyCodec) Encode(items map[string]bool) ([]byte, error) {
	names := make([]string, 0, len(items))
	for n := range items {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, n := range names {
		buf.WriteString(n + "\n")
	}
	return buf.Bytes(), nil
}

func (lossyCodec) Decode(data []byte) (map[string]bool, error) {
	out := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if line != "" {
			out[line] = false
		}
	}
	return out, nil
}

// brokenCodec cannot encode.
type brokenCodec struct{}

func (brokenCodec) Name() string                           { return "broken" }
func (brokenCodec) Ext() string                            { return "broken" }
func (brokenCodec) Encode(map[string]bool) ([]byte, error) { return nil, errors.New("boom") }
func (brokenCodec) Decode([]byte) (map[string]bool, error) { return nil, errors.New("unreachable") }

// garbledCodec encodes fine but cannot decode.
type garbledCodec struct{}

func (garbledCodec) Name() string                           { return "garbled" }
func (garbledCodec) Ext() string                            { return "garbled" }
func (garbledCodec) Encode(map[string]bool) ([]byte, error) { return []byte("??"), nil }
func (garbledCodec) Decode([]byte) (map[string]bool, error) { return nil, errors.New("garbled input") }

func sampleStore(t *testing.T) *todo.Store {
	t.Helper()
	s, err := todo.FromMap(map[string]bool{"buy milk": false, "walk dog": true})
	require.NoError(t, err)
	return s
}
