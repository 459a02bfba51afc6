package plantuml

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
)

// The server reads payloads in a shuffled base64 alphabet. The two strings
// line up position for position, so the substitution is a 64-entry
// permutation in each direction. Base64 padding ('=') passes through
// untouched.
const (
	standardAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	payloadAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"
)

var (
	encodeTable = buildTable(standardAlphabet, payloadAlphabet)
	decodeTable = buildTable(payloadAlphabet, standardAlphabet)
)

func buildTable(from, to string) [128]byte {
	var table [128]byte
	for i := range table {
		table[i] = byte(i)
	}
	for i := 0; i < len(from); i++ {
		table[from[i]] = to[i]
	}
	return table
}

// Encode transforms diagram text into the URL-safe payload the PlantUML
// server expects. Identical input always yields an identical payload; the
// output depends only on the input bytes.
func Encode(text string) string {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		// Only possible with an out-of-range compression level.
		panic(err)
	}
	// Writes to a bytes.Buffer cannot fail.
	_, _ = w.Write([]byte(text))
	_ = w.Close()

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return translate(encoded, &encodeTable)
}

// Decode reverses Encode: the substitution is mapped back to the standard
// base64 alphabet, the result base64-decoded, and the raw DEFLATE stream
// inflated to the original text.
func Decode(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(translate(payload, &decodeTable))
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("inflate payload: %w", err)
	}
	return string(text), nil
}

func translate(s string, table *[128]byte) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 128 {
			out[i] = table[c]
		} else {
			out[i] = c
		}
	}
	return string(out)
}
