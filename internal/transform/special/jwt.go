package special

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/transmute/internal/transform"
)

// JWTDecode renders the header and payload of a JWT as indented JSON. The
// signature is not verified, only displayed.
func JWTDecode(input string, _ transform.Options) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "Bearer "))

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", transform.InputError("a JWT has 3 dot-separated parts, got %d", len(parts))
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return "", transform.InputError("decoding JWT header: %v", err)
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return "", transform.InputError("decoding JWT payload: %v", err)
	}

	sig := parts[2]
	if len(sig) > 20 {
		sig = sig[:20] + "..."
	}

	return fmt.Sprintf("JWT Decoded:\n\nHeader:\n%s\n\nPayload:\n%s\n\nSignature: %s",
		header, payload, sig), nil
}

// decodeSegment base64url-decodes one JWT part and reindents the JSON.
func decodeSegment(seg string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "="))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JWTEncode builds an unsigned JWT from a JSON payload. The header is
// always {"alg":"none","typ":"JWT"} and the signature part is empty.
func JWTEncode(input string, _ transform.Options) (string, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(input)); err != nil {
		return "", transform.InputError("JWT payload must be valid JSON: %v", err)
	}

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString(compact.Bytes())
	return header + "." + payload + ".", nil
}
