package pagination

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const pageTokenVersion = "p1"

// PageToken is what the BFF hands out for "load more": the view it was issued for and the page to fetch.
type PageToken struct {
	Fingerprint string
	Generation  uint64
	Page        int
}

// Fingerprint derives a short, stable identifier of a view from its variables (filters, sort, limit).
func Fingerprint(vars any) (string, error) {
	raw, err := json.Marshal(vars)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint view: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:12]), nil
}

// EncodePageToken creates an opaque token for the next page of a view.
func EncodePageToken(fingerprint string, generation uint64, page int) string {
	return EncodeMultiFieldToken(pageTokenVersion, fingerprint, strconv.FormatUint(generation, 10), strconv.Itoa(page))
}

// DecodePageToken parses a token created by EncodePageToken.
func DecodePageToken(token string) (PageToken, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return PageToken{}, err
	}
	if len(parts) != 4 || parts[0] != pageTokenVersion {
		return PageToken{}, fmt.Errorf("invalid pagination token format (fields)")
	}
	generation, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return PageToken{}, fmt.Errorf("invalid pagination token format (generation parse): %w", err)
	}
	page, err := strconv.Atoi(parts[3])
	if err != nil || page < 1 {
		return PageToken{}, fmt.Errorf("invalid pagination token format (page parse)")
	}
	return PageToken{Fingerprint: parts[1], Generation: generation, Page: page}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
