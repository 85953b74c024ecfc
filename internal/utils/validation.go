package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Compiled regular expressions for validation
var (
	// Alphanumeric, underscore, hyphen, dot and colon, as in GTFS stop IDs ("StopArea:87113001")
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateQuery validates search query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if utf8.RuneCountInString(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if !utf8.ValidString(query) {
		return errors.New("query is not valid UTF-8")
	}

	// Check for dangerous characters that could indicate injection attempts
	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}

// ValidateStationQueries validates the raw origin and destination strings of a trip
// request and returns them sanitized, with field errors keyed by parameter name.
func ValidateStationQueries(params map[string]string) (map[string]string, map[string][]string) {
	clean := make(map[string]string, len(params))
	fieldErrors := make(map[string][]string)
	for key, value := range params {
		sanitized, err := ValidateAndSanitizeQuery(value)
		if err != nil {
			fieldErrors[key] = append(fieldErrors[key], err.Error())
			continue
		}
		clean[key] = sanitized
	}
	return clean, fieldErrors
}
