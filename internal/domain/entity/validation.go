package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for feed URLs.
const maxURLLength = 2048

// ValidateURL checks that rawURL is a well-formed http or https URL with a
// host. It performs no network access; reachability is not checked.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: fmt.Sprintf("invalid URL: %v", err)}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ValidateFolderName rejects empty folder names and the reserved default name.
func ValidateFolderName(name, defaultName string) error {
	if name == "" {
		return &ValidationError{Field: "folder", Message: "is required"}
	}
	if name == defaultName {
		return &ValidationError{Field: "folder", Message: fmt.Sprintf("%q is reserved", defaultName)}
	}
	return nil
}
