package entity

// Source is a single feed subscription.
// FolderName is a back-reference stamped by the owning Folder; it does not
// confer ownership.
type Source struct {
	URL        string
	Name       string
	FolderName string
}

// NewSource returns a source for url with an optional display name.
func NewSource(url, name string) *Source {
	return &Source{URL: url, Name: name}
}

// Validate checks that the source carries a locator.
func (s *Source) Validate() error {
	if s.URL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}
	return nil
}

// Named reports whether the source carries a real name. A name equal to the
// URL is the placeholder written for unnamed sources and does not count.
func (s *Source) Named() bool {
	return s.Name != "" && s.Name != s.URL
}

// DisplayName returns Name, or URL when the source has not been named yet.
func (s *Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}
