package installer

// Request selects an install strategy. It is either FromRegistry or FromURL.
type Request interface {
	language() string
}

// FromRegistry installs the registry package for Language through the
// package manager.
type FromRegistry struct {
	Language string
}

// FromURL downloads the runtime for Language from URL. When SHA256 is set the
// download must match it (hex encoded) before it replaces the artifact.
type FromURL struct {
	Language string
	URL      string
	SHA256   string
}

func (r FromRegistry) language() string { return r.Language }
func (r FromURL) language() string      { return r.Language }

// Language returns the language a request installs.
func Language(req Request) string {
	return req.language()
}
