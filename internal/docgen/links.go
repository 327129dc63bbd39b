package docgen

// LinkDefinition is the generator-facing form of a SourceLink.
type LinkDefinition struct {
	Path       string
	URL        string
	LineSuffix *string
}

// ResolveSourceLinks converts source links into generator link definitions.
// Order is preserved because generators apply the first matching directory.
func ResolveSourceLinks(links []SourceLink) []LinkDefinition {
	defs := make([]LinkDefinition, 0, len(links))
	for _, l := range links {
		l = l.clone()
		defs = append(defs, LinkDefinition{Path: l.Dir, URL: l.URL, LineSuffix: l.URLSuffix})
	}
	return defs
}
