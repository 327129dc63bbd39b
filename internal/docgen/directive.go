package docgen

// Attach creates a default configuration, lets init populate it and
// registers it for project. It may be called any number of times per project.
func Attach(store *Store, project ProjectID, init func(*Configuration)) {
	cfg := NewConfiguration()
	if init != nil {
		init(cfg)
	}
	store.Add(project, cfg)
}
