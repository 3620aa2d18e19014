package document

// Option configures a Document during creation.
type Option func(*Document)

// WithCreator sets the author recorded in the core properties.
func WithCreator(name string) Option {
	return func(d *Document) {
		d.core.Creator = name
		d.core.LastModifiedBy = name
	}
}

// WithTitle sets the document title recorded in the core properties.
func WithTitle(title string) Option {
	return func(d *Document) { d.core.Title = title }
}

// WithDescription sets the document description recorded in the core
// properties.
func WithDescription(desc string) Option {
	return func(d *Document) { d.core.Description = desc }
}
