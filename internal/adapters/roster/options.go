package roster

// Option applies a configuration option to the FileSource.
type Option func(*FileSource)

// WithMaxBytes caps the file size read by the source.
func WithMaxBytes(n int64) Option {
	return func(s *FileSource) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}
