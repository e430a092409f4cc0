package ports

// Frontend is a transport that feeds inputs to the detection service
type Frontend interface {
	// Start starts serving
	Start() error

	// Stop stops serving
	Stop() error
}
