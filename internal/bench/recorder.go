package bench

// Recorder receives workload signals from owner goroutines.
// Implementations must be safe for concurrent use: every owner calls it.
type Recorder interface {
	Hit()
	Miss()
	// Write records a Put; replaced reports whether the key was resident.
	Write(replaced bool)
	// Size reports the resident entry count of one owner's cache.
	Size(owner, entries int)
}

// NoopRecorder is a drop-in Recorder that does nothing.
// It is the default when no metrics backend is configured.
type NoopRecorder struct{}

func (NoopRecorder) Hit()          {}
func (NoopRecorder) Miss()         {}
func (NoopRecorder) Write(bool)    {}
func (NoopRecorder) Size(int, int) {}

// Ensure NoopRecorder implements the Recorder interface at compile time.
var _ Recorder = NoopRecorder{}
