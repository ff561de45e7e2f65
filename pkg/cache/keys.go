package cache

// Keyer derives cache keys. Implementations must be deterministic: equal
// inputs give equal keys.
type Keyer interface {
	// ArtifactKey is the key of one rendered artifact of a job.
	ArtifactKey(jobHash string, opts ArtifactKeyOpts) string
	// ReportKey is the key of the build statistics of a job.
	ReportKey(jobHash string) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Offset    [3]int `json:"offset,omitempty"`
	Constants bool   `json:"constants,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the job hash together with the render options.
func (DefaultKeyer) ArtifactKey(jobHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", jobHash, opts)
}

// ReportKey hashes the job hash.
func (DefaultKeyer) ReportKey(jobHash string) string {
	return hashKey("report", jobHash)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
