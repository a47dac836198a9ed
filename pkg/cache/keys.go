package cache

// Keyer builds cache keys.
type Keyer interface {
	// ImageSizeKey is the key for the probed dimensions of src.
	ImageSizeKey(src string) string

	// ArtifactKey is the key for a document rendered with opts.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageSizeKey implements Keyer.
func (DefaultKeyer) ImageSizeKey(src string) string {
	return hashKey("imagesize", src)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

var _ Keyer = DefaultKeyer{}
