package proofout

// Config selects where proofs are written. When Bucket is set proofs are
// uploaded to the object store, otherwise they are written under Dir.
type Config struct {
	// Dir is the local directory proofs are written to
	Dir string `mapstructure:"Dir"`
	// Bucket is the object store bucket proofs are uploaded to
	Bucket string `mapstructure:"Bucket"`
}
