package port

// Annotator overlays a fingerprint prefix onto an image. It never fails:
// on any decode or render problem the original bytes come back unchanged.
type Annotator interface {
	Annotate(data []byte, label string) []byte
}
