package tilescan

// Document is an in-memory byte sequence with the path it was loaded from.
// The engine never mutates Data.
type Document struct {
	Path string
	Data []byte
}
