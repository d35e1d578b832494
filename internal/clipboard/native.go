package clipboard

import "clipbridge/pkg/cliptypes"

// Native is the OS clipboard service. Data is exchanged in the exact byte
// layout of each format: NUL-terminated UTF-16LE for text, a DROPFILES
// payload for file lists and a header-less bitmap for images.
//
// Every method except Open must be called between Open and Close.
type Native interface {
	Open() error
	Close() error
	Empty() error
	SetData(format cliptypes.Format, data []byte) error
	Data(format cliptypes.Format) ([]byte, error)
	IsAvailable(format cliptypes.Format) bool
}
