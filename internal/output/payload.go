package output

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"clipbridge/pkg/cliptypes"
)

// PayloadView is the structured form of a clipboard payload. Image bytes
// are reported by size only.
type PayloadView struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Paths     []string `json:"paths,omitempty" yaml:"paths,omitempty"`
	ImageSize int      `json:"image_size,omitempty" yaml:"image_size,omitempty"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// NewPayloadView summarizes p.
func NewPayloadView(p cliptypes.Payload) PayloadView {
	return PayloadView{
		Kind:      p.Kind.String(),
		Paths:     p.Paths,
		ImageSize: len(p.Image),
		Text:      p.Text,
	}
}

// Payload prints what was read back from the clipboard after a set.
func (p *Printer) Payload(payload cliptypes.Payload) error {
	if p.Structured() {
		return p.Record(NewPayloadView(payload))
	}

	switch payload.Kind {
	case cliptypes.KindPaths:
		p.Success(fmt.Sprintf("%d %s on clipboard", len(payload.Paths), plural(len(payload.Paths), "file", "files")))
		for _, path := range payload.Paths {
			p.Path(path)
		}
	case cliptypes.KindImage:
		p.Success(fmt.Sprintf("image on clipboard (%s %s)", humanize.Bytes(uint64(len(payload.Image))), cliptypes.FormatDIB))
	case cliptypes.KindText:
		p.Success("text on clipboard")
		p.Println(payload.Text)
	default:
		p.Info("nothing to set")
	}
	return p.Err()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
