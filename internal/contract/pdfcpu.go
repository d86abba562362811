package contract

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFStamper implements Stamper with pdfcpu text watermarks. Each stamp is a
// transparent on-top layer anchored to the page's bottom-left corner, which
// matches the slot registry's coordinate system.
type PDFStamper struct{}

func NewPDFStamper() *PDFStamper {
	return &PDFStamper{}
}

func (PDFStamper) PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

func (PDFStamper) StampText(path string, stamps []Stamp) error {
	for _, s := range stamps {
		if s.Text == "" {
			// Blank slot: nothing to compose, position stays reserved.
			continue
		}
		font := s.Font
		if font == "" {
			font = "Helvetica"
		}
		size := s.FontSize
		if size <= 0 {
			size = 9
		}
		desc := fmt.Sprintf("fontname:%s, points:%d, pos:bl, off:%.0f %.0f, scale:1 abs, rot:0, opacity:1",
			font, size, s.X, s.Y)
		wm, err := api.TextWatermark(s.Text, desc, true, false, types.POINTS)
		if err != nil {
			return fmt.Errorf("build stamp for page %d: %w", s.Page, err)
		}
		pages := []string{strconv.Itoa(s.Page)}
		if err := api.AddWatermarksFile(path, "", pages, wm, nil); err != nil {
			return fmt.Errorf("apply stamp to page %d: %w", s.Page, err)
		}
	}
	return nil
}
