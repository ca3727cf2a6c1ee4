package bomupload

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"rsc.io/pdf"
)

// TextExtractor turns an uploaded document into raw text for the line
// parser. Real OCR engines plug in behind the same interface.
type TextExtractor interface {
	Extract(data []byte) (string, error)
}

// sampleChallanText stands in for OCR output on image uploads until a
// real engine is wired up. It exercises the same heuristic parser the
// real text would go through.
const sampleChallanText = `Item Name
1. Blue Jeans Size 32 - Qty 10 - Rs.850
2. Cotton Kurti Red Size M - Qty 15 - Rs.450
3. White Formal Shirt Size L - Qty 8 - Rs.600
4. Black Leggings Free Size - Qty 20 - Rs.250
GST 5% extra as applicable
Total Rs.25050`

// SimulatedExtractor fakes an OCR pass: a short fixed delay, then the
// sample challan text regardless of input.
type SimulatedExtractor struct {
	Delay time.Duration
}

func (s SimulatedExtractor) Extract(_ []byte) (string, error) {
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	return sampleChallanText, nil
}

// PDFExtractor pulls the embedded text layer out of a PDF. Scanned
// documents carry no text layer; those fall back to the simulated
// sample so the upload flow still produces reviewable rows.
type PDFExtractor struct {
	Fallback TextExtractor
}

func (p PDFExtractor) Extract(data []byte) (string, error) {
	text, err := extractPDFText(data)
	if err != nil || strings.TrimSpace(text) == "" {
		if p.Fallback != nil {
			return p.Fallback.Extract(data)
		}
		if err != nil {
			return "", err
		}
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return text, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// rsc.io/pdf panics on malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		var lastY float64
		for _, t := range page.Content().Text {
			if sb.Len() > 0 {
				if t.Y != lastY {
					sb.WriteString("\n")
				} else {
					sb.WriteString(" ")
				}
			}
			sb.WriteString(t.S)
			lastY = t.Y
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
