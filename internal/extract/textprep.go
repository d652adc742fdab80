package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/journal-capture/internal/capture"
)

// TextPrep is the local text pass over a document before the narrative
// service sees it. Prep is best-effort: the service still receives the raw
// bytes when prep yields nothing.
type TextPrep struct {
	Text   string
	Method string // "pdf-text" | "sheet-cells" | "plain"
	Pages  int
}

// PrepareText extracts whatever text the document format exposes locally.
func PrepareText(att *capture.Attachment) (TextPrep, error) {
	switch att.Format {
	case "pdf":
		return pdfText(att.Data)
	case "xlsx", "xls":
		return sheetText(att.Data)
	case "txt", "md", "csv":
		return TextPrep{Text: string(att.Data), Method: "plain", Pages: 1}, nil
	default:
		// docx and friends go to the service as raw bytes
		return TextPrep{}, nil
	}
}

func pdfText(data []byte) (TextPrep, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return TextPrep{}, fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return TextPrep{}, fmt.Errorf("pdf text layer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return TextPrep{}, fmt.Errorf("read pdf text: %w", err)
	}

	return TextPrep{
		Text:   strings.TrimSpace(buf.String()),
		Method: "pdf-text",
		Pages:  r.NumPage(),
	}, nil
}

func sheetText(data []byte) (TextPrep, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return TextPrep{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var sb strings.Builder
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return TextPrep{}, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(sheet)
		sb.WriteString(":\n")
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteString("\n")
		}
	}

	return TextPrep{
		Text:   strings.TrimSpace(sb.String()),
		Method: "sheet-cells",
		Pages:  len(sheets),
	}, nil
}
