package capture

import (
	"errors"
	"fmt"
	"testing"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/common"
)

func TestRegisterClassifiesByMIMEAndExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		wantKind constants.AttachmentKind
	}{
		{"jpeg by mime", "photo.bin", "image/jpeg", constants.KindImage},
		{"png by extension", "shot.png", "", constants.KindImage},
		{"pdf by mime", "file", "application/pdf", constants.KindDocument},
		{"xlsx by extension", "budget.xlsx", "", constants.KindDocument},
		{"docx by extension", "letter.docx", "application/octet-stream", constants.KindDocument},
		{"txt by mime", "note", "text/plain", constants.KindDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(nil)
			att, err := reg.Register(tt.fileName, tt.mimeType, []byte("data"))
			if err != nil {
				t.Fatalf("Register: %v", err)
			}
			if att.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", att.Kind, tt.wantKind)
			}
		})
	}
}

func TestRegisterUnsupported(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Register("malware.exe", "application/x-msdownload", []byte("x"))
	if !errors.Is(err, common.ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}

	// Unsupported files must not count toward the limit.
	if reg.Len() != 0 {
		t.Errorf("Len = %d after rejected register, want 0", reg.Len())
	}
}

func TestRegisterLimitExceeded(t *testing.T) {
	reg := NewRegistry(nil)
	for i := 0; i < constants.MaxAttachments; i++ {
		if _, err := reg.Register(fmt.Sprintf("p%d.jpg", i), "image/jpeg", []byte("x")); err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}

	_, err := reg.Register("overflow.jpg", "image/jpeg", []byte("x"))
	if !errors.Is(err, common.ErrLimitExceeded) {
		t.Fatalf("err = %v, want ErrLimitExceeded", err)
	}

	// Existing attachments keep their order and indices.
	atts := reg.List()
	if len(atts) != constants.MaxAttachments {
		t.Fatalf("Len = %d, want %d", len(atts), constants.MaxAttachments)
	}
	for i, att := range atts {
		if att.InputIndex != i {
			t.Errorf("attachment %d has InputIndex %d", i, att.InputIndex)
		}
	}
}

func TestRemoveKeepsIndicesStable(t *testing.T) {
	reg := NewRegistry(nil)
	for i := 0; i < 3; i++ {
		if _, err := reg.Register(fmt.Sprintf("p%d.jpg", i), "image/jpeg", []byte("x")); err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}

	if !reg.Remove(1) {
		t.Fatal("Remove(1) = false")
	}
	if reg.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}

	atts := reg.List()
	if len(atts) != 2 {
		t.Fatalf("Len = %d, want 2", len(atts))
	}
	if atts[0].InputIndex != 0 || atts[1].InputIndex != 2 {
		t.Errorf("indices = %d,%d, want 0,2", atts[0].InputIndex, atts[1].InputIndex)
	}

	// Freed indices are not reused.
	att, err := reg.Register("p3.jpg", "image/jpeg", []byte("x"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if att.InputIndex != 3 {
		t.Errorf("new InputIndex = %d, want 3", att.InputIndex)
	}
}

func TestSetURL(t *testing.T) {
	reg := NewRegistry(nil)
	att, err := reg.Register("p.jpg", "image/jpeg", []byte("x"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if att.URL == "" {
		t.Error("default URL is empty")
	}
	if !reg.SetURL(att.InputIndex, "https://cdn.example/p.jpg") {
		t.Fatal("SetURL = false")
	}
	if got := reg.List()[0].URL; got != "https://cdn.example/p.jpg" {
		t.Errorf("URL = %q", got)
	}
}
