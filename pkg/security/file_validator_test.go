package security_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"go-jobboard-web/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

var pdfHead = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

func TestValidateCV(t *testing.T) {
	const mb = 1024 * 1024

	tests := []struct {
		name     string
		declared string
		size     int64
		head     []byte
		wantErr  error
	}{
		{"PDF within limit", "application/pdf", 2 * mb, pdfHead, nil},
		{"Word doc", "application/msword", 100, []byte("x"), nil},
		{"Docx", docxType, 100, []byte("x"), nil},
		{"Declared type with parameters", "application/pdf; charset=binary", 100, pdfHead, nil},
		{"Exactly 5MB", "application/pdf", 5 * mb, pdfHead, nil},
		{"Image is rejected", "image/png", 100, []byte("\x89PNG\r\n\x1a\n"), security.ErrCVType},
		{"Plain text is rejected", "text/plain", 100, []byte("hello"), security.ErrCVType},
		{"Too large", "application/pdf", 6 * mb, pdfHead, security.ErrCVSize},
		{"Wrong type and too large reports the type", "image/png", 6 * mb, []byte("x"), security.ErrCVType},
		{"Octet-stream falls back to sniffing", "application/octet-stream", 100, pdfHead, nil},
		{"Missing type falls back to sniffing", "", 100, pdfHead, nil},
		{"Sniffed non-document", "", 100, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), security.ErrCVType},
		{"Nothing uploaded", "", 0, nil, security.ErrCVNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := security.ValidateCV(tt.declared, tt.size, tt.head)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateCVMessages(t *testing.T) {
	assert.Equal(t, "Please upload a PDF or Word document", security.ErrCVType.Error())
	assert.Equal(t, "File size must not exceed 5MB", security.ErrCVSize.Error())
}

func TestDetectMIMEDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("<xml/>"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	head := buf.Bytes()
	if len(head) > security.SniffLength {
		head = head[:security.SniffLength]
	}
	assert.Equal(t, docxType, security.DetectMIME(head))
	assert.NoError(t, security.ValidateCV("", int64(buf.Len()), head))
}

func TestIsAllowedCVType(t *testing.T) {
	assert.True(t, security.IsAllowedCVType("application/pdf"))
	assert.True(t, security.IsAllowedCVType(" Application/MSWord "))
	assert.False(t, security.IsAllowedCVType("application/zip"))
	assert.False(t, security.IsAllowedCVType(""))
}
