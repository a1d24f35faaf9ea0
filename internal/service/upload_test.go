package service

import "testing"

func TestCheckUploadPolicy(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  bool
	}{
		{"pdf", "application/pdf", 1024, false},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 2048, false},
		{"png", "image/png", 4096, false},
		{"at the size cap", "application/pdf", MaxUploadSize, false},
		{"over the size cap", "application/pdf", MaxUploadSize + 1, true},
		{"empty file", "application/pdf", 0, true},
		{"zip archive", "application/zip", 1024, true},
		{"executable", "application/x-msdownload", 1024, true},
		{"no mime type", "", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUploadPolicy(tt.mimeType, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckUploadPolicy(%q, %d) error = %v, wantErr %v", tt.mimeType, tt.size, err, tt.wantErr)
			}
		})
	}
}
