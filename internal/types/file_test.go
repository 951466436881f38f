package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestUploadedFileDecodesNumericUploadTime(t *testing.T) {
	var file UploadedFile
	if err := json.Unmarshal([]byte(`{"fileId":"f1","filename":"report.xlsx","size":12,"uploadedAt":1700000000.5}`), &file); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := time.Unix(1700000000, 500000000).UTC()
	if !file.UploadedAt.Time.Equal(want) {
		t.Fatalf("unexpected upload time: %v", file.UploadedAt.Time)
	}
	out, err := json.Marshal(file.UploadedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(out) != "1700000000.5" {
		t.Fatalf("expected numeric upload time to round trip, got %s", out)
	}
}

func TestUploadedFileDecodesStringUploadTime(t *testing.T) {
	var file UploadedFile
	if err := json.Unmarshal([]byte(`{"fileId":"d1","uploadedAt":"2024-03-01T10:20:30Z"}`), &file); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !file.UploadedAt.Time.Equal(time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)) {
		t.Fatalf("unexpected upload time: %v", file.UploadedAt.Time)
	}
	if file.UploadedAt.Raw != "2024-03-01T10:20:30Z" {
		t.Fatalf("unexpected raw value: %q", file.UploadedAt.Raw)
	}
}

func TestUploadedFileMissingUploadTimeIsZero(t *testing.T) {
	var file UploadedFile
	if err := json.Unmarshal([]byte(`{"fileId":"f1","uploadedAt":null}`), &file); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !file.UploadedAt.IsZero() {
		t.Fatalf("expected zero upload time, got %#v", file.UploadedAt)
	}
	if got := (UploadedFile{SheetNames: []string{"Sheet1", "Sheet2"}}).DefaultSheet(); got != "Sheet1" {
		t.Fatalf("unexpected default sheet: %q", got)
	}
}
