package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// UploadedFile is a stored spreadsheet or document. SheetNames is only
// populated by the spreadsheet upload and info endpoints; FileType only by the
// document listing.
type UploadedFile struct {
	FileID     string   `json:"fileId"`
	Filename   string   `json:"filename"`
	FileType   string   `json:"fileType,omitempty"`
	Size       int64    `json:"size,omitempty"`
	UploadedAt FileTime `json:"uploadedAt,omitzero"`
	SheetNames []string `json:"sheetNames,omitempty"`
}

func (f UploadedFile) DefaultSheet() string {
	if len(f.SheetNames) == 0 {
		return ""
	}
	return f.SheetNames[0]
}

type DocumentUpload struct {
	FileID   string `json:"fileId"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// FileTime is an upload time. The spreadsheet listing sends Unix seconds as a
// JSON number; other routes send strings.
type FileTime struct {
	Time    time.Time
	Raw     string
	numeric bool
}

func (t FileTime) IsZero() bool {
	return t.Raw == "" && t.Time.IsZero()
}

func (t *FileTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = FileTime{}
		return nil
	}
	if data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		parsed, _ := ParseTimestamp(raw)
		*t = FileTime{Time: parsed, Raw: raw}
		return nil
	}
	seconds, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	whole, frac := math.Modf(seconds)
	*t = FileTime{
		Time:    time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC(),
		Raw:     string(data),
		numeric: true,
	}
	return nil
}

func (t FileTime) MarshalJSON() ([]byte, error) {
	if t.numeric {
		return []byte(t.Raw), nil
	}
	if t.Raw == "" && !t.Time.IsZero() {
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	}
	return json.Marshal(t.Raw)
}
