package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"sheetchat/internal/client"
	"sheetchat/internal/logging"
	"sheetchat/internal/types"
)

// FileListController lists the stored spreadsheets or documents. Selecting a
// file describes it first so the chat view receives its sheet names.
type FileListController struct {
	backend     FileBackend
	logger      logging.Logger
	files       []types.UploadedFile
	selected    int
	seq         int
	describeSeq int
	loading     bool
	busy        bool
	err         string
	status      string
}

func NewFileListController(backend FileBackend, logger logging.Logger) *FileListController {
	if logger == nil {
		logger = logging.Nop()
	}
	return &FileListController{
		backend: backend,
		logger:  logger.With(logging.F("files", backend.Kind().String())),
	}
}

func (c *FileListController) Kind() SourceKind {
	return c.backend.Kind()
}

func (c *FileListController) Refresh() tea.Cmd {
	c.seq++
	c.loading = true
	return fetchFilesCmd(c.backend, c.seq)
}

func (c *FileListController) Upload(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	if path == "" || c.busy {
		return nil
	}
	c.busy = true
	c.err = ""
	c.status = "uploading " + path
	return uploadFileCmd(c.backend, path)
}

// Describe fetches the selected file. The newest request wins.
func (c *FileListController) Describe() tea.Cmd {
	file, ok := c.Selected()
	if !ok {
		return nil
	}
	c.describeSeq++
	c.err = ""
	return describeFileCmd(c.backend, c.describeSeq, file)
}

// Delete must only be called after the user confirmed the delete. The server
// removes the file's sessions along with it.
func (c *FileListController) Delete(fileID string) tea.Cmd {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil
	}
	c.err = ""
	return deleteFileCmd(c.backend, fileID)
}

// FileEvent reports a completed file operation the owning model reacts to.
type FileEvent struct {
	Selected *types.UploadedFile
	Deleted  string
}

func (c *FileListController) Update(msg tea.Msg) (bool, FileEvent, tea.Cmd) {
	switch msg := msg.(type) {
	case filesListedMsg:
		if msg.kind != c.Kind() {
			return false, FileEvent{}, nil
		}
		if msg.seq != c.seq {
			return true, FileEvent{}, nil
		}
		c.loading = false
		if msg.err != nil {
			c.err = client.ErrorMessage(msg.err, "Load files failed")
			return true, FileEvent{}, nil
		}
		c.replace(msg.files)
		return true, FileEvent{}, nil
	case fileUploadedMsg:
		if msg.kind != c.Kind() {
			return false, FileEvent{}, nil
		}
		c.busy = false
		if msg.err != nil || msg.file == nil {
			c.status = ""
			c.err = client.ErrorMessage(msg.err, "Upload failed")
			c.logger.Warn("upload failed", logging.F("error", msg.err))
			return true, FileEvent{}, nil
		}
		c.status = "uploaded " + msg.file.Filename
		c.logger.Info("file uploaded", logging.F("file_id", msg.file.FileID))
		file := *msg.file
		return true, FileEvent{Selected: &file}, c.Refresh()
	case fileDescribedMsg:
		if msg.kind != c.Kind() {
			return false, FileEvent{}, nil
		}
		if msg.seq != c.describeSeq {
			return true, FileEvent{}, nil
		}
		if msg.err != nil || msg.file == nil {
			c.err = client.ErrorMessage(msg.err, "Load file failed")
			return true, FileEvent{}, nil
		}
		file := *msg.file
		return true, FileEvent{Selected: &file}, nil
	case fileDeletedMsg:
		if msg.kind != c.Kind() {
			return false, FileEvent{}, nil
		}
		if msg.err != nil {
			c.err = client.ErrorMessage(msg.err, "Delete file failed")
			c.logger.Warn("delete file failed", logging.F("file_id", msg.fileID), logging.F("error", msg.err))
			return true, FileEvent{}, nil
		}
		c.remove(msg.fileID)
		c.status = "deleted"
		c.logger.Info("file deleted", logging.F("file_id", msg.fileID))
		return true, FileEvent{Deleted: msg.fileID}, c.Refresh()
	}
	return false, FileEvent{}, nil
}

func (c *FileListController) replace(files []types.UploadedFile) {
	selectedID := ""
	if current, ok := c.Selected(); ok {
		selectedID = current.FileID
	}
	c.files = append([]types.UploadedFile(nil), files...)
	c.err = ""
	c.selected = 0
	for i, file := range c.files {
		if file.FileID == selectedID {
			c.selected = i
			break
		}
	}
}

func (c *FileListController) remove(fileID string) {
	for i, file := range c.files {
		if file.FileID != fileID {
			continue
		}
		c.files = append(c.files[:i], c.files[i+1:]...)
		if c.selected >= len(c.files) {
			c.selected = max(0, len(c.files)-1)
		}
		return
	}
}

func (c *FileListController) Move(delta int) {
	if len(c.files) == 0 {
		c.selected = 0
		return
	}
	c.selected = clamp(c.selected+delta, 0, len(c.files)-1)
}

func (c *FileListController) Selected() (types.UploadedFile, bool) {
	if c.selected < 0 || c.selected >= len(c.files) {
		return types.UploadedFile{}, false
	}
	return c.files[c.selected], true
}

func (c *FileListController) SelectedIndex() int          { return c.selected }
func (c *FileListController) Files() []types.UploadedFile { return c.files }
func (c *FileListController) Loading() bool               { return c.loading }
func (c *FileListController) Busy() bool                  { return c.busy }
func (c *FileListController) Err() string                 { return c.err }
func (c *FileListController) Status() string              { return c.status }
