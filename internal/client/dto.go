package client

type CreateSessionRequest struct {
	FileID    string `json:"fileId"`
	SheetName string `json:"sheetName"`
}

type CreateDocumentSessionRequest struct {
	FileID      string `json:"fileId"`
	SessionName string `json:"sessionName"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AnalyzeRequest struct {
	FileID    string `json:"fileId"`
	SheetName string `json:"sheetName"`
	Question  string `json:"question"`
}

type AnalyzeResponse struct {
	Output string `json:"output"`
}

type QueryDocumentRequest struct {
	FileID   string `json:"fileId"`
	Question string `json:"question"`
}

type QueryDocumentResponse struct {
	Answer string `json:"answer"`
}
