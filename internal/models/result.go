package models

type BatchCreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Files  int    `json:"files"`
}

type BatchStatusResponse struct {
	ID              string            `json:"id"`
	Status          string            `json:"status"`
	Progress        float64           `json:"progress"`
	Completed       int               `json:"completed"`
	Total           int               `json:"total"`
	Warnings        []string          `json:"warnings,omitempty"`
	Results         []CandidateResult `json:"results"`
	ReportAvailable bool              `json:"report_available"`
	ErrorMessage    string            `json:"error_message,omitempty"`
}
