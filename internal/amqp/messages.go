package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidJob is returned for job messages missing a required path.
var ErrInvalidJob = errors.New("invalid document job")

// DocumentJob asks a worker to convert and recognize one document. The paths
// are resolved by the publisher so workers need no knowledge of the layout.
type DocumentJob struct {
	PDFPath    string    `json:"pdf_path"`
	TextPath   string    `json:"text_path"`
	RecordPath string    `json:"record_path"`
	Force      bool      `json:"force,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewDocumentJob(pdfPath, textPath, recordPath string) *DocumentJob {
	return &DocumentJob{
		PDFPath:    pdfPath,
		TextPath:   textPath,
		RecordPath: recordPath,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DocumentJob) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DocumentJobFromJSON decodes and checks a job message.
func DocumentJobFromJSON(data []byte) (*DocumentJob, error) {
	var msg DocumentJob
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch {
	case msg.PDFPath == "":
		return nil, errors.Join(ErrInvalidJob, errors.New("missing pdf_path"))
	case msg.TextPath == "":
		return nil, errors.Join(ErrInvalidJob, errors.New("missing text_path"))
	case msg.RecordPath == "":
		return nil, errors.Join(ErrInvalidJob, errors.New("missing record_path"))
	}
	return &msg, nil
}
