package editor

import "time"

// DefaultTemplate is the bundled profile a fresh session starts from: the
// issuer block pre-filled, one blank line, today's date.
func DefaultTemplate() WorkingState {
	return WorkingState{
		MyInfo: IssuerInfo{
			Name:    "Auto-Entrepreneur",
			Address: "",
			Phone:   "",
			ICE:     "",
			IF:      "",
			AeID:    "",
		},
		ClientInfo: ClientInfo{},
		DocSettings: DocSettings{
			Type:   "FACTURE",
			Number: "",
			Date:   time.Now().Format("2006-01-02"),
		},
		Items:        []Item{{}},
		Total:        0,
		TotalInWords: "",
	}
}
