package audit

import "time"

type EntryResponse struct {
	ID         string `json:"id"`
	AdminID    string `json:"admin_id"`
	AdminName  string `json:"admin_name"`
	Action     string `json:"action"`
	Collection string `json:"collection"`
	TargetID   string `json:"target_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Details    string `json:"details,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		AdminID:    e.AdminID,
		AdminName:  e.AdminName,
		Action:     e.Action,
		Collection: e.Collection,
		TargetID:   e.TargetID,
		EmployeeID: e.EmployeeID,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}

func ToResponses(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToResponse(e))
	}
	return out
}
