package firestore

import (
	"log/slog"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
)

const CollectionLeaveRequests = "leave_requests"

const (
	leaveType        = "leaveType"
	leaveStartDate   = "startDate"
	leaveEndDate     = "endDate"
	leaveAttachments = "attachments"
)

// Lite projection: everything except the attachment payloads. Keep in sync
// with encodeLeave/decodeLeave.
var leaveLiteFields = []string{
	reqEmployeeID, reqEmployeeName, leaveType, leaveStartDate, leaveEndDate,
	reqReason, reqStatus, reqRejectionReason, reqCreatedAt,
}

func NewLeaveRepository(client *Client, logger *slog.Logger) request.Repository[request.LeaveRequest] {
	return &requestRepository[request.LeaveRequest]{
		client: client,
		logger: logger,
		codec: requestCodec[request.LeaveRequest]{
			collection:      CollectionLeaveRequests,
			anchorField:     leaveStartDate,
			liteFields:      leaveLiteFields,
			attachmentField: leaveAttachments,
			encode:          encodeLeave,
			decode:          decodeLeave,
		},
	}
}

func encodeLeave(r request.LeaveRequest) map[string]Value {
	fields := map[string]Value{
		reqEmployeeID:   String(r.EmployeeID),
		reqEmployeeName: String(r.EmployeeName),
		leaveType:       String(r.LeaveType),
		leaveStartDate:  Timestamp(dayOf(r.StartDate)),
		leaveEndDate:    Timestamp(dayOf(r.EndDate)),
		reqReason:       String(r.Reason),
	}
	if len(r.Attachments) > 0 {
		fields[leaveAttachments] = StringArray(r.Attachments)
	}
	return fields
}

func decodeLeave(doc Document) request.LeaveRequest {
	return request.LeaveRequest{
		ID:              doc.ID(),
		EmployeeID:      doc.GetString(reqEmployeeID),
		EmployeeName:    doc.GetString(reqEmployeeName),
		LeaveType:       doc.GetString(leaveType),
		StartDate:       doc.GetTime(leaveStartDate),
		EndDate:         doc.GetTime(leaveEndDate),
		Reason:          doc.GetString(reqReason),
		Attachments:     doc.GetStrings(leaveAttachments),
		Status:          request.Status(doc.GetString(reqStatus)),
		RejectionReason: doc.OptString(reqRejectionReason),
		CreatedAt:       doc.GetTime(reqCreatedAt),
		Version:         doc.UpdateTime,
	}
}
