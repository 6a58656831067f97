package firestore

import (
	"log/slog"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
)

const CollectionOvertimeRequests = "overtime_requests"

const (
	otDate      = "date"
	otStartTime = "startTime"
	otEndTime   = "endTime"
)

// Overtime requests carry no heavy payload; the lite projection still masks
// the field set explicitly so list responses stay stable when fields are
// added later.
var overtimeLiteFields = []string{
	reqEmployeeID, reqEmployeeName, otDate, otStartTime, otEndTime,
	reqReason, reqStatus, reqRejectionReason, reqCreatedAt,
}

func NewOvertimeRepository(client *Client, logger *slog.Logger) request.Repository[request.OvertimeRequest] {
	return &requestRepository[request.OvertimeRequest]{
		client: client,
		logger: logger,
		codec: requestCodec[request.OvertimeRequest]{
			collection:  CollectionOvertimeRequests,
			anchorField: otDate,
			liteFields:  overtimeLiteFields,
			encode:      encodeOvertime,
			decode:      decodeOvertime,
		},
	}
}

func encodeOvertime(r request.OvertimeRequest) map[string]Value {
	return map[string]Value{
		reqEmployeeID:   String(r.EmployeeID),
		reqEmployeeName: String(r.EmployeeName),
		otDate:          Timestamp(dayOf(r.Date)),
		otStartTime:     Timestamp(r.StartTime),
		otEndTime:       Timestamp(r.EndTime),
		reqReason:       String(r.Reason),
	}
}

func decodeOvertime(doc Document) request.OvertimeRequest {
	return request.OvertimeRequest{
		ID:              doc.ID(),
		EmployeeID:      doc.GetString(reqEmployeeID),
		EmployeeName:    doc.GetString(reqEmployeeName),
		Date:            doc.GetTime(otDate),
		StartTime:       doc.GetTime(otStartTime),
		EndTime:         doc.GetTime(otEndTime),
		Reason:          doc.GetString(reqReason),
		Status:          request.Status(doc.GetString(reqStatus)),
		RejectionReason: doc.OptString(reqRejectionReason),
		CreatedAt:       doc.GetTime(reqCreatedAt),
		Version:         doc.UpdateTime,
	}
}
