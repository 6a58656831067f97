package firestore

import (
	"log/slog"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
)

const CollectionCorrectionRequests = "time_correction_requests"

const (
	corrDate          = "date"
	corrEntryType     = "type"
	corrRequestedTime = "requestedTime"
	corrAttachment    = "attachment"
)

// Lite projection: everything except the attachment payload. Keep in sync
// with encodeCorrection/decodeCorrection.
var correctionLiteFields = []string{
	reqEmployeeID, reqEmployeeName, corrDate, corrEntryType, corrRequestedTime,
	reqReason, reqStatus, reqRejectionReason, reqCreatedAt,
}

func NewCorrectionRepository(client *Client, logger *slog.Logger) request.Repository[request.CorrectionRequest] {
	return &requestRepository[request.CorrectionRequest]{
		client: client,
		logger: logger,
		codec: requestCodec[request.CorrectionRequest]{
			collection:      CollectionCorrectionRequests,
			anchorField:     corrDate,
			liteFields:      correctionLiteFields,
			attachmentField: corrAttachment,
			encode:          encodeCorrection,
			decode:          decodeCorrection,
		},
	}
}

func encodeCorrection(r request.CorrectionRequest) map[string]Value {
	fields := map[string]Value{
		reqEmployeeID:     String(r.EmployeeID),
		reqEmployeeName:   String(r.EmployeeName),
		corrDate:          Timestamp(dayOf(r.Date)),
		corrEntryType:     String(r.EntryType),
		corrRequestedTime: Timestamp(r.RequestedTime),
		reqReason:         String(r.Reason),
	}
	if r.Attachment != nil {
		fields[corrAttachment] = String(*r.Attachment)
	}
	return fields
}

func decodeCorrection(doc Document) request.CorrectionRequest {
	return request.CorrectionRequest{
		ID:              doc.ID(),
		EmployeeID:      doc.GetString(reqEmployeeID),
		EmployeeName:    doc.GetString(reqEmployeeName),
		Date:            doc.GetTime(corrDate),
		EntryType:       doc.GetString(corrEntryType),
		RequestedTime:   doc.GetTime(corrRequestedTime),
		Reason:          doc.GetString(reqReason),
		Attachment:      doc.OptString(corrAttachment),
		Status:          request.Status(doc.GetString(reqStatus)),
		RejectionReason: doc.OptString(reqRejectionReason),
		CreatedAt:       doc.GetTime(reqCreatedAt),
		Version:         doc.UpdateTime,
	}
}
