package firestore

import (
	"log/slog"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
)

const CollectionSwapRequests = "swap_requests"

const (
	swapTargetEmployeeID   = "targetEmployeeId"
	swapTargetEmployeeName = "targetEmployeeName"
	swapShiftDate          = "shiftDate"
	swapTargetShiftDate    = "targetShiftDate"
)

var swapLiteFields = []string{
	reqEmployeeID, reqEmployeeName, swapTargetEmployeeID, swapTargetEmployeeName,
	swapShiftDate, swapTargetShiftDate, reqReason, reqStatus, reqRejectionReason, reqCreatedAt,
}

func NewSwapRepository(client *Client, logger *slog.Logger) request.Repository[request.SwapRequest] {
	return &requestRepository[request.SwapRequest]{
		client: client,
		logger: logger,
		codec: requestCodec[request.SwapRequest]{
			collection:  CollectionSwapRequests,
			anchorField: swapShiftDate,
			liteFields:  swapLiteFields,
			encode:      encodeSwap,
			decode:      decodeSwap,
		},
	}
}

func encodeSwap(r request.SwapRequest) map[string]Value {
	return map[string]Value{
		reqEmployeeID:          String(r.EmployeeID),
		reqEmployeeName:        String(r.EmployeeName),
		swapTargetEmployeeID:   String(r.TargetEmployeeID),
		swapTargetEmployeeName: String(r.TargetEmployeeName),
		swapShiftDate:          Timestamp(dayOf(r.ShiftDate)),
		swapTargetShiftDate:    Timestamp(dayOf(r.TargetShiftDate)),
		reqReason:              String(r.Reason),
	}
}

func decodeSwap(doc Document) request.SwapRequest {
	return request.SwapRequest{
		ID:                 doc.ID(),
		EmployeeID:         doc.GetString(reqEmployeeID),
		EmployeeName:       doc.GetString(reqEmployeeName),
		TargetEmployeeID:   doc.GetString(swapTargetEmployeeID),
		TargetEmployeeName: doc.GetString(swapTargetEmployeeName),
		ShiftDate:          doc.GetTime(swapShiftDate),
		TargetShiftDate:    doc.GetTime(swapTargetShiftDate),
		Reason:             doc.GetString(reqReason),
		Status:             request.Status(doc.GetString(reqStatus)),
		RejectionReason:    doc.OptString(reqRejectionReason),
		CreatedAt:          doc.GetTime(reqCreatedAt),
		Version:            doc.UpdateTime,
	}
}
