package http

import (
	"context"

	"github.com/sala-hr/attendance-backend-go/internal/domain/request"
	"github.com/sala-hr/attendance-backend-go/internal/service/approval"
)

func NewLeaveHandler(repo request.Repository[request.LeaveRequest], approvals *approval.Service) requestResource[request.LeaveRequest, request.LeaveRequestResponse] {
	return requestResource[request.LeaveRequest, request.LeaveRequestResponse]{
		repo:       repo,
		toResponse: request.ToLeaveResponse,
		decodeCreate: func(body []byte) (request.LeaveRequest, error) {
			var dto request.CreateLeaveRequestRequest
			if err := decodeBody(body, &dto); err != nil {
				return request.LeaveRequest{}, err
			}
			return dto.ToEntity(), nil
		},
		withIdentity: func(r request.LeaveRequest, id, version string) request.LeaveRequest {
			r.ID, r.Version = id, version
			return r
		},
		decide: func(ctx context.Context, actor approval.Actor, id string, d request.DecisionRequest) (request.LeaveRequest, error) {
			return approvals.DecideLeave(ctx, actor, id, d)
		},
	}
}

func NewOvertimeHandler(repo request.Repository[request.OvertimeRequest], approvals *approval.Service) requestResource[request.OvertimeRequest, request.OvertimeRequestResponse] {
	return requestResource[request.OvertimeRequest, request.OvertimeRequestResponse]{
		repo:       repo,
		toResponse: request.ToOvertimeResponse,
		decodeCreate: func(body []byte) (request.OvertimeRequest, error) {
			var dto request.CreateOvertimeRequestRequest
			if err := decodeBody(body, &dto); err != nil {
				return request.OvertimeRequest{}, err
			}
			return dto.ToEntity(), nil
		},
		withIdentity: func(r request.OvertimeRequest, id, version string) request.OvertimeRequest {
			r.ID, r.Version = id, version
			return r
		},
		decide: func(ctx context.Context, actor approval.Actor, id string, d request.DecisionRequest) (request.OvertimeRequest, error) {
			return approvals.DecideOvertime(ctx, actor, id, d)
		},
	}
}

func NewSwapHandler(repo request.Repository[request.SwapRequest], approvals *approval.Service) requestResource[request.SwapRequest, request.SwapRequestResponse] {
	return requestResource[request.SwapRequest, request.SwapRequestResponse]{
		repo:       repo,
		toResponse: request.ToSwapResponse,
		decodeCreate: func(body []byte) (request.SwapRequest, error) {
			var dto request.CreateSwapRequestRequest
			if err := decodeBody(body, &dto); err != nil {
				return request.SwapRequest{}, err
			}
			return dto.ToEntity(), nil
		},
		withIdentity: func(r request.SwapRequest, id, version string) request.SwapRequest {
			r.ID, r.Version = id, version
			return r
		},
		decide: func(ctx context.Context, actor approval.Actor, id string, d request.DecisionRequest) (request.SwapRequest, error) {
			return approvals.DecideSwap(ctx, actor, id, d)
		},
	}
}

func NewCorrectionHandler(repo request.Repository[request.CorrectionRequest], approvals *approval.Service) requestResource[request.CorrectionRequest, request.CorrectionRequestResponse] {
	return requestResource[request.CorrectionRequest, request.CorrectionRequestResponse]{
		repo:       repo,
		toResponse: request.ToCorrectionResponse,
		decodeCreate: func(body []byte) (request.CorrectionRequest, error) {
			var dto request.CreateCorrectionRequestRequest
			if err := decodeBody(body, &dto); err != nil {
				return request.CorrectionRequest{}, err
			}
			return dto.ToEntity(), nil
		},
		withIdentity: func(r request.CorrectionRequest, id, version string) request.CorrectionRequest {
			r.ID, r.Version = id, version
			return r
		},
		decide: func(ctx context.Context, actor approval.Actor, id string, d request.DecisionRequest) (request.CorrectionRequest, error) {
			return approvals.DecideCorrection(ctx, actor, id, d)
		},
	}
}
