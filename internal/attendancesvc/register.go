package attendancesvc

import (
	"context"
	"encoding/json"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

type idPayload struct {
	ID string `json:"id"`
}

type employeePayload struct {
	EmployeeID string `json:"employeeId"`
}

type createPayload struct {
	EmployeeID string                `json:"employeeId"`
	Data       CreateAttendanceInput `json:"data"`
}

func RegisterCommands(server *rpc.Server, svc *Service) {
	server.Handle("create_attendance", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input createPayload
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		result, err := svc.Create(ctx, input.EmployeeID, input.Data)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	server.Handle("get_all_attendance", func(ctx context.Context, payload json.RawMessage) (any, error) {
		return svc.FindAll(ctx)
	})

	server.Handle("get_employee_attendance", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input employeePayload
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		return svc.FindByEmployee(ctx, input.EmployeeID)
	})

	server.Handle("get_attendance", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input idPayload
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		result, err := svc.FindOne(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
