package employeesvc

import (
	"context"
	"encoding/json"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

type idPayload struct {
	ID string `json:"id"`
}

type updatePayload struct {
	ID   string              `json:"id"`
	Data UpdateEmployeeInput `json:"data"`
}

func RegisterCommands(server *rpc.Server, svc *Service) {
	server.Handle("create_employee", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input CreateEmployeeInput
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		result, err := svc.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	server.Handle("get_all_employees", func(ctx context.Context, payload json.RawMessage) (any, error) {
		return svc.FindAll(ctx)
	})

	server.Handle("get_employee", func(ctx context.Context, payload json.RawMessage) (any, error) {
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

	server.Handle("update_employee", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input updatePayload
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		result, err := svc.Update(ctx, input.ID, input.Data)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	server.Handle("delete_employee", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input idPayload
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		if err := svc.Remove(ctx, input.ID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Employee deleted successfully"}, nil
	})
}
