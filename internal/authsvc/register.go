package authsvc

import (
	"context"
	"encoding/json"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

type validateUserPayload struct {
	ID string `json:"id"`
}

func RegisterCommands(server *rpc.Server, svc *Service) {
	server.Handle("login", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input LoginInput
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		result, err := svc.Login(ctx, input)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	server.Handle("validate_user", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input validateUserPayload
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		projection, err := svc.ValidateUser(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		if projection == nil {
			return nil, nil
		}
		return projection, nil
	})
}
