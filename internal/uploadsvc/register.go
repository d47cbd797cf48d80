package uploadsvc

import (
	"context"
	"encoding/json"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

func RegisterCommands(server *rpc.Server, svc *Service) {
	server.Handle("upload_file", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var input FileInput
		if err := json.Unmarshal(payload, &input); err != nil {
			return nil, apperror.New(apperror.CodeValidation, "invalid payload")
		}
		result, err := svc.UploadFile(ctx, input)
		if err != nil {
			return nil, err
		}
		return result, nil
	})
}
