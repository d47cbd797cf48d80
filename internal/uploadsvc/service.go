package uploadsvc

import (
	"context"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/apperror"
)

const uploadFolder = "attendance_photos"

type Uploader interface {
	Upload(ctx context.Context, buffer []byte, filename, folder string) (*UploadResult, error)
}

type Service struct {
	uploader Uploader
}

func NewService(uploader Uploader) *Service {
	return &Service{uploader: uploader}
}

type FileInput struct {
	Buffer       []byte `json:"buffer"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

type FileResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadFile relays the buffer to the media host. It checks nothing beyond
// buffer presence; the MIME type is forwarded as-is.
func (s *Service) UploadFile(ctx context.Context, input FileInput) (FileResult, error) {
	if len(input.Buffer) == 0 {
		return FileResult{}, apperror.New(apperror.CodeValidation, "No file provided")
	}

	result, err := s.uploader.Upload(ctx, input.Buffer, input.OriginalName, uploadFolder)
	if err != nil {
		return FileResult{}, apperror.New(apperror.CodeValidation, err.Error())
	}

	return FileResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}
