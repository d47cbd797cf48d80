package uploadsvc

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// CloudinaryClient relays file buffers to the Cloudinary upload REST API
// using its signed-upload scheme.
type CloudinaryClient struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
	http      *http.Client
	now       func() time.Time
}

func NewCloudinaryClient(cloudName, apiKey, apiSecret string) *CloudinaryClient {
	return &CloudinaryClient{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   "https://api.cloudinary.com",
		http:      &http.Client{Timeout: 30 * time.Second},
		now:       time.Now,
	}
}

type UploadResult struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type hostError struct {
	Status  int
	Message string
}

func (e *hostError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upload failed with status %d", e.Status)
}

func (c *CloudinaryClient) Upload(ctx context.Context, buffer []byte, filename, folder string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	// Signature covers the signed params in alphabetical order, per the
	// Cloudinary API authentication scheme.
	toSign := "folder=" + folder + "&timestamp=" + timestamp + c.APISecret
	digest := sha1.Sum([]byte(toSign))
	signature := hex.EncodeToString(digest[:])

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("api_key", c.APIKey)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("signature", signature)
	_ = writer.WriteField("folder", folder)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := part.Write(buffer); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	endpoint := c.BaseURL + "/v1_1/" + c.CloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	reply, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload reply: %w", err)
	}

	if res.StatusCode >= 300 {
		var hostErr cloudinaryError
		_ = json.Unmarshal(reply, &hostErr)
		return nil, &hostError{Status: res.StatusCode, Message: hostErr.Error.Message}
	}

	var result UploadResult
	if err := json.Unmarshal(reply, &result); err != nil {
		return nil, fmt.Errorf("decode upload reply: %w", err)
	}
	return &result, nil
}
