package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// UploadURL is a package variable so tests can point uploads at a local
// server.
var UploadURL = "https://upload.imagekit.io/api/v1/files/upload"

var httpClient = &http.Client{Timeout: 30 * time.Second}

type uploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// UploadFile pushes a file to the ImageKit upload API and returns its public
// URL. The private key comes from IMAGEKIT_PRIVATE_KEY and is sent as the
// username of a basic auth pair with an empty password.
func UploadFile(file io.Reader, fileName string) (string, error) {
	privateKey := os.Getenv("IMAGEKIT_PRIVATE_KEY")
	if privateKey == "" {
		return "", fmt.Errorf("IMAGEKIT_PRIVATE_KEY environment variable is not set")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file: %w", err)
	}

	if err := writer.WriteField("fileName", fileName); err != nil {
		return "", fmt.Errorf("write fileName field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, UploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(privateKey+":")))

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	var result uploadResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Message != "" {
			return "", fmt.Errorf("upload failed: %s", result.Message)
		}
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	if result.URL == "" {
		return "", fmt.Errorf("upload response missing url")
	}

	return result.URL, nil
}
