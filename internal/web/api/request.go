package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxCodeBytes bounds the accepted snippet size.
const maxCodeBytes = 1 << 20

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	Code     string `json:"code"`
	FilePath string `json:"file_path"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxCodeBytes))
	if err := decoder.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("code is required")
	}

	return &req, nil
}
