// Package signing produces signed direct-upload parameters for the image host.
package signing

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
)

var ErrNotConfigured = errors.New("image uploads are not configured")

// ParamError reports a parameter the client may not ask to have signed.
type ParamError struct {
	Param string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q cannot be signed", e.Param)
}

var allowedParams = map[string]struct{}{
	"public_id":     {},
	"tags":          {},
	"context":       {},
	"upload_preset": {},
	"source":        {},
	"timestamp":     {},
	"folder":        {},
}

type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

type Signer struct {
	creds  Credentials
	folder string
	now    func() time.Time
}

type SignedUpload struct {
	Timestamp int64             `json:"timestamp"`
	Signature string            `json:"signature"`
	CloudName string            `json:"cloudName"`
	APIKey    string            `json:"apiKey"`
	Folder    string            `json:"folder"`
	Params    map[string]string `json:"params"`
}

func NewSigner(creds Credentials, folder string, now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{creds: creds, folder: folder, now: now}
}

func (s *Signer) Configured() bool {
	return s != nil && s.creds.CloudName != "" && s.creds.APIKey != "" && s.creds.APISecret != ""
}

// Sign signs the requested parameters. The folder is always the configured
// one and the timestamp is stamped here when the client omits it.
func (s *Signer) Sign(requested map[string]any) (*SignedUpload, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	params := url.Values{}
	keys := make([]string, 0, len(requested))
	for key := range requested {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := allowedParams[key]; !ok {
			return nil, &ParamError{Param: key}
		}
		if key == "folder" || key == "timestamp" {
			continue
		}
		value := formatParam(requested[key])
		if value == "" {
			continue
		}
		params.Set(key, value)
	}

	timestamp := s.now().Unix()
	if raw, ok := requested["timestamp"]; ok {
		parsed, err := strconv.ParseInt(formatParam(raw), 10, 64)
		if err != nil || parsed <= 0 {
			return nil, &ParamError{Param: "timestamp"}
		}
		timestamp = parsed
	}
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	if s.folder != "" {
		params.Set("folder", s.folder)
	}

	signature, err := api.SignParameters(params, s.creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("sign upload parameters: %w", err)
	}

	signed := &SignedUpload{
		Timestamp: timestamp,
		Signature: signature,
		CloudName: s.creds.CloudName,
		APIKey:    s.creds.APIKey,
		Folder:    s.folder,
		Params:    make(map[string]string, len(params)),
	}
	for key := range params {
		signed.Params[key] = params.Get(key)
	}
	return signed, nil
}

func formatParam(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if part := formatParam(item); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
