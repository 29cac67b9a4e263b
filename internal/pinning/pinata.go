package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/feral-file/ff-catalog/internal/adapter"
)

// DefaultPinataAPIURL is the Pinata API root
const DefaultPinataAPIURL = "https://api.pinata.cloud"

type pinataPinner struct {
	http   adapter.HTTPClient
	apiURL string
	jwt    string
}

// pinFileResponse is the body returned by pinning/pinFileToIPFS
type pinFileResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// NewPinataPinner creates a pinner for the Pinata pinning API authenticated with a JWT
func NewPinataPinner(httpClient adapter.HTTPClient, apiURL, jwt string) Pinner {
	if apiURL == "" {
		apiURL = DefaultPinataAPIURL
	}
	return &pinataPinner{
		http:   httpClient,
		apiURL: strings.TrimSuffix(apiURL, "/"),
		jwt:    jwt,
	}
}

func (p *pinataPinner) Pin(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	body, formType, err := fileForm(name, contentType, r)
	if err != nil {
		return "", err
	}

	resp, err := p.http.Post(ctx, p.apiURL+"/pinning/pinFileToIPFS", map[string]string{
		"Content-Type":  formType,
		"Authorization": "Bearer " + p.jwt,
	}, body)
	if err != nil {
		return "", fmt.Errorf("failed to pin %s: %w", name, err)
	}

	var out pinFileResponse
	if err := json.Unmarshal(resp, &out); err != nil {
		return "", fmt.Errorf("failed to decode pin response: %w", err)
	}
	if out.IpfsHash == "" {
		return "", fmt.Errorf("pin response for %s carried no IpfsHash", name)
	}

	return out.IpfsHash, nil
}

// fileForm builds a multipart body with a single "file" part
func fileForm(name, contentType string, r io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
