package strapi

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

type UploadService service

// Upload decodes a base64 payload (with or without a data: URI prefix)
// and submits it to the media library as a multipart form. The backend
// answers with an array of asset records; only the first is returned —
// multi-file upload is out of scope.
func (s *UploadService) Upload(fileData string, fileName string, fileType string) (json.RawMessage, error) {
	if i := strings.Index(fileData, ";base64,"); i >= 0 && strings.HasPrefix(fileData, "data:") {
		fileData = fileData[i+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(fileData)
	if err != nil {
		return nil, fmt.Errorf("%w: fileData is not valid base64: %s", ErrInvalidParams, err.Error())
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, fileName))
	header.Set("Content-Type", fileType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(decoded); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	body, err := s.client.req("POST", pathUpload, nil, w.FormDataContentType(), &buf)
	if err != nil {
		return nil, writeErr(err)
	}

	var assets []json.RawMessage
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, fmt.Errorf("%w: malformed upload response: %s", ErrBackend, err.Error())
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: upload returned no assets", ErrBackend)
	}
	return assets[0], nil
}
