package restapi

import (
	"bytes"
	"context"
	"fmt"
	"go-jobboard-web/internal/domain"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

type applicationRepository struct {
	client *Client
}

func NewApplicationRepository(client *Client) domain.ApplicationRepository {
	return &applicationRepository{client: client}
}

func (r *applicationRepository) List(ctx context.Context, session *domain.Session, q domain.ApplicationQuery) ([]domain.Application, error) {
	params := make([]string, 0, 2)
	if q.JobID > 0 {
		params = append(params, "job="+strconv.FormatInt(q.JobID, 10))
	}
	if q.Status != "" && q.Status != domain.StatusAll {
		params = append(params, "status="+url.QueryEscape(q.Status))
	}
	path := "/applications/"
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}
	return getList[domain.Application](ctx, r.client, path, session)
}

func (r *applicationRepository) GetByID(ctx context.Context, session *domain.Session, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := r.client.getJSON(ctx, itemPath("applications", id), session, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Create posts the application as multipart/form-data. The optional message
// is only sent when non-empty.
func (r *applicationRepository) Create(ctx context.Context, form *domain.ApplicationForm, cv *domain.CVFile) (*domain.Application, error) {
	body, contentType, err := encodeApplication(form, cv)
	if err != nil {
		return nil, err
	}

	req, err := r.client.newRequest(ctx, http.MethodPost, "/applications/", nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	respBody, err := r.client.do(req)
	if err != nil {
		return nil, err
	}
	var app domain.Application
	if err := decodeInto("/applications/", respBody, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func encodeApplication(form *domain.ApplicationForm, cv *domain.CVFile) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"job", strconv.FormatInt(form.JobID, 10)},
		{"candidate_name", form.CandidateName},
		{"candidate_email", form.CandidateEmail},
		{"phone_number", form.PhoneNumber},
	}
	if form.CandidateMessage != "" {
		fields = append(fields, [2]string{"candidate_message", form.CandidateMessage})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="cv"; filename="%s"`, escapeQuotes(cv.Filename)))
	contentType := cv.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create cv part: %w", err)
	}
	if _, err := io.Copy(part, cv.Content); err != nil {
		return nil, "", fmt.Errorf("copy cv: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, session *domain.Session, id int64, status string) (*domain.Application, error) {
	var app domain.Application
	payload := map[string]string{"status": status}
	if err := r.client.sendJSON(ctx, http.MethodPatch, itemPath("applications", id), session, payload, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Delete(ctx context.Context, session *domain.Session, id int64) error {
	return r.client.delete(ctx, itemPath("applications", id), session)
}
