package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/octaltask/octaltask/internal/models"
)

// Share grants a user access to a task or list by email and returns the
// resolved collaborator record.
func (c *Client) Share(ctx context.Context, itemID, itemType, email string, role models.Role) (models.SharedUser, error) {
	in := struct {
		Email string      `json:"email"`
		Role  models.Role `json:"role"`
	}{Email: email, Role: role}
	var out models.SharedUser
	err := c.do(ctx, http.MethodPost, "/"+itemType+"s/"+itemID+"/share", in, &out)
	return out, err
}

// UpdatePermission changes a collaborator's role on a task or list.
func (c *Client) UpdatePermission(ctx context.Context, itemID, itemType, userID string, role models.Role) error {
	in := struct {
		Role models.Role `json:"role"`
	}{Role: role}
	return c.do(ctx, http.MethodPatch, "/"+itemType+"s/"+itemID+"/share/"+userID, in, nil)
}

// RemoveAccess revokes a collaborator's access to a task or list.
func (c *Client) RemoveAccess(ctx context.Context, itemID, itemType, userID string) error {
	return c.do(ctx, http.MethodDelete, "/"+itemType+"s/"+itemID+"/share/"+userID, nil, nil)
}

// UploadAttachment streams a file to the upload endpoint and returns the
// stored attachment metadata. The backend owns the file; the client only
// keeps what comes back.
func (c *Client) UploadAttachment(ctx context.Context, taskID, fileName string, contents io.Reader) (models.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("api: build upload: %w", err)
	}
	if _, err := io.Copy(fw, contents); err != nil {
		return models.Attachment{}, fmt.Errorf("api: read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return models.Attachment{}, fmt.Errorf("api: build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/tasks/"+taskID+"/attachments", &buf)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Attachment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bs, _ := io.ReadAll(resp.Body)
		return models.Attachment{}, &APIError{Status: resp.StatusCode, Message: string(bs)}
	}

	var out models.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Attachment{}, fmt.Errorf("api: decode response: %w", err)
	}
	return out, nil
}
