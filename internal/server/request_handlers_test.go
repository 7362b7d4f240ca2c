package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestValidation(t *testing.T) {
	app, _, db := newTestApp(t)
	token := signupUser(t, app, "staff@acme.test", "Acme Lettings")
	passport, _ := seedTypes(t, db)

	resp := doJSON(t, app, http.MethodPost, "/api/folders", map[string]any{
		"name":              "Tenant screening",
		"required_type_ids": []uint{passport.ID},
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var folder struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &folder)

	// No recipient email.
	resp = doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"folder_id": folder.ID,
		"type_ids":  []uint{passport.ID},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// No requested types.
	resp = doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"folder_id":       folder.ID,
		"recipient_email": "tenant@example.test",
		"type_ids":        []uint{},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Unknown type ID.
	resp = doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"folder_id":       folder.ID,
		"recipient_email": "tenant@example.test",
		"type_ids":        []uint{9999},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Foreign folder looks missing.
	tokenB := signupUser(t, app, "b@rival.test", "Rival Corp")
	resp = doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"folder_id":       folder.ID,
		"recipient_email": "tenant@example.test",
		"type_ids":        []uint{passport.ID},
	}, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestResendShareLink(t *testing.T) {
	app, _, db := newTestApp(t)
	token := signupUser(t, app, "staff@acme.test", "Acme Lettings")
	passport, _ := seedTypes(t, db)
	_, requestID, firstToken := createFolderAndRequest(t, app, token, []uint{passport.ID})

	resp := doJSON(t, app, http.MethodPost, "/api/requests/"+jsonID(requestID)+"/resend-link", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reissued struct {
		ShareToken     string    `json:"share_token"`
		ShareExpiresAt time.Time `json:"share_expires_at"`
	}
	decodeBody(t, resp, &reissued)
	assert.NotEmpty(t, reissued.ShareToken)
	assert.NotEqual(t, firstToken, reissued.ShareToken)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), reissued.ShareExpiresAt, time.Minute)

	// Both links resolve; issuing a new one does not revoke the old.
	for _, tok := range []string{firstToken, reissued.ShareToken} {
		resp = doJSON(t, app, http.MethodGet, "/api/share/"+tok, nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// Foreign tenants cannot trigger a resend.
	tokenB := signupUser(t, app, "b@rival.test", "Rival Corp")
	resp = doJSON(t, app, http.MethodPost, "/api/requests/"+jsonID(requestID)+"/resend-link", nil, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestArchiveRequestExcludesFromFolder(t *testing.T) {
	app, _, db := newTestApp(t)
	token := signupUser(t, app, "staff@acme.test", "Acme Lettings")
	passport, _ := seedTypes(t, db)
	folderID, requestID, _ := createFolderAndRequest(t, app, token, []uint{passport.ID})

	// Add a second request and complete it.
	resp := doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"folder_id":       folderID,
		"recipient_email": "other@example.test",
		"type_ids":        []uint{passport.ID},
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var second struct {
		ShareToken string `json:"share_token"`
	}
	decodeBody(t, resp, &second)

	resp = uploadViaShareLink(t, app, second.ShareToken, passport.ID, "passport.pdf")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// The untouched first request keeps the folder open.
	resp = doJSON(t, app, http.MethodGet, "/api/folders/"+jsonID(folderID), nil, token)
	var folder struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &folder)
	assert.NotEqual(t, "COMPLETED", folder.Status)

	// Archiving it leaves only the completed sibling.
	resp = doJSON(t, app, http.MethodPost, "/api/requests/"+jsonID(requestID)+"/archive", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/folders/"+jsonID(folderID), nil, token)
	decodeBody(t, resp, &folder)
	assert.Equal(t, "COMPLETED", folder.Status)

	// Archived requests read as rejected but never leak the sentinel message.
	resp = doJSON(t, app, http.MethodGet, "/api/requests/"+jsonID(requestID), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var archived struct {
		Status         string  `json:"status"`
		DeclineMessage *string `json:"decline_message"`
	}
	decodeBody(t, resp, &archived)
	assert.Equal(t, "REJECTED", archived.Status)
	assert.Nil(t, archived.DeclineMessage)
}
