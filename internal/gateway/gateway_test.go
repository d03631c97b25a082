package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticCreds struct {
	token string
	err   error
}

func (s staticCreds) Credential(context.Context) (string, error) {
	return s.token, s.err
}

func TestSelect(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"Acme"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key", staticCreds{token: "jwt-token"}, zap.NewNop())

	var rows []map[string]string
	q := Query{
		Select:  "id,name",
		Filters: map[string]string{"status": Eq("active")},
		Order:   Desc("created_at"),
		Limit:   5,
	}
	err := client.Select(context.Background(), "customers", q, &rows)
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/customers", gotPath)
	assert.Contains(t, gotQuery, "select=id%2Cname")
	assert.Contains(t, gotQuery, "status=eq.active")
	assert.Contains(t, gotQuery, "order=created_at.desc")
	assert.Contains(t, gotQuery, "limit=5")
	assert.Equal(t, "Bearer jwt-token", gotAuth)
	assert.Equal(t, "anon-key", gotAPIKey)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["name"])
}

func TestInsertSendsRepresentationPrefer(t *testing.T) {
	var gotPrefer string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"new"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())

	var rows []map[string]string
	err := client.Insert(context.Background(), "tickets", map[string]any{"subject": "help"}, &rows)
	require.NoError(t, err)
	assert.Equal(t, "return=representation", gotPrefer)
	assert.Equal(t, "help", gotBody["subject"])
	require.Len(t, rows, 1)
}

func TestUpdateTargetsRowByID(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"42"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())

	var rows []map[string]string
	err := client.Update(context.Background(), "quotes", "42", map[string]any{"status": "sent"}, &rows)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "id=eq.42", gotQuery)
}

func TestRPC(t *testing.T) {
	var gotPath string
	var gotArgs map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotArgs)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"email":"a@b.c"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())

	var out []map[string]string
	err := client.RPC(context.Background(), "admin_list_users", map[string]any{"page": 1}, &out)
	require.NoError(t, err)
	assert.Equal(t, "/rest/v1/rpc/admin_list_users", gotPath)
	assert.Equal(t, float64(1), gotArgs["page"])
}

func TestUpload(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"Key":"attachments/quote.pdf"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())

	path, err := client.Upload(context.Background(), "attachments", "quote.pdf", strings.NewReader("pdf-bytes"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/attachments/quote.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotContentType)
	assert.Equal(t, "pdf-bytes", string(gotBody))
	assert.Equal(t, "attachments/quote.pdf", path)
}

func TestMissingCredentialFailsBeforeNetwork(t *testing.T) {
	touched := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		touched = true
	}))
	defer srv.Close()

	authErr := &xerrors.AuthError{Reason: xerrors.ErrNoCredential}
	client := NewClient(srv.URL, "anon", staticCreds{err: authErr}, zap.NewNop())

	err := client.Select(context.Background(), "customers", Query{}, nil)
	require.Error(t, err)

	var got *xerrors.AuthError
	assert.True(t, xerrors.As(err, &got))
	assert.False(t, touched, "no request should reach the server without a credential")
}

func TestServerErrorDecoding(t *testing.T) {
	t.Run("structured error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"duplicate key value","code":"23505"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())
		err := client.Insert(context.Background(), "quotes", map[string]any{}, nil)
		require.Error(t, err)

		var srvErr *xerrors.ServerError
		require.True(t, xerrors.As(err, &srvErr))
		assert.Equal(t, http.StatusConflict, srvErr.Status)
		assert.Equal(t, "23505", srvErr.Code)
		assert.Equal(t, "duplicate key value", srvErr.Message)
	})

	t.Run("error field fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid token"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())
		err := client.Select(context.Background(), "customers", Query{}, nil)

		var srvErr *xerrors.ServerError
		require.True(t, xerrors.As(err, &srvErr))
		assert.Equal(t, "invalid token", srvErr.Message)
	})
}

func TestNetworkErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, "anon", staticCreds{token: "t"}, zap.NewNop())
	err := client.Select(context.Background(), "customers", Query{}, nil)
	require.Error(t, err)

	var netErr *xerrors.NetworkError
	assert.True(t, xerrors.As(err, &netErr))
}

func TestQueryValues(t *testing.T) {
	q := Query{
		Select:  "*",
		Filters: map[string]string{"org_id": Eq("7"), "deleted_at": IsNull()},
		Order:   Asc("requested_at"),
	}
	v := q.values()
	assert.Equal(t, "*", v.Get("select"))
	assert.Equal(t, "eq.7", v.Get("org_id"))
	assert.Equal(t, "is.null", v.Get("deleted_at"))
	assert.Equal(t, "requested_at.asc", v.Get("order"))
	assert.Empty(t, v.Get("limit"))
}
