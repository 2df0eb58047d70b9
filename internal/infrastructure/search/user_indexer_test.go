package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-predictive-analytics/internal/domain/entity"
)

func TestDocument_OmitsPassword(t *testing.T) {
	doc := Document(&entity.User{ID: 7, Email: "u1@example.com", Password: "$2a$hash", FullName: "Ada", Company: "AE"})
	assert.NotContains(t, doc, "password")
	assert.Equal(t, int64(7), doc["id"])
	assert.Equal(t, "AE", doc["company"])
}

func TestNewUserIndexer_DisabledWithoutClient(t *testing.T) {
	assert.Nil(t, NewUserIndexer(nil, "users"))
}

func TestUserIndexer_IndexUser(t *testing.T) {
	type seen struct {
		path string
		body map[string]any
	}
	requests := make(chan seen, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got seen
		got.path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got.body)
		select {
		case requests <- got:
		default:
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	defer srv.Close()

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	x := NewUserIndexer(es, "users")
	err = x.IndexUser(context.Background(), &entity.User{ID: 3, Email: "u1@example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	require.NoError(t, err)

	got := <-requests
	assert.Equal(t, "/users/_doc/3", got.path)
	assert.Equal(t, "u1@example.com", got.body["email"])
}
