package posclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pahanaedu/pos-platform/internal/models"
	"github.com/pahanaedu/pos-platform/pkg/posclient"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func TestLogin(t *testing.T) {

	t.Run("Success - Token Captured For Later Calls", func(t *testing.T) {
		// Arrange
		var seenAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/login":
				writeEnvelope(w, http.StatusOK, models.LoginResponse{
					Success: true, Token: "jwt-abc", Username: "sunil", Role: models.RoleCashier,
				})
			case "/api/items/1":
				seenAuth = r.Header.Get("Authorization")
				writeEnvelope(w, http.StatusOK, models.Item{ID: 1, Name: "Graph Paper Pad"})
			}
		}))
		defer server.Close()

		client := posclient.New(server.URL)

		// Act
		resp, err := client.Login(context.Background(), "sunil", "correct-horse")
		require.NoError(t, err)
		require.True(t, resp.Success)

		_, err = client.ItemByID(context.Background(), 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Bearer jwt-abc", seenAuth)
	})

	t.Run("Rejected Credentials Return The Server Message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.LoginResponse{
				Success: false, Message: "Invalid username or password", RemainingTries: 2,
			})
		}))
		defer server.Close()

		client := posclient.New(server.URL)

		resp, err := client.Login(context.Background(), "sunil", "wrong")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 2, resp.RemainingTries)
	})

	t.Run("Throttled Login Reads Retry-After From The Header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "300")
			writeError(w, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many login attempts. Please try again later.")
		}))
		defer server.Close()

		client := posclient.New(server.URL)

		resp, err := client.Login(context.Background(), "sunil", "correct-horse")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 300, resp.RetryAfter)
		assert.Equal(t, "Too many login attempts. Please try again later.", resp.Message)
	})
}

func TestItemByID(t *testing.T) {

	t.Run("Unknown Item Is Nil Not An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
		}))
		defer server.Close()

		client := posclient.New(server.URL, posclient.WithToken("jwt-abc"))

		item, err := client.ItemByID(context.Background(), 999)

		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("Expired Token Surfaces ErrUnauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token expired")
		}))
		defer server.Close()

		client := posclient.New(server.URL, posclient.WithToken("stale"))

		item, err := client.ItemByID(context.Background(), 1)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, posclient.ErrUnauthorized)
	})
}

func TestCustomerByTelephone(t *testing.T) {

	t.Run("Found Customer Decodes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/customers/telephone", r.URL.Path)
			assert.Equal(t, "0771234567", r.URL.Query().Get("number"))
			writeEnvelope(w, http.StatusOK, models.Customer{ID: 42, Name: "Nimal Perera", Telephone: "0771234567"})
		}))
		defer server.Close()

		client := posclient.New(server.URL, posclient.WithToken("jwt-abc"))

		customer, err := client.CustomerByTelephone(context.Background(), "0771234567")

		require.NoError(t, err)
		assert.Equal(t, int64(42), customer.ID)
	})

	t.Run("Unknown Number Is Nil Not An Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Customer not found")
		}))
		defer server.Close()

		client := posclient.New(server.URL, posclient.WithToken("jwt-abc"))

		customer, err := client.CustomerByTelephone(context.Background(), "0719999999")

		require.NoError(t, err)
		assert.Nil(t, customer)
	})
}

func TestCreateSale(t *testing.T) {

	t.Run("Posts The Request And Decodes The Committed Sale", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/sales", r.URL.Path)

			var req models.CreateSaleRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "0771234567", req.Customer.Telephone)
			assert.Len(t, req.SaleItems, 1)

			writeEnvelope(w, http.StatusCreated, models.Sale{ID: 7, CustomerID: 42})
		}))
		defer server.Close()

		client := posclient.New(server.URL, posclient.WithToken("jwt-abc"))

		sale, err := client.CreateSale(context.Background(), &models.CreateSaleRequest{
			Customer:  models.CustomerInput{Name: "Nimal Perera", Telephone: "0771234567", Address: "12 Temple Road, Kandy"},
			SaleItems: []models.SaleItemInput{{ItemID: 1, Qty: 20}},
			Paid:      decimal.NewFromInt(2000),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), sale.ID)
	})

	t.Run("Stock Conflict Propagates The Server Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusConflict, "INSUFFICIENT_STOCK", "Only 3 units of Graph Paper Pad available in stock")
		}))
		defer server.Close()

		client := posclient.New(server.URL, posclient.WithToken("jwt-abc"))

		sale, err := client.CreateSale(context.Background(), &models.CreateSaleRequest{})

		assert.Nil(t, sale)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INSUFFICIENT_STOCK")
	})
}

func TestSessionStore(t *testing.T) {

	t.Run("Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pos", "session.json")
		store := posclient.NewSessionStore(path)

		require.NoError(t, store.Save(&posclient.Session{
			Token: "jwt-abc", Username: "sunil", Role: models.RoleCashier,
		}))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", loaded.Token)
		assert.Equal(t, models.RoleCashier, loaded.Role)
		assert.False(t, loaded.SavedAt.IsZero())
	})

	t.Run("Missing File Loads As Nil", func(t *testing.T) {
		store := posclient.NewSessionStore(filepath.Join(t.TempDir(), "absent.json"))

		session, err := store.Load()

		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		store := posclient.NewSessionStore(path)

		require.NoError(t, store.Save(&posclient.Session{Token: "jwt-abc"}))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())

		session, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}
