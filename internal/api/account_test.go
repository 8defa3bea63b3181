package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Cart(t *testing.T) {
	t.Run("unwraps cart items", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user/cart", r.URL.Path)
			w.Write([]byte(`{"cartItems":[
				{"productId":7,"selectedPrice":499,"selectedMonth":6,"quantity":1,
				 "product":{"title":"Oak Desk","product_image":"desk.jpg"}}
			]}`))
		}))

		items, err := client.Cart(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 7, items[0].ProductID)
		assert.Equal(t, 6, items[0].SelectedMonth)
		require.NotNil(t, items[0].Product)
		assert.Equal(t, "Oak Desk", items[0].Product.Title)
	})

	t.Run("remove sends the product reference in the body", func(t *testing.T) {
		var method string
		var body map[string]any
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Write([]byte(`{}`))
		}))

		require.NoError(t, client.RemoveFromCart(context.Background(), 7))
		assert.Equal(t, http.MethodDelete, method)
		assert.Equal(t, float64(7), body["productId"])
	})
}

func TestClient_Wishlist(t *testing.T) {
	// The embedded product key is capitalized on the wire
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"wishlistItems":[
			{"id":3,"createdAt":"2026-02-11T10:00:00Z","Product":{"title":"Floor Lamp","product_image":"lamp.jpg"}}
		]}`))
	}))

	items, err := client.Wishlist(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ID)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Floor Lamp", items[0].Product.Title)
}

func TestClient_KYCDetails(t *testing.T) {
	t.Run("returns the record when present", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"kyc":{"idName":"Passport","idProofImage":"[\"a.jpg\"]"}}`))
		}))

		kyc, err := client.KYCDetails(context.Background())
		require.NoError(t, err)
		require.NotNil(t, kyc)
		assert.Equal(t, "Passport", kyc.IDName)
		assert.Equal(t, []string{"a.jpg"}, kyc.ProofImages())
	})

	t.Run("nil when no record exists", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"kyc":{}}`))
		}))

		kyc, err := client.KYCDetails(context.Background())
		require.NoError(t, err)
		assert.Nil(t, kyc)
	})

	t.Run("nil on a 404", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"KYC record not found"}`))
		}))

		kyc, err := client.KYCDetails(context.Background())
		require.NoError(t, err)
		assert.Nil(t, kyc)
	})
}

func TestClient_SubmitKYC(t *testing.T) {
	t.Run("uploads the document as multipart form data", func(t *testing.T) {
		imagePath := filepath.Join(t.TempDir(), "passport.jpg")
		require.NoError(t, os.WriteFile(imagePath, []byte("jpeg-bytes"), 0600))

		var idName, fileName, fileContent string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			idName = r.FormValue("idName")

			file, header, err := r.FormFile("idProofImage")
			require.NoError(t, err)
			defer file.Close()

			fileName = header.Filename
			data, err := io.ReadAll(file)
			require.NoError(t, err)
			fileContent = string(data)

			w.WriteHeader(http.StatusCreated)
		}))

		require.NoError(t, client.SubmitKYC(context.Background(), "Passport", imagePath))
		assert.Equal(t, "Passport", idName)
		assert.Equal(t, "passport.jpg", fileName)
		assert.Equal(t, "jpeg-bytes", fileContent)
	})

	t.Run("fails when the proof image is missing", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))

		err := client.SubmitKYC(context.Background(), "Passport", "/nonexistent/file.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "proof image")
	})
}

func TestClient_Addresses(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"fullName":"Asha Rao","contact":"9900112233","address":"12 Hill Rd","nearestLandmark":"Clock Tower","postalCode":"560001","city":"Bengaluru"}]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))

	ctx := context.Background()

	addresses, err := client.Addresses(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, "Asha Rao", addresses[0].FullName)
	assert.Equal(t, "Bengaluru", addresses[0].City)

	require.NoError(t, client.CreateAddress(ctx, addresses[0]))
	require.NoError(t, client.UpdateAddress(ctx, addresses[0]))
	require.NoError(t, client.DeleteAddress(ctx))
}
