package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cepServiceFor(t *testing.T, handler http.HandlerFunc) *CEPService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &CEPService{
		baseURL: server.URL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestLookupResolvesAddress(t *testing.T) {
	svc := cepServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	})

	address, err := svc.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	require.NotNil(t, address)

	assert.Equal(t, "Avenida Paulista", address.Street)
	assert.Equal(t, "Bela Vista", address.Neighborhood)
	assert.Equal(t, "São Paulo", address.City)
	assert.Equal(t, "SP", address.State)
}

func TestLookupMalformedCEP(t *testing.T) {
	svc := cepServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("malformed CEPs must not reach the network")
	})

	for _, cep := range []string{"", "1234567", "123456789", "0131010a"} {
		address, err := svc.Lookup(context.Background(), cep)
		assert.NoError(t, err)
		assert.Nil(t, address)
	}
}

func TestLookupViaCEPErrorMarker(t *testing.T) {
	svc := cepServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	})

	address, err := svc.Lookup(context.Background(), "99999999")
	assert.NoError(t, err)
	assert.Nil(t, address)
}

func TestLookupServerError(t *testing.T) {
	svc := cepServiceFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	address, err := svc.Lookup(context.Background(), "01310100")
	assert.NoError(t, err)
	assert.Nil(t, address)
}

func TestLookupNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc := &CEPService{
		baseURL: server.URL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}
	server.Close() // connection refused from here on

	address, err := svc.Lookup(context.Background(), "01310100")
	assert.NoError(t, err)
	assert.Nil(t, address)
}
