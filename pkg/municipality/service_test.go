package municipality

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceListUFs(t *testing.T) {
	t.Run("should return the federative units from the client", func(t *testing.T) {
		// given
		client := NewClientStub()
		client.SetUFs([]UF{{Codigo: "26", Nome: "Pernambuco", Sigla: "PE"}})
		service := NewService(client)

		// when
		ufs, err := service.ListUFs(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, ufs, 1)
		assert.Equal(t, "PE", ufs[0].Sigla)
	})

	t.Run("should fall back to the static list when the client fails", func(t *testing.T) {
		// given
		client := NewClientStub()
		client.SetFetchErr(errors.New("IBGE unavailable"))
		service := NewService(client)

		// when
		ufs, err := service.ListUFs(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, ufs, 27)
	})

	t.Run("should serve repeated calls from the cache", func(t *testing.T) {
		// given
		client := NewClientStub()
		client.SetUFs([]UF{{Codigo: "26", Nome: "Pernambuco", Sigla: "PE"}})
		service := NewService(client)
		_, err := service.ListUFs(context.Background())
		require.NoError(t, err)

		// when
		_, err = service.ListUFs(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, client.FetchCalls())
	})
}

func TestServiceListMunicipalities(t *testing.T) {
	t.Run("should return the municipalities of a federative unit", func(t *testing.T) {
		// given
		client := NewClientStub()
		client.SetMunicipalities("PE", []Municipality{{CodigoIbge: "261160", Nome: "Recife", UF: "PE"}})
		service := NewService(client)

		// when
		municipalities, err := service.ListMunicipalities(context.Background(), "pe")

		// then
		require.NoError(t, err)
		require.Len(t, municipalities, 1)
		assert.Equal(t, "261160", municipalities[0].CodigoIbge)
	})

	t.Run("should reject an unknown federative unit", func(t *testing.T) {
		// given
		service := NewService(NewClientStub())

		// when
		_, err := service.ListMunicipalities(context.Background(), "XX")

		// then
		assert.Error(t, err)
	})

	t.Run("should propagate client errors", func(t *testing.T) {
		// given
		client := NewClientStub()
		client.SetFetchErr(errors.New("IBGE unavailable"))
		service := NewService(client)

		// when
		_, err := service.ListMunicipalities(context.Background(), "PE")

		// then
		assert.Error(t, err)
	})
}
