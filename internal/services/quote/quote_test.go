package quote

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalibre-teknik/backoffice/internal/config"
	"github.com/kalibre-teknik/backoffice/internal/models"
)

func newTestService() *Service {
	return NewService(&config.Config{QuoteVATRate: 20})
}

func TestBuild(t *testing.T) {
	s := newTestService()
	tenantID, customerID, userID := uuid.New(), uuid.New(), uuid.New()

	t.Run("computes line totals and document totals", func(t *testing.T) {
		items := []models.QuoteItem{
			{Description: "ET topraklama ölçümü", Quantity: 3, UnitPrice: 500},
			{Description: "Mekanik periyodik kontrol", Quantity: 2, UnitPrice: 750},
		}

		q, err := s.Build(tenantID, customerID, userID, items, 0, nil)
		require.NoError(t, err)

		assert.Equal(t, models.QuoteDraft, q.Status)
		assert.Equal(t, 1500.0, q.Items[0].LineTotal)
		assert.Equal(t, 1500.0, q.Items[1].LineTotal)
		assert.Equal(t, 3000.0, q.Subtotal)
		assert.Equal(t, 20.0, q.VATRate)
		assert.Equal(t, 3600.0, q.Total) // 3000 + 20% KDV
	})

	t.Run("applies the discount before KDV", func(t *testing.T) {
		items := []models.QuoteItem{
			{Description: "Saha ölçümü", Quantity: 1, UnitPrice: 1000},
		}

		q, err := s.Build(tenantID, customerID, userID, items, 10, nil)
		require.NoError(t, err)

		assert.Equal(t, 1000.0, q.Subtotal)
		assert.Equal(t, 1080.0, q.Total) // 900 + 20% KDV
	})

	t.Run("rounds to kurus", func(t *testing.T) {
		items := []models.QuoteItem{
			{Description: "Kısmi ölçüm", Quantity: 3, UnitPrice: 33.333},
		}

		q, err := s.Build(tenantID, customerID, userID, items, 0, nil)
		require.NoError(t, err)

		assert.Equal(t, 100.0, q.Items[0].LineTotal) // 99.999 rounded
		assert.Equal(t, 100.0, q.Subtotal)
		assert.Equal(t, 120.0, q.Total)
	})

	t.Run("assigns item ids and quote linkage", func(t *testing.T) {
		items := []models.QuoteItem{
			{Description: "Ölçüm", Quantity: 1, UnitPrice: 100},
		}

		q, err := s.Build(tenantID, customerID, userID, items, 0, nil)
		require.NoError(t, err)

		require.Len(t, q.Items, 1)
		assert.NotEqual(t, uuid.Nil, q.Items[0].ID)
		assert.Equal(t, q.ID, q.Items[0].QuoteID)
		assert.Equal(t, tenantID, q.TenantID)
		assert.Equal(t, userID, q.CreatedBy)
	})

	t.Run("carries the validity date", func(t *testing.T) {
		until := time.Now().AddDate(0, 1, 0)
		q, err := s.Build(tenantID, customerID, userID,
			[]models.QuoteItem{{Description: "Ölçüm", Quantity: 1, UnitPrice: 100}}, 0, &until)
		require.NoError(t, err)
		require.NotNil(t, q.ValidUntil)
		assert.Equal(t, until, *q.ValidUntil)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := s.Build(tenantID, customerID, userID, nil, 0, nil)
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range discount", func(t *testing.T) {
		items := []models.QuoteItem{{Description: "Ölçüm", Quantity: 1, UnitPrice: 100}}

		_, err := s.Build(tenantID, customerID, userID, items, -1, nil)
		assert.Error(t, err)

		_, err = s.Build(tenantID, customerID, userID, items, 101, nil)
		assert.Error(t, err)
	})
}
