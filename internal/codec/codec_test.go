package codec

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rms/internal/domain"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Users:       []domain.UserSummary{{Username: "ali", Firstname: "Ali", Lastname: "Hassani"}},
		Restaurants: []domain.RestaurantSummary{{Name: "Sheraz", Address: "Tuira, Oulu", Phone: "047555325"}},
		Staffing:    []domain.Staffing{{Username: "ali", RestaurantName: "Sheraz", Position: domain.PositionOwner}},
		Vendors:     []domain.VendorSummary{{ID: domain.VendorID(1), Name: "Valio"}},
		Items:       []domain.ItemSummary{{ID: domain.ItemID(1), Name: "Milk", VendorID: domain.VendorID(1)}},
		Stock: []domain.StockSummary{{
			ID:              domain.StockID(1),
			ItemID:          domain.ItemID(1),
			QuantityInStock: 40,
			ExpireDate:      "2018-03-01",
			Date:            time.Date(2018, 2, 12, 9, 0, 0, 0, time.UTC),
			TransactionType: "purchase",
			UserID:          1,
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			c, err := ForFormat(format)
			require.NoError(t, err)
			assert.Equal(t, format, c.Format())

			var buf bytes.Buffer
			require.NoError(t, c.Export(testSnapshot(), &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			if diff := cmp.Diff(testSnapshot(), got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONExportUsesPrefixedIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(testSnapshot(), &buf))

	out := buf.String()
	assert.Contains(t, out, `"vendorId": "v-1"`)
	assert.Contains(t, out, `"itemId": "it-1"`)
	assert.Contains(t, out, `"stockId": "st-1"`)
	assert.Contains(t, out, `"restaurantName": "Sheraz"`)
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(testSnapshot(), &buf))

	out := buf.String()
	assert.Contains(t, out, "- username: ali\n")
	assert.Contains(t, out, "stockId: st-1")
	assert.Contains(t, out, "position: owner")
}

func TestParseErrors(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader(`{"users": [], "tables": []}`))
	assert.Error(t, err, "unknown field")

	_, err = NewJSONCodec().Parse(strings.NewReader(`{"vendors": [{"vendorId": "v-x"}]}`))
	assert.Error(t, err)

	_, err = NewYAMLCodec().Parse(strings.NewReader("users: []\ntables: []\n"))
	assert.Error(t, err, "unknown field")

	_, err = NewYAMLCodec().Parse(strings.NewReader("stock:\n  - stockId: st-abc\n"))
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	assert.Equal(t, []string{"json", "yaml"}, Formats())

	_, err := ForFormat("csv")
	assert.Error(t, err)
}
