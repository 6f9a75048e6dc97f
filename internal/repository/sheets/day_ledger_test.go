package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	args := m.Called(ctx, sheetRange, values)
	return args.Error(0)
}

func sampleReport() models.DayReport {
	return models.DayReport{
		Day:        5,
		Balance:    742.5,
		Deaths:     []models.DeathRecord{{Kind: "wheat", Cause: "starvation", Age: 4}},
		Population: map[string]int{"wheat": 1, "hen": 2},
		Storage:    []models.StockLine{{Kind: "egg", Quantity: 6}, {Kind: "water", Quantity: 2.5}},
		CreatedAt:  time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC),
	}
}

func TestDayLedger_SaveDayReport(t *testing.T) {
	repo := new(mockRepository)
	want := []interface{}{5, "2026-03-05 20:00", 742.5, "hen=2 wheat=1", "wheat (starvation, age 4)", "egg=6 water=2.5"}
	repo.On("WriteRow", mock.Anything, "Days!A:F", want).Return(nil).Once()

	err := NewDayLedger(repo, "Days").SaveDayReport(context.Background(), sampleReport())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGoogleSheetRepository_WriteRow(t *testing.T) {
	var gotPath string
	var gotBody sheetsapi.ValueRange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	}))
	defer srv.Close()

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-1", SheetName: "Days"}, nil,
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication(), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = NewDayLedger(repo, "Days").SaveDayReport(context.Background(), sampleReport())

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(gotPath, ":append"), gotPath)
	assert.Contains(t, gotPath, "sheet-1")
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, "hen=2 wheat=1", gotBody.Values[0][3])
}

func TestGoogleSheetRepository_WriteRowRequiresRange(t *testing.T) {
	repo := &GoogleSheetRepository{}
	assert.Error(t, repo.WriteRow(context.Background(), "", nil))
}
