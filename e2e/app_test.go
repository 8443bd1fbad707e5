package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

type user struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	User   user `json:"user"`
	Tokens struct {
		AccessToken string `json:"accessToken"`
	} `json:"tokens"`
}

type expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

type expensePage struct {
	Items      []expense `json:"items"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}

// E2ETestSuite drives the built server over HTTP with playwright's API
// request context.
type E2ETestSuite struct {
	suite.Suite
	pw      *playwright.Playwright
	request playwright.APIRequestContext
}

// SetupSuite runs once before all tests
func (suite *E2ETestSuite) SetupSuite() {
	pw, err := playwright.Run(&playwright.RunOptions{SkipInstallBrowsers: true})
	require.NoError(suite.T(), err, "could not launch playwright")
	suite.pw = pw

	request, err := pw.Request.NewContext(playwright.APIRequestNewContextOptions{
		BaseURL: playwright.String(appURL),
	})
	require.NoError(suite.T(), err, "could not create request context")
	suite.request = request
}

// TearDownSuite runs once after all tests
func (suite *E2ETestSuite) TearDownSuite() {
	if suite.request != nil {
		suite.request.Dispose()
	}
	if suite.pw != nil {
		suite.pw.Stop()
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// register creates a fresh account and returns its access token.
func (suite *E2ETestSuite) register() authResponse {
	email := fmt.Sprintf("e2e-%d@example.com", time.Now().UnixNano())
	resp, err := suite.request.Post("/auth/register", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"email": email, "password": "password123"},
	})
	require.NoError(suite.T(), err, "register request failed")
	require.Equal(suite.T(), http.StatusCreated, resp.Status())

	var body envelope[authResponse]
	require.NoError(suite.T(), resp.JSON(&body))
	require.True(suite.T(), body.Success)
	return body.Data
}

func (suite *E2ETestSuite) TestCORSHeaders() {
	resp, err := suite.request.Get("/healthz")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.Status())
	assert.Equal(suite.T(), corsOrigin, resp.Headers()["access-control-allow-origin"])
	assert.Equal(suite.T(), "application/json", resp.Headers()["content-type"])
}

func (suite *E2ETestSuite) TestProtectedRouteRequiresToken() {
	resp, err := suite.request.Get("/expenses")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.Status())

	var body envelope[any]
	require.NoError(suite.T(), resp.JSON(&body))
	assert.False(suite.T(), body.Success)
	assert.Equal(suite.T(), "No token provided", body.Error)
}

func (suite *E2ETestSuite) TestLoginWithRegisteredAccount() {
	reg := suite.register()

	resp, err := suite.request.Post("/auth/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"email": reg.User.Email, "password": "password123"},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.Status())

	resp, err = suite.request.Post("/auth/login", playwright.APIRequestContextPostOptions{
		Data: map[string]string{"email": reg.User.Email, "password": "not-the-password"},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.Status())
}

func (suite *E2ETestSuite) TestExpenseLifecycle() {
	token := suite.register().Tokens.AccessToken

	// Create
	resp, err := suite.request.Post("/expenses", playwright.APIRequestContextPostOptions{
		Headers: bearer(token),
		Data: map[string]any{
			"amount":      23.75,
			"description": "Test Expense",
			"category":    "Food",
			"date":        "2024-05-04",
		},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusCreated, resp.Status())
	var created envelope[expense]
	require.NoError(suite.T(), resp.JSON(&created))

	// List
	resp, err = suite.request.Get("/expenses", playwright.APIRequestContextGetOptions{
		Headers: bearer(token),
		Params:  map[string]any{"category": "Food"},
	})
	require.NoError(suite.T(), err)
	var list envelope[expensePage]
	require.NoError(suite.T(), resp.JSON(&list))
	assert.Equal(suite.T(), 1, list.Data.Total)

	// Update
	resp, err = suite.request.Put("/expenses/"+created.Data.ID, playwright.APIRequestContextPutOptions{
		Headers: bearer(token),
		Data:    map[string]any{"amount": 30},
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), http.StatusOK, resp.Status())
	var updated envelope[expense]
	require.NoError(suite.T(), resp.JSON(&updated))
	assert.Equal(suite.T(), 30.0, updated.Data.Amount)
	assert.Equal(suite.T(), "Test Expense", updated.Data.Description)

	// Delete
	resp, err = suite.request.Delete("/expenses/"+created.Data.ID, playwright.APIRequestContextDeleteOptions{
		Headers: bearer(token),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNoContent, resp.Status())

	resp, err = suite.request.Get("/expenses/"+created.Data.ID, playwright.APIRequestContextGetOptions{
		Headers: bearer(token),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, resp.Status())
}

func (suite *E2ETestSuite) TestReports() {
	token := suite.register().Tokens.AccessToken

	for _, e := range []map[string]any{
		{"amount": 60, "description": "Rent share", "category": "Bills", "date": "2024-06-01"},
		{"amount": 40, "description": "Dinner", "category": "Food", "date": "2024-06-15"},
	} {
		resp, err := suite.request.Post("/expenses", playwright.APIRequestContextPostOptions{Headers: bearer(token), Data: e})
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), http.StatusCreated, resp.Status())
	}

	resp, err := suite.request.Get("/reports/by-category", playwright.APIRequestContextGetOptions{Headers: bearer(token)})
	require.NoError(suite.T(), err)
	var rows envelope[[]struct {
		Category   string  `json:"category"`
		Percentage float64 `json:"percentage"`
	}]
	require.NoError(suite.T(), resp.JSON(&rows))
	require.Len(suite.T(), rows.Data, 2)
	assert.Equal(suite.T(), "Bills", rows.Data[0].Category)
	assert.Equal(suite.T(), 60.0, rows.Data[0].Percentage)

	resp, err = suite.request.Get("/reports/monthly", playwright.APIRequestContextGetOptions{
		Headers: bearer(token),
		Params:  map[string]any{"month": "2024-06"},
	})
	require.NoError(suite.T(), err)
	var monthly envelope[struct {
		Total float64 `json:"total"`
	}]
	require.NoError(suite.T(), resp.JSON(&monthly))
	assert.Equal(suite.T(), 100.0, monthly.Data.Total)
}

// TestE2ESuite runs the e2e test suite
func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
