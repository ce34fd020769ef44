package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-engine/api"
)

func newAdminServer(t *testing.T) (*testServer, string) {
	t.Helper()
	s := newTestServer(t)
	require.NoError(t, s.handler.SetBootstrapAdmin("admin", "secret"))
	require.NoError(t, s.handler.EnsureAdmin(context.Background()))
	return s, s.login(t, "admin")
}

func demoLogin(t *testing.T, s *testServer, login string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{Login: login, Password: api.DemoPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func TestScenarios_AdminOnly(t *testing.T) {
	s, _ := newAdminServer(t)

	rec := s.do(t, http.MethodGet, "/api/scenarios", s.login(t, "hr"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScenarios_LoadEach(t *testing.T) {
	s, admin := newAdminServer(t)

	rec := s.do(t, http.MethodGet, "/api/scenarios", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]api.ScenarioDTO](t, rec)
	require.NotEmpty(t, list)

	for _, sc := range list {
		t.Run(sc.ID, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/scenarios/load", admin, api.LoadScenarioRequest{ScenarioID: sc.ID})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			rec = s.do(t, http.MethodGet, "/api/scenarios/current", admin, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, sc.ID, decodeBody[api.ScenarioDTO](t, rec).ID)

			// Every employee gets a summary; limited categories have a remainder
			hr := demoLogin(t, s, "hr")
			rec = s.do(t, http.MethodGet, "/api/employees", hr, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			employees := decodeBody[[]api.EmployeeDTO](t, rec)
			require.NotEmpty(t, employees)

			for _, emp := range employees {
				rec = s.do(t, http.MethodGet, "/api/employees/"+emp.ID+"/leave-summary", hr, nil)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				summary := decodeBody[api.LeaveSummaryDTO](t, rec)
				for _, c := range summary.Categories {
					if c.AnnualLimit == 0 {
						assert.Nil(t, c.RemainingDays, c.CategoryID)
					} else {
						assert.NotNil(t, c.RemainingDays, c.CategoryID)
					}
				}
			}

			// The bootstrap admin survives the reset
			s.login(t, "admin")
		})
	}
}

func TestScenarios_CarryOverSplitsAnniversaryEntry(t *testing.T) {
	s, admin := newAdminServer(t)

	rec := s.do(t, http.MethodPost, "/api/scenarios/load", admin, api.LoadScenarioRequest{ScenarioID: "carry-over"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Clock is 2023-03-10, so the hire date is 2020-01-10 and the current
	// year starts 2023-01-10. The entry Jan 6..14 contributes only
	// Jan 10..13; the rejected entry does not count.
	boris := demoLogin(t, s, "boris")
	rec = s.do(t, http.MethodGet, "/api/employees/emp-boris/leave-summary", boris, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	summary := decodeBody[api.LeaveSummaryDTO](t, rec)

	assert.Equal(t, 3, summary.WorkYears)
	assert.Equal(t, "2023-01-10", summary.YearStart)
	for _, c := range summary.Categories {
		if c.CategoryID == "annual" {
			assert.Equal(t, 4, c.UsedDays)
			return
		}
	}
	t.Fatal("annual category missing")
}

func TestScenarios_Unknown(t *testing.T) {
	s, admin := newAdminServer(t)

	rec := s.do(t, http.MethodPost, "/api/scenarios/load", admin, api.LoadScenarioRequest{ScenarioID: "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/scenarios/load", admin, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
