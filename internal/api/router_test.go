package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"parkwise/internal/domain"
	"parkwise/internal/repository/memory"
	"parkwise/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store, domain.ParkingLot) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	lot := store.AddLot(domain.ParkingLot{Name: "Trung tâm", EntryFee: 5, HourlyRate: 3}, true)

	r := SetupRouter(
		service.NewAuthService(store, bcrypt.MinCost),
		service.NewSessionService(store),
		service.NewPaymentService(store),
		service.NewCatalogService(store),
		service.NewReportService(store),
	)
	return r, store, lot
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		out = nil
	}
	return w.Code, out
}

func TestErrorsAreAlwaysHTTP200(t *testing.T) {
	r, _, lot := newTestRouter(t)

	// Thiếu trường bắt buộc.
	code, body := doJSON(t, r, http.MethodPost, "/session/start", `{}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Missing fields", body["error"])

	// Lỗi nghiệp vụ.
	code, body = doJSON(t, r, http.MethodPost, "/session/end", `{"plate_no":"00X-000"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No ACTIVE session for this plate", body["error"])

	code, body = doJSON(t, r, http.MethodPost, "/payment/pay", `{"driver_id":1,"log_id":999}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Log not found", body["error"])

	// Thành công thì không có trường "error".
	code, body = doJSON(t, r, http.MethodPost, "/session/start",
		`{"driver_id":1,"plate_no":"51A-123","lot_id":`+itoa(lot.ID)+`}`)
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, body, "error")
	assert.Equal(t, "Session started", body["message"])
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	r, _, _ := newTestRouter(t)

	code, body := doJSON(t, r, http.MethodPost, "/auth/register",
		`{"full_name":"Nguyễn Văn A","email":"a@x.vn","phone_number":"0901","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Account created", body["message"])
	assert.EqualValues(t, 1, body["driver_id"])

	_, body = doJSON(t, r, http.MethodPost, "/auth/register",
		`{"full_name":"Nguyễn Văn A","email":"a@x.vn","phone_number":"0901","password":"secret"}`)
	assert.Equal(t, "Email already exists", body["error"])

	_, body = doJSON(t, r, http.MethodPost, "/auth/login", `{"email":"a@x.vn","password":"secret"}`)
	assert.EqualValues(t, 1, body["driver_id"])
	assert.Equal(t, "a@x.vn", body["email"])

	_, body = doJSON(t, r, http.MethodPost, "/auth/login", `{"email":"a@x.vn","password":"wrong"}`)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	r, _, lot := newTestRouter(t)

	_, body := doJSON(t, r, http.MethodPost, "/session/start",
		`{"driver_id":1,"plate_no":"51A-123","lot_id":`+itoa(lot.ID)+`,"spot_label":"S1"}`)
	require.Equal(t, "Session started", body["message"])

	// Spot S1 giờ đang bận.
	code, raw := doJSONRaw(t, r, http.MethodGet, "/session/active_spots?lot_id="+itoa(lot.ID), "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["S1"]`, raw)

	_, body = doJSON(t, r, http.MethodGet, "/session/has_unpaid?driver_id=1", "")
	assert.Equal(t, false, body["has_unpaid"])

	_, body = doJSON(t, r, http.MethodPost, "/session/end", `{"plate_no":"51A-123"}`)
	require.Equal(t, "Exit processed", body["message"])
	assert.EqualValues(t, 5, body["fee"])
	logID := int(body["log_id"].(float64))

	_, body = doJSON(t, r, http.MethodGet, "/session/has_unpaid?driver_id=1", "")
	assert.Equal(t, true, body["has_unpaid"])
	assert.EqualValues(t, 1, body["unpaid_count"])

	_, body = doJSON(t, r, http.MethodPost, "/payment/pay",
		`{"driver_id":1,"log_id":`+itoa(logID)+`,"credit_card_no":"4111"}`)
	assert.Equal(t, "Payment processed. You paid $5.00", body["message"])
	assert.EqualValues(t, 5, body["amount"])

	_, body = doJSON(t, r, http.MethodPost, "/payment/pay_all", `{"driver_id":1}`)
	assert.Equal(t, "No unpaid logs", body["message"])
}

func doJSONRaw(t *testing.T, r *gin.Engine, method, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func itoa(n int) string { return strconv.Itoa(n) }
