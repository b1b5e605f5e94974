package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SwiftWareCo/GolfSync-sub005/internal/dto"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/timewindow"
	pkgerrors "github.com/SwiftWareCo/GolfSync-sub005/pkg/errors"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock LotteryEntryService ──

type mockLotteryEntryService struct {
	submitResult *dto.EntryResponse
	submitErr    error
	cancelResult *dto.EntryResponse
	cancelErr    error
	getResult    *dto.EntryResponse
	getErr       error
	dataResult   *dto.LotteryDateDataResponse
	dataErr      error
}

func (m *mockLotteryEntryService) Submit(_ context.Context, _ string, _ *dto.SubmitEntryRequest) (*dto.EntryResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockLotteryEntryService) Cancel(_ context.Context, _, _ string, _, _ bool) (*dto.EntryResponse, error) {
	return m.cancelResult, m.cancelErr
}
func (m *mockLotteryEntryService) GetByID(_ context.Context, _ string) (*dto.EntryResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockLotteryEntryService) DataForDate(_ context.Context, _ string) (*dto.LotteryDateDataResponse, error) {
	return m.dataResult, m.dataErr
}

// ── Mock LotteryProcessingService ──

type mockLotteryProcessingService struct {
	processResult *dto.ProcessLotteryResponse
	processErr    error
}

func (m *mockLotteryProcessingService) ProcessDate(_ context.Context, _ string, _ *dto.ProcessLotteryRequest) (*dto.ProcessLotteryResponse, error) {
	return m.processResult, m.processErr
}

// ── Mock SpeedProfileService ──

type mockSpeedProfileService struct {
	getResult        *dto.SpeedProfileResponse
	getErr           error
	listResult       []dto.SpeedProfileResponse
	listTotal        int64
	listErr          error
	updateResult     *dto.SpeedProfileResponse
	updateErr        error
	recordResult     *dto.SpeedProfileResponse
	recordErr        error
	reclassifyResult *dto.ReclassifyResponse
	reclassifyErr    error
}

func (m *mockSpeedProfileService) Get(_ context.Context, _ string) (*dto.SpeedProfileResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSpeedProfileService) List(_ context.Context, _ *dto.PaginationRequest) ([]dto.SpeedProfileResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockSpeedProfileService) Update(_ context.Context, _ string, _ *dto.UpdateSpeedProfileRequest, _ string) (*dto.SpeedProfileResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSpeedProfileService) RecordRound(_ context.Context, _ string, _ *dto.RecordRoundRequest) (*dto.SpeedProfileResponse, error) {
	return m.recordResult, m.recordErr
}
func (m *mockSpeedProfileService) ReclassifyAll(_ context.Context, _ string) (*dto.ReclassifyResponse, error) {
	return m.reclassifyResult, m.reclassifyErr
}

// ── Mock FairnessService ──

type mockFairnessService struct {
	getResult     *dto.FairnessScoreResponse
	getErr        error
	listResult    []dto.FairnessScoreResponse
	listErr       error
	ensureCreated int64
	ensureErr     error
}

func (m *mockFairnessService) Get(_ context.Context, _, _ string) (*dto.FairnessScoreResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockFairnessService) ListByMonth(_ context.Context, _ string) ([]dto.FairnessScoreResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockFairnessService) EnsureMonth(_ context.Context, _ string) (int64, error) {
	return m.ensureCreated, m.ensureErr
}

// ── Mock AlgorithmConfigService ──

type mockAlgorithmConfigService struct {
	getResult    *dto.AlgorithmConfigResponse
	getErr       error
	updateResult *dto.AlgorithmConfigResponse
	updateErr    error
}

func (m *mockAlgorithmConfigService) Get(_ context.Context) (*dto.AlgorithmConfigResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAlgorithmConfigService) Update(_ context.Context, _ *dto.UpdateAlgorithmConfigRequest, _ string) (*dto.AlgorithmConfigResponse, error) {
	return m.updateResult, m.updateErr
}

// ── Mock MaintenanceService ──

type mockMaintenanceService struct {
	checkResult   *dto.MaintenanceResultResponse
	checkErr      error
	triggerResult *dto.MaintenanceResultResponse
	triggerErr    error
}

func (m *mockMaintenanceService) CheckAndRun(_ context.Context) (*dto.MaintenanceResultResponse, error) {
	return m.checkResult, m.checkErr
}
func (m *mockMaintenanceService) TriggerManual(_ context.Context) (*dto.MaintenanceResultResponse, error) {
	return m.triggerResult, m.triggerErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportTeeSheet(_ context.Context, _ string, _ timewindow.SheetConfig) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	feed     string
	filename string
	err      error
}

func (m *mockCalendarService) MemberFeed(_ context.Context, _, _, _ string) (string, string, error) {
	return m.feed, m.filename, m.err
}

// ── Mock ChargeSignalService ──

type mockChargeSignalService struct {
	listResult []dto.ChargeSignalResponse
	listTotal  int64
	listErr    error
}

func (m *mockChargeSignalService) List(_ context.Context, _ *dto.ChargeSignalListRequest) ([]dto.ChargeSignalResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() (*gin.Engine, *gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	return r, c, w
}

func setAuth(c *gin.Context) {
	c.Set("member_id", "test-member-id")
	c.Set("role", "staff")
	c.Set("name", "Test Member")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func validSubmitRequest() dto.SubmitEntryRequest {
	return dto.SubmitEntryRequest{
		LotteryDate:     "2026-06-01",
		EntryType:       "INDIVIDUAL",
		PreferredWindow: "MORNING",
	}
}

// ═══════════════════════════════════════════════════════════
// LotteryHandler Tests
// ═══════════════════════════════════════════════════════════

func newLotteryHandler(entry *mockLotteryEntryService, processing *mockLotteryProcessingService) *LotteryHandler {
	return NewLotteryHandler(entry, processing, nil, 0)
}

func TestLotteryHandler_Submit_Success(t *testing.T) {
	mock := &mockLotteryEntryService{
		submitResult: &dto.EntryResponse{
			ID:          "entry-1",
			LotteryDate: "2026-06-01",
			EntryType:   "INDIVIDUAL",
			Status:      "PENDING",
		},
	}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/lottery/entries", jsonBody(validSubmitRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lottery/entries", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestLotteryHandler_Submit_BadJSON(t *testing.T) {
	h := newLotteryHandler(&mockLotteryEntryService{}, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/lottery/entries", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lottery/entries", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestLotteryHandler_Submit_Unauthenticated(t *testing.T) {
	h := newLotteryHandler(&mockLotteryEntryService{}, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/lottery/entries", jsonBody(validSubmitRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lottery/entries", h.Submit)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLotteryHandler_Submit_AlreadyEntered(t *testing.T) {
	mock := &mockLotteryEntryService{submitErr: service.ErrMemberAlreadyEntered}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/lottery/entries", jsonBody(validSubmitRequest()))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lottery/entries", func(c *gin.Context) {
		setAuth(c)
		h.Submit(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11113 {
		t.Errorf("expected error code 11113, got %d", resp.Code)
	}
}

func TestLotteryHandler_Cancel_Success(t *testing.T) {
	mock := &mockLotteryEntryService{
		cancelResult: &dto.EntryResponse{
			ID:     "entry-1",
			Status: "CANCELLED",
		},
	}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/lottery/entries/entry-1", jsonBody(dto.CancelEntryRequest{IsGroup: false}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.DELETE("/lottery/entries/:id", func(c *gin.Context) {
		setAuth(c)
		h.Cancel(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLotteryHandler_Cancel_EmptyBody(t *testing.T) {
	mock := &mockLotteryEntryService{
		cancelResult: &dto.EntryResponse{ID: "entry-1", Status: "CANCELLED"},
	}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/lottery/entries/entry-1", nil)

	r := gin.New()
	r.DELETE("/lottery/entries/:id", func(c *gin.Context) {
		setAuth(c)
		h.Cancel(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLotteryHandler_Cancel_NotOrganizer(t *testing.T) {
	mock := &mockLotteryEntryService{cancelErr: service.ErrNotEntryOrganizer}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("DELETE", "/lottery/entries/entry-1", nil)

	r := gin.New()
	r.DELETE("/lottery/entries/:id", func(c *gin.Context) {
		setAuth(c)
		h.Cancel(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11104 {
		t.Errorf("expected error code 11104, got %d", resp.Code)
	}
}

func TestLotteryHandler_Get_NotFound(t *testing.T) {
	mock := &mockLotteryEntryService{getErr: service.ErrEntryNotFound}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/lottery/entries/missing", nil)

	r := gin.New()
	r.GET("/lottery/entries/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11101 {
		t.Errorf("expected error code 11101, got %d", resp.Code)
	}
}

func TestLotteryHandler_DateData_Success(t *testing.T) {
	mock := &mockLotteryEntryService{
		dataResult: &dto.LotteryDateDataResponse{
			Date: "2026-06-01",
			Stats: dto.LotteryDateStats{
				TotalEntries:   3,
				PendingEntries: 2,
			},
		},
	}
	h := newLotteryHandler(mock, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/lottery/dates/2026-06-01", nil)

	r := gin.New()
	r.GET("/lottery/dates/:date", func(c *gin.Context) {
		setAuth(c)
		h.DateData(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLotteryHandler_Process_Success(t *testing.T) {
	mock := &mockLotteryProcessingService{
		processResult: &dto.ProcessLotteryResponse{
			Date:           "2026-06-01",
			TotalPending:   5,
			ProcessedCount: 5,
		},
	}
	h := newLotteryHandler(&mockLotteryEntryService{}, mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/lottery/process/2026-06-01", jsonBody(dto.ProcessLotteryRequest{
		StartTime: "07:00",
		EndTime:   "15:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lottery/process/:date", func(c *gin.Context) {
		setAuth(c)
		h.Process(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLotteryHandler_Process_BadJSON(t *testing.T) {
	h := newLotteryHandler(&mockLotteryEntryService{}, &mockLotteryProcessingService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/lottery/process/2026-06-01", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/lottery/process/:date", func(c *gin.Context) {
		setAuth(c)
		h.Process(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}

func TestLotteryHandler_Process_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"InvalidDate", service.ErrInvalidLotteryDate, 400, 12001},
		{"NotAvailable", service.ErrLotteryNotAvailable, 409, 12101},
		{"NoBlocks", service.ErrNoTimeBlocks, 404, 12102},
		{"Internal", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLotteryProcessingService{processErr: tt.err}
			h := newLotteryHandler(&mockLotteryEntryService{}, mock)

			_, _, w := setupGin()
			req := httptest.NewRequest("POST", "/lottery/process/2026-06-01", jsonBody(dto.ProcessLotteryRequest{
				StartTime: "07:00",
				EndTime:   "15:00",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/lottery/process/:date", func(c *gin.Context) {
				setAuth(c)
				h.Process(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestLotteryHandler_Entry_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrEntryNotFound, 404, 11101},
		{"NotPending", service.ErrEntryNotPending, 409, 11102},
		{"TypeMismatch", service.ErrEntryTypeMismatch, 400, 11103},
		{"NotOrganizer", service.ErrNotEntryOrganizer, 403, 11104},
		{"InvalidDate", service.ErrInvalidLotteryDate, 400, 11105},
		{"InvalidWindow", service.ErrInvalidWindow, 400, 11106},
		{"AlternateSame", service.ErrAlternateSameAsPreferred, 400, 11107},
		{"GroupSize", service.ErrInvalidGroupSize, 400, 11108},
		{"PartyTooLarge", service.ErrPartyTooLarge, 400, 11109},
		{"FillsNotAllowed", service.ErrFillsNotAllowed, 400, 11110},
		{"MembersNotAllowed", service.ErrMembersNotAllowed, 400, 11111},
		{"DuplicateMember", service.ErrDuplicateMember, 400, 11112},
		{"AlreadyEntered", service.ErrMemberAlreadyEntered, 409, 11113},
		{"InGroupEntry", service.ErrMemberInGroupEntry, 409, 11114},
		{"GroupConflict", service.ErrGroupMemberConflict, 409, 11115},
		{"OrganizerGroup", service.ErrOrganizerGroupExists, 409, 11116},
		{"MemberNotFound", service.ErrMemberNotFound, 404, 11117},
		{"MemberInactive", service.ErrMemberInactive, 409, 11118},
		{"Internal", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLotteryEntryService{getErr: tt.err}
			h := newLotteryHandler(mock, &mockLotteryProcessingService{})

			_, _, w := setupGin()
			req := httptest.NewRequest("GET", "/lottery/entries/entry-1", nil)

			r := gin.New()
			r.GET("/lottery/entries/:id", h.Get)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// SpeedProfileHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSpeedProfileHandler_Get_Success(t *testing.T) {
	mock := &mockSpeedProfileService{
		getResult: &dto.SpeedProfileResponse{
			MemberID:  "member-1",
			SpeedTier: "FAST",
		},
	}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/speed-profiles/member-1", nil)

	r := gin.New()
	r.GET("/speed-profiles/:memberId", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSpeedProfileHandler_Get_NotFound(t *testing.T) {
	mock := &mockSpeedProfileService{getErr: service.ErrProfileNotFound}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/speed-profiles/missing", nil)

	r := gin.New()
	r.GET("/speed-profiles/:memberId", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13101 {
		t.Errorf("expected error code 13101, got %d", resp.Code)
	}
}

func TestSpeedProfileHandler_List_Success(t *testing.T) {
	mock := &mockSpeedProfileService{
		listResult: []dto.SpeedProfileResponse{
			{MemberID: "member-1", SpeedTier: "FAST"},
			{MemberID: "member-2", SpeedTier: "SLOW"},
		},
		listTotal: 2,
	}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/speed-profiles?page=1&page_size=10", nil)

	r := gin.New()
	r.GET("/speed-profiles", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestSpeedProfileHandler_Update_Success(t *testing.T) {
	tier := "SLOW"
	mock := &mockSpeedProfileService{
		updateResult: &dto.SpeedProfileResponse{
			MemberID:       "member-1",
			SpeedTier:      "SLOW",
			ManualOverride: true,
		},
	}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/speed-profiles/member-1", jsonBody(dto.UpdateSpeedProfileRequest{
		SpeedTier: &tier,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/speed-profiles/:memberId", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSpeedProfileHandler_Update_OptimisticLock(t *testing.T) {
	tier := "SLOW"
	mock := &mockSpeedProfileService{updateErr: pkgerrors.ErrOptimisticLock}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/speed-profiles/member-1", jsonBody(dto.UpdateSpeedProfileRequest{
		SpeedTier: &tier,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/speed-profiles/:memberId", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13105 {
		t.Errorf("expected error code 13105, got %d", resp.Code)
	}
}

func TestSpeedProfileHandler_RecordRound_Success(t *testing.T) {
	mock := &mockSpeedProfileService{
		recordResult: &dto.SpeedProfileResponse{
			MemberID:       "member-1",
			AverageMinutes: 215,
			RoundsSampled:  4,
		},
	}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/speed-profiles/member-1/rounds", jsonBody(dto.RecordRoundRequest{
		Minutes: 215,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/speed-profiles/:memberId/rounds", h.RecordRound)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSpeedProfileHandler_RecordRound_InvalidMinutes(t *testing.T) {
	mock := &mockSpeedProfileService{recordErr: service.ErrInvalidRoundMinutes}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/speed-profiles/member-1/rounds", jsonBody(dto.RecordRoundRequest{
		Minutes: 30,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/speed-profiles/:memberId/rounds", h.RecordRound)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13104 {
		t.Errorf("expected error code 13104, got %d", resp.Code)
	}
}

func TestSpeedProfileHandler_ReclassifyAll_Success(t *testing.T) {
	mock := &mockSpeedProfileService{
		reclassifyResult: &dto.ReclassifyResponse{ReclassifiedCount: 3},
	}
	h := NewSpeedProfileHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/speed-profiles/reclassify", nil)

	r := gin.New()
	r.POST("/speed-profiles/reclassify", func(c *gin.Context) {
		setAuth(c)
		h.ReclassifyAll(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// FairnessHandler Tests
// ═══════════════════════════════════════════════════════════

func TestFairnessHandler_Get_Success(t *testing.T) {
	mock := &mockFairnessService{
		getResult: &dto.FairnessScoreResponse{
			MemberID:      "member-1",
			Month:         "2026-06",
			FairnessScore: 15,
			Band:          "medium",
		},
	}
	h := NewFairnessHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/fairness-scores/member-1?month=2026-06", nil)

	r := gin.New()
	r.GET("/fairness-scores/:memberId", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestFairnessHandler_Get_DefaultsMonth(t *testing.T) {
	mock := &mockFairnessService{
		getResult: &dto.FairnessScoreResponse{MemberID: "member-1"},
	}
	h := NewFairnessHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/fairness-scores/member-1", nil)

	r := gin.New()
	r.GET("/fairness-scores/:memberId", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestFairnessHandler_Get_NotFound(t *testing.T) {
	mock := &mockFairnessService{getErr: service.ErrFairnessScoreNotFound}
	h := NewFairnessHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/fairness-scores/member-1?month=2026-06", nil)

	r := gin.New()
	r.GET("/fairness-scores/:memberId", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14101 {
		t.Errorf("expected error code 14101, got %d", resp.Code)
	}
}

func TestFairnessHandler_ListByMonth_Success(t *testing.T) {
	mock := &mockFairnessService{
		listResult: []dto.FairnessScoreResponse{
			{MemberID: "member-1", Month: "2026-06", FairnessScore: 25, Band: "high"},
			{MemberID: "member-2", Month: "2026-06", FairnessScore: 0, Band: "low"},
		},
	}
	h := NewFairnessHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/fairness-scores?month=2026-06", nil)

	r := gin.New()
	r.GET("/fairness-scores", h.ListByMonth)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestFairnessHandler_EnsureMonth_Success(t *testing.T) {
	mock := &mockFairnessService{ensureCreated: 12}
	h := NewFairnessHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/fairness-scores/ensure", jsonBody(dto.EnsureFairnessMonthRequest{
		Month: "2026-06",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fairness-scores/ensure", func(c *gin.Context) {
		setAuth(c)
		h.EnsureMonth(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestFairnessHandler_EnsureMonth_BadMonth(t *testing.T) {
	h := NewFairnessHandler(&mockFairnessService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/fairness-scores/ensure", jsonBody(map[string]string{
		"month": "2026-6",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/fairness-scores/ensure", func(c *gin.Context) {
		setAuth(c)
		h.EnsureMonth(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AlgorithmConfigHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAlgorithmConfigHandler_Get_Success(t *testing.T) {
	mock := &mockAlgorithmConfigService{
		getResult: &dto.AlgorithmConfigResponse{
			FastThresholdMinutes:    210,
			AverageThresholdMinutes: 250,
			FairnessWeight:          10,
		},
	}
	h := NewAlgorithmConfigHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/algorithm-config", nil)

	r := gin.New()
	r.GET("/algorithm-config", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAlgorithmConfigHandler_Update_Success(t *testing.T) {
	fast := 200
	mock := &mockAlgorithmConfigService{
		updateResult: &dto.AlgorithmConfigResponse{FastThresholdMinutes: 200},
	}
	h := NewAlgorithmConfigHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/algorithm-config", jsonBody(dto.UpdateAlgorithmConfigRequest{
		FastThresholdMinutes: &fast,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/algorithm-config", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAlgorithmConfigHandler_Update_ThresholdOrder(t *testing.T) {
	fast := 300
	avg := 250
	mock := &mockAlgorithmConfigService{updateErr: service.ErrThresholdOrder}
	h := NewAlgorithmConfigHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("PUT", "/algorithm-config", jsonBody(dto.UpdateAlgorithmConfigRequest{
		FastThresholdMinutes:    &fast,
		AverageThresholdMinutes: &avg,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/algorithm-config", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 15101 {
		t.Errorf("expected error code 15101, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// MaintenanceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestMaintenanceHandler_MonthlyReset_Success(t *testing.T) {
	mock := &mockMaintenanceService{
		checkResult: &dto.MaintenanceResultResponse{
			RunType:         "MONTHLY_RESET",
			Month:           "2026-06",
			RecordsAffected: 40,
		},
	}
	h := NewMaintenanceHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/maintenance/monthly-reset", nil)

	r := gin.New()
	r.POST("/maintenance/monthly-reset", func(c *gin.Context) {
		setAuth(c)
		h.MonthlyReset(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestMaintenanceHandler_MonthlyReset_AlreadyCompleted(t *testing.T) {
	mock := &mockMaintenanceService{
		checkResult: &dto.MaintenanceResultResponse{
			RunType:          "MONTHLY_RESET",
			Month:            "2026-06",
			AlreadyCompleted: true,
			RecordsAffected:  0,
		},
	}
	h := NewMaintenanceHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/maintenance/monthly-reset", nil)

	r := gin.New()
	r.POST("/maintenance/monthly-reset", func(c *gin.Context) {
		setAuth(c)
		h.MonthlyReset(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["already_completed"] != true {
		t.Error("expected already_completed true")
	}
}

func TestMaintenanceHandler_TriggerReset_Success(t *testing.T) {
	mock := &mockMaintenanceService{
		triggerResult: &dto.MaintenanceResultResponse{
			RunType:         "MONTHLY_RESET",
			Month:           "2026-06",
			RecordsAffected: 40,
			TriggeredBy:     "MANUAL",
		},
	}
	h := NewMaintenanceHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/maintenance/monthly-reset/trigger", nil)

	r := gin.New()
	r.POST("/maintenance/monthly-reset/trigger", func(c *gin.Context) {
		setAuth(c)
		h.TriggerReset(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestMaintenanceHandler_MonthlyReset_Error(t *testing.T) {
	mock := &mockMaintenanceService{checkErr: errors.New("db down")}
	h := NewMaintenanceHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("POST", "/maintenance/monthly-reset", nil)

	r := gin.New()
	r.POST("/maintenance/monthly-reset", func(c *gin.Context) {
		setAuth(c)
		h.MonthlyReset(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockExportService{
		buf:      buf,
		filename: "tee_sheet_2026-06-01.xlsx",
	}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/tee-sheet?date=2026-06-01&start_time=07:00&end_time=15:00", nil)

	r := gin.New()
	r.GET("/export/tee-sheet", h.TeeSheet)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_MissingDate(t *testing.T) {
	mock := &mockExportService{}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/tee-sheet", nil)

	r := gin.New()
	r.GET("/export/tee-sheet", h.TeeSheet)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_NoBlocks(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoBlocks}
	h := NewExportHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/export/tee-sheet?date=2026-06-01", nil)

	r := gin.New()
	r.GET("/export/tee-sheet", h.TeeSheet)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 16101 {
		t.Errorf("expected error code 16101, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_MemberFeed_Success(t *testing.T) {
	mock := &mockCalendarService{
		feed:     "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
		filename: "tee_times_2026-06-01_2026-06-30.ics",
	}
	h := NewCalendarHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/calendar/feed?from=2026-06-01&to=2026-06-30", nil)

	r := gin.New()
	r.GET("/calendar/feed", func(c *gin.Context) {
		setAuth(c)
		h.MemberFeed(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "text/calendar; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
}

func TestCalendarHandler_MemberFeed_MissingRange(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/calendar/feed", nil)

	r := gin.New()
	r.GET("/calendar/feed", func(c *gin.Context) {
		setAuth(c)
		h.MemberFeed(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected error code 17001, got %d", resp.Code)
	}
}

func TestCalendarHandler_MemberFeed_InvalidRange(t *testing.T) {
	mock := &mockCalendarService{err: service.ErrInvalidDateRange}
	h := NewCalendarHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/calendar/feed?from=2026-06-30&to=2026-06-01", nil)

	r := gin.New()
	r.GET("/calendar/feed", func(c *gin.Context) {
		setAuth(c)
		h.MemberFeed(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17101 {
		t.Errorf("expected error code 17101, got %d", resp.Code)
	}
}

func TestCalendarHandler_MemberFeed_Unauthenticated(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/calendar/feed?from=2026-06-01&to=2026-06-30", nil)

	r := gin.New()
	r.GET("/calendar/feed", h.MemberFeed)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ChargeSignalHandler Tests
// ═══════════════════════════════════════════════════════════

func TestChargeSignalHandler_List_Success(t *testing.T) {
	mock := &mockChargeSignalService{
		listResult: []dto.ChargeSignalResponse{
			{SignalID: "signal-1", MemberID: "member-1", Amount: "25.00"},
		},
		listTotal: 1,
	}
	h := NewChargeSignalHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/charge-signals?since=2026-06-01T00:00:00Z", nil)

	r := gin.New()
	r.GET("/charge-signals", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestChargeSignalHandler_List_InvalidSince(t *testing.T) {
	mock := &mockChargeSignalService{listErr: service.ErrInvalidSince}
	h := NewChargeSignalHandler(mock)

	_, _, w := setupGin()
	req := httptest.NewRequest("GET", "/charge-signals?since=yesterday", nil)

	r := gin.New()
	r.GET("/charge-signals", h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 18101 {
		t.Errorf("expected error code 18101, got %d", resp.Code)
	}
}
