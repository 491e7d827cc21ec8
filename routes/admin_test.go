package routes

import (
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
)

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	tx := database.DB.Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func TestAdminRoutes_RejectNonAdmins(t *testing.T) {
	router := setupTestRouter(t)
	_, customerToken := createTestUser(t, "cust50", models.RoleCustomer)
	_, providerToken := createTestUser(t, "prov50", models.RoleProvider)

	for _, token := range []string{customerToken, providerToken} {
		w := doRequest(t, router, http.MethodGet, "/api/v1/admin/dashboard", token, nil)
		expectStatus(t, w, http.StatusForbidden)
	}
}

func TestAdminDashboard_AggregatesModerationView(t *testing.T) {
	router := setupTestRouter(t)
	_, adminToken := createTestUser(t, "admin50", models.RoleAdmin)
	provider, _ := createTestUser(t, "prov51", models.RoleProvider)
	customer, customerToken := createTestUser(t, "cust51", models.RoleCustomer)

	service := createTestService(t, provider.ID, "Home cleaning", "Springfield", true)
	createTestService(t, provider.ID, "Retired offer", "Springfield", false)

	booking := models.Booking{
		CustomerID: customer.ID,
		ProviderID: provider.ID,
		ServiceID:  service.ID,
		Status:     models.BookingStatusHired,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/complaints", customerToken,
		map[string]interface{}{"complaint_text": "Overcharged for the job"})
	expectStatus(t, w, http.StatusCreated)

	w = doRequest(t, router, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if got := len(body["providers"].([]interface{})); got != 1 {
		t.Fatalf("expected 1 provider, got %d", got)
	}
	if got := len(body["customers"].([]interface{})); got != 1 {
		t.Fatalf("expected 1 customer, got %d", got)
	}
	// Unavailable services are excluded from the dashboard
	if got := len(body["active_services"].([]interface{})); got != 1 {
		t.Fatalf("expected 1 active service, got %d", got)
	}
	if got := len(body["bookings"].([]interface{})); got != 1 {
		t.Fatalf("expected 1 booking, got %d", got)
	}
	if got := len(body["complaints"].([]interface{})); got != 1 {
		t.Fatalf("expected 1 complaint, got %d", got)
	}
}

func TestDeleteProvider_CascadesOwnedRows(t *testing.T) {
	router := setupTestRouter(t)
	_, adminToken := createTestUser(t, "admin51", models.RoleAdmin)
	provider, _ := createTestUser(t, "prov52", models.RoleProvider)
	customer, _ := createTestUser(t, "cust52", models.RoleCustomer)

	service := createTestService(t, provider.ID, "Lawn mowing", "Springfield", true)

	booking := models.Booking{
		CustomerID: customer.ID,
		ProviderID: provider.ID,
		ServiceID:  service.ID,
		Status:     models.BookingStatusPending,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	chat := models.ChatMessage{
		CustomerID: customer.ID,
		ProviderID: provider.ID,
		Message:    "When can you come?",
		SenderRole: models.RoleCustomer,
	}
	if err := database.DB.Create(&chat).Error; err != nil {
		t.Fatalf("failed to create chat message: %v", err)
	}

	w := doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/admin/providers/%d", provider.ID), adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	if err := database.DB.First(&models.User{}, provider.ID).Error; err != gorm.ErrRecordNotFound {
		t.Fatalf("expected provider row gone, got err=%v", err)
	}
	if got := countRows(t, &models.Service{}, "provider_id = ?", provider.ID); got != 0 {
		t.Fatalf("expected provider services gone, got %d", got)
	}
	if got := countRows(t, &models.Booking{}, "provider_id = ?", provider.ID); got != 0 {
		t.Fatalf("expected provider bookings gone, got %d", got)
	}
	if got := countRows(t, &models.ChatMessage{}, "provider_id = ?", provider.ID); got != 0 {
		t.Fatalf("expected provider chats gone, got %d", got)
	}

	// The customer on the other side of those rows survives
	if err := database.DB.First(&models.User{}, customer.ID).Error; err != nil {
		t.Fatalf("expected customer untouched: %v", err)
	}
}

func TestDeleteCustomer_WrongRoleIsNotFound(t *testing.T) {
	router := setupTestRouter(t)
	_, adminToken := createTestUser(t, "admin52", models.RoleAdmin)
	provider, _ := createTestUser(t, "prov53", models.RoleProvider)

	// A provider id on the customer delete route must not match
	w := doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/admin/customers/%d", provider.ID), adminToken, nil)
	expectStatus(t, w, http.StatusNotFound)

	if err := database.DB.First(&models.User{}, provider.ID).Error; err != nil {
		t.Fatalf("expected provider untouched: %v", err)
	}
}

func TestDeleteService_RemovesBookings(t *testing.T) {
	router := setupTestRouter(t)
	_, adminToken := createTestUser(t, "admin53", models.RoleAdmin)
	provider, _ := createTestUser(t, "prov54", models.RoleProvider)
	customer, _ := createTestUser(t, "cust54", models.RoleCustomer)

	service := createTestService(t, provider.ID, "Garden cleanup", "Springfield", true)
	keep := createTestService(t, provider.ID, "Office cleaning", "Springfield", true)

	booking := models.Booking{
		CustomerID: customer.ID,
		ProviderID: provider.ID,
		ServiceID:  service.ID,
		Status:     models.BookingStatusHired,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	w := doRequest(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/admin/services/%d", service.ID), adminToken, nil)
	expectStatus(t, w, http.StatusOK)

	if err := database.DB.First(&models.Service{}, service.ID).Error; err != gorm.ErrRecordNotFound {
		t.Fatalf("expected service gone, got err=%v", err)
	}
	if got := countRows(t, &models.Booking{}, "service_id = ?", service.ID); got != 0 {
		t.Fatalf("expected bookings of the deleted service gone, got %d", got)
	}
	if err := database.DB.First(&models.Service{}, keep.ID).Error; err != nil {
		t.Fatalf("expected sibling service untouched: %v", err)
	}
}

func TestResolveComplaint_Idempotent(t *testing.T) {
	router := setupTestRouter(t)
	_, adminToken := createTestUser(t, "admin54", models.RoleAdmin)
	customer, _ := createTestUser(t, "cust55", models.RoleCustomer)

	complaint := models.Complaint{
		UserID:        customer.ID,
		ComplaintText: "No-show twice in a row",
		Status:        models.ComplaintStatusPending,
	}
	if err := database.DB.Create(&complaint).Error; err != nil {
		t.Fatalf("failed to create complaint: %v", err)
	}

	for i := 0; i < 2; i++ {
		w := doRequest(t, router, http.MethodPost,
			fmt.Sprintf("/api/v1/admin/complaints/%d/resolve", complaint.ID), adminToken, nil)
		expectStatus(t, w, http.StatusOK)
	}

	var reloaded models.Complaint
	if err := database.DB.First(&reloaded, complaint.ID).Error; err != nil {
		t.Fatalf("failed to reload complaint: %v", err)
	}
	if reloaded.Status != models.ComplaintStatusResolved {
		t.Fatalf("expected Resolved, got %s", reloaded.Status)
	}
}
