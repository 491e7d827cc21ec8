package routes

import (
	"net/http"
	"testing"

	"local-services-server/database"
	"local-services-server/models"
)

func TestCreateService_RequiresProviderRole(t *testing.T) {
	router := setupTestRouter(t)
	_, customerToken := createTestUser(t, "cust1", models.RoleCustomer)
	_, providerToken := createTestUser(t, "prov1", models.RoleProvider)

	payload := map[string]interface{}{
		"name":        "Window cleaning",
		"description": "Inside and out",
		"price":       25.0,
		"location":    "Springfield",
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/services", customerToken, payload)
	expectStatus(t, w, http.StatusForbidden)

	w = doRequest(t, router, http.MethodPost, "/api/v1/services", providerToken, payload)
	expectStatus(t, w, http.StatusCreated)
}

func TestCreateService_RejectsNegativePrice(t *testing.T) {
	router := setupTestRouter(t)
	_, providerToken := createTestUser(t, "prov2", models.RoleProvider)

	w := doRequest(t, router, http.MethodPost, "/api/v1/services", providerToken, map[string]interface{}{
		"name":        "Free money",
		"description": "should not work",
		"price":       -5.0,
		"location":    "Nowhere",
	})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestListServices_FiltersByQueryAndAvailability(t *testing.T) {
	router := setupTestRouter(t)
	provider, _ := createTestUser(t, "prov3", models.RoleProvider)

	createTestService(t, provider.ID, "Deep cleaning", "Springfield", true)
	createTestService(t, provider.ID, "Oven cleaning", "Shelbyville", true)
	createTestService(t, provider.ID, "Retired cleaning offer", "Springfield", false)
	createTestService(t, provider.ID, "Plumbing", "Springfield", true)

	w := doRequest(t, router, http.MethodGet, "/api/v1/services?q=cleaning", "", nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	services, ok := body["services"].([]interface{})
	if !ok {
		t.Fatalf("expected a services array, got %T", body["services"])
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 matching services, got %d", len(services))
	}
	for _, raw := range services {
		entry := raw.(map[string]interface{})
		name := entry["name"].(string)
		if name != "Deep cleaning" && name != "Oven cleaning" {
			t.Fatalf("unexpected service in results: %s", name)
		}
		if entry["is_available"] != true {
			t.Fatalf("expected only available services, got %s unavailable", name)
		}
	}
}

func TestListServices_FiltersByLocation(t *testing.T) {
	router := setupTestRouter(t)
	provider, _ := createTestUser(t, "prov4", models.RoleProvider)

	createTestService(t, provider.ID, "Deep cleaning", "Springfield", true)
	createTestService(t, provider.ID, "Oven cleaning", "Shelbyville", true)

	w := doRequest(t, router, http.MethodGet, "/api/v1/services?q=cleaning&location=Shelby", "", nil)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	services := body["services"].([]interface{})
	if len(services) != 1 {
		t.Fatalf("expected 1 matching service, got %d", len(services))
	}
	entry := services[0].(map[string]interface{})
	if entry["name"] != "Oven cleaning" {
		t.Fatalf("expected Oven cleaning, got %v", entry["name"])
	}
}

func TestAvgRating_ZeroWithoutRatedBookings(t *testing.T) {
	setupTestRouter(t)
	provider, _ := createTestUser(t, "prov5", models.RoleProvider)
	customer, _ := createTestUser(t, "cust5", models.RoleCustomer)

	service := createTestService(t, provider.ID, "Gardening", "Springfield", true)

	// An unrated booking must not contribute to the average
	booking := models.Booking{
		CustomerID: customer.ID,
		ProviderID: provider.ID,
		ServiceID:  service.ID,
		Status:     models.BookingStatusHired,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}

	avg, err := service.AvgRating(database.DB)
	if err != nil {
		t.Fatalf("AvgRating failed: %v", err)
	}
	if avg != 0 {
		t.Fatalf("expected avg rating 0, got %v", avg)
	}
}

func TestAvgRating_MeanOfRatedBookings(t *testing.T) {
	setupTestRouter(t)
	provider, _ := createTestUser(t, "prov6", models.RoleProvider)
	customer, _ := createTestUser(t, "cust6", models.RoleCustomer)

	service := createTestService(t, provider.ID, "Painting", "Springfield", true)

	for _, rating := range []int{3, 5, 0} {
		booking := models.Booking{
			CustomerID: customer.ID,
			ProviderID: provider.ID,
			ServiceID:  service.ID,
			Status:     models.BookingStatusHired,
			Rating:     rating,
		}
		if err := database.DB.Create(&booking).Error; err != nil {
			t.Fatalf("failed to create booking: %v", err)
		}
	}

	avg, err := service.AvgRating(database.DB)
	if err != nil {
		t.Fatalf("AvgRating failed: %v", err)
	}
	if avg != 4.0 {
		t.Fatalf("expected avg rating 4.0 for ratings {3,5}, got %v", avg)
	}
}

func TestGetService_NotFound(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/services/9999", "", nil)
	expectStatus(t, w, http.StatusNotFound)
}
