package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestRideLifecycleOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)
	clientToken := registerUser(t, r, clientBody())
	driverToken := registerUser(t, r, driverBody())

	// Client opens a freight request.
	w := doJSON(t, r, http.MethodPost, "/api/rides", clientToken, map[string]any{
		"from":          "Centro, Porto Velho",
		"to":            "Bairro Triângulo",
		"distance":      "PERTO",
		"vehicleType":   "CARRO",
		"selectedItems": []string{"Sofá"},
		"needHelper":    true,
	})
	if w.Code != 201 {
		t.Fatalf("create ride status = %d: %s", w.Code, w.Body.String())
	}
	ride := decode(t, w)
	if ride["status"] != "OPEN" {
		t.Errorf("status = %v, want OPEN", ride["status"])
	}
	rideID := int(ride["id"].(float64))

	// Driver browses and claims it.
	w = doJSON(t, r, http.MethodGet, "/api/rides/open", driverToken, nil)
	if w.Code != 200 {
		t.Fatalf("open rides status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rides/%d/claim", rideID), driverToken, nil)
	if w.Code != 200 {
		t.Fatalf("claim status = %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["status"] != "ACCEPTED" {
		t.Error("claim did not accept the ride")
	}

	// A second claim conflicts.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rides/%d/claim", rideID), driverToken, nil)
	if w.Code != 409 {
		t.Errorf("second claim status = %d, want 409", w.Code)
	}

	// Driver advances to ON_ROUTE and completes.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/rides/%d/status", rideID), driverToken,
		map[string]any{"status": "ON_ROUTE"})
	if w.Code != 200 {
		t.Fatalf("on_route status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/rides/%d/status", rideID), driverToken,
		map[string]any{"status": "COMPLETED"})
	if w.Code != 200 {
		t.Fatalf("complete status = %d: %s", w.Code, w.Body.String())
	}
	completed := decode(t, w)
	if completed["receiptCode"] == nil || completed["receiptCode"] == "" {
		t.Error("completed ride has no receipt code")
	}

	// Client rates the driver post-completion.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/rides/%d/rate", rideID), clientToken,
		map[string]any{"score": 5})
	if w.Code != 200 {
		t.Fatalf("rate status = %d: %s", w.Code, w.Body.String())
	}

	// Both participants see the ride in their history.
	for _, token := range []string{clientToken, driverToken} {
		w = doJSON(t, r, http.MethodGet, "/api/rides/my", token, nil)
		if w.Code != 200 {
			t.Fatalf("my rides status = %d", w.Code)
		}
	}
}

func TestUnknownRideReturns404(t *testing.T) {
	r, _ := newTestRouter(t)
	driverToken := registerUser(t, r, driverBody())

	w := doJSON(t, r, http.MethodPost, "/api/rides/9999/claim", driverToken, nil)
	if w.Code != 404 {
		t.Errorf("claim unknown ride status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/rides/abc/claim", driverToken, nil)
	if w.Code != 400 {
		t.Errorf("claim malformed id status = %d, want 400", w.Code)
	}
}

func TestDriverAvailabilityEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	clientToken := registerUser(t, r, clientBody())
	driverToken := registerUser(t, r, driverBody())

	w := doJSON(t, r, http.MethodPost, "/api/driver/status", driverToken,
		map[string]any{"isAvailable": false})
	if w.Code != 200 {
		t.Fatalf("availability status = %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["isAvailable"] != false {
		t.Error("availability not updated")
	}

	// Unavailable drivers disappear from the listing.
	w = doJSON(t, r, http.MethodGet, "/api/drivers", clientToken, nil)
	if w.Code != 200 {
		t.Fatalf("drivers status = %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("drivers list = %s, want []", body)
	}

	w = doJSON(t, r, http.MethodPost, "/api/driver/status", clientToken,
		map[string]any{"isAvailable": true})
	if w.Code != 403 {
		t.Errorf("client toggling availability status = %d, want 403", w.Code)
	}
}
