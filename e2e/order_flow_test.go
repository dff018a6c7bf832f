package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_HealthCheck(t *testing.T) {
	server := NewTestServer(t)
	defer server.Cleanup()

	rec := server.Request(http.MethodGet, "/api/v1/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

// TestE2E_CompleteOrderJourney は会場作成から予約確定までの一連の流れを検証
func TestE2E_CompleteOrderJourney(t *testing.T) {
	server := NewTestServer(t)
	defer server.Cleanup()

	ownerHeaders := map[string]string{"X-User-ID": "e2e-owner"}
	userHeaders := map[string]string{"X-User-ID": "e2e-customer"}

	var venueID, configID, eventID, orderID string
	seatIDs := make([]string, 0, 3)

	t.Run("会場を作成", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/venues", map[string]interface{}{
			"name":       "E2Eテストホール",
			"max_people": 100,
		}, ownerHeaders)

		require.Equal(t, http.StatusCreated, rec.Code)
		venueID = decode(t, rec)["id"].(string)
		require.NotEmpty(t, venueID)
	})

	t.Run("座席構成を作成", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/venues/"+venueID+"/configurations", map[string]interface{}{
			"name":       "スタンダード配置",
			"max_people": 50,
		}, ownerHeaders)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode(t, rec)
		configID = resp["id"].(string)
		// 作成直後は利用不可
		assert.Equal(t, false, resp["available"])
	})

	t.Run("座席を3席作成", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			body := map[string]interface{}{
				"name":       fmt.Sprintf("A-%d", i+1),
				"seat_class": "GA",
			}
			if len(seatIDs) > 0 {
				// 直前の席と隣接させる
				body["next_to"] = []string{seatIDs[len(seatIDs)-1]}
			}

			rec := server.Request(http.MethodPost, "/api/v1/configurations/"+configID+"/seats", body, ownerHeaders)
			require.Equal(t, http.StatusCreated, rec.Code)
			seatIDs = append(seatIDs, decode(t, rec)["id"].(string))
		}
		require.Len(t, seatIDs, 3)
	})

	t.Run("座席構成を利用可能にする", func(t *testing.T) {
		rec := server.Request(http.MethodPut, "/api/v1/configurations/"+configID+"/availability", map[string]interface{}{
			"available": true,
		}, ownerHeaders)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("イベントを作成して販売開始", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/events", map[string]interface{}{
			"venue_config_id": configID,
			"max_people":      50,
		}, ownerHeaders)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode(t, rec)
		eventID = resp["id"].(string)
		assert.Equal(t, false, resp["on_sale"])

		rec = server.Request(http.MethodPut, "/api/v1/events/"+eventID, map[string]interface{}{
			"max_people": 50,
			"on_sale":    true,
		}, ownerHeaders)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("空席数を確認", func(t *testing.T) {
		rec := server.Request(http.MethodGet, "/api/v1/events/"+eventID+"/free-seats", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), decode(t, rec)["count"])
	})

	t.Run("注文を作成", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/orders", map[string]interface{}{
			"event_id": eventID,
			"expires":  time.Now().Add(15 * time.Minute).Unix(),
		}, userHeaders)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode(t, rec)
		orderID = resp["id"].(string)
		assert.Equal(t, "active", resp["status"])
	})

	t.Run("座席を確保", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/orders/"+orderID+"/seats", map[string]interface{}{
			"seat_id": seatIDs[0],
		}, userHeaders)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), seatIDs[0])
	})

	t.Run("確保中は空席数が減る", func(t *testing.T) {
		rec := server.Request(http.MethodGet, "/api/v1/events/"+eventID+"/free-seats", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(2), decode(t, rec)["count"])
	})

	t.Run("注文を確定", func(t *testing.T) {
		rec := server.Request(http.MethodPost, "/api/v1/orders/"+orderID+"/complete", nil, userHeaders)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "completed", decode(t, rec)["status"])
	})

	t.Run("注文サマリーを確認", func(t *testing.T) {
		rec := server.Request(http.MethodGet, "/api/v1/orders/"+orderID+"/summary", nil, userHeaders)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, float64(1), resp["seat_count"])
	})
}

// TestE2E_SeatConflict は同一座席の競合確保を検証
func TestE2E_SeatConflict(t *testing.T) {
	server := NewTestServer(t)
	defer server.Cleanup()

	ownerHeaders := map[string]string{"X-User-ID": "e2e-owner"}
	eventID, seatIDs := setupSellableEvent(t, server, ownerHeaders, 1)

	createOrder := func(userID string) string {
		rec := server.Request(http.MethodPost, "/api/v1/orders", map[string]interface{}{
			"event_id": eventID,
			"expires":  time.Now().Add(15 * time.Minute).Unix(),
		}, map[string]string{"X-User-ID": userID})
		require.Equal(t, http.StatusCreated, rec.Code)
		return decode(t, rec)["id"].(string)
	}

	firstOrder := createOrder("user-first")
	secondOrder := createOrder("user-second")

	rec := server.Request(http.MethodPost, "/api/v1/orders/"+firstOrder+"/seats", map[string]interface{}{
		"seat_id": seatIDs[0],
	}, map[string]string{"X-User-ID": "user-first"})
	require.Equal(t, http.StatusOK, rec.Code)

	// 確保済みの座席は409
	rec = server.Request(http.MethodPost, "/api/v1/orders/"+secondOrder+"/seats", map[string]interface{}{
		"seat_id": seatIDs[0],
	}, map[string]string{"X-User-ID": "user-second"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// 先勝ちの注文から座席を外すと再確保できる
	rec = server.Request(http.MethodDelete, "/api/v1/orders/"+firstOrder+"/seats/"+seatIDs[0], nil,
		map[string]string{"X-User-ID": "user-first"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = server.Request(http.MethodPost, "/api/v1/orders/"+secondOrder+"/seats", map[string]interface{}{
		"seat_id": seatIDs[0],
	}, map[string]string{"X-User-ID": "user-second"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestE2E_AutoSelect は自動座席選択を検証
func TestE2E_AutoSelect(t *testing.T) {
	server := NewTestServer(t)
	defer server.Cleanup()

	ownerHeaders := map[string]string{"X-User-ID": "e2e-owner"}
	userHeaders := map[string]string{"X-User-ID": "e2e-customer"}
	eventID, _ := setupSellableEvent(t, server, ownerHeaders, 4)

	rec := server.Request(http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"event_id": eventID,
		"expires":  time.Now().Add(15 * time.Minute).Unix(),
	}, userHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := decode(t, rec)["id"].(string)

	rec = server.Request(http.MethodPost, "/api/v1/orders/"+orderID+"/auto-select", map[string]interface{}{
		"num_seats":             2,
		"seat_class_preference": []string{"GA"},
	}, userHeaders)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Len(t, resp["seat_ids"], 2)

	// 席数を超える要求は409
	rec = server.Request(http.MethodPost, "/api/v1/orders/"+orderID+"/auto-select", map[string]interface{}{
		"num_seats": 10,
	}, userHeaders)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// setupSellableEvent は販売中イベントと隣接座席をまとめて作成する
func setupSellableEvent(t *testing.T, server *TestServer, ownerHeaders map[string]string, numSeats int) (string, []string) {
	t.Helper()

	rec := server.Request(http.MethodPost, "/api/v1/venues", map[string]interface{}{
		"name":       "E2Eテストホール",
		"max_people": 100,
	}, ownerHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)
	venueID := decode(t, rec)["id"].(string)

	rec = server.Request(http.MethodPost, "/api/v1/venues/"+venueID+"/configurations", map[string]interface{}{
		"name":       "スタンダード配置",
		"max_people": 50,
	}, ownerHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)
	configID := decode(t, rec)["id"].(string)

	seatIDs := make([]string, 0, numSeats)
	for i := 0; i < numSeats; i++ {
		body := map[string]interface{}{
			"name":       fmt.Sprintf("B-%d", i+1),
			"seat_class": "GA",
		}
		if len(seatIDs) > 0 {
			body["next_to"] = []string{seatIDs[len(seatIDs)-1]}
		}
		rec = server.Request(http.MethodPost, "/api/v1/configurations/"+configID+"/seats", body, ownerHeaders)
		require.Equal(t, http.StatusCreated, rec.Code)
		seatIDs = append(seatIDs, decode(t, rec)["id"].(string))
	}

	rec = server.Request(http.MethodPut, "/api/v1/configurations/"+configID+"/availability", map[string]interface{}{
		"available": true,
	}, ownerHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = server.Request(http.MethodPost, "/api/v1/events", map[string]interface{}{
		"venue_config_id": configID,
		"max_people":      50,
	}, ownerHeaders)
	require.Equal(t, http.StatusCreated, rec.Code)
	eventID := decode(t, rec)["id"].(string)

	rec = server.Request(http.MethodPut, "/api/v1/events/"+eventID, map[string]interface{}{
		"max_people": 50,
		"on_sale":    true,
	}, ownerHeaders)
	require.Equal(t, http.StatusOK, rec.Code)

	return eventID, seatIDs
}
