package stats

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/wuwa-stats-backend/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	require.NoError(t, user.Migrate(db))

	handler := NewHandler(NewService(db, NewRepository(db), user.NewRepository(db)))

	r := gin.New()
	r.POST("/api/user-stats", handler.SaveStats)
	r.GET("/api/user-stats/:userId", handler.GetUserCharacters)
	r.GET("/api/user-stats/:userId/:characterId", handler.GetStats)
	r.DELETE("/api/user-stats/:userId/:characterId", handler.DeleteStats)
	return r
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func saveBody(userID, characterID string) map[string]interface{} {
	return map[string]interface{}{
		"userId":        userID,
		"username":      "Alice",
		"characterId":   characterID,
		"characterName": "Jinhsi",
		"stats": map[string]string{
			"hp":         "12000",
			"attack":     "2500",
			"defense":    "800",
			"dmgBonus":   "20",
			"critRate":   "35",
			"critDamage": "150",
		},
	}
}

func TestHandler_SaveAndGetRoundTrip(t *testing.T) {
	r := setupTestRouter(t)

	w := performRequest(t, r, http.MethodPost, "/api/user-stats", saveBody("u1", "c1"))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "u1", data["userId"])
	assert.Equal(t, "c1", data["characterId"])
	assert.NotEmpty(t, data["timestamp"])

	// 读回时每个数值都必须是保存值的字符串表示
	w = performRequest(t, r, http.MethodGet, "/api/user-stats/u1/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GetStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "12000", resp.Stats.Hp)
	assert.Equal(t, "2500", resp.Stats.Attack)
	assert.Equal(t, "800", resp.Stats.Defense)
	assert.Equal(t, "20", resp.Stats.DmgBonus)
	assert.Equal(t, "35", resp.Stats.CritRate)
	assert.Equal(t, "150", resp.Stats.CritDamage)
	assert.NotEmpty(t, resp.LastUpdated)
}

func TestHandler_GetStats_NotFound(t *testing.T) {
	r := setupTestRouter(t)

	w := performRequest(t, r, http.MethodGet, "/api/user-stats/u1/c1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestHandler_SaveStats_MissingUsername(t *testing.T) {
	r := setupTestRouter(t)

	body := saveBody("u1", "c1")
	delete(body, "username")

	w := performRequest(t, r, http.MethodPost, "/api/user-stats", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])

	// 校验失败时不应该有任何行被写入
	w = performRequest(t, r, http.MethodGet, "/api/user-stats/u1/c1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_SaveStats_MissingStatsObject(t *testing.T) {
	r := setupTestRouter(t)

	body := saveBody("u1", "c1")
	delete(body, "stats")

	w := performRequest(t, r, http.MethodPost, "/api/user-stats", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SaveStats_InvalidNumber(t *testing.T) {
	r := setupTestRouter(t)

	body := saveBody("u1", "c1")
	body["stats"] = map[string]string{"hp": "not-a-number"}

	w := performRequest(t, r, http.MethodPost, "/api/user-stats", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodGet, "/api/user-stats/u1/c1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_SaveStats_ZeroIsNotAbsent(t *testing.T) {
	r := setupTestRouter(t)

	body := saveBody("u1", "c1")
	body["stats"] = map[string]string{
		"hp":     "0",
		"attack": "",
	}

	w := performRequest(t, r, http.MethodPost, "/api/user-stats", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodGet, "/api/user-stats/u1/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GetStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// "0"是合法值，必须原样读回；空字符串才表示缺失
	assert.Equal(t, "0", resp.Stats.Hp)
	assert.Equal(t, "", resp.Stats.Attack)
}

func TestHandler_DeleteStats(t *testing.T) {
	r := setupTestRouter(t)

	w := performRequest(t, r, http.MethodPost, "/api/user-stats", saveBody("u1", "c1"))
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodDelete, "/api/user-stats/u1/c1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])

	// 删除后再查询和再删除都应该是404
	w = performRequest(t, r, http.MethodGet, "/api/user-stats/u1/c1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, r, http.MethodDelete, "/api/user-stats/u1/c1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetUserCharacters(t *testing.T) {
	r := setupTestRouter(t)

	first := saveBody("u1", "c1")
	w := performRequest(t, r, http.MethodPost, "/api/user-stats", first)
	require.Equal(t, http.StatusOK, w.Code)

	second := saveBody("u1", "c2")
	second["characterName"] = "Calcharo"
	w = performRequest(t, r, http.MethodPost, "/api/user-stats", second)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodGet, "/api/user-stats/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListCharactersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Characters, 2)
	// 按角色名升序
	assert.Equal(t, "Calcharo", resp.Characters[0].CharacterName)
	assert.Equal(t, "Jinhsi", resp.Characters[1].CharacterName)
	require.NotNil(t, resp.Characters[0].Hp)
	assert.EqualValues(t, 12000, *resp.Characters[0].Hp)
}

func TestHandler_GetUserCharacters_Empty(t *testing.T) {
	r := setupTestRouter(t)

	w := performRequest(t, r, http.MethodGet, "/api/user-stats/no-such-user", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListCharactersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Characters)
	assert.Empty(t, resp.Characters)
}
