package stats

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler 将HTTP请求翻译为对Service的调用，并把行数据整形为固定的响应信封。
type Handler struct {
	service *Service
}

// NewHandler 创建一个新的面板数据控制器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --- API请求模型 ---

// StatsPayload 是面板数值在请求和响应中的传输形态。
// 历史契约：所有数值一律以字符串传输，空字符串表示"缺失"。
// 前端依赖这一点，不要改成数字类型。
type StatsPayload struct {
	Hp         string `json:"hp"`
	Attack     string `json:"attack"`
	Defense    string `json:"defense"`
	DmgBonus   string `json:"dmgBonus"`
	CritRate   string `json:"critRate"`
	CritDamage string `json:"critDamage"`
}

// SaveStatsRequestBody 定义了前端保存面板时，请求体的JSON结构
type SaveStatsRequestBody struct {
	UserID        string        `json:"userId" binding:"required"`
	Username      string        `json:"username" binding:"required"`
	CharacterID   string        `json:"characterId" binding:"required"`
	CharacterName string        `json:"characterName" binding:"required"`
	Stats         *StatsPayload `json:"stats" binding:"required"`
}

// --- API响应模型 ---

type GetStatsResponse struct {
	Success     bool         `json:"success"`
	Stats       StatsPayload `json:"stats"`
	LastUpdated string       `json:"lastUpdated"`
}

type SaveStatsResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    SaveStatsData `json:"data"`
}

type SaveStatsData struct {
	UserID      string `json:"userId"`
	CharacterID string `json:"characterId"`
	Timestamp   string `json:"timestamp"`
}

// UserCharacterResponse 是角色列表中单个条目的响应形态。
// 键名沿用数据库列名，数值保留原始类型（缺失为null），与旧客户端保持一致。
type UserCharacterResponse struct {
	CharacterID   string    `json:"character_id"`
	CharacterName string    `json:"character_name"`
	Hp            *int64    `json:"hp"`
	Attack        *int64    `json:"attack"`
	Defense       *int64    `json:"defense"`
	DmgBonus      *float64  `json:"dmg_bonus"`
	CritRate      *float64  `json:"crit_rate"`
	CritDamage    *float64  `json:"crit_damage"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListCharactersResponse struct {
	Success    bool                    `json:"success"`
	Characters []UserCharacterResponse `json:"characters"`
	Count      int                     `json:"count"`
}

// --- 数值与字符串之间的换算 ---

// parseIntStat 把线上的字符串面板值换算为可空整数。
// 空字符串表示缺失；"0"是合法值，不会被当作缺失。
func parseIntStat(field, value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("字段 %s 的值 %q 不是有效的整数", field, value)
	}
	return &n, nil
}

// parseFloatStat 把线上的字符串面板值换算为可空浮点数。
func parseFloatStat(field, value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("字段 %s 的值 %q 不是有效的数字", field, value)
	}
	return &f, nil
}

func formatIntStat(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloatStat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// parseSaveInput 校验并换算整个请求体，失败时返回可直接展示的错误。
func parseSaveInput(body *SaveStatsRequestBody) (SaveInput, error) {
	input := SaveInput{
		UserID:        body.UserID,
		Username:      body.Username,
		CharacterID:   body.CharacterID,
		CharacterName: body.CharacterName,
	}

	var err error
	if input.Hp, err = parseIntStat("hp", body.Stats.Hp); err != nil {
		return SaveInput{}, err
	}
	if input.Attack, err = parseIntStat("attack", body.Stats.Attack); err != nil {
		return SaveInput{}, err
	}
	if input.Defense, err = parseIntStat("defense", body.Stats.Defense); err != nil {
		return SaveInput{}, err
	}
	if input.DmgBonus, err = parseFloatStat("dmgBonus", body.Stats.DmgBonus); err != nil {
		return SaveInput{}, err
	}
	if input.CritRate, err = parseFloatStat("critRate", body.Stats.CritRate); err != nil {
		return SaveInput{}, err
	}
	if input.CritDamage, err = parseFloatStat("critDamage", body.Stats.CritDamage); err != nil {
		return SaveInput{}, err
	}
	return input, nil
}

func formatStats(s *CharacterStats) StatsPayload {
	return StatsPayload{
		Hp:         formatIntStat(s.Hp),
		Attack:     formatIntStat(s.Attack),
		Defense:    formatIntStat(s.Defense),
		DmgBonus:   formatFloatStat(s.DmgBonus),
		CritRate:   formatFloatStat(s.CritRate),
		CritDamage: formatFloatStat(s.CritDamage),
	}
}

func formatUserCharacter(s CharacterStats) UserCharacterResponse {
	return UserCharacterResponse{
		CharacterID:   s.CharacterID,
		CharacterName: s.CharacterName,
		Hp:            s.Hp,
		Attack:        s.Attack,
		Defense:       s.Defense,
		DmgBonus:      s.DmgBonus,
		CritRate:      s.CritRate,
		CritDamage:    s.CritDamage,
		UpdatedAt:     s.UpdatedAt,
	}
}

// --- 控制器函数 ---

// GetStats 获取指定用户指定角色的面板数据
// GET /api/user-stats/:userId/:characterId
func (h *Handler) GetStats(c *gin.Context) {
	userID := c.Param("userId")
	characterID := c.Param("characterId")

	snapshot, err := h.service.GetCharacterStats(c.Request.Context(), userID, characterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查询面板数据失败",
			"error":   err.Error(),
		})
		return
	}
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "该用户的这个角色还没有保存过面板数据",
		})
		return
	}

	c.JSON(http.StatusOK, GetStatsResponse{
		Success:     true,
		Stats:       formatStats(snapshot),
		LastUpdated: snapshot.UpdatedAt.Format(time.RFC3339),
	})
}

// SaveStats 保存或更新面板数据
// POST /api/user-stats
func (h *Handler) SaveStats(c *gin.Context) {
	var body SaveStatsRequestBody

	// 1. 绑定并验证请求体，必填字段缺失时不触碰存储层
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "缺少必填字段: userId, username, characterId, characterName, stats",
			"error":   err.Error(),
		})
		return
	}

	// 2. 换算面板数值，非法数字同样是客户端错误
	input, err := parseSaveInput(&body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "面板数值格式错误",
			"error":   err.Error(),
		})
		return
	}

	// 3. 在一个事务中保存用户和面板
	if err := h.service.SaveCharacterStats(c.Request.Context(), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "保存面板数据失败",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, SaveStatsResponse{
		Success: true,
		Message: "面板数据保存成功",
		Data: SaveStatsData{
			UserID:      body.UserID,
			CharacterID: body.CharacterID,
			Timestamp:   time.Now().Format(time.RFC3339),
		},
	})
}

// DeleteStats 删除指定用户指定角色的面板数据
// DELETE /api/user-stats/:userId/:characterId
func (h *Handler) DeleteStats(c *gin.Context) {
	userID := c.Param("userId")
	characterID := c.Param("characterId")

	changes, err := h.service.DeleteCharacterStats(c.Request.Context(), userID, characterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "删除面板数据失败",
			"error":   err.Error(),
		})
		return
	}
	if changes == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "没有可删除的面板数据",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "面板数据删除成功",
	})
}

// GetUserCharacters 获取一个用户保存过面板的全部角色
// GET /api/user-stats/:userId
func (h *Handler) GetUserCharacters(c *gin.Context) {
	userID := c.Param("userId")

	characters, err := h.service.ListUserCharacters(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "查询角色列表失败",
			"error":   err.Error(),
		})
		return
	}

	responses := make([]UserCharacterResponse, 0, len(characters))
	for _, snapshot := range characters {
		responses = append(responses, formatUserCharacter(snapshot))
	}

	c.JSON(http.StatusOK, ListCharactersResponse{
		Success:    true,
		Characters: responses,
		Count:      len(responses),
	})
}
