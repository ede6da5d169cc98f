package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ubg-fkdk/portal/config"
)

type identitasItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ConfigController serves configuration-driven site identity.
type ConfigController struct {
	items []identitasItem
}

func NewConfigController(entries []config.IdentitasEntry) *ConfigController {
	items := make([]identitasItem, 0, len(entries))
	for i, e := range entries {
		items = append(items, identitasItem{ID: strconv.Itoa(i + 1), Name: e.Name, Value: e.Value})
	}
	return &ConfigController{items: items}
}

// GetIdentitas returns the configured name/value pairs.
func (c *ConfigController) GetIdentitas(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.items)
}
