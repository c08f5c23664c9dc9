package public

import (
	handlershared "github.com/viewspecash/viewspecash/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getCreatorID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "creator_id", "error.creator_id_invalid", "error.creator_id_type_invalid")
}
