package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, Invalid("Invalid " + name)
	}
	return uint(v), nil
}
