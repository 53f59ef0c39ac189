// Package pathparam binds typed route parameters.
package pathparam

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ErrInvalidID is returned for ids that are missing, non-numeric or zero.
var ErrInvalidID = errors.New("invalid id")

// ID binds the positive integer path parameter name (simple style, e.g. /post/:id).
func ID(c *gin.Context, name string) (uint, error) {
	var id uint
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if id == 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
