package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// BindAndValidate binds the JSON body into out and runs validation. On
// failure it writes the 400 response itself and returns a non-nil error so
// the handler can short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": fieldErrors(err),
		})
		return err
	}
	return nil
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fe := range ve {
		out[fe.StructNamespace()] = fe.Error()
	}
	return out
}
