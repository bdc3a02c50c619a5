package v1

import (
	"errors"
	"io"

	"github.com/employee-directory/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const invalidBodyMessage = "Invalid request body"

// messenger is implemented by request DTOs that carry per-field messages.
type messenger interface {
	ValidationMessages() map[string]string
}

// bindJSON decodes the body into obj and runs its binding rules. Only the
// first failing field, in declaration order, is reported. An empty body
// decodes to the zero value and is validated as such.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindWith(obj, binding.JSON)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Wrap(err, apperrors.CodeValidation, invalidBodyMessage)
	}
	return apperrors.Wrap(err, apperrors.CodeValidation, fieldMessage(obj, verrs[0]))
}

func fieldMessage(obj any, fe validator.FieldError) string {
	if m, ok := obj.(messenger); ok {
		if msg, ok := m.ValidationMessages()[fe.StructField()]; ok {
			return msg
		}
	}
	return "Invalid value for " + fe.Field()
}
