package util

import (
	"social-backend/internal/model"

	"github.com/go-playground/validator/v10"
)

// ValidateReactionKind 验证请求中的反应类型是否合法
func ValidateReactionKind(fl validator.FieldLevel) bool {
	kind, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return model.ReactionKind(kind).IsValid()
}
